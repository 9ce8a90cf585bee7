package storage

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
)

// testStore connects to the database named by TEST_DATABASE_DSN. The
// schema is expected to be migrated already. Tests are skipped when the
// variable is unset so the package passes without a database.
func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db.MustExec(`TRUNCATE users, help_requests, help_offers, connections, chat_messages`)
	t.Cleanup(func() {
		db.MustExec(`TRUNCATE users, help_requests, help_offers, connections, chat_messages`)
		db.Close()
	})
	return New(db)
}

func TestUpsertUserOverwrites(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, 7, "alice", "Алиса", "Иванова", ""); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpdateUserLocation(ctx, 7, 55.75, 37.62); err != nil {
		t.Fatalf("update location: %v", err)
	}

	// Second registration must reset everything, coordinates included.
	if err := s.UpsertUser(ctx, 7, "", "Alice", "", ""); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var u model.User
	if err := s.db.Get(&u, `SELECT user_id, username, first_name, last_name, phone, latitude, longitude, created_at FROM users WHERE user_id = 7`); err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Username != nil {
		t.Errorf("username = %q, want NULL", *u.Username)
	}
	if u.FirstName == nil || *u.FirstName != "Alice" {
		t.Errorf("first_name = %v, want Alice", u.FirstName)
	}
	if u.Latitude != nil || u.Longitude != nil {
		t.Error("coordinates survived re-registration")
	}
}

func TestUpdateLocationUnknownUser(t *testing.T) {
	s := testStore(t)

	if err := s.UpdateUserLocation(context.Background(), 404, 1, 2); err != nil {
		t.Fatalf("unknown user must not error, got %v", err)
	}
}

func TestMatchingIsCategoryOnly(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, 1, "asker", "Аня", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertUser(ctx, 2, "helper", "Борис", "", ""); err != nil {
		t.Fatal(err)
	}
	// User 2 sits on the other side of the planet. Matching must not care.
	if err := s.UpdateUserLocation(ctx, 2, -33.86, 151.2); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateHelpOffer(ctx, 2, model.CategoryShopping, "куплю продукты", "куплю продукты"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateHelpOffer(ctx, 2, model.CategoryWalk, "выгуляю собаку", "выгуляю собаку"); err != nil {
		t.Fatal(err)
	}

	matches, err := s.FindOffersByCategory(ctx, model.CategoryShopping)
	if err != nil {
		t.Fatalf("find offers: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Details != "куплю продукты" {
		t.Errorf("details = %q", matches[0].Details)
	}
	if matches[0].FirstName == nil || *matches[0].FirstName != "Борис" {
		t.Errorf("first_name = %v, want Борис", matches[0].FirstName)
	}

	// Empty category matches every active offer.
	all, err := s.FindOffersByCategory(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all matches = %d, want 2", len(all))
	}
}

func TestRequestsByUserInsertionOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, 3, "u", "У", "", ""); err != nil {
		t.Fatal(err)
	}
	first, err := s.CreateHelpRequest(ctx, 3, model.CategoryPharmacy, "лекарства", "лекарства")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.CreateHelpRequest(ctx, 3, model.CategoryOther, "прочее", "прочее")
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Fatalf("ids not increasing: %d then %d", first, second)
	}

	reqs, err := s.GetRequestsByUser(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	if reqs[0].ID != first || reqs[1].ID != second {
		t.Errorf("order = [%d %d], want [%d %d]", reqs[0].ID, reqs[1].ID, first, second)
	}
	if reqs[0].Status != model.StatusActive {
		t.Errorf("status = %q, want active", reqs[0].Status)
	}
}
