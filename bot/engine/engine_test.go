package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/bot/storage"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/state"
)

type fakeUser struct {
	username, firstName, lastName, phone string
	lat, lon                             *float64
}

type fakeStore struct {
	users    map[int64]fakeUser
	requests []model.HelpRequest
	offers   []model.HelpOffer

	failWrites bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]fakeUser{}}
}

var errBoom = errors.New("boom")

func (f *fakeStore) UpsertUser(_ context.Context, id int64, username, firstName, lastName, phone string) error {
	if f.failWrites {
		return errBoom
	}
	f.users[id] = fakeUser{username: username, firstName: firstName, lastName: lastName, phone: phone}
	return nil
}

func (f *fakeStore) UpdateUserLocation(_ context.Context, id int64, lat, lon float64) error {
	if f.failWrites {
		return errBoom
	}
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	u.lat, u.lon = &lat, &lon
	f.users[id] = u
	return nil
}

func (f *fakeStore) CreateHelpRequest(_ context.Context, userID int64, category model.Category, description, details string) (int64, error) {
	if f.failWrites {
		return 0, errBoom
	}
	id := int64(len(f.requests) + 1)
	f.requests = append(f.requests, model.HelpRequest{
		ID: id, UserID: userID, Category: category,
		Description: description, Details: details, Status: model.StatusActive,
	})
	return id, nil
}

func (f *fakeStore) CreateHelpOffer(_ context.Context, userID int64, category model.Category, description, details string) (int64, error) {
	if f.failWrites {
		return 0, errBoom
	}
	id := int64(len(f.offers) + 1)
	f.offers = append(f.offers, model.HelpOffer{
		ID: id, UserID: userID, Category: category,
		Description: description, Details: details, Status: model.StatusActive,
	})
	return id, nil
}

func (f *fakeStore) FindRequestsByCategory(_ context.Context, category model.Category) ([]model.Match, error) {
	var out []model.Match
	for _, r := range f.requests {
		if r.Status != model.StatusActive {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		u := f.users[r.UserID]
		name := u.firstName
		out = append(out, model.Match{ID: r.ID, Description: r.Description, Details: r.Details, FirstName: &name})
	}
	return out, nil
}

func (f *fakeStore) FindOffersByCategory(_ context.Context, category model.Category) ([]model.Match, error) {
	var out []model.Match
	for _, o := range f.offers {
		if o.Status != model.StatusActive {
			continue
		}
		if category != "" && o.Category != category {
			continue
		}
		u := f.users[o.UserID]
		name := u.firstName
		out = append(out, model.Match{ID: o.ID, Description: o.Description, Details: o.Details, FirstName: &name})
	}
	return out, nil
}

func (f *fakeStore) GetRequestsByUser(_ context.Context, userID int64) ([]model.HelpRequest, error) {
	var out []model.HelpRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetOffersByUser(_ context.Context, userID int64) ([]model.HelpOffer, error) {
	var out []model.HelpOffer
	for _, o := range f.offers {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) CountActivity(_ context.Context) (storage.Counts, error) {
	return storage.Counts{
		Users:    int64(len(f.users)),
		Requests: int64(len(f.requests)),
		Offers:   int64(len(f.offers)),
	}, nil
}

func newTestEngine() (*Engine, *fakeStore, state.Manager) {
	store := newFakeStore()
	sessions := state.NewMemoryManager()
	return New(store, sessions), store, sessions
}

func handle(t *testing.T, e *Engine, ev Event) []Reply {
	t.Helper()
	replies, err := e.Handle(context.Background(), ev)
	if err != nil {
		t.Fatalf("handle %+v: %v", ev, err)
	}
	return replies
}

func TestFullNeedHelpFlow(t *testing.T) {
	e, store, sessions := newTestEngine()
	ctx := context.Background()

	handle(t, e, Event{SenderID: 7, Text: "/start", Profile: Profile{Username: "seven", FirstName: "Семён"}})

	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})
	if s := sessions.Get(7); s.Flow != state.FlowNeedHelp || s.Step != state.StepCategory {
		t.Fatalf("after intent: session = %+v", s)
	}

	handle(t, e, Event{SenderID: 7, Text: "🛒 Сходить в магазин"})
	if s := sessions.Get(7); s.Step != state.StepDetails || s.Category != "shopping" {
		t.Fatalf("after category: session = %+v", s)
	}

	replies, err := e.Handle(ctx, Event{SenderID: 7, Text: "нужно молоко"})
	if err != nil {
		t.Fatal(err)
	}
	if len(store.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(store.requests))
	}
	r := store.requests[0]
	if r.Category != model.CategoryShopping || r.Description != "нужно молоко" || r.Details != "нужно молоко" {
		t.Errorf("request = %+v", r)
	}
	if r.Status != model.StatusActive {
		t.Errorf("status = %q", r.Status)
	}
	if s := sessions.Get(7); !s.Idle() {
		t.Errorf("session not reset: %+v", s)
	}
	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Ваш запрос помощи сохранен") {
		t.Errorf("replies = %+v", replies)
	}
}

func TestCanHelpFlowReportsMatches(t *testing.T) {
	e, store, _ := newTestEngine()

	// An existing request in the same category from another user.
	handle(t, e, Event{SenderID: 1, Text: "/start", Profile: Profile{FirstName: "Аня"}})
	handle(t, e, Event{SenderID: 1, Text: "🙋 Мне нужна помощь"})
	handle(t, e, Event{SenderID: 1, Text: "💊 Купить лекарства"})
	handle(t, e, Event{SenderID: 1, Text: "нужен аспирин"})

	handle(t, e, Event{SenderID: 2, Text: "/start", Profile: Profile{FirstName: "Борис"}})
	handle(t, e, Event{SenderID: 2, Text: "🤝 Я могу оказать помощь"})
	handle(t, e, Event{SenderID: 2, Text: "💊 Купить лекарства"})
	replies := handle(t, e, Event{SenderID: 2, Text: "схожу в аптеку"})

	if len(store.offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(store.offers))
	}
	if !strings.Contains(replies[0].Text, "Нашлось 1 запросов помощи") {
		t.Errorf("reply = %q", replies[0].Text)
	}
}

func TestUnknownCategoryLeavesSessionUnchanged(t *testing.T) {
	e, store, sessions := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})
	before := sessions.Get(7)

	replies := handle(t, e, Event{SenderID: 7, Text: "что-то невнятное"})
	if len(replies) != 0 {
		t.Errorf("unexpected replies: %+v", replies)
	}
	if after := sessions.Get(7); after != before {
		t.Errorf("session changed: %+v -> %+v", before, after)
	}
	if len(store.requests) != 0 {
		t.Error("request created on invalid category")
	}
}

func TestMenuLabelsWinOverSessionStep(t *testing.T) {
	e, store, sessions := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start", Profile: Profile{FirstName: "Семён"}})
	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})
	handle(t, e, Event{SenderID: 7, Text: "❓ Другое"})

	// On the details step the escape label must restart, not be saved
	// as details text.
	replies := handle(t, e, Event{SenderID: 7, Text: "🔙 Главное меню"})
	if len(store.requests) != 0 {
		t.Fatal("escape label persisted as details")
	}
	if !sessions.Get(7).Idle() {
		t.Error("session not reset by main menu")
	}
	if !strings.Contains(replies[0].Text, "Добро пожаловать") {
		t.Errorf("reply = %q", replies[0].Text)
	}
}

func TestSessionLossFallsBackToHint(t *testing.T) {
	e, _, sessions := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})
	handle(t, e, Event{SenderID: 7, Text: "🛒 Сходить в магазин"})

	// Registry wiped between steps, e.g. after a process restart.
	sessions.Clear(7)

	replies := handle(t, e, Event{SenderID: 7, Text: "нужно молоко"})
	if len(replies) != 1 || replies[0].Text != textNavigationHint {
		t.Errorf("replies = %+v, want navigation hint", replies)
	}
}

func TestPersistenceFailureKeepsSession(t *testing.T) {
	e, store, sessions := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})
	handle(t, e, Event{SenderID: 7, Text: "🛒 Сходить в магазин"})

	store.failWrites = true
	replies, err := e.Handle(context.Background(), Event{SenderID: 7, Text: "нужно молоко"})
	if err == nil {
		t.Fatal("expected error from failed write")
	}
	if len(replies) != 1 || replies[0].Text != textPersistFailed {
		t.Errorf("replies = %+v, want try-again message", replies)
	}
	// The sender can just resend the text.
	if s := sessions.Get(7); s.Step != state.StepDetails {
		t.Errorf("session = %+v, want details step preserved", s)
	}

	store.failWrites = false
	handle(t, e, Event{SenderID: 7, Text: "нужно молоко"})
	if len(store.requests) != 1 {
		t.Fatalf("requests = %d after retry, want 1", len(store.requests))
	}
}

func TestLocationUpdateDoesNotTouchSession(t *testing.T) {
	e, store, sessions := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	handle(t, e, Event{SenderID: 7, Text: "🙋 Мне нужна помощь"})

	replies := handle(t, e, Event{SenderID: 7, Location: &Location{Latitude: 55.75, Longitude: 37.62}})
	if replies[0].Text != textLocationSaved {
		t.Errorf("reply = %q", replies[0].Text)
	}
	if u := store.users[7]; u.lat == nil || *u.lat != 55.75 {
		t.Errorf("location not stored: %+v", u)
	}
	if s := sessions.Get(7); s.Step != state.StepCategory {
		t.Errorf("session disturbed by location: %+v", s)
	}
}

func TestMyActivityRendering(t *testing.T) {
	e, store, _ := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	replies := handle(t, e, Event{SenderID: 7, Text: "📊 Мои активность"})
	if !strings.Contains(replies[0].Text, "нет активных запросов") {
		t.Errorf("empty view = %q", replies[0].Text)
	}

	store.requests = append(store.requests, model.HelpRequest{
		ID: 1, UserID: 7, Category: model.CategoryWalk,
		Description: "выгулять пса", Details: "вечером", Status: model.StatusActive,
	})
	store.offers = append(store.offers, model.HelpOffer{
		ID: 1, UserID: 7, Category: model.CategoryOther,
		Description: "помогу с почтой", Details: "", Status: model.StatusCompleted,
	})

	replies = handle(t, e, Event{SenderID: 7, Text: "📊 Мои активность"})
	got := replies[0].Text
	if !strings.Contains(got, "🟡 выгулять пса") {
		t.Errorf("active glyph missing: %q", got)
	}
	if !strings.Contains(got, "   📝 вечером") {
		t.Errorf("details line missing: %q", got)
	}
	if !strings.Contains(got, "✅ помогу с почтой") {
		t.Errorf("completed glyph missing: %q", got)
	}
	if strings.Contains(got, "📝 \n") {
		t.Errorf("details line rendered for empty details: %q", got)
	}
}

func TestFindNearbyCapsAtFive(t *testing.T) {
	e, store, _ := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})

	replies := handle(t, e, Event{SenderID: 7, Text: "👥 Найти помощь рядом"})
	if replies[0].Text != textNearbyEmpty {
		t.Errorf("empty view = %q", replies[0].Text)
	}

	store.users[8] = fakeUser{firstName: "Оля"}
	for i := 0; i < 7; i++ {
		store.requests = append(store.requests, model.HelpRequest{
			ID: int64(i + 1), UserID: 8, Category: model.CategoryOther,
			Description: fmt.Sprintf("просьба %d", i+1), Details: "детали", Status: model.StatusActive,
		})
	}

	replies = handle(t, e, Event{SenderID: 7, Text: "👥 Найти помощь рядом"})
	got := replies[0].Text
	if !strings.Contains(got, "Найдено запросов помощи рядом: 7") {
		t.Errorf("headline missing full count: %q", got)
	}
	if n := strings.Count(got, "🙋 просьба"); n != 5 {
		t.Errorf("entries rendered = %d, want 5", n)
	}
	if !strings.Contains(got, "👤 Оля") {
		t.Errorf("owner name missing: %q", got)
	}
}

func TestDeleteListIsReadOnly(t *testing.T) {
	e, store, _ := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	replies := handle(t, e, Event{SenderID: 7, Text: "🗑️ Удалить запросы"})
	if replies[0].Text != textDeleteEmpty {
		t.Errorf("empty view = %q", replies[0].Text)
	}

	longDescription := strings.Repeat("а", 40)
	store.requests = append(store.requests, model.HelpRequest{
		ID: 1, UserID: 7, Description: longDescription, Status: model.StatusActive,
	})
	store.offers = append(store.offers,
		model.HelpOffer{ID: 1, UserID: 7, Description: "довезу", Status: model.StatusActive},
		model.HelpOffer{ID: 2, UserID: 7, Description: "старое", Status: model.StatusCompleted},
	)

	replies = handle(t, e, Event{SenderID: 7, Text: "🗑️ Удалить запросы"})
	kb := replies[0].Keyboard
	if kb == nil {
		t.Fatal("expected choice keyboard")
	}
	if len(kb.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (completed items excluded)", len(kb.Rows))
	}
	wantLabel := "🗑️ Запрос: " + strings.Repeat("а", 30) + "..."
	if kb.Rows[0][0].Label != wantLabel {
		t.Errorf("label = %q, want %q", kb.Rows[0][0].Label, wantLabel)
	}

	// Listing must not mutate anything.
	if store.requests[0].Status != model.StatusActive || store.offers[1].Status != model.StatusCompleted {
		t.Error("delete view mutated statuses")
	}
}

func TestIgnoresEventsWithoutSender(t *testing.T) {
	e, store, _ := newTestEngine()

	replies := handle(t, e, Event{SenderID: 0, Text: "/start"})
	if replies != nil {
		t.Errorf("replies = %+v, want none", replies)
	}
	if len(store.users) != 0 {
		t.Error("user created for anonymous event")
	}
}

func TestStartOverwritesProfile(t *testing.T) {
	e, store, _ := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start", Profile: Profile{Username: "old", FirstName: "Старое", LastName: "Имя"}})
	handle(t, e, Event{SenderID: 7, Text: "/start", Profile: Profile{FirstName: "Новое"}})

	u := store.users[7]
	if u.username != "" || u.lastName != "" {
		t.Errorf("old profile fields survived: %+v", u)
	}
	if u.firstName != "Новое" {
		t.Errorf("first name = %q", u.firstName)
	}
}

func TestStatsCountsTables(t *testing.T) {
	e, store, _ := newTestEngine()

	handle(t, e, Event{SenderID: 7, Text: "/start"})
	store.requests = append(store.requests, model.HelpRequest{ID: 1, UserID: 7, Status: model.StatusActive})

	replies, err := e.Stats(context.Background(), Event{SenderID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(replies[0].Text, "Пользователей: 1") || !strings.Contains(replies[0].Text, "Запросов помощи: 1") {
		t.Errorf("stats = %q", replies[0].Text)
	}
}
