package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store provides access to the bot's durable records.
//
// Matching queries are intentionally category-only: stored coordinates
// are never consulted, so "nearby" means "same category, any distance".
type Store struct {
	db *sqlx.DB
}

// New wraps an established database connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Counts reports table sizes for the admin stats command.
type Counts struct {
	Users    int64 `db:"users"`
	Requests int64 `db:"requests"`
	Offers   int64 `db:"offers"`
}

// CountActivity returns total users, help requests, and help offers.
func (s *Store) CountActivity(ctx context.Context) (Counts, error) {
	const q = `
		SELECT
			(SELECT count(*) FROM users)         AS users,
			(SELECT count(*) FROM help_requests) AS requests,
			(SELECT count(*) FROM help_offers)   AS offers`

	var c Counts
	if err := s.db.GetContext(ctx, &c, q); err != nil {
		return Counts{}, fmt.Errorf("count activity: %w", err)
	}
	return c, nil
}
