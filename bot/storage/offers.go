package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/core/logger"
)

// CreateHelpOffer records a new active help offer and returns its id.
func (s *Store) CreateHelpOffer(ctx context.Context, userID int64, category model.Category, description, details string) (int64, error) {
	const q = `
		INSERT INTO help_offers (user_id, category, description, details, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	start := time.Now()
	var id int64
	if err := s.db.GetContext(ctx, &id, q, userID, category, description, details, model.StatusActive); err != nil {
		logger.LogEvent(ctx, logger.SVCOffers, slog.LevelError, "offers.create",
			slog.Int64("user_id", userID),
			slog.String("category", string(category)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("create help offer: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCOffers, slog.LevelInfo, "offers.create",
		slog.Int64("user_id", userID),
		slog.String("category", string(category)),
		slog.Int64("offer_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// FindOffersByCategory returns all active offers in insertion order,
// joined with the volunteer's first name. An empty category matches
// every category.
func (s *Store) FindOffersByCategory(ctx context.Context, category model.Category) ([]model.Match, error) {
	const q = `
		SELECT o.id, o.description, o.details, u.first_name
		FROM help_offers o
		JOIN users u ON u.user_id = o.user_id
		WHERE o.status = $1
		  AND ($2 = '' OR o.category = $2)
		ORDER BY o.id`

	var out []model.Match
	if err := s.db.SelectContext(ctx, &out, q, model.StatusActive, string(category)); err != nil {
		logger.LogEvent(ctx, logger.SVCMatch, slog.LevelError, "match.offers",
			slog.String("category", string(category)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("find offers by category: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCMatch, slog.LevelDebug, "match.offers",
		slog.String("category", string(category)),
		slog.Int("matches", len(out)),
	)
	return out, nil
}

// GetOffersByUser returns every offer the user has filed, any status,
// in insertion order.
func (s *Store) GetOffersByUser(ctx context.Context, userID int64) ([]model.HelpOffer, error) {
	const q = `
		SELECT id, user_id, category, description, details, status, created_at
		FROM help_offers
		WHERE user_id = $1
		ORDER BY id`

	var out []model.HelpOffer
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		logger.LogEvent(ctx, logger.SVCOffers, slog.LevelError, "offers.list",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("get offers by user: %w", err)
	}
	return out, nil
}
