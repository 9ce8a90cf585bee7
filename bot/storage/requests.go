package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/core/logger"
)

// CreateHelpRequest records a new active help request and returns its id.
func (s *Store) CreateHelpRequest(ctx context.Context, userID int64, category model.Category, description, details string) (int64, error) {
	const q = `
		INSERT INTO help_requests (user_id, category, description, details, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	start := time.Now()
	var id int64
	if err := s.db.GetContext(ctx, &id, q, userID, category, description, details, model.StatusActive); err != nil {
		logger.LogEvent(ctx, logger.SVCRequests, slog.LevelError, "requests.create",
			slog.Int64("user_id", userID),
			slog.String("category", string(category)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("create help request: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCRequests, slog.LevelInfo, "requests.create",
		slog.Int64("user_id", userID),
		slog.String("category", string(category)),
		slog.Int64("request_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// FindRequestsByCategory returns all active requests in insertion order,
// joined with the owner's first name. An empty category matches every
// category. Stored coordinates are never consulted.
func (s *Store) FindRequestsByCategory(ctx context.Context, category model.Category) ([]model.Match, error) {
	const q = `
		SELECT r.id, r.description, r.details, u.first_name
		FROM help_requests r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.status = $1
		  AND ($2 = '' OR r.category = $2)
		ORDER BY r.id`

	var out []model.Match
	if err := s.db.SelectContext(ctx, &out, q, model.StatusActive, string(category)); err != nil {
		logger.LogEvent(ctx, logger.SVCMatch, slog.LevelError, "match.requests",
			slog.String("category", string(category)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("find requests by category: %w", err)
	}
	logger.LogEvent(ctx, logger.SVCMatch, slog.LevelDebug, "match.requests",
		slog.String("category", string(category)),
		slog.Int("matches", len(out)),
	)
	return out, nil
}

// GetRequestsByUser returns every request the user has filed, any
// status, in insertion order.
func (s *Store) GetRequestsByUser(ctx context.Context, userID int64) ([]model.HelpRequest, error) {
	const q = `
		SELECT id, user_id, category, description, details, status, created_at
		FROM help_requests
		WHERE user_id = $1
		ORDER BY id`

	var out []model.HelpRequest
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		logger.LogEvent(ctx, logger.SVCRequests, slog.LevelError, "requests.list",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("get requests by user: %w", err)
	}
	return out, nil
}
