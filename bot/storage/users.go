package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sosedi-ryadom/sosedibot/core/logger"
)

// UpsertUser replaces the profile row for a Telegram user.
//
// Overwrite is intentional and total: a repeated /start resets every
// profile field, including stored coordinates. Empty strings are
// persisted as NULL so a missing username or phone clears the old value.
func (s *Store) UpsertUser(ctx context.Context, id int64, username, firstName, lastName, phone string) error {
	const q = `
		INSERT INTO users (user_id, username, first_name, last_name, phone, latitude, longitude)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULL, NULL)
		ON CONFLICT (user_id) DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			phone      = EXCLUDED.phone,
			latitude   = EXCLUDED.latitude,
			longitude  = EXCLUDED.longitude`

	start := time.Now()
	if _, err := s.db.ExecContext(ctx, q, id, username, firstName, lastName, phone); err != nil {
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "users.upsert",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelDebug, "users.upsert",
		slog.Int64("user_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// UpdateUserLocation stores coordinates for a known user. An unknown id
// affects zero rows and is not an error.
func (s *Store) UpdateUserLocation(ctx context.Context, id int64, lat, lon float64) error {
	const q = `UPDATE users SET latitude = $1, longitude = $2 WHERE user_id = $3`

	res, err := s.db.ExecContext(ctx, q, lat, lon, id)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "users.location",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("update location for user %d: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelDebug, "users.location",
		slog.Int64("user_id", id),
		slog.Int64("count", affected),
	)
	return nil
}
