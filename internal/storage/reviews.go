package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/srs"
)

// InsertReviewLog appends one review to a card's history.
func (db *DB) InsertReviewLog(ctx context.Context, log domain.ReviewLog) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO review_logs (card_id, session_id, rating, reviewed_at, interval, ease)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		log.CardID,
		log.SessionID,
		int(log.Rating),
		log.ReviewedAt.UTC(),
		log.Interval,
		log.Ease,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review log for card %s: %w", log.CardID, err)
	}
	return nil
}

// ReviewLogsForCard retrieves a card's review history, oldest first.
func (db *DB) ReviewLogsForCard(ctx context.Context, cardID string) ([]domain.ReviewLog, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, card_id, session_id, rating, reviewed_at, interval, ease
		FROM review_logs
		WHERE card_id = ?
		ORDER BY reviewed_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs for card %s: %w", cardID, err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var (
			log    domain.ReviewLog
			rating int
		)
		if err := rows.Scan(&log.ID, &log.CardID, &log.SessionID, &rating, &log.ReviewedAt, &log.Interval, &log.Ease); err != nil {
			return nil, fmt.Errorf("failed to scan review log row: %w", err)
		}
		log.Rating = srs.Rating(rating)
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review log rows: %w", err)
	}
	return logs, nil
}

// CountReviews counts reviews recorded at or after since.
func (db *DB) CountReviews(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM review_logs WHERE reviewed_at >= ?
	`, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
