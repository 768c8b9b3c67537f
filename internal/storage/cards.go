package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/srs"
)

const cardColumns = "id, deck, front, back, notes, state, due, interval, repetitions, ease, lapses, last_review, created_at"

// cardRow mirrors a row of the cards table before conversion to the
// domain type.
type cardRow struct {
	id          string
	deck        string
	front       string
	back        string
	notes       string
	state       int
	due         time.Time
	interval    int
	repetitions int
	ease        float64
	lapses      int
	lastReview  sql.NullTime
	createdAt   time.Time
}

func (r cardRow) toDomain() domain.Card {
	cs := srs.CardState{
		State:       srs.State(r.state),
		Due:         r.due,
		Interval:    r.interval,
		Repetitions: r.repetitions,
		Ease:        r.ease,
		Lapses:      r.lapses,
	}
	if r.lastReview.Valid {
		t := r.lastReview.Time
		cs.LastReview = &t
	}
	return domain.Card{
		ID:        r.id,
		Deck:      r.deck,
		Front:     r.front,
		Back:      r.back,
		Notes:     r.notes,
		State:     cs,
		CreatedAt: r.createdAt,
	}
}

func scanCardRow(scan func(dest ...any) error) (cardRow, error) {
	var r cardRow
	err := scan(
		&r.id,
		&r.deck,
		&r.front,
		&r.back,
		&r.notes,
		&r.state,
		&r.due,
		&r.interval,
		&r.repetitions,
		&r.ease,
		&r.lapses,
		&r.lastReview,
		&r.createdAt,
	)
	return r, err
}

// Times are stored in UTC so the driver's text encoding compares
// chronologically in SQL.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// InsertCard inserts a new card. A zero sourceID stores NULL, meaning
// the card was added directly rather than synced from a source.
func (db *DB) InsertCard(ctx context.Context, card domain.Card, sourceID int64) error {
	src := sql.NullInt64{Int64: sourceID, Valid: sourceID != 0}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO cards (id, deck, front, back, notes, state, due, interval, repetitions, ease, lapses, last_review, created_at, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		card.Deck,
		card.Front,
		card.Back,
		card.Notes,
		int(card.State.State),
		card.State.Due.UTC(),
		card.State.Interval,
		card.State.Repetitions,
		card.State.Ease,
		card.State.Lapses,
		nullTime(card.State.LastReview),
		card.CreatedAt.UTC(),
		src,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
	return nil
}

// FindCard retrieves a card by its fingerprint. Returns
// domain.ErrCardNotFound when no such card exists.
func (db *DB) FindCard(ctx context.Context, id string) (*domain.Card, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE id = ?
	`, id)

	r, err := scanCardRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card %s: %w", id, err)
	}
	card := r.toDomain()
	return &card, nil
}

// FindCardByPrefix resolves a card by a unique fingerprint prefix, so
// commands can accept the short IDs shown in listings.
func (db *DB) FindCardByPrefix(ctx context.Context, prefix string) (*domain.Card, error) {
	if len(prefix) < 4 {
		return nil, fmt.Errorf("card ID prefix %q is too short, use at least 4 characters", prefix)
	}

	cards, err := db.queryCards(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE id LIKE ? || '%' LIMIT 2
	`, strings.ToLower(prefix))
	if err != nil {
		return nil, err
	}
	switch len(cards) {
	case 0:
		return nil, domain.ErrCardNotFound
	case 1:
		return &cards[0], nil
	}
	return nil, fmt.Errorf("card ID prefix %q is ambiguous", prefix)
}

// UpdateCardState overwrites a card's scheduling state.
func (db *DB) UpdateCardState(ctx context.Context, id string, cs srs.CardState) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE cards
		SET state = ?, due = ?, interval = ?, repetitions = ?, ease = ?, lapses = ?, last_review = ?
		WHERE id = ?
	`,
		int(cs.State),
		cs.Due.UTC(),
		cs.Interval,
		cs.Repetitions,
		cs.Ease,
		cs.Lapses,
		nullTime(cs.LastReview),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card state for %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// DueCards returns cards eligible for review at now, soonest first.
// Suspended cards are excluded. A limit of 0 returns all due cards.
func (db *DB) DueCards(ctx context.Context, now time.Time, limit int) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE due <= ? AND state != ?
		ORDER BY due ASC
	`
	args := []any{now.UTC(), int(srs.Suspended)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return db.queryCards(ctx, query, args...)
}

// ListCards returns all cards, or only those in the given deck when
// deck is non-empty.
func (db *DB) ListCards(ctx context.Context, deck string) ([]domain.Card, error) {
	if deck == "" {
		return db.queryCards(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY deck, created_at`)
	}
	return db.queryCards(ctx, `SELECT `+cardColumns+` FROM cards WHERE deck = ? ORDER BY created_at`, deck)
}

// CardsBySource returns all cards that were synced from the source.
func (db *DB) CardsBySource(ctx context.Context, sourceID int64) ([]domain.Card, error) {
	return db.queryCards(ctx, `SELECT `+cardColumns+` FROM cards WHERE source_id = ?`, sourceID)
}

// DeleteCard removes a card and its review logs.
func (db *DB) DeleteCard(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete of card %s: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM review_logs WHERE card_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete review logs for card %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return tx.Commit()
}

func (db *DB) queryCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var collected []cardRow
	for rows.Next() {
		r, err := scanCardRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		collected = append(collected, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}

	return lo.Map(collected, func(r cardRow, _ int) domain.Card {
		return r.toDomain()
	}), nil
}
