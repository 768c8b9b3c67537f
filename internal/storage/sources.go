package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zlatanpham/ankigo/internal/domain"
)

func sourceFromRow(id int64, path, kind string, lastSynced sql.NullTime) domain.Source {
	s := domain.Source{
		ID:   id,
		Path: path,
		Kind: domain.SourceKind(kind),
	}
	if lastSynced.Valid {
		t := lastSynced.Time
		s.LastSynced = &t
	}
	return s
}

// InsertSource registers a new card source and returns its ID.
func (db *DB) InsertSource(ctx context.Context, path string, kind domain.SourceKind) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO sources (path, kind)
		VALUES (?, ?)
	`, path, string(kind))
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// FindSourceByPath retrieves a source by its path. Returns
// domain.ErrSourceNotFound when the path is not registered.
func (db *DB) FindSourceByPath(ctx context.Context, path string) (*domain.Source, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, path, kind, last_synced
		FROM sources WHERE path = ?
	`, path)

	var (
		id         int64
		p, kind    string
		lastSynced sql.NullTime
	)
	if err := row.Scan(&id, &p, &kind, &lastSynced); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSourceNotFound
		}
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	s := sourceFromRow(id, p, kind, lastSynced)
	return &s, nil
}

// ListSources retrieves all registered sources.
func (db *DB) ListSources(ctx context.Context) ([]domain.Source, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, path, kind, last_synced
		FROM sources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var (
			id         int64
			path, kind string
			lastSynced sql.NullTime
		)
		if err := rows.Scan(&id, &path, &kind, &lastSynced); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, sourceFromRow(id, path, kind, lastSynced))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source rows: %w", err)
	}
	return sources, nil
}

// UpdateSourceSynced records when a source was last synced.
func (db *DB) UpdateSourceSynced(ctx context.Context, sourceID int64, syncedAt time.Time) error {
	_, err := db.conn.ExecContext(ctx, `
		UPDATE sources
		SET last_synced = ?
		WHERE id = ?
	`, syncedAt.UTC(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last synced for source ID %d: %w", sourceID, err)
	}
	return nil
}

// DeleteSource removes a source along with every card synced from it.
func (db *DB) DeleteSource(ctx context.Context, sourceID int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete of source ID %d: %w", sourceID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM review_logs
		WHERE card_id IN (SELECT id FROM cards WHERE source_id = ?)
	`, sourceID); err != nil {
		return fmt.Errorf("failed to delete review logs for source ID %d: %w", sourceID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("failed to delete cards for source ID %d: %w", sourceID, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, sourceID)
	if err != nil {
		return fmt.Errorf("failed to delete source ID %d: %w", sourceID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for source ID %d: %w", sourceID, err)
	}
	if affected == 0 {
		return domain.ErrSourceNotFound
	}
	return tx.Commit()
}
