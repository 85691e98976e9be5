// Package sqlite provides the SQLite-backed session cache: one row per
// session holding that session's latest AnalysisResult.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/ewilliams-labs/resonate/internal/core/domain"
	"github.com/ewilliams-labs/resonate/internal/core/ports"
)

// Adapter implements the result repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.ResultRepository = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return a, nil
}

// Close closes the underlying connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save replaces the session's slot with this result. A session holds at
// most one AnalysisResult; each new submission invalidates the old one.
func (a *Adapter) Save(ctx context.Context, result domain.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO analyses (session_id, request_id, playlist_id, degraded, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			request_id=excluded.request_id,
			playlist_id=excluded.playlist_id,
			degraded=excluded.degraded,
			payload=excluded.payload,
			created_at=excluded.created_at
	`, result.SessionID, result.RequestID, result.PlaylistID, result.Degraded, string(payload), result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis for session %s: %w", result.SessionID, err)
	}
	return nil
}

// LatestBySession loads the session's cached result.
func (a *Adapter) LatestBySession(ctx context.Context, sessionID string) (domain.AnalysisResult, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT payload FROM analyses WHERE session_id = ?", sessionID)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AnalysisResult{}, domain.ErrNotFound
		}
		return domain.AnalysisResult{}, fmt.Errorf("failed to load analysis: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return result, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		session_id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		playlist_id TEXT NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
