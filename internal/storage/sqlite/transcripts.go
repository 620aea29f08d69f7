package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

var _ core.TranscriptRepository = (*TranscriptsRepo)(nil)

type TranscriptsRepo struct {
	db *sql.DB
}

func NewTranscriptsRepo(db *sql.DB) *TranscriptsRepo {
	return &TranscriptsRepo{db: db}
}

func (r *TranscriptsRepo) AddTurn(ctx context.Context, turn core.Turn) error {
	query := `INSERT INTO turns (session_id, thread_id, role, content) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, turn.SessionID, turn.ThreadID, turn.Role, turn.Content); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// GetTurns returns the last limit turns of a session, oldest first.
func (r *TranscriptsRepo) GetTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	query := `SELECT id, session_id, thread_id, role, content, created_at
		FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.ThreadID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> oldest from the query; flip to chronological.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded transcript")
	return turns, nil
}

// Sessions lists session ids, most recently active first.
func (r *TranscriptsRepo) Sessions(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT session_id FROM turns GROUP BY session_id ORDER BY MAX(id) DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
