package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/pkg/log"
)

// Transcript archives everything the engine processed. The archive is
// best effort: the ingestion loop logs failures and moves on.
type Transcript struct {
	db *sql.DB
}

func NewTranscript(db *sql.DB) *Transcript {
	return &Transcript{db: db}
}

func (t *Transcript) AddUtterance(ctx context.Context, u core.Utterance) error {
	query := `INSERT INTO utterances (source_id, speaker, content, origin, spoken_at) VALUES (?, ?, ?, ?, ?)`
	_, err := t.db.ExecContext(ctx, query, u.ID, u.Speaker, u.Text, string(u.Origin), u.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert utterance: %w", err)
	}
	return nil
}

func (t *Transcript) AddSummary(ctx context.Context, text string) error {
	query := `INSERT INTO summaries (content) VALUES (?)`
	if _, err := t.db.ExecContext(ctx, query, text); err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// RecentUtterances returns the last 'limit' archived utterances in
// chronological order.
func (t *Transcript) RecentUtterances(ctx context.Context, limit int) ([]core.Utterance, error) {
	query := `SELECT source_id, speaker, content, origin, spoken_at FROM utterances ORDER BY id DESC LIMIT ?`

	rows, err := t.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query utterances: %w", err)
	}
	defer rows.Close()

	var items []core.Utterance
	for rows.Next() {
		var u core.Utterance
		var origin string
		var spokenAt sql.NullTime

		if err := rows.Scan(&u.ID, &u.Speaker, &u.Text, &origin, &spokenAt); err != nil {
			return nil, fmt.Errorf("failed to scan utterance: %w", err)
		}
		u.Origin = core.Origin(origin)
		if spokenAt.Valid {
			u.Timestamp = spokenAt.Time
		}
		items = append(items, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive newest first, flip back to chronological order.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(items)).Msg("loaded archived utterances")
	return items, nil
}
