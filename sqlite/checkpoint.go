package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Compile-time interface verification.
var _ trivia.CheckpointService = (*CheckpointService)(nil)

// CheckpointService implements trivia.CheckpointService using SQLite.
// Recording an already-seen title is a no-op, so interrupted runs can
// replay their tail safely. The one exception is a retry that succeeds:
// a processed append upgrades an earlier failed entry, while a failed
// append never downgrades a processed one.
type CheckpointService struct {
	db *DB
}

// NewCheckpointService creates a new CheckpointService.
func NewCheckpointService(db *DB) *CheckpointService {
	return &CheckpointService{db: db}
}

// AppendProcessed records a successfully processed title.
func (s *CheckpointService) AppendProcessed(ctx context.Context, title string) error {
	return s.append(ctx, title, "processed", "")
}

// AppendFailed records a failed title with diagnostic detail.
func (s *CheckpointService) AppendFailed(ctx context.Context, title, detail string) error {
	return s.append(ctx, title, "failed", detail)
}

func (s *CheckpointService) append(ctx context.Context, title, status, detail string) error {
	if title == "" {
		return trivia.Errorf(trivia.EINVALID, "checkpoint title is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO checkpoint_meta (id, started_at) VALUES (1, ?)
	`, now); err != nil {
		return err
	}

	if status == "processed" {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO checkpoint_entries (title, status, detail, recorded_at)
			VALUES (?, 'processed', '', ?)
			ON CONFLICT (title) DO UPDATE SET status = 'processed', detail = '', recorded_at = excluded.recorded_at
				WHERE status = 'failed'
		`, title, now)
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO checkpoint_entries (title, status, detail, recorded_at)
		VALUES (?, 'failed', ?, ?)
	`, title, detail, now)
	return err
}

// Contains reports whether a title was already processed. Failed titles
// are not considered processed, so a rerun retries them.
func (s *CheckpointService) Contains(ctx context.Context, title string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM checkpoint_entries WHERE title = ? AND status = 'processed'
	`, title).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Checkpoint returns the full ledger.
func (s *CheckpointService) Checkpoint(ctx context.Context) (*trivia.Checkpoint, error) {
	cp := &trivia.Checkpoint{Failed: make(map[string]string)}

	var started string
	err := s.db.QueryRowContext(ctx, "SELECT started_at FROM checkpoint_meta WHERE id = 1").Scan(&started)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, err
	default:
		t, err := time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, err
		}
		cp.Started = t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, status, detail FROM checkpoint_entries ORDER BY recorded_at ASC, title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var title, status, detail string
		if err := rows.Scan(&title, &status, &detail); err != nil {
			return nil, err
		}
		if status == "failed" {
			cp.Failed[title] = detail
		} else {
			cp.Processed = append(cp.Processed, title)
		}
	}

	return cp, rows.Err()
}
