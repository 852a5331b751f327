package trivia

import (
	"context"
	"time"
)

// Checkpoint is the progress ledger of a batch run: the titles processed so
// far, the titles that failed with their error detail, and the batch start
// time. It is consumed by the batch-resume collaborator, never by the
// parser.
type Checkpoint struct {
	Processed []string          `json:"processed"`
	Failed    map[string]string `json:"failed"`
	Started   time.Time         `json:"started"`
}

// CheckpointService persists the progress ledger. Appends are serialized by
// the implementation and idempotent: re-recording an already-processed title
// is a no-op.
type CheckpointService interface {
	// AppendProcessed records a successfully processed title.
	AppendProcessed(ctx context.Context, title string) error

	// AppendFailed records a failed title with diagnostic detail.
	AppendFailed(ctx context.Context, title, detail string) error

	// Contains reports whether a title was already processed.
	Contains(ctx context.Context, title string) (bool, error)

	// Checkpoint returns the full ledger.
	Checkpoint(ctx context.Context) (*Checkpoint, error)
}
