package batch

import (
	"context"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Cleanup sweeps the document store for minimal documents left behind
// by earlier runs: no timeline at all, or a single appearance with at
// most two events. Kept documents are never mutated.
type Cleanup struct {
	Store trivia.DocumentStore

	// DryRun reports what would be removed without deleting anything.
	DryRun bool
}

// CleanupResult holds the outcome of a sweep.
type CleanupResult struct {
	Scanned int
	Removed int
	Titles  []string
}

const cleanupBatchSize = 200

// Run scans every stored document and removes the minimal ones.
func (c *Cleanup) Run(ctx context.Context) (*CleanupResult, error) {
	result := &CleanupResult{}
	offset := 0
	for {
		docs, err := c.Store.FindDocuments(ctx, trivia.DocumentFilter{
			Offset: offset,
			Limit:  cleanupBatchSize,
		})
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return result, nil
		}
		offset += len(docs)
		result.Scanned += len(docs)

		for _, doc := range docs {
			if !trivia.IsMinimal(doc) {
				continue
			}
			result.Titles = append(result.Titles, doc.Title)
			if c.DryRun {
				result.Removed++
				continue
			}
			if err := c.Store.DeleteDocument(ctx, doc.ID); err != nil {
				return nil, err
			}
			result.Removed++
			// Deleting shifts subsequent pages back by one.
			offset--
		}
	}
}
