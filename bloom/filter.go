// Package bloom provides page title deduplication using Bloom filters.
//
// A batch run over a full wiki dump sees hundreds of thousands of
// titles; the filter answers "did this run already queue that title"
// without holding every title in memory. A positive answer is confirmed
// against the checkpoint ledger, so false positives cost one lookup,
// never a skipped page.
package bloom

import (
	"context"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Filter wraps a Bloom filter for title deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected titles
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a title to the filter.
func (f *Filter) Add(title string) {
	f.f.AddString(title)
}

// Test returns true if the title might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(title string) bool {
	return f.f.TestString(title)
}

// Seed primes the filter with every processed title in the checkpoint
// ledger and returns how many were added. Failed titles are left out so
// a rerun retries them.
func (f *Filter) Seed(ctx context.Context, svc trivia.CheckpointService) (int, error) {
	cp, err := svc.Checkpoint(ctx)
	if err != nil {
		return 0, err
	}
	for _, title := range cp.Processed {
		f.Add(title)
	}
	return len(cp.Processed), nil
}

// EstimatedCount returns the approximate number of titles in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
