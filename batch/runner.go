// Package batch orchestrates extraction runs over a page source: the
// character-page gate, checkpoint resume, bounded-concurrency
// extraction, and delivery to the document stores.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/bloom"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/extract"
)

// Runner drives one extraction run. Writer and Store are both optional;
// a document is delivered to whichever are set.
type Runner struct {
	Source     trivia.PageSource
	Extractor  trivia.CharacterExtractor
	Writer     trivia.DocumentWriter
	Store      trivia.DocumentStore
	Checkpoint trivia.CheckpointService
	Rules      *config.Rules

	// Concurrency bounds the number of pages extracted in parallel.
	// Zero means 4.
	Concurrency int

	// Limit stops the run after this many extracted documents. Zero
	// means no limit.
	Limit int
}

// Result holds the outcome of a run.
type Result struct {
	Extracted int
	Skipped   int
	Stubs     int
	Failed    int
}

type pageResult struct {
	title   string
	stub    bool
	skipped bool
	err     error
}

// Run extracts every character page the source yields that the
// checkpoint has not already recorded. Stub pages are counted but never
// written and never enter the processed ledger, so a later richer
// revision of the page is extracted fresh.
func (r *Runner) Run(ctx context.Context, progress trivia.ExtractProgressFunc) (*Result, error) {
	pages, err := r.Source.Pages(ctx)
	if err != nil {
		return nil, err
	}

	candidates, skippedUpFront, err := r.selectCandidates(ctx, pages)
	if err != nil {
		return nil, err
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(candidates)
	resultCh := make(chan pageResult, total)
	var completed atomic.Int64
	var extracted atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, page := range candidates {
			if r.Limit > 0 && int(extracted.Load()) >= r.Limit {
				break
			}
			g.Go(func() error {
				// Workers reserve a limit slot before extracting and
				// release it when no document comes out, so a run never
				// exceeds Limit regardless of how many are in flight.
				if r.Limit > 0 && !reserveSlot(&extracted, int64(r.Limit)) {
					resultCh <- pageResult{title: page.Title, skipped: true}
					return nil
				}
				res := r.processPage(gctx, page)
				if r.Limit > 0 && (res.err != nil || res.stub || res.skipped) {
					extracted.Add(-1)
				}
				resultCh <- res
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{Skipped: skippedUpFront}
	for res := range resultCh {
		completed.Add(1)
		switch {
		case res.err != nil:
			result.Failed++
		case res.stub:
			result.Stubs++
		case res.skipped:
			result.Skipped++
		default:
			result.Extracted++
		}
		if progress != nil {
			progress(trivia.ExtractProgress{
				Title:     res.title,
				Completed: int(completed.Load()),
				Total:     total,
				Skipped:   res.stub || res.skipped,
				Err:       res.err,
			})
		}
	}

	return result, nil
}

func reserveSlot(n *atomic.Int64, limit int64) bool {
	for {
		v := n.Load()
		if v >= limit {
			return false
		}
		if n.CompareAndSwap(v, v+1) {
			return true
		}
	}
}

// selectCandidates applies the character-page gate and checkpoint
// resume before any extraction work starts. A bloom filter screens the
// ledger lookups; only probable hits pay for a checkpoint query.
func (r *Runner) selectCandidates(ctx context.Context, pages []*trivia.Page) ([]*trivia.Page, int, error) {
	seen := bloom.NewFilter(uint(max(len(pages), 1)), 0.01)
	if r.Checkpoint != nil {
		if _, err := seen.Seed(ctx, r.Checkpoint); err != nil {
			return nil, 0, err
		}
	}

	var candidates []*trivia.Page
	skipped := 0
	for _, page := range pages {
		if !extract.IsCharacterPage(page, r.Rules) {
			skipped++
			continue
		}
		if seen.Test(page.Title) && r.Checkpoint != nil {
			done, err := r.Checkpoint.Contains(ctx, page.Title)
			if err != nil {
				return nil, 0, err
			}
			if done {
				skipped++
				continue
			}
		}
		seen.Add(page.Title)
		candidates = append(candidates, page)
	}
	return candidates, skipped, nil
}

func (r *Runner) processPage(ctx context.Context, page *trivia.Page) (res pageResult) {
	res.title = page.Title

	// A malformed page must fail its own slot, not the run.
	defer func() {
		if p := recover(); p != nil {
			res.err = fmt.Errorf("panic extracting %q: %v", page.Title, p)
			r.recordFailure(ctx, page.Title, res.err)
		}
	}()

	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	doc, err := r.Extractor.Extract(page)
	if err != nil {
		if trivia.ErrorCode(err) == trivia.EUNPROCESSABLE {
			res.stub = true
			return res
		}
		res.err = err
		r.recordFailure(ctx, page.Title, err)
		return res
	}

	if r.Writer != nil {
		if err := r.Writer.WriteDocument(ctx, doc); err != nil {
			res.err = err
			r.recordFailure(ctx, page.Title, err)
			return res
		}
	}
	if r.Store != nil {
		if err := r.Store.CreateDocument(ctx, doc); err != nil {
			res.err = err
			r.recordFailure(ctx, page.Title, err)
			return res
		}
	}

	if r.Checkpoint != nil {
		if err := r.Checkpoint.AppendProcessed(ctx, page.Title); err != nil {
			res.err = err
			return res
		}
	}
	return res
}

func (r *Runner) recordFailure(ctx context.Context, title string, err error) {
	if r.Checkpoint == nil {
		return
	}
	_ = r.Checkpoint.AppendFailed(ctx, title, err.Error())
}
