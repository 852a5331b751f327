package bloom_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/bloom"
	"github.com/ViewtifulSlayer/trivia-alpha/mock"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("Benjamin Sisko"))

	f.Add("Benjamin Sisko")

	assert.True(t, f.Test("Benjamin Sisko"))
	assert.False(t, f.Test("Kira Nerys"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("Jadzia Dax")
	countAfterFirst := f.EstimatedCount()

	f.Add("Jadzia Dax")
	f.Add("Jadzia Dax")

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test("Jadzia Dax"))
}

func TestFilter_Seed(t *testing.T) {
	t.Parallel()

	svc := &mock.CheckpointService{
		CheckpointFn: func(context.Context) (*trivia.Checkpoint, error) {
			return &trivia.Checkpoint{
				Processed: []string{"Benjamin Sisko", "Jadzia Dax"},
				Failed:    map[string]string{"Borg Queen": "unterminated sidebar"},
			}, nil
		},
	}

	f := bloom.NewFilter(1000, 0.01)
	n, err := f.Seed(context.Background(), svc)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.True(t, f.Test("Benjamin Sisko"))
	assert.True(t, f.Test("Jadzia Dax"))
	assert.False(t, f.Test("Borg Queen"), "failed titles must remain retryable")
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("Character %d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("Unseen character %d", i)) {
			falsePositives++
		}
	}

	// Allow 3x headroom over the configured rate.
	assert.Less(t, falsePositives, int(3*fpRate*testProbes))
}
