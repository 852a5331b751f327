package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/sqlite"
)

func TestCheckpointService_Append(t *testing.T) {
	t.Parallel()

	t.Run("append is idempotent", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCheckpointService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.AppendProcessed(ctx, "Benjamin Sisko"))
		require.NoError(t, svc.AppendProcessed(ctx, "Benjamin Sisko"))

		cp, err := svc.Checkpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Benjamin Sisko"}, cp.Processed)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCheckpointService(setupTestDB(t))

		err := svc.AppendProcessed(context.Background(), "")
		assert.Equal(t, trivia.EINVALID, trivia.ErrorCode(err))
	})

	t.Run("successful retry upgrades a failed entry", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCheckpointService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.AppendFailed(ctx, "Borg Queen", "unterminated sidebar"))
		require.NoError(t, svc.AppendProcessed(ctx, "Borg Queen"))

		ok, err := svc.Contains(ctx, "Borg Queen")
		require.NoError(t, err)
		assert.True(t, ok)

		cp, err := svc.Checkpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Borg Queen"}, cp.Processed)
		assert.Empty(t, cp.Failed)
	})

	t.Run("failed append never downgrades a processed entry", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCheckpointService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.AppendProcessed(ctx, "Jadzia Dax"))
		require.NoError(t, svc.AppendFailed(ctx, "Jadzia Dax", "late failure"))

		ok, err := svc.Contains(ctx, "Jadzia Dax")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("failed entries carry detail", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCheckpointService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.AppendFailed(ctx, "Borg Queen", "unterminated sidebar"))

		cp, err := svc.Checkpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, "unterminated sidebar", cp.Failed["Borg Queen"])
		assert.Empty(t, cp.Processed)
	})
}

func TestCheckpointService_Contains(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewCheckpointService(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.AppendProcessed(ctx, "Jadzia Dax"))
	require.NoError(t, svc.AppendFailed(ctx, "Borg Queen", "boom"))

	ok, err := svc.Contains(ctx, "Jadzia Dax")
	require.NoError(t, err)
	assert.True(t, ok)

	// Failed titles are retried on the next run.
	ok, err = svc.Contains(ctx, "Borg Queen")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Contains(ctx, "Nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckpointService_Checkpoint_SetsStarted(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewCheckpointService(setupTestDB(t))
	ctx := context.Background()

	cp, err := svc.Checkpoint(ctx)
	require.NoError(t, err)
	assert.True(t, cp.Started.IsZero())

	require.NoError(t, svc.AppendProcessed(ctx, "Jadzia Dax"))

	cp, err = svc.Checkpoint(ctx)
	require.NoError(t, err)
	assert.False(t, cp.Started.IsZero())
}
