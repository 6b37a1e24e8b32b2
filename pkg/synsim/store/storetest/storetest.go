// Package storetest holds behaviour checks shared by every store.Store backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/store"
)

// Sample returns a run with two question sets.
func Sample(id string, created time.Time) store.Run {
	return store.Run{
		ID:        id,
		CreatedAt: created,
		Window:    4,
		Documents: 2,
		Tokens:    12,
		VocabSize: 7,
		Files:     []string{"/corpus/a.txt", "/corpus/b.txt"},
		Sets: []store.Set{
			{
				Name: "toefl", Total: 2, Correct: 1, NoAnswer: 1,
				MeanSimilarity: 0.75, StdSimilarity: 0,
				Predictions: []store.Prediction{
					{Position: 0, Target: "cat", Choice: "dog", Expected: "dog", Similarity: 0.75, Answered: true, Correct: true},
					{Position: 1, Target: "zebra", Expected: "horse"},
				},
			},
			{Name: "esl", Total: 0},
		},
	}
}

// Run exercises a store backend. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("SaveAndGet", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, st.SaveRun(ctx, Sample("run-1", created)))

		got, err := st.GetRun(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", got.ID)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.Equal(t, 4, got.Window)
		assert.Equal(t, int64(2), got.Documents)
		assert.Equal(t, int64(12), got.Tokens)
		assert.Equal(t, 7, got.VocabSize)
		assert.Equal(t, []string{"/corpus/a.txt", "/corpus/b.txt"}, got.Files)
		require.Len(t, got.Sets, 2)
		assert.Equal(t, "toefl", got.Sets[0].Name)
		assert.Equal(t, 1, got.Sets[0].Correct)
		assert.InDelta(t, 0.5, got.Sets[0].Accuracy(), 1e-12)
		assert.Empty(t, got.Sets[0].Predictions)

		preds, err := st.Predictions(ctx, "run-1", "toefl")
		require.NoError(t, err)
		require.Len(t, preds, 2)
		assert.Equal(t, "dog", preds[0].Choice)
		assert.True(t, preds[0].Correct)
		assert.False(t, preds[1].Answered)
		assert.Equal(t, "horse", preds[1].Expected)
	})

	t.Run("NotFound", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		_, err := st.GetRun(context.Background(), "missing")
		assert.ErrorIs(t, err, internalerr.ErrNotFound)
	})

	t.Run("EmptyID", func(t *testing.T) {
		st := open(t)
		defer st.Close()
		err := st.SaveRun(context.Background(), store.Run{})
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
	})

	t.Run("ReplaceRun", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		run := Sample("run-1", time.Now().UTC())
		require.NoError(t, st.SaveRun(ctx, run))
		run.Sets = run.Sets[1:]
		require.NoError(t, st.SaveRun(ctx, run))

		got, err := st.GetRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, got.Sets, 1)
		assert.Equal(t, "esl", got.Sets[0].Name)

		preds, err := st.Predictions(ctx, "run-1", "toefl")
		require.NoError(t, err)
		assert.Empty(t, preds)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, id := range []string{"a", "b", "c"} {
			require.NoError(t, st.SaveRun(ctx, Sample(id, base.Add(time.Duration(i)*time.Hour))))
		}

		runs, err := st.ListRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "c", runs[0].ID)
		assert.Equal(t, "b", runs[1].ID)
		assert.Len(t, runs[0].Sets, 2)

		all, err := st.ListRuns(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
