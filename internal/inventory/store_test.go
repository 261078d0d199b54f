package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/piwi3910/pipecut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the shared contract tests against any Store backend.
func storeUnderTest(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("starts empty", func(t *testing.T) {
		leftovers, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("insert and sorted read", func(t *testing.T) {
		_, err := s.InsertLeftover(ctx, 500)
		require.NoError(t, err)
		_, err = s.InsertLeftover(ctx, 1300)
		require.NoError(t, err)
		_, err = s.InsertLeftover(ctx, 900)
		require.NoError(t, err)

		leftovers, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		require.Len(t, leftovers, 3)
		assert.Equal(t, 1300.0, leftovers[0].Length)
		assert.Equal(t, 900.0, leftovers[1].Length)
		assert.Equal(t, 500.0, leftovers[2].Length)
	})

	t.Run("delete single", func(t *testing.T) {
		leftovers, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		require.NoError(t, s.DeleteLeftover(ctx, leftovers[0].ID))

		remaining, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
		assert.Equal(t, 900.0, remaining[0].Length)
	})

	t.Run("batch operations", func(t *testing.T) {
		require.NoError(t, s.InsertLeftoversBatch(ctx, []float64{2400, 150}))

		leftovers, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		require.Len(t, leftovers, 4)

		ids := []string{leftovers[0].ID, leftovers[3].ID}
		require.NoError(t, s.DeleteLeftoversBatch(ctx, ids))

		remaining, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
	})

	t.Run("empty batches are no-ops", func(t *testing.T) {
		before, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)

		require.NoError(t, s.InsertLeftoversBatch(ctx, nil))
		require.NoError(t, s.DeleteLeftoversBatch(ctx, nil))

		after, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("clear all", func(t *testing.T) {
		require.NoError(t, s.ClearAllLeftovers(ctx))
		leftovers, err := s.GetLeftoversSorted(ctx)
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestJSONStore_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	storeUnderTest(t, NewJSONStore(path))
}

func TestJSONStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.json")

	first := NewJSONStore(path)
	inserted, err := first.InsertLeftover(ctx, 987)
	require.NoError(t, err)

	second := NewJSONStore(path)
	leftovers, err := second.GetLeftoversSorted(ctx)
	require.NoError(t, err)
	require.Len(t, leftovers, 1)
	assert.Equal(t, inserted.ID, leftovers[0].ID)
	assert.Equal(t, 987.0, leftovers[0].Length)
}

func TestJSONStore_MissingFileReadsEmpty(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "does", "not", "exist.json"))
	leftovers, err := s.GetLeftoversSorted(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestApplyMutations(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(
		model.Leftover{ID: "keep", Length: 800},
		model.Leftover{ID: "consumed", Length: 1300},
	)

	muts := model.InventoryMutations{
		DeleteIDs:     []string{"consumed"},
		InsertLengths: []float64{497},
	}
	require.NoError(t, ApplyMutations(ctx, s, muts))

	leftovers, err := s.GetLeftoversSorted(ctx)
	require.NoError(t, err)
	require.Len(t, leftovers, 2)
	assert.Equal(t, 800.0, leftovers[0].Length)
	assert.Equal(t, 497.0, leftovers[1].Length)
}

func TestApplyMutations_EmptyDoesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(model.Leftover{ID: "a", Length: 500})

	require.NoError(t, ApplyMutations(ctx, s, model.InventoryMutations{}))

	leftovers, err := s.GetLeftoversSorted(ctx)
	require.NoError(t, err)
	assert.Len(t, leftovers, 1)
}
