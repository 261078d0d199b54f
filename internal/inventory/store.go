// Package inventory persists leftover records between planning runs. The
// planning engines never touch a store directly: they read a snapshot at the
// start of a call and return the mutations to apply afterwards.
//
// Stores do not serialize concurrent planning runs. Two plans applied against
// the same inventory at once can consume the same leftover twice; callers
// that need protection must serialize externally.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/piwi3910/pipecut/internal/model"
)

// Store is the persistence contract shared by all backends. Implementations
// return leftovers sorted by length descending, the order both planning
// algorithms require. Batch operations are no-ops for empty input and apply
// atomically from the caller's perspective.
type Store interface {
	GetLeftoversSorted(ctx context.Context) ([]model.Leftover, error)
	InsertLeftover(ctx context.Context, length float64) (model.Leftover, error)
	DeleteLeftover(ctx context.Context, id string) error
	InsertLeftoversBatch(ctx context.Context, lengths []float64) error
	DeleteLeftoversBatch(ctx context.Context, ids []string) error
	ClearAllLeftovers(ctx context.Context) error
}

// ApplyMutations applies a plan's inventory changes in one pass: consumed
// leftovers are removed first, then qualifying new scrap is inserted.
func ApplyMutations(ctx context.Context, s Store, m model.InventoryMutations) error {
	if err := s.DeleteLeftoversBatch(ctx, m.DeleteIDs); err != nil {
		return fmt.Errorf("delete consumed leftovers: %w", err)
	}
	if err := s.InsertLeftoversBatch(ctx, m.InsertLengths); err != nil {
		return fmt.Errorf("insert new scrap: %w", err)
	}
	return nil
}

// sortDesc orders leftovers by length descending in place. Ties keep their
// relative order so repeated reads are stable.
func sortDesc(leftovers []model.Leftover) {
	sort.SliceStable(leftovers, func(i, j int) bool {
		return leftovers[i].Length > leftovers[j].Length
	})
}
