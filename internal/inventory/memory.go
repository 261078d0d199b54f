package inventory

import (
	"context"

	"github.com/piwi3910/pipecut/internal/model"
)

// MemoryStore keeps leftovers in memory. Used in tests and for dry runs.
type MemoryStore struct {
	leftovers []model.Leftover
}

// NewMemoryStore creates a MemoryStore seeded with the given records.
func NewMemoryStore(leftovers ...model.Leftover) *MemoryStore {
	return &MemoryStore{leftovers: append([]model.Leftover(nil), leftovers...)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) GetLeftoversSorted(_ context.Context) ([]model.Leftover, error) {
	out := append([]model.Leftover(nil), s.leftovers...)
	sortDesc(out)
	return out, nil
}

func (s *MemoryStore) InsertLeftover(_ context.Context, length float64) (model.Leftover, error) {
	lo := model.NewLeftover(length)
	s.leftovers = append(s.leftovers, lo)
	return lo, nil
}

func (s *MemoryStore) DeleteLeftover(_ context.Context, id string) error {
	kept := s.leftovers[:0]
	for _, lo := range s.leftovers {
		if lo.ID != id {
			kept = append(kept, lo)
		}
	}
	s.leftovers = kept
	return nil
}

func (s *MemoryStore) InsertLeftoversBatch(ctx context.Context, lengths []float64) error {
	for _, length := range lengths {
		if _, err := s.InsertLeftover(ctx, length); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) DeleteLeftoversBatch(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.DeleteLeftover(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) ClearAllLeftovers(_ context.Context) error {
	s.leftovers = nil
	return nil
}
