package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/pipecut/internal/model"
)

// JSONStore persists leftovers to a single JSON file. This is the default
// local backend: one file under the user's config directory, rewritten whole
// on every mutation. A missing file reads as an empty inventory.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSONStore backed by the given file path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

var _ Store = (*JSONStore)(nil)

// DefaultInventoryPath returns the default file path for the inventory file,
// ~/.pipecut/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pipecut", "inventory.json"), nil
}

// inventoryFile is the on-disk representation.
type inventoryFile struct {
	Leftovers []model.Leftover `json:"leftovers"`
}

func (s *JSONStore) load() ([]model.Leftover, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	var file inventoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse inventory file: %w", err)
	}
	return file.Leftovers, nil
}

func (s *JSONStore) save(leftovers []model.Leftover) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create inventory directory: %w", err)
	}
	data, err := json.MarshalIndent(inventoryFile{Leftovers: leftovers}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *JSONStore) GetLeftoversSorted(_ context.Context) ([]model.Leftover, error) {
	leftovers, err := s.load()
	if err != nil {
		return nil, err
	}
	sortDesc(leftovers)
	return leftovers, nil
}

func (s *JSONStore) InsertLeftover(_ context.Context, length float64) (model.Leftover, error) {
	leftovers, err := s.load()
	if err != nil {
		return model.Leftover{}, err
	}
	lo := model.NewLeftover(length)
	if err := s.save(append(leftovers, lo)); err != nil {
		return model.Leftover{}, err
	}
	return lo, nil
}

func (s *JSONStore) DeleteLeftover(_ context.Context, id string) error {
	leftovers, err := s.load()
	if err != nil {
		return err
	}
	kept := leftovers[:0]
	for _, lo := range leftovers {
		if lo.ID != id {
			kept = append(kept, lo)
		}
	}
	return s.save(kept)
}

func (s *JSONStore) InsertLeftoversBatch(_ context.Context, lengths []float64) error {
	if len(lengths) == 0 {
		return nil
	}
	leftovers, err := s.load()
	if err != nil {
		return err
	}
	for _, length := range lengths {
		leftovers = append(leftovers, model.NewLeftover(length))
	}
	return s.save(leftovers)
}

func (s *JSONStore) DeleteLeftoversBatch(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	leftovers, err := s.load()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := leftovers[:0]
	for _, lo := range leftovers {
		if !drop[lo.ID] {
			kept = append(kept, lo)
		}
	}
	return s.save(kept)
}

func (s *JSONStore) ClearAllLeftovers(_ context.Context) error {
	return s.save(nil)
}
