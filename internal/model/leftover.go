package model

import (
	"time"

	"github.com/google/uuid"
)

// Leftover is a remainder length persisted from a previous plan, available as
// a cutting source for later plans. The planning engines never modify a
// stored record: they consume it whole and queue a new record for whatever
// remainder they leave behind.
type Leftover struct {
	ID        string    `json:"id"`
	Length    float64   `json:"length"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLeftover creates a Leftover with a generated ID.
func NewLeftover(length float64) Leftover {
	return Leftover{
		ID:        uuid.New().String()[:8],
		Length:    Round2(length),
		CreatedAt: time.Now(),
	}
}

// CutRequirement is one row of a cutting request: how many pieces of a given
// length are needed. Transient input, never persisted.
type CutRequirement struct {
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

// InventoryMutations lists the store changes implied by a completed plan:
// consumed leftover records to delete and new qualifying remainders to
// insert. The engines compute these; the caller applies them.
type InventoryMutations struct {
	DeleteIDs     []string  `json:"delete_ids"`
	InsertLengths []float64 `json:"insert_lengths"`
}

// Empty reports whether the plan left the inventory untouched.
func (m InventoryMutations) Empty() bool {
	return len(m.DeleteIDs) == 0 && len(m.InsertLengths) == 0
}
