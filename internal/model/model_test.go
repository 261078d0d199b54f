package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -1.23, Round2(-1.226))
	assert.Equal(t, 3597.0, Round2(3600-3.0))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 3600.0, s.RawLength)
	assert.Equal(t, 3.0, s.Kerf)
	assert.Equal(t, 100.0, s.SaveThreshold)
	assert.Equal(t, 350.0, s.UsableThreshold)
	assert.Equal(t, 75.0, s.LastPipeScrapMax)
}

func TestClassifyScrap(t *testing.T) {
	cases := []struct {
		scrap float64
		want  ScrapClass
	}{
		{0, ScrapNotUsable},
		{349.99, ScrapNotUsable},
		{350, ScrapUsable},
		{350.01, ScrapUsable},
		{3600, ScrapUsable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyScrap(tc.scrap, 350), "scrap %.2f", tc.scrap)
	}
}

func TestNewLeftover(t *testing.T) {
	lo := NewLeftover(497.126)
	assert.Len(t, lo.ID, 8)
	assert.Equal(t, 497.13, lo.Length)
	assert.False(t, lo.CreatedAt.IsZero())

	// IDs must be unique across records.
	other := NewLeftover(497.126)
	assert.NotEqual(t, lo.ID, other.ID)
}

func TestInventoryMutations_Empty(t *testing.T) {
	assert.True(t, InventoryMutations{}.Empty())
	assert.False(t, InventoryMutations{DeleteIDs: []string{"a"}}.Empty())
	assert.False(t, InventoryMutations{InsertLengths: []float64{100}}.Empty())
}

func TestEstimateRawPipes(t *testing.T) {
	settings := DefaultSettings()
	reqs := []CutRequirement{
		{Length: 2000, Quantity: 1},
		{Length: 1000, Quantity: 2},
		{Length: 500, Quantity: 1},
		{Length: -10, Quantity: 5}, // dropped
		{Length: 100, Quantity: 0}, // dropped
	}

	est := EstimateRawPipes(reqs, settings, 120)

	assert.Equal(t, 4500.0, est.TotalCutLength)
	assert.Equal(t, 4512.0, est.TotalWithKerf)
	assert.Equal(t, 2, est.PipesNeededMin)
	assert.InDelta(t, 4512.0/3600.0, est.PipesNeededExact, 1e-9)
	assert.Equal(t, 240.0, est.EstimatedCost)
}

func TestEstimateRawPipes_ZeroRawLength(t *testing.T) {
	est := EstimateRawPipes([]CutRequirement{{Length: 100, Quantity: 1}}, PlanSettings{Kerf: 3}, 0)
	assert.Equal(t, 0, est.PipesNeededMin)
	assert.Equal(t, 103.0, est.TotalWithKerf)
}
