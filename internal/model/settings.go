package model

import "math"

// PlanSettings holds the shop configuration consumed by both planning
// algorithms. Values are injected from configuration rather than hardcoded so
// the same engine serves shops with different raw stock and saw blades.
type PlanSettings struct {
	RawLength        float64 `json:"raw_length"`          // Standard raw pipe length (mm)
	Kerf             float64 `json:"kerf"`                // Material lost per physical cut (mm)
	SaveThreshold    float64 `json:"save_threshold"`      // Minimum remainder worth persisting to inventory (mm)
	UsableThreshold  float64 `json:"usable_threshold"`    // Minimum remainder classified as future-usable (mm)
	LastPipeScrapMax float64 `json:"last_pipe_scrap_max"` // Maximum allowed scrap on the final pipe of a plan (mm)
}

// DefaultSettings returns the standard shop configuration: 3600 mm raw pipes
// cut with a 3 mm blade, remainders of 100 mm or more kept in inventory, and
// 350 mm as the threshold for a remainder to still be worth combining into a
// 700-800 mm piece later.
func DefaultSettings() PlanSettings {
	return PlanSettings{
		RawLength:        3600,
		Kerf:             3,
		SaveThreshold:    100,
		UsableThreshold:  350,
		LastPipeScrapMax: 75,
	}
}

// Round2 rounds a length to two decimal places. All derived lengths pass
// through this after each arithmetic step, so repeated plans produce identical
// values regardless of accumulation order.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
