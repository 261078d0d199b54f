package model

import "math"

// RawPipeEstimate holds the results of a raw stock purchasing calculation.
type RawPipeEstimate struct {
	TotalCutLength   float64 `json:"total_cut_length"`   // Sum of all requested piece lengths (mm)
	TotalWithKerf    float64 `json:"total_with_kerf"`    // Including kerf loss per cut (mm)
	RawLength        float64 `json:"raw_length"`         // Length of one raw pipe (mm)
	PipesNeededExact float64 `json:"pipes_needed_exact"` // Exact fractional number of raw pipes
	PipesNeededMin   int     `json:"pipes_needed_min"`   // Minimum pipes (ceiling of exact)
	EstimatedCost    float64 `json:"estimated_cost"`     // Total cost if pricing available
	PricePerPipe     float64 `json:"price_per_pipe"`     // Price used for estimation
}

// EstimateRawPipes computes a lower bound on the raw pipes needed for a cut
// list, ignoring packing constraints. The actual plan can use more pipes than
// this (fragmentation) but never fewer.
func EstimateRawPipes(reqs []CutRequirement, settings PlanSettings, pricePerPipe float64) RawPipeEstimate {
	var totalCut, totalWithKerf float64
	for _, r := range reqs {
		if r.Length <= 0 || r.Quantity <= 0 {
			continue
		}
		length := Round2(r.Length)
		totalCut += length * float64(r.Quantity)
		totalWithKerf += (length + settings.Kerf) * float64(r.Quantity)
	}

	est := RawPipeEstimate{
		TotalCutLength: Round2(totalCut),
		TotalWithKerf:  Round2(totalWithKerf),
		RawLength:      settings.RawLength,
		PricePerPipe:   pricePerPipe,
	}
	if settings.RawLength <= 0 {
		return est
	}

	est.PipesNeededExact = est.TotalWithKerf / settings.RawLength
	est.PipesNeededMin = int(math.Ceil(est.PipesNeededExact))
	est.EstimatedCost = float64(est.PipesNeededMin) * pricePerPipe
	return est
}
