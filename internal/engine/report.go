package engine

import (
	"fmt"

	"github.com/piwi3910/pipecut/internal/model"
)

// buildResult aggregates the packer's working pipes into the reporting
// structure and derives the inventory mutations: consumed leftovers are
// deleted and any remainder at or above the save threshold is inserted as a
// new record.
func (pk *Packer) buildResult(pipes []*pipe) (model.MultiPlanResult, model.InventoryMutations) {
	result := model.MultiPlanResult{
		Pipes:     make([]model.PipeResult, 0, len(pipes)),
		RawLength: pk.Settings.RawLength,
	}
	var muts model.InventoryMutations

	var totalUsed, totalScrap, totalKerf float64
	for i, p := range pipes {
		numCuts := len(p.cuts)
		piecesOnly := 0.0
		for _, c := range p.cuts {
			piecesOnly += c
		}
		kerf := model.Round2(float64(numCuts) * pk.Settings.Kerf)
		used := model.Round2(model.Round2(piecesOnly) + kerf)
		scrap := model.Round2(p.remaining)

		totalUsed += used
		totalScrap += scrap
		totalKerf += kerf

		label := fmt.Sprintf("Raw pipe (%.0f mm)", pk.Settings.RawLength)
		if p.isLeftover {
			label = fmt.Sprintf("Leftover %.0f mm", p.capacity)
		}

		if i == len(pipes)-1 && scrap > pk.Settings.LastPipeScrapMax {
			result.LastPipeOverLimit = true
		}

		result.Pipes = append(result.Pipes, model.PipeResult{
			PipeNumber: i + 1,
			PipeLabel:  label,
			Cuts:       p.cuts,
			NumCuts:    numCuts,
			Kerf:       kerf,
			Used:       used,
			Scrap:      scrap,
			ScrapClass: model.ClassifyScrap(scrap, pk.Settings.UsableThreshold),
			IsLeftover: p.isLeftover,
			LeftoverID: p.leftoverID,
		})

		// A leftover that received cuts is consumed: its record goes away,
		// replaced by its own remainder when that still qualifies. Raw-pipe
		// remainders qualify on their own. Untouched leftovers keep their
		// original record.
		switch {
		case p.isLeftover && numCuts > 0:
			muts.DeleteIDs = append(muts.DeleteIDs, p.leftoverID)
			if scrap >= pk.Settings.SaveThreshold {
				muts.InsertLengths = append(muts.InsertLengths, scrap)
			}
		case !p.isLeftover && scrap >= pk.Settings.SaveThreshold:
			muts.InsertLengths = append(muts.InsertLengths, scrap)
		}
	}

	result.TotalPipes = len(result.Pipes)
	result.TotalUsed = model.Round2(totalUsed)
	result.TotalScrap = model.Round2(totalScrap)
	result.TotalKerf = model.Round2(totalKerf)
	return result, muts
}
