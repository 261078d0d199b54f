package engine

import (
	"sort"

	"github.com/piwi3910/pipecut/internal/model"
)

// Packer runs the multi-size packing algorithm: First-Fit-Decreasing with
// best-fit placement, leftover-first sourcing, a future-usability guard on
// raw pipes, and a last-pipe scrap-limit fixup pass.
type Packer struct {
	Settings model.PlanSettings
}

func NewPacker(settings model.PlanSettings) *Packer {
	return &Packer{Settings: settings}
}

// Pack places every requested cut onto a pipe and returns the resulting plan
// together with the inventory changes it implies. Leftovers must be supplied
// largest first; each becomes a candidate pipe and is preferred over raw
// stock whenever it can take a cut. Non-positive lengths and quantities are
// silently dropped; an effectively empty request yields an empty plan and no
// inventory mutation.
func (pk *Packer) Pack(reqs []model.CutRequirement, leftovers []model.Leftover) (model.MultiPlanResult, model.InventoryMutations) {
	flat := expandRequirements(reqs)
	if len(flat) == 0 {
		return model.MultiPlanResult{RawLength: pk.Settings.RawLength}, model.InventoryMutations{}
	}

	// Seed pipes from leftovers in the supplied order (largest first). They
	// stay in the plan even if nothing lands on them, so the output shows
	// each one was offered for reuse.
	pipes := make([]*pipe, 0, len(leftovers))
	for _, lo := range leftovers {
		if model.Round2(lo.Length) <= 0 {
			continue
		}
		pipes = append(pipes, newLeftoverPipe(lo))
	}

	for _, cut := range flat {
		if best := pk.findBestPipe(pipes, cut); best != nil {
			best.place(cut, pk.Settings.Kerf)
		} else {
			np := newRawPipe(pk.Settings.RawLength)
			np.place(cut, pk.Settings.Kerf)
			pipes = append(pipes, np)
		}
	}

	pipes = pk.fixupLastPipe(pipes)

	// Drop raw pipes that never received a cut; untouched leftovers stay.
	kept := pipes[:0]
	for _, p := range pipes {
		if len(p.cuts) > 0 || p.isLeftover {
			kept = append(kept, p)
		}
	}

	return pk.buildResult(kept)
}

// findBestPipe returns the candidate pipe with the tightest fit for the cut,
// or nil when a fresh raw pipe must be opened. Leftover pipes take priority:
// raw pipes are only considered when no leftover can fit the cut. A raw pipe
// that already has cuts is skipped when placing this cut would turn its
// still-usable remainder into an unusable one.
func (pk *Packer) findBestPipe(pipes []*pipe, cut float64) *pipe {
	needed := cut + pk.Settings.Kerf

	var candidates []*pipe
	for _, p := range pipes {
		if p.remaining >= needed {
			candidates = append(candidates, p)
		}
	}
	var leftoverCandidates []*pipe
	for _, p := range candidates {
		if p.isLeftover {
			leftoverCandidates = append(leftoverCandidates, p)
		}
	}
	search := candidates
	if len(leftoverCandidates) > 0 {
		search = leftoverCandidates
	}

	var best *pipe
	bestAfter := 0.0
	for _, p := range search {
		after := p.remaining - needed

		// Future-usability guard, raw pipes only. Leftovers pack as tight
		// as possible.
		if !p.isLeftover && len(p.cuts) > 0 {
			if p.remaining >= pk.Settings.UsableThreshold && after < pk.Settings.UsableThreshold {
				continue
			}
		}

		if best == nil || after < bestAfter {
			best = p
			bestAfter = after
		}
	}
	return best
}

// fixupLastPipe enforces the client rule that the final pipe of a plan leaves
// at most LastPipeScrapMax of scrap. It removes the smallest cuts from the
// last pipe until the recomputed remainder is within the limit, then repacks
// the removed cuts into fresh raw pipes first-fit in descending order. The
// pass runs once; if no prefix of removals satisfies the limit the pipe is
// left untouched and the violation is reported via LastPipeOverLimit.
func (pk *Packer) fixupLastPipe(pipes []*pipe) []*pipe {
	if len(pipes) == 0 {
		return pipes
	}
	last := pipes[len(pipes)-1]
	if last.remaining <= pk.Settings.LastPipeScrapMax || len(last.cuts) == 0 {
		return pipes
	}

	cutsAsc := append([]float64(nil), last.cuts...)
	sort.Float64s(cutsAsc)

	moveCount := 0
	for i := 1; i <= len(cutsAsc); i++ {
		kept := cutsAsc[i:]
		remaining := last.capacity
		if len(kept) > 0 {
			used := 0.0
			for _, c := range kept {
				used += c + pk.Settings.Kerf
			}
			remaining = last.capacity - used
		}
		if remaining <= pk.Settings.LastPipeScrapMax {
			moveCount = i
			break
		}
	}
	if moveCount == 0 {
		return pipes
	}

	moved := cutsAsc[:moveCount]
	last.setCuts(cutsAsc[moveCount:], pk.Settings.Kerf)

	newPipes := repackCuts(moved, pk.Settings)

	out := append([]*pipe(nil), pipes[:len(pipes)-1]...)
	if len(last.cuts) > 0 || last.isLeftover {
		out = append(out, last)
	}
	return append(out, newPipes...)
}

// repackCuts packs the given cuts into fresh raw pipes using plain first-fit
// in descending cut order. This residual set is small, so the simpler pass is
// preferred over best-fit here.
func repackCuts(cutsAsc []float64, settings model.PlanSettings) []*pipe {
	var newPipes []*pipe
	for i := len(cutsAsc) - 1; i >= 0; i-- {
		cut := cutsAsc[i]
		needed := cut + settings.Kerf
		placed := false
		for _, np := range newPipes {
			if np.remaining >= needed {
				np.place(cut, settings.Kerf)
				placed = true
				break
			}
		}
		if !placed {
			np := newRawPipe(settings.RawLength)
			np.place(cut, settings.Kerf)
			newPipes = append(newPipes, np)
		}
	}
	return newPipes
}

// expandRequirements flattens requirements into individual cut lengths sorted
// descending, the order First-Fit-Decreasing needs. Non-positive lengths and
// quantities are dropped.
func expandRequirements(reqs []model.CutRequirement) []float64 {
	var flat []float64
	for _, r := range reqs {
		length := model.Round2(r.Length)
		if length <= 0 || r.Quantity <= 0 {
			continue
		}
		for i := 0; i < r.Quantity; i++ {
			flat = append(flat, length)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(flat)))
	return flat
}
