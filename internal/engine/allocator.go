package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/pipecut/internal/model"
)

// Allocator runs the single-size allocation algorithm: one cut length, a
// required quantity, sources consumed strictly in order (largest leftover
// first, then fresh raw pipe after raw pipe).
type Allocator struct {
	Settings model.PlanSettings
}

func NewAllocator(settings model.PlanSettings) *Allocator {
	return &Allocator{Settings: settings}
}

// source is one cutting source handed out by the cursor.
type source struct {
	length     float64
	label      string
	leftoverID string // Empty for raw pipes
}

func (s source) isRaw() bool { return s.leftoverID == "" }

// sourceCursor yields cutting sources in consumption order: leftovers large
// enough for at least one cut (largest first, smaller ones skipped and left
// in inventory), then an unlimited supply of raw pipes. Position is explicit
// state so the allocator loop stays free of hidden side effects.
type sourceCursor struct {
	leftovers []model.Leftover
	pos       int
	rawLength float64
	minLength float64 // Cut length plus kerf; a source below this is useless
}

func (c *sourceCursor) next() source {
	for c.pos < len(c.leftovers) {
		lo := c.leftovers[c.pos]
		c.pos++
		if lo.Length >= c.minLength {
			return source{
				length:     lo.Length,
				label:      fmt.Sprintf("Leftover (%.2f mm)", lo.Length),
				leftoverID: lo.ID,
			}
		}
	}
	return source{
		length: c.rawLength,
		label:  fmt.Sprintf("Raw pipe (%.2f mm)", c.rawLength),
	}
}

// Allocate produces a single-size cutting plan and the inventory changes it
// implies. A non-positive cut length or quantity yields the empty plan with
// no mutation; this is defined behavior, not an error.
func (a *Allocator) Allocate(rawLength, cutLength float64, quantity int, leftovers []model.Leftover) (model.SinglePlanResult, model.InventoryMutations) {
	cutLength = model.Round2(cutLength)
	rawLength = model.Round2(rawLength)

	if cutLength <= 0 || quantity <= 0 {
		return model.SinglePlanResult{}, model.InventoryMutations{}
	}

	// Each cut consumes the piece length plus kerf; a source must hold at
	// least that much to yield one piece.
	neededPerCut := cutLength + a.Settings.Kerf

	cursor := &sourceCursor{
		leftovers: leftovers,
		rawLength: rawLength,
		minLength: neededPerCut,
	}

	var (
		segments     []model.Segment
		scrapToSave  []float64
		muts         model.InventoryMutations
		usedLeftover bool
	)

	closeSegment := func(src source, initial, available float64, pieces int) {
		remaining := model.Round2(available)
		if pieces > 0 || remaining > 0 {
			segments = append(segments, model.Segment{
				Source:       src.label,
				SourceLength: initial,
				Pieces:       pieces,
				CutLength:    cutLength,
				Remaining:    remaining,
			})
		}
		if remaining >= a.Settings.SaveThreshold {
			scrapToSave = append(scrapToSave, remaining)
			muts.InsertLengths = append(muts.InsertLengths, remaining)
		}
		if !src.isRaw() {
			muts.DeleteIDs = append(muts.DeleteIDs, src.leftoverID)
			usedLeftover = true
		}
	}

	src := cursor.next()
	available := src.length
	initial := available
	pieces := 0

	for quantity > 0 {
		if available >= neededPerCut {
			pieces++
			quantity--
			available = model.Round2(available - neededPerCut)
			continue
		}
		// Source exhausted for this cut length: close the segment and move
		// to the next source.
		closeSegment(src, initial, available, pieces)
		pieces = 0
		src = cursor.next()
		available = src.length
		initial = available
		if quantity > 0 && available < neededPerCut {
			// Even a fresh raw pipe cannot hold one cut.
			break
		}
	}

	// Close the final segment when the quantity was fulfilled (the loop
	// exited by cutting, not by running out of source).
	if quantity == 0 {
		closeSegment(src, initial, available, pieces)
	}

	totalPieces := 0
	for _, s := range segments {
		totalPieces += s.Pieces
	}

	result := model.SinglePlanResult{
		PiecesProduced:       totalPieces,
		MaterialUsed:         model.Round2(float64(totalPieces) * cutLength),
		MaterialUsedInclKerf: model.Round2(float64(totalPieces) * neededPerCut),
		TotalKerf:            model.Round2(float64(totalPieces) * a.Settings.Kerf),
		ScrapSaved:           scrapToSave,
		UsedLeftover:         usedLeftover,
		Segments:             segments,
	}

	// Suggest reusing the remainder as the raw length of a follow-up plan
	// when the last segment came from raw stock and left something over.
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if strings.HasPrefix(last.Source, "Raw pipe") && last.Remaining > 0 {
			result.SuggestedRaw = last.Remaining
		}
	}

	return result, muts
}
