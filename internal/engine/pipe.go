package engine

import "github.com/piwi3910/pipecut/internal/model"

// pipe is the working unit of the multi-size packer: one physical pipe being
// filled with cuts. It exists only for the duration of a packing run.
type pipe struct {
	capacity   float64
	cuts       []float64
	remaining  float64
	isLeftover bool
	leftoverID string // Set iff isLeftover
}

func newRawPipe(capacity float64) *pipe {
	return &pipe{capacity: capacity, remaining: capacity}
}

func newLeftoverPipe(lo model.Leftover) *pipe {
	length := model.Round2(lo.Length)
	return &pipe{
		capacity:   length,
		remaining:  length,
		isLeftover: true,
		leftoverID: lo.ID,
	}
}

// recompute re-derives remaining from capacity and the assigned cuts. Every
// mutation goes through this instead of incremental subtraction, so the
// invariant remaining = capacity - (sum(cuts) + kerf*count) cannot drift.
func (p *pipe) recompute(kerf float64) {
	used := 0.0
	for _, c := range p.cuts {
		used += c + kerf
	}
	p.remaining = model.Round2(p.capacity - used)
}

// place assigns a cut to this pipe. The caller must have verified fit.
func (p *pipe) place(cut, kerf float64) {
	p.cuts = append(p.cuts, cut)
	p.recompute(kerf)
}

// setCuts replaces the pipe's cut list wholesale (used by the last-pipe
// fixup) and re-derives the remainder.
func (p *pipe) setCuts(cuts []float64, kerf float64) {
	p.cuts = cuts
	p.recompute(kerf)
}
