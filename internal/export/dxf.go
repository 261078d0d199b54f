package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/pipecut/internal/model"
)

// Vertical spacing between pipe rows and tick height in the DXF drawing
// (drawing units are mm, 1:1 with pipe lengths).
const (
	dxfRowSpacing = 100.0
	dxfTickHeight = 40.0
)

// ExportDXF writes a cut-mark drawing for a multi-size plan: one horizontal
// line per pipe at true length, with a perpendicular tick at every saw
// position. The file can be fed to marking or sawing equipment.
func ExportDXF(path string, result model.MultiPlanResult, settings model.PlanSettings) error {
	if len(result.Pipes) == 0 {
		return fmt.Errorf("no pipes to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("CUTS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	for i, p := range result.Pipes {
		y := -float64(i) * dxfRowSpacing
		capacity := p.Used + p.Scrap

		// Pipe axis
		if _, err := d.Line(0, y, 0, capacity, y, 0); err != nil {
			return fmt.Errorf("pipe %d axis: %w", p.PipeNumber, err)
		}

		// End ticks
		for _, x := range []float64{0, capacity} {
			if _, err := d.Line(x, y-dxfTickHeight/2, 0, x, y+dxfTickHeight/2, 0); err != nil {
				return fmt.Errorf("pipe %d end tick: %w", p.PipeNumber, err)
			}
		}

		// One tick at the start of each kerf: that is where the saw lands.
		x := 0.0
		for _, cut := range p.Cuts {
			x = model.Round2(x + cut)
			if _, err := d.Line(x, y-dxfTickHeight/2, 0, x, y+dxfTickHeight/2, 0); err != nil {
				return fmt.Errorf("pipe %d cut mark: %w", p.PipeNumber, err)
			}
			x = model.Round2(x + settings.Kerf)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}
