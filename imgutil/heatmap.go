package imgutil

import (
	"github.com/pkg/errors"
	ts "github.com/sugarme/gotch/tensor"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// scoreGrid is a plotter.GridXYZ over a discriminator score map.
// Row 0 of the map is drawn at the top.
type scoreGrid struct {
	rows, cols int
	vals       []float64
}

func (g scoreGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g scoreGrid) Z(c, r int) float64 { return g.vals[(g.rows-1-r)*g.cols+c] }
func (g scoreGrid) X(c int) float64    { return float64(c) }
func (g scoreGrid) Y(r int) float64    { return float64(r) }

// SaveHeatmap plots a [1 1 H W] score map as a heatmap image file.
func SaveHeatmap(scores *ts.Tensor, title, filename string) error {
	size := scores.MustSize()
	if len(size) != 4 || size[0] != 1 || size[1] != 1 {
		return errors.Errorf("expected score map of shape [1 1 H W]. Got %v", size)
	}

	grid := scoreGrid{
		rows: int(size[2]),
		cols: int(size[3]),
		vals: scores.Float64Values(),
	}

	p, err := plot.New()
	if err != nil {
		return errors.Wrap(err, "new plot")
	}
	p.Title.Text = title

	h := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	h.Min = 0
	h.Max = 1
	p.Add(h)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save heatmap %q", filename)
	}
	return nil
}
