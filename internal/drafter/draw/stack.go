package draw

import (
	"math"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// TierSpacing is the distance between stacked dimension lines.
const TierSpacing = 22

// Station is one datum dimension along a run: from the run start at X0 to
// X, labelled with the real distance.
type Station struct {
	X      float64
	Label  string
	Active bool
}

// labelGap is the clear space kept between two labels on one tier.
const labelGap = 6

// DimensionStack draws datum dimensions from x0 to each station above the
// line y (or below it when below is set), stacking labels that would
// collide. It returns the nodes and the distance from y to the outermost
// tier.
func DimensionStack(x0, y float64, stations []Station, length float64, below bool) ([]scene.Node, float64) {
	if len(stations) == 0 {
		return nil, 0
	}
	// Labels sit at the middle of their dimension line, so collisions are
	// decided on the label centres.
	widest := 0
	centres := make([]float64, len(stations))
	for i, s := range stations {
		centres[i] = (s.X - x0) / 2
		widest = max(widest, len([]rune(s.Label)))
	}
	gap := float64(widest)*FontSize*geom.CharWidth + labelGap
	tiers := geom.StackDimensions(centres, length/2, gap)

	sign := 1.0
	if below {
		sign = -1
	}
	var nodes []scene.Node
	outer := 0.0
	for i, s := range stations {
		offset := TierSpacing * float64(tiers[i]+1)
		outer = math.Max(outer, offset)
		if s.X == x0 {
			continue
		}
		// Dimension always runs left to right so the normal points up.
		nodes = append(nodes, Dimension(Dim{
			From:   scene.Pt(x0, y),
			To:     scene.Pt(s.X, y),
			Offset: sign * offset,
			Text:   s.Label,
			Active: s.Active,
		})...)
	}
	return nodes, outer
}
