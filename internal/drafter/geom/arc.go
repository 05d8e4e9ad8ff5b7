// Package geom holds the stateless 2-D geometry used by the fitting
// generators. Angles are in degrees; the canvas Y axis points down.
package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ============================================================
// Arc discretization
// ============================================================

type arcRule struct {
	sweep     float64
	threshold float64 // diameter at or below which the small count applies
	small     int
	large     int
}

// Sweeps not in the table use the rule of the largest tabulated sweep below
// them, which keeps the count monotonic in the sweep angle.
var arcRules = []arcRule{
	{sweep: 30, threshold: 950, small: 2, large: 3},
	{sweep: 45, threshold: 150, small: 2, large: 3},
	{sweep: 60, threshold: 150, small: 2, large: 4},
	{sweep: 90, threshold: 150, small: 4, large: 5},
}

const minArcSegments = 2

// ArcSegments returns how many straight gores approximate an elbow sweep of
// the given angle for a duct of the given nominal diameter.
func ArcSegments(sweepDeg, diameter float64) int {
	sweep := math.Abs(sweepDeg)
	if sweep < arcRules[0].sweep {
		return minArcSegments
	}

	rule := arcRules[0]
	for _, r := range arcRules {
		if sweep >= r.sweep {
			rule = r
		}
	}

	n := rule.large
	if diameter <= rule.threshold {
		n = rule.small
	}

	// Beyond a quarter turn, grow proportionally.
	if sweep > 90 {
		n = int(math.Ceil(float64(n) * sweep / 90))
	}
	return max(n, minArcSegments)
}

// ArcPoints returns n+1 points on a circle of radius r around c, from angle
// a0 to a1 (degrees, measured from +X towards +Y).
func ArcPoints(c vec.Vec2, r, a0, a1 float64, n int) []vec.Vec2 {
	if n < 1 {
		n = 1
	}
	pts := make([]vec.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (a0 + (a1-a0)*float64(i)/float64(n)) * math.Pi / 180
		pts = append(pts, vec.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return pts
}

// Polar returns the point at distance r from c in direction deg.
func Polar(c vec.Vec2, r, deg float64) vec.Vec2 {
	a := deg * math.Pi / 180
	return vec.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
}

// ============================================================
// Frustum and saddle
// ============================================================

// FrustumSlant is the lateral length of a cone frustum with end radii r1, r2
// and axial height h.
func FrustumSlant(r1, r2, h float64) float64 {
	return math.Sqrt(h*h + (r1-r2)*(r1-r2))
}

// SaddleDip is the depth of the weld line of a branch of radius branchR on a
// main of radius mainR, seen side-on.
func SaddleDip(mainR, branchR float64) float64 {
	if mainR <= 0 {
		return 0
	}
	branchR = math.Min(math.Abs(branchR), mainR)
	return mainR - math.Sqrt(math.Max(0, mainR*mainR-branchR*branchR))
}

// Ratio returns a/b, or def when b is not positive.
func Ratio(a, b, def float64) float64 {
	if b <= 0 {
		return def
	}
	return a / b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
