package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// branchEpsilon keeps the branch strictly narrower than the main.
const branchEpsilon = 1e-3

// neckArcSteps is the number of chords of the weld arc on the main surface.
const neckArcSteps = 8

// Branch is a pipe stub meeting a cylindrical main at a clock angle, seen
// along the main's axis.
type Branch struct {
	// Base holds the two points where the branch walls meet the main's
	// outer circle.
	Base [2]vec.Vec2
	// Tip holds the two wall end points at mainR + stickOut.
	Tip [2]vec.Vec2
	// EndCenter is the centre of the branch opening.
	EndCenter vec.Vec2
	// Neck is a closed outline: tip, base, arc on the main surface, base, tip.
	Neck []vec.Vec2
	// Flange holds the corners of the flange at the tip, when requested.
	Flange []vec.Vec2
	// Axis is the unit direction from the main centre to the branch end.
	Axis vec.Vec2
}

// ClockAxis returns the unit direction for a clock angle measured clockwise
// from 12 o'clock on a Y-down canvas.
func ClockAxis(angleDeg float64) vec.Vec2 {
	a := angleDeg * math.Pi / 180
	return vec.Vec2{X: math.Sin(a), Y: -math.Cos(a)}
}

// RadialBranch computes the outline of a branch of radius branchR leaving a
// main of radius mainR centred on c. flangeDepth > 0 appends a flange of that
// thickness at the tip, overhanging the branch by flangeDepth on each side.
func RadialBranch(c vec.Vec2, mainR, branchR, angleDeg, stickOut, flangeDepth float64) Branch {
	mainR = math.Max(mainR, branchEpsilon*2)
	branchR = Clamp(math.Abs(branchR), 0, mainR-branchEpsilon)
	stickOut = math.Max(0, stickOut)

	u := ClockAxis(angleDeg)
	n := vec.Vec2{X: -u.Y, Y: u.X}

	baseOffset := math.Sqrt(math.Max(0, mainR*mainR-branchR*branchR))
	reach := mainR + stickOut

	b := Branch{Axis: u}
	b.Base[0] = c.Add(u.Mul(baseOffset)).Add(n.Mul(branchR))
	b.Base[1] = c.Add(u.Mul(baseOffset)).Sub(n.Mul(branchR))
	b.Tip[0] = c.Add(u.Mul(reach)).Add(n.Mul(branchR))
	b.Tip[1] = c.Add(u.Mul(reach)).Sub(n.Mul(branchR))
	b.EndCenter = c.Add(u.Mul(reach))

	// The weld arc runs along the main circle between the two base points,
	// through the point nearest the branch.
	a0 := angleOf(b.Base[0].Sub(c))
	a1 := angleOf(b.Base[1].Sub(c))
	for a1-a0 > 180 {
		a1 -= 360
	}
	for a0-a1 > 180 {
		a1 += 360
	}

	b.Neck = append(b.Neck, b.Tip[0])
	b.Neck = append(b.Neck, ArcPoints(c, mainR, a0, a1, neckArcSteps)...)
	b.Neck = append(b.Neck, b.Tip[1])

	if flangeDepth > 0 {
		w := branchR + flangeDepth
		out := c.Add(u.Mul(reach + flangeDepth))
		end := b.EndCenter
		b.Flange = []vec.Vec2{
			end.Add(n.Mul(w)),
			out.Add(n.Mul(w)),
			out.Sub(n.Mul(w)),
			end.Sub(n.Mul(w)),
		}
	}
	return b
}

func angleOf(v vec.Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// ============================================================
// Clock orientation
// ============================================================

// Orientation is the 8-way position of a port around the duct, seen from
// the front.
type Orientation int

const (
	Top Orientation = iota
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

var orientationNames = [...]string{"TOP", "TOP_RIGHT", "RIGHT", "BOTTOM_RIGHT", "BOTTOM", "BOTTOM_LEFT", "LEFT", "TOP_LEFT"}

func (o Orientation) String() string {
	return orientationNames[o]
}

// Classify buckets a clock angle (0 = top, clockwise) into 45° sectors.
func Classify(angleDeg float64) Orientation {
	a := math.Mod(angleDeg, 360)
	if a < 0 {
		a += 360
	}
	return Orientation(int(math.Round(a/45)) % 8)
}

// Facing reports whether a port at this orientation points at the viewer of
// an elevation drawn with the duct running left to right and "TOP" up.
// Top and bottom ports show as side silhouettes; the right side faces the
// viewer and the left side is hidden behind the duct.
func (o Orientation) Facing() (front, back, side bool) {
	switch o {
	case Right:
		return true, false, false
	case Left:
		return false, true, false
	default:
		return false, false, true
	}
}
