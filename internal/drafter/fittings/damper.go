package fittings

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// Mechanism proportions are fixed; only diameter, size and length are
// dimensioned.
const (
	viewGap       = 140
	shaftOvershot = 30
	handleLength  = 46
	actuatorW     = 44
	actuatorH     = 30
	bladeBulge    = 6
	maxBlades     = 40
)

// ============================================================
// Transformation (rectangular to round)
// ============================================================

func buildTransformation(c *ctx) {
	w, h, d, l := c.num("width"), c.num("height"), c.num("d1"), c.num("length")
	vh := visualDiameter(h)
	vw := relative(w, h, vh, 40, 320)
	vd := relative(d, h, vh, 30, 260)
	vl := max(visualLength(l, 120, 300), 120)
	hh, r := vh/2, vd/2

	// Elevation: rectangular inlet on the left, round outlet on the right.
	c.add(
		scene.Polygon(scene.Body, scene.Pt(0, -hh), scene.Pt(vl, -r), scene.Pt(vl, r), scene.Pt(0, hh)),
		draw.Seam(scene.Pt(0, -hh), scene.Pt(vl, 0)),
		draw.Seam(scene.Pt(0, hh), scene.Pt(vl, 0)),
		draw.Centerline(scene.Pt(0, 0), scene.Pt(vl, 0), 10),
	)
	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(draw.Flange(start, hh, 0), draw.Flange(end, r, 0))

	bottom := math.Max(hh, r) + draw.FlangeOverhang
	c.add(draw.Horizontal(0, vl, bottom, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -hh, hh, dimGap, draw.Num(h), c.on("height"))...)
	c.add(draw.Vertical(vl+draw.FlangeThickness/2, -r, r, -dimGap, draw.Diameter(d), c.on("d1"))...)

	// End view from the inlet: the round outlet inside the rectangle with
	// fold lines from each corner.
	cx := vl + viewGap + vw/2
	center := scene.Pt(cx, 0)
	c.add(
		scene.Rect{X: cx - vw/2, Y: -hh, W: vw, H: vh, Class: scene.Body},
		scene.Circle{CX: cx, CY: 0, R: r, Class: scene.Body},
		draw.Centerline(scene.Pt(cx-vw/2, 0), scene.Pt(cx+vw/2, 0), centerMark),
		draw.Centerline(scene.Pt(cx, -hh), scene.Pt(cx, hh), centerMark),
	)
	for _, deg := range []float64{-135, -45, 45, 135} {
		corner := scene.Pt(cx+math.Copysign(vw/2, math.Cos(deg*math.Pi/180)), math.Copysign(hh, math.Sin(deg*math.Pi/180)))
		c.add(draw.Seam(corner, geom.Polar(center, r, deg)))
	}
	c.add(draw.Horizontal(cx-vw/2, cx+vw/2, -hh, dimGap, draw.Num(w), c.on("width"))...)
	c.endRemarks(start, hh, 0, end, r, 0)
}

func describeTransformation(p scene.Params) string {
	return fmt.Sprintf("TRANSFORMATION %s x %s TO %s x L%s",
		draw.Num(p.Num("width", 0)), draw.Num(p.Num("height", 0)),
		draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("length", 0)))
}

// ============================================================
// Mechanism glyphs
// ============================================================

// actuator draws the operator mounted at the top of a shaft at p.
func (c *ctx) actuator(p vec.Vec2, kind string) {
	switch strings.ToLower(kind) {
	case "motor", "motorized", "electric":
		c.add(
			scene.Rect{X: p.X - actuatorW/2, Y: p.Y - actuatorH, W: actuatorW, H: actuatorH, Class: scene.Body},
			draw.Note(p.X, p.Y-actuatorH/2+4, "M", draw.FontSize, scene.AnchorCenter),
		)
	case "pneumatic":
		c.add(
			scene.Rect{X: p.X - actuatorW/4, Y: p.Y - actuatorH - 20, W: actuatorW / 2, H: actuatorH, Class: scene.Body},
			draw.Body(p.X, p.Y-20, p.X, p.Y),
			draw.Note(p.X+actuatorW/4+4, p.Y-actuatorH/2-16, "AIR", draw.SmallFont, scene.AnchorLeft),
		)
	default:
		// Hand quadrant with a locking lever.
		c.add(
			scene.Polyline(scene.Body, geom.ArcPoints(p, handleLength*0.6, -150, -30, 6)...),
			draw.Body(p.X, p.Y, p.X+handleLength*math.Cos(-math.Pi/4), p.Y+handleLength*math.Sin(-math.Pi/4)),
			scene.Circle{CX: p.X, CY: p.Y, R: 3, Class: scene.Body},
		)
	}
}

func actuationLabel(p scene.Params) string {
	return strings.ToUpper(p.Str("actuation", "manual"))
}

// ============================================================
// Volume damper
// ============================================================

func buildVolumeDamper(c *ctx) {
	d, l := c.num("d1"), c.num("length")
	r := visualDiameter(d) / 2
	vl := max(visualLength(l, 100, 240), 100)
	mid := vl / 2

	c.add(pipe(0, vl, 0, r)...)
	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(draw.Flange(start, r, 0), draw.Flange(end, r, 0))

	// Blade seen edge-on, half open, with its shaft through the axis.
	c.add(
		scene.Line{X1: mid - r*0.35, Y1: r * 0.9, X2: mid + r*0.35, Y2: -r * 0.9, Class: scene.Hidden},
		draw.Centerline(scene.Pt(mid, r), scene.Pt(mid, -r-shaftOvershot), 6),
	)
	c.actuator(scene.Pt(mid, -r-shaftOvershot), c.p.Str("actuation", "manual"))

	c.add(draw.Horizontal(0, vl, r+draw.FlangeOverhang, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r, r, dimGap, draw.Diameter(d), c.on("d1"))...)

	// Face view with the blade disc.
	face := scene.Pt(vl+viewGap+r, 0)
	c.add(
		scene.Circle{CX: face.X, CY: face.Y, R: r, Class: scene.Body},
		scene.Circle{CX: face.X, CY: face.Y, R: r + draw.FlangeOverhang, Class: scene.Flange},
		draw.Body(face.X-r, face.Y, face.X+r, face.Y),
		scene.Circle{CX: face.X, CY: face.Y, R: 5, Class: scene.Body},
		draw.Centerline(scene.Pt(face.X, face.Y-r), scene.Pt(face.X, face.Y+r), centerMark),
	)
	c.endRemarks(start, r, 0, end, r, 0)
}

func describeVolumeDamper(p scene.Params) string {
	return fmt.Sprintf("VOLUME DAMPER %s x L%s (%s)",
		draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("length", 0)), actuationLabel(p))
}

// ============================================================
// Multiblade damper
// ============================================================

func buildMultibladeDamper(c *ctx) {
	w, h, l := c.num("width"), c.num("height"), c.num("length")
	vh := visualDiameter(h)
	vw := relative(w, h, vh, 40, 320)
	vl := max(visualLength(l, 80, 200), 80)
	blades := min(max(c.p.Int("blades", 1), 1), maxBlades)
	opposed := !strings.EqualFold(c.p.Str("blade_type", "opposed"), "parallel")
	hh := vh / 2

	// Face view: frame with lens-shaped blades, each with its sense of
	// rotation.
	c.add(scene.Rect{X: 0, Y: -hh, W: vw, H: vh, Class: scene.Body})
	pitch := vh / float64(blades)
	for i := range blades {
		y := -hh + pitch*(float64(i)+0.5)
		c.add(scene.NewPath().
			MoveTo(6, y).
			QuadTo(vw/2, y-bladeBulge, vw-6, y).
			QuadTo(vw/2, y+bladeBulge, 6, y).
			Close().
			Build(scene.Body))
		cw := !opposed || i%2 == 0
		c.add(rotationArrow(scene.Pt(vw+16, y), pitch*0.3, cw)...)
	}
	c.add(draw.Horizontal(0, vw, -hh, dimGap, draw.Num(w), c.on("width"))...)
	c.add(draw.Vertical(0, -hh, hh, dimGap, draw.Num(h), c.on("height"))...)

	// Side view: casing between two flanges, blade spindles and the
	// operator on top.
	x0 := vw + viewGap
	x1 := x0 + vl
	c.add(
		scene.Rect{X: x0, Y: -hh, W: vl, H: vh, Class: scene.Body},
		draw.Centerline(scene.Pt(x0, 0), scene.Pt(x1, 0), 10),
	)
	for i := range blades {
		y := -hh + pitch*(float64(i)+0.5)
		c.add(scene.Circle{CX: (x0 + x1) / 2, CY: y, R: 3, Class: scene.Body})
	}
	start, end := scene.Pt(x0, 0), scene.Pt(x1, 0)
	c.add(draw.Flange(start, hh, 0), draw.Flange(end, hh, 0))
	c.add(draw.Centerline(scene.Pt((x0+x1)/2, -hh), scene.Pt((x0+x1)/2, -hh-shaftOvershot), 4))
	c.actuator(scene.Pt((x0+x1)/2, -hh-shaftOvershot), c.p.Str("actuation", "manual"))
	c.add(draw.Horizontal(x0, x1, hh+draw.FlangeOverhang, -dimGap, draw.Num(l), c.on("length"))...)

	label := "OPPOSED BLADE"
	if !opposed {
		label = "PARALLEL BLADE"
	}
	c.add(draw.Note(vw/2, hh+dimGap+draw.FontSize, label, draw.FontSize, scene.AnchorCenter))
	c.endRemarks(start, hh, 0, end, hh, 0)
}

// rotationArrow is a small curved arrow showing a blade's sense of turn.
func rotationArrow(c vec.Vec2, r float64, clockwise bool) []scene.Node {
	a0, a1 := -60.0, 60.0
	if !clockwise {
		a0, a1 = a1, a0
	}
	p0 := geom.Polar(c, r, a0)
	p1 := geom.Polar(c, r, a1)
	ctrl := geom.Polar(c, r*2, (a0+a1)/2)
	tangent := p1.Sub(ctrl)
	return []scene.Node{
		scene.NewPath().MoveTo(p0.X, p0.Y).QuadTo(ctrl.X, ctrl.Y, p1.X, p1.Y).Build(scene.AnnotationText),
		draw.Arrow(p1, tangent, false),
	}
}

func describeMultibladeDamper(p scene.Params) string {
	kind := "OPPOSED"
	if strings.EqualFold(p.Str("blade_type", ""), "parallel") {
		kind = "PARALLEL"
	}
	return fmt.Sprintf("MULTIBLADE DAMPER %s x %s x L%s %s BLADE (%s)",
		draw.Num(p.Num("width", 0)), draw.Num(p.Num("height", 0)), draw.Num(p.Num("length", 0)),
		kind, actuationLabel(p))
}

// ============================================================
// Blast gate
// ============================================================

func buildBlastGate(c *ctx) {
	d, l := c.num("d1"), c.num("length")
	r := visualDiameter(d) / 2
	vl := max(visualLength(l, 80, 200), 80)
	mid := vl / 2
	housing := r * 0.5

	c.add(pipe(0, vl, 0, r)...)
	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(draw.Flange(start, r, 0), draw.Flange(end, r, 0))

	// Slide housing above the duct, plate shown closed across the bore.
	c.add(
		scene.Rect{X: mid - 8, Y: -r - housing*2, W: 16, H: housing * 2, Class: scene.Body},
		scene.Line{X1: mid, Y1: -r, X2: mid, Y2: r, Class: scene.Hidden},
		draw.Body(mid-8, -r, mid+8, -r),
	)
	c.actuator(scene.Pt(mid, -r-housing*2), c.p.Str("actuation", "manual"))

	c.add(draw.Horizontal(0, vl, r+draw.FlangeOverhang, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r, r, dimGap, draw.Diameter(d), c.on("d1"))...)

	// Face view: bore and the gate body outline.
	face := scene.Pt(vl+viewGap+r, 0)
	c.add(
		scene.Circle{CX: face.X, CY: face.Y, R: r, Class: scene.Body},
		scene.Polygon(scene.Body,
			scene.Pt(face.X-r-6, face.Y+r+6), scene.Pt(face.X-r-6, face.Y-r-housing*2),
			scene.Pt(face.X+r+6, face.Y-r-housing*2), scene.Pt(face.X+r+6, face.Y+r+6)),
		draw.Centerline(scene.Pt(face.X-r, face.Y), scene.Pt(face.X+r, face.Y), centerMark),
		draw.Centerline(scene.Pt(face.X, face.Y-r), scene.Pt(face.X, face.Y+r), centerMark),
	)
	c.endRemarks(start, r, 0, end, r, 0)
}

func describeBlastGate(p scene.Params) string {
	return fmt.Sprintf("BLAST GATE DAMPER %s x L%s (%s)",
		draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("length", 0)), actuationLabel(p))
}
