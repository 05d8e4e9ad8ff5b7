package fittings

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	dimGap      = 30
	dimGapOuter = 70
)

// endRemarks attaches remark1 and remark2 to the start and end flanges.
func (c *ctx) endRemarks(start vec.Vec2, startR, startAngle float64, end vec.Vec2, endR, endAngle float64) {
	c.remark("remark1", draw.FlangeCorner(start, startR, startAngle, true), -1)
	c.remark("remark2", draw.FlangeCorner(end, endR, endAngle, false), 1)
}

// ============================================================
// Straight duct
// ============================================================

func buildStraight(c *ctx) {
	d, l := c.num("d1"), c.num("length")
	r := visualDiameter(d) / 2
	vl := max(visualLength(l, 120, 320), 120)

	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(pipe(0, vl, 0, r)...)
	c.add(draw.Flange(start, r, 0), draw.Flange(end, r, 0))
	c.add(draw.Horizontal(0, vl, r+draw.FlangeOverhang, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r, r, dimGap, draw.Diameter(d), c.on("d1"))...)
	c.endRemarks(start, r, 0, end, r, 0)
}

func describeStraight(p scene.Params) string {
	return fmt.Sprintf("STRAIGHT DUCT %s x L%s", draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("length", 0)))
}

// ============================================================
// Elbow
// ============================================================

const (
	maxElbowReach = 190
	angleMarkR    = 18
)

func buildElbow(c *ctx) {
	d := c.num("d1")
	angle := geom.Clamp(c.num("angle"), 1, 180)
	radius := math.Max(0, c.num("radius"))

	vd := visualDiameter(d)
	inner := geom.Clamp(vd*geom.Ratio(radius, d, 0.5), 0, 2.5*vd)
	if reach := inner + vd; reach > maxElbowReach {
		k := maxElbowReach / reach
		vd, inner = vd*k, inner*k
	}
	outer := inner + vd
	mid := inner + vd/2
	r := vd / 2
	e1 := visualLength(c.num("ext1"), 12, 80)
	e2 := visualLength(c.num("ext2"), 12, 80)

	center := scene.Pt(0, 0)
	a0, a1 := 90.0, 90-angle
	n := geom.ArcSegments(angle, d)

	outerArc := geom.ArcPoints(center, outer, a0, a1, n)
	innerArc := geom.ArcPoints(center, inner, a0, a1, n)
	c.add(
		scene.Polyline(scene.Body, outerArc...),
		scene.Polyline(scene.Body, innerArc...),
		scene.Polyline(scene.Centerline, geom.ArcPoints(center, mid, a0, a1, n)...),
	)
	for i := 1; i < n; i++ {
		c.add(draw.Seam(innerArc[i], outerArc[i]))
	}

	// Lead-in runs left from the start of the bend, lead-out along the
	// tangent at its end.
	rad := a1 * math.Pi / 180
	tangent := vec.Vec2{X: math.Sin(rad), Y: -math.Cos(rad)}
	start := scene.Pt(-e1, mid)
	end := geom.Polar(center, mid, a1).Add(tangent.Mul(e2))
	if e1 > 0 {
		c.add(draw.Body(-e1, inner, 0, inner), draw.Body(-e1, outer, 0, outer))
		c.add(draw.Horizontal(-e1, 0, outer+draw.FlangeOverhang, -dimGap, draw.Num(c.num("ext1")), c.on("ext1"))...)
	}
	if e2 > 0 {
		for _, p := range []vec.Vec2{innerArc[n], outerArc[n]} {
			q := p.Add(tangent.Mul(e2))
			c.add(draw.Body(p.X, p.Y, q.X, q.Y))
		}
		c.add(draw.Dimension(draw.Dim{
			From:   outerArc[n],
			To:     outerArc[n].Add(tangent.Mul(e2)),
			Offset: -(draw.FlangeOverhang + dimGap),
			Text:   draw.Num(c.num("ext2")),
			Active: c.on("ext2"),
		})...)
	}

	c.add(draw.Flange(start, r, 0), draw.Flange(end, r, -angle))

	c.add(draw.Radius(center, inner, 90-angle/2, "R="+draw.Num(radius), c.on("radius"))...)
	c.add(draw.Vertical(-e1-draw.FlangeThickness/2, inner, outer, dimGap, draw.Diameter(d), c.on("d1"))...)
	c.add(scene.Polyline(scene.Dimension, geom.ArcPoints(center, angleMarkR, a0, a1, 6)...))
	c.add(scene.Text{
		X: center.X - 4, Y: center.Y - 4,
		Content: draw.Num(angle) + "°", FontSize: draw.FontSize,
		Anchor: scene.AnchorRight, Class: scene.Dimension, Active: c.on("angle"),
	})
	c.endRemarks(start, r, 0, end, r, -angle)
}

func describeElbow(p scene.Params) string {
	return fmt.Sprintf("ELBOW %s x %s° R%s",
		draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("angle", 0)), draw.Num(p.Num("radius", 0)))
}

// ============================================================
// Reducer and offset
// ============================================================

func buildReducer(c *ctx) {
	frustum(c, 0)
}

func buildOffset(c *ctx) {
	frustum(c, c.num("offset"))
}

// frustum draws a cone frustum between two collars. offset lifts the outlet
// axis above the inlet axis.
func frustum(c *ctx, offset float64) {
	d1, d2, l := c.num("d1"), c.num("d2"), c.num("length")
	vd1 := visualDiameter(d1)
	vd2 := relative(d2, d1, vd1, 24, 260)
	r1, r2 := vd1/2, vd2/2
	vl := max(visualLength(l, 80, 260), 80)
	ve1 := visualLength(c.num("ext1"), 12, 60)
	ve2 := visualLength(c.num("ext2"), 12, 60)
	vo := geom.Clamp(offset*geom.Ratio(vl, l, lengthScale), -200, 200)

	a, b := ve1, ve1+vl
	e := b + ve2
	y2 := -vo

	c.add(
		draw.Body(0, -r1, a, -r1), draw.Body(0, r1, a, r1),
		draw.Body(a, -r1, b, y2-r2), draw.Body(a, r1, b, y2+r2),
		draw.Body(b, y2-r2, e, y2-r2), draw.Body(b, y2+r2, e, y2+r2),
		scene.Polyline(scene.Centerline, scene.Pt(-10, 0), scene.Pt(a, 0), scene.Pt(b, y2), scene.Pt(e+10, y2)),
	)
	if ve1 > 0 {
		c.add(draw.Seam(scene.Pt(a, -r1), scene.Pt(a, r1)))
	}
	if ve2 > 0 {
		c.add(draw.Seam(scene.Pt(b, y2-r2), scene.Pt(b, y2+r2)))
	}

	start, end := scene.Pt(0, 0), scene.Pt(e, y2)
	c.add(draw.Flange(start, r1, 0), draw.Flange(end, r2, 0))

	bottom := math.Max(r1, y2+r2) + draw.FlangeOverhang
	c.add(draw.Horizontal(a, b, bottom, -dimGap, draw.Num(l), c.on("length"))...)
	if ve1 > 0 {
		c.add(draw.Horizontal(0, a, bottom, -dimGap, draw.Num(c.num("ext1")), c.on("ext1"))...)
	}
	if ve2 > 0 {
		c.add(draw.Horizontal(b, e, bottom, -dimGap, draw.Num(c.num("ext2")), c.on("ext2"))...)
	}
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r1, r1, dimGap, draw.Diameter(d1), c.on("d1"))...)
	c.add(draw.Vertical(e+draw.FlangeThickness/2, y2-r2, y2+r2, -dimGap, draw.Diameter(d2), c.on("d2"))...)
	if vo != 0 {
		c.add(draw.Seam(scene.Pt(a, 0), scene.Pt(e+dimGapOuter, 0)))
		c.add(draw.Vertical(e+draw.FlangeThickness/2, math.Min(0, y2), math.Max(0, y2), -dimGapOuter,
			draw.Num(math.Abs(offset)), c.on("offset"))...)
	}
	c.endRemarks(start, r1, 0, end, r2, 0)
}

func describeReducer(p scene.Params) string {
	return fmt.Sprintf("REDUCER %s x %s x L%s",
		draw.Diameter(p.Num("d1", 0)), draw.Diameter(p.Num("d2", 0)), draw.Num(p.Num("length", 0)))
}

// describeOffset includes the slant length of the frustum wall for cutting.
func describeOffset(p scene.Params) string {
	d1, d2 := p.Num("d1", 0), p.Num("d2", 0)
	l, off := p.Num("length", 0), p.Num("offset", 0)
	slant := geom.FrustumSlant(d1/2, d2/2+math.Abs(off), l)
	return fmt.Sprintf("OFFSET %s x %s x L%s OFFSET %s SLANT %s",
		draw.Diameter(d1), draw.Diameter(d2), draw.Num(l), draw.Num(off), draw.Num(math.Round(slant)))
}
