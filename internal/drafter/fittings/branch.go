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
	sideViewGap = 130
	centerMark  = 12
)

// sideView draws the main seen along its axis at c with the given branches
// leaving it. The end view has no dimensions.
func (c *ctx) sideView(center vec.Vec2, mainR float64, branches ...geom.Branch) {
	c.add(
		scene.Circle{CX: center.X, CY: center.Y, R: mainR, Class: scene.Body},
		draw.Centerline(center.Add(scene.Pt(-mainR, 0)), center.Add(scene.Pt(mainR, 0)), centerMark),
		draw.Centerline(center.Add(scene.Pt(0, -mainR)), center.Add(scene.Pt(0, mainR)), centerMark),
	)
	for _, b := range branches {
		c.add(scene.Polygon(scene.Body, b.Neck...))
		if len(b.Flange) > 0 {
			c.add(scene.Polygon(scene.Flange, b.Flange...))
		}
	}
}

// branchDims is the visual geometry of a run with one branch on top and an
// optional branch below.
type branchDims struct {
	r1, vl, bx float64
	r2, vbl    float64
	r3, vbl3   float64
	boot       float64
	ratio      float64
}

func (c *ctx) branchLayout(withLower, withBoot bool) branchDims {
	d1, d2, l := c.num("d1"), c.num("d2"), c.num("length")
	vd1 := visualDiameter(d1)
	g := branchDims{r1: vd1 / 2}
	g.vl = max(visualLength(l, 200, 420), 200)
	g.ratio = geom.Ratio(g.vl, l, lengthScale)
	g.r2 = relative(d2, d1, vd1, 20, vd1*0.95) / 2
	g.vbl = max(visualLength(c.num("branch_length"), 30, 120), 30)
	if withBoot {
		g.boot = geom.Clamp(c.num("boot")*g.ratio, 8, 80)
		g.vbl = max(g.vbl, g.boot+20)
	}
	if withLower {
		g.r3 = relative(c.num("d3"), d1, vd1, 20, vd1*0.95) / 2
		g.vbl3 = g.vbl
	}
	reach := max(g.r2+g.boot, g.r3)
	g.vl = max(g.vl, 2*reach+40)
	g.bx = geom.Clamp(c.num("branch_pos")*g.ratio, g.r2+g.boot+8, g.vl-reach-8)
	return g
}

// branchedRun draws tees: a main run with a branch on top, optionally a boot
// on the upstream side of the branch and a second branch below.
func branchedRun(c *ctx, withLower, withBoot bool) {
	g := c.branchLayout(withLower, withBoot)
	r1, r2, bx := g.r1, g.r2, g.bx
	top := -r1 - g.vbl

	upper := []vec.Vec2{scene.Pt(0, -r1), scene.Pt(bx-r2-g.boot, -r1)}
	if withBoot {
		upper = append(upper, scene.Pt(bx-r2, -r1-g.boot))
	}
	upper = append(upper,
		scene.Pt(bx-r2, top), scene.Pt(bx+r2, top),
		scene.Pt(bx+r2, -r1), scene.Pt(g.vl, -r1),
	)
	c.add(scene.Polyline(scene.Body, upper...))
	c.add(saddle(bx-r2-g.boot, bx+r2, -r1, geom.SaddleDip(r1, r2+g.boot/2), 1))
	c.add(draw.Centerline(scene.Pt(0, 0), scene.Pt(g.vl, 0), 10))
	c.add(draw.Centerline(scene.Pt(bx, -r1), scene.Pt(bx, top), 10))

	bottom := r1
	if withLower {
		r3 := g.r3
		low := r1 + g.vbl3
		c.add(scene.Polyline(scene.Body,
			scene.Pt(0, r1), scene.Pt(bx-r3, r1), scene.Pt(bx-r3, low),
			scene.Pt(bx+r3, low), scene.Pt(bx+r3, r1), scene.Pt(g.vl, r1),
		))
		c.add(saddle(bx-r3, bx+r3, r1, geom.SaddleDip(r1, r3), -1))
		c.add(draw.Centerline(scene.Pt(bx, r1), scene.Pt(bx, low), 10))
		c.add(draw.FlangeH(scene.Pt(bx, low), r3))
		c.add(draw.Horizontal(bx-r3, bx+r3, low+draw.FlangeThickness/2, -dimGap, draw.Diameter(c.num("d3")), c.on("d3"))...)
		bottom = low + dimGap
	} else {
		c.add(draw.Body(0, r1, g.vl, r1))
	}

	start, end := scene.Pt(0, 0), scene.Pt(g.vl, 0)
	c.add(draw.Flange(start, r1, 0), draw.Flange(end, r1, 0), draw.FlangeH(scene.Pt(bx, top), r2))

	bottom += draw.FlangeOverhang
	c.add(draw.Horizontal(0, g.vl, bottom, -dimGap, draw.Num(c.num("length")), c.on("length"))...)
	c.add(draw.Horizontal(0, bx, bottom, -dimGapOuter, draw.Num(c.num("branch_pos")), c.on("branch_pos"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r1, r1, dimGap, draw.Diameter(c.num("d1")), c.on("d1"))...)
	c.add(draw.Horizontal(bx-r2, bx+r2, top-draw.FlangeThickness/2, dimGap, draw.Diameter(c.num("d2")), c.on("d2"))...)
	c.add(draw.Vertical(bx+r2+draw.FlangeOverhang, top, -r1, -dimGap, draw.Num(c.num("branch_length")), c.on("branch_length"))...)
	if withBoot {
		c.add(draw.Horizontal(bx-r2-g.boot, bx-r2, -r1, g.boot+16, draw.Num(c.num("boot")), c.on("boot"))...)
	}

	side := scene.Pt(g.vl+sideViewGap+r1, 0)
	branches := []geom.Branch{geom.RadialBranch(side, r1, r2, 0, g.vbl, draw.FlangeThickness)}
	if withLower {
		branches = append(branches, geom.RadialBranch(side, r1, g.r3, 180, g.vbl3, draw.FlangeThickness))
	}
	c.sideView(side, r1, branches...)

	c.endRemarks(start, r1, 0, end, r1, 0)
	c.remark("remark3", scene.Pt(bx+r2+draw.FlangeOverhang, top-draw.FlangeThickness/2), 1)
}

func buildTee(c *ctx)      { branchedRun(c, false, false) }
func buildCrossTee(c *ctx) { branchedRun(c, true, false) }
func buildBootTee(c *ctx)  { branchedRun(c, false, true) }

func describeTee(p scene.Params) string {
	return fmt.Sprintf("TEE %s x %s x L%s",
		draw.Diameter(p.Num("d1", 0)), draw.Diameter(p.Num("d2", 0)), draw.Num(p.Num("length", 0)))
}

func describeCrossTee(p scene.Params) string {
	return fmt.Sprintf("CROSS TEE %s x %s x %s x L%s",
		draw.Diameter(p.Num("d1", 0)), draw.Diameter(p.Num("d2", 0)), draw.Diameter(p.Num("d3", 0)),
		draw.Num(p.Num("length", 0)))
}

func describeBootTee(p scene.Params) string {
	return fmt.Sprintf("BOOT TEE %s x %s x L%s",
		draw.Diameter(p.Num("d1", 0)), draw.Diameter(p.Num("d2", 0)), draw.Num(p.Num("length", 0)))
}

// ============================================================
// Lateral tee
// ============================================================

func buildLateralTee(c *ctx) {
	d1, d2, l := c.num("d1"), c.num("d2"), c.num("length")
	angle := geom.Clamp(c.num("angle"), 15, 90)
	vd1 := visualDiameter(d1)
	r1 := vd1 / 2
	r2 := relative(d2, d1, vd1, 20, vd1*0.95) / 2
	vl := max(visualLength(l, 220, 420), 220)
	ratio := geom.Ratio(vl, l, lengthScale)
	vbl := max(visualLength(c.num("branch_length"), 30, 140), 30)

	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	u := vec.Vec2{X: cos, Y: -sin}
	n := vec.Vec2{X: sin, Y: cos}

	// Branch walls meet the main's top edge at different distances along
	// the branch axis.
	tUp := (r1 - r2*cos) / sin
	tDown := (r1 + r2*cos) / sin
	reach := tDown + vbl
	upDx := -r2*sin + tUp*cos
	downDx := r2*sin + tDown*cos
	vl = max(vl, downDx-upDx+40)
	bx := geom.Clamp(c.num("branch_pos")*ratio, -upDx+8, vl-downDx-8)

	base := scene.Pt(bx, 0)
	upHit := base.Sub(n.Mul(r2)).Add(u.Mul(tUp))
	downHit := base.Add(n.Mul(r2)).Add(u.Mul(tDown))
	upEnd := base.Sub(n.Mul(r2)).Add(u.Mul(reach))
	downEnd := base.Add(n.Mul(r2)).Add(u.Mul(reach))
	endCenter := base.Add(u.Mul(reach))

	c.add(scene.Polyline(scene.Body,
		scene.Pt(0, -r1), upHit, upEnd, downEnd, downHit, scene.Pt(vl, -r1),
	))
	c.add(draw.Body(0, r1, vl, r1))
	c.add(saddle(upHit.X, downHit.X, -r1, geom.SaddleDip(r1, r2), 1))
	c.add(draw.Centerline(scene.Pt(0, 0), scene.Pt(vl, 0), 10))
	c.add(draw.Centerline(base, endCenter, 10))

	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(draw.Flange(start, r1, 0), draw.Flange(end, r1, 0), draw.Flange(endCenter, r2, -angle))

	bottom := r1 + draw.FlangeOverhang
	c.add(draw.Horizontal(0, vl, bottom, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Horizontal(0, bx, bottom, -dimGapOuter, draw.Num(c.num("branch_pos")), c.on("branch_pos"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r1, r1, dimGap, draw.Diameter(d1), c.on("d1"))...)
	c.add(draw.Dimension(draw.Dim{
		From: upEnd, To: downEnd, Offset: draw.FlangeThickness + dimGap,
		Text: draw.Diameter(d2), Active: c.on("d2"),
	})...)
	c.add(draw.Dimension(draw.Dim{
		From: downHit, To: downEnd, Offset: -(draw.FlangeOverhang + dimGap),
		Text: draw.Num(c.num("branch_length")), Active: c.on("branch_length"),
	})...)

	arcR := reach * 0.6
	c.add(scene.Polyline(scene.Dimension, geom.ArcPoints(base, arcR, -angle, 0, 8)...))
	label := geom.Polar(base, arcR+6, -angle/2)
	c.add(scene.Text{
		X: label.X, Y: label.Y, Content: draw.Num(angle) + "°", FontSize: draw.FontSize,
		Anchor: scene.AnchorLeft, Class: scene.Dimension, Active: c.on("angle"),
	})

	side := scene.Pt(vl+sideViewGap+r1, 0)
	stick := math.Max(-endCenter.Y-r1, 10)
	c.sideView(side, r1, geom.RadialBranch(side, r1, r2, 0, stick, draw.FlangeThickness))

	c.endRemarks(start, r1, 0, end, r1, 0)
	c.remark("remark3", draw.FlangeCorner(endCenter, r2, -angle, false), 1)
}

func describeLateralTee(p scene.Params) string {
	return fmt.Sprintf("LATERAL TEE %s x %s x %s° x L%s",
		draw.Diameter(p.Num("d1", 0)), draw.Diameter(p.Num("d2", 0)),
		draw.Num(p.Num("angle", 0)), draw.Num(p.Num("length", 0)))
}

// ============================================================
// Saddle tap
// ============================================================

const saddleRunLength = 260

func buildSaddleTap(c *ctx) {
	d1, d2 := c.num("d1"), c.num("d2")
	clock := c.num("angle")
	vd1 := visualDiameter(d1)
	r1 := vd1 / 2
	r2 := relative(d2, d1, vd1, 16, vd1*0.95) / 2
	vs := max(visualLength(c.num("stick_out"), 20, 120), 20)
	bx := saddleRunLength / 2.0
	top := -r1 - vs

	// The main continues past both ends of the view.
	c.add(pipe(0, saddleRunLength, 0, r1)...)
	c.add(
		draw.Seam(scene.Pt(0, -r1-6), scene.Pt(0, r1+6)),
		draw.Seam(scene.Pt(saddleRunLength, -r1-6), scene.Pt(saddleRunLength, r1+6)),
	)
	c.add(scene.Polyline(scene.Body, scene.Pt(bx-r2, -r1), scene.Pt(bx-r2, top)))
	c.add(scene.Polyline(scene.Body, scene.Pt(bx+r2, -r1), scene.Pt(bx+r2, top)))
	c.add(saddle(bx-r2, bx+r2, -r1, geom.SaddleDip(r1, r2), 1))
	c.add(draw.Centerline(scene.Pt(bx, -r1), scene.Pt(bx, top), 10))
	c.add(draw.FlangeH(scene.Pt(bx, top), r2))

	c.add(draw.Vertical(-6, -r1, r1, dimGap, draw.Diameter(d1), c.on("d1"))...)
	c.add(draw.Horizontal(bx-r2, bx+r2, top-draw.FlangeThickness/2, dimGap, draw.Diameter(d2), c.on("d2"))...)
	c.add(draw.Vertical(bx+r2+draw.FlangeOverhang, top, -r1, -dimGap, draw.Num(c.num("stick_out")), c.on("stick_out"))...)

	side := scene.Pt(saddleRunLength+sideViewGap+r1, 0)
	b := geom.RadialBranch(side, r1, r2, clock, vs, draw.FlangeThickness)
	c.sideView(side, r1, b)
	if o := geom.Classify(clock); o != geom.Top {
		c.add(scene.Text{
			X: side.X, Y: side.Y + r1 + dimGap + draw.FontSize,
			Content: fmt.Sprintf("TAP AT %s° (%s)", draw.Num(clock), o), FontSize: draw.FontSize,
			Anchor: scene.AnchorCenter, Class: scene.Dimension, Active: c.on("angle"),
		})
	}
	c.remark("remark1", scene.Pt(bx+r2+draw.FlangeOverhang, top-draw.FlangeThickness/2), 1)
}

func describeSaddleTap(p scene.Params) string {
	return fmt.Sprintf("SADDLE TAP %s ON %s", draw.Diameter(p.Num("d2", 0)), draw.Diameter(p.Num("d1", 0)))
}
