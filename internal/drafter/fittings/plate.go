package fittings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	minPlateView = 180
	maxPlateView = 320
	plateScale   = 0.3
	minHoleR     = 2.5
)

// plateScaleFor returns the visual/real ratio of a plate with outside
// diameter od.
func plateScaleFor(od float64) float64 {
	v := geom.Clamp(od*plateScale, minPlateView, maxPlateView)
	return geom.Ratio(v, od, plateScale)
}

// ============================================================
// Bolt ring
// ============================================================

// boltRing draws the holes of a plate or flange scaled by k around the
// origin and its hole note. A ring that differs from the table is called out
// at its first hole.
func (c *ctx) boltRing(k, below float64) {
	d := c.num("d1")
	row := c.table.Lookup(d)
	holes := max(c.p.Int("holes", row.HoleCount), 1)
	pcd := c.p.Num("pcd", row.BoltCircleDiameter)
	vp := pcd * k / 2
	hr := math.Max(row.HoleSize*k/2, minHoleR)

	origin := scene.Pt(0, 0)
	c.add(scene.Circle{CX: 0, CY: 0, R: vp, Class: scene.Centerline})
	step := 360 / float64(holes)
	first := -90 + step/2
	for i := range holes {
		p := geom.Polar(origin, vp, first+step*float64(i))
		c.add(scene.Circle{CX: p.X, CY: p.Y, R: hr, Class: scene.Body, Active: c.on("holes")})
	}
	c.add(draw.Dimension(draw.Dim{
		From:   geom.Polar(origin, vp, 135),
		To:     geom.Polar(origin, vp, -45),
		Text:   "PCD " + draw.Num(pcd),
		Active: c.on("pcd"),
	})...)

	if c.table.IsOverride(d, holes, pcd) {
		anchor := geom.Polar(origin, vp+hr, first)
		c.add(scene.Circle{CX: anchor.X, CY: anchor.Y, R: hr * 2, Class: scene.Accent})
		text := fmt.Sprintf("Ø%s HOLE x %d ON PCD %s (NON-STANDARD, STD %d ON PCD %s)",
			draw.Num(row.HoleSize), holes, draw.Num(pcd), row.HoleCount, draw.Num(row.BoltCircleDiameter))
		nodes, _ := draw.Leader(anchor, text, 1, -1, true)
		c.add(nodes...)
		return
	}
	c.add(draw.Note(0, below, fmt.Sprintf("%d x Ø%s HOLES EQ. SP. ON PCD %s", holes, draw.Num(row.HoleSize), draw.Num(pcd)),
		draw.FontSize, scene.AnchorCenter))
}

// ============================================================
// Blind plate
// ============================================================

// reinforcement is the bar pattern stiffening a blind plate.
type reinforcement struct {
	rows, cols int
	label      string
	bar        float64 // bar leg in mm
}

// reinforcementFor picks the stiffener pattern by nominal diameter.
func reinforcementFor(d float64) reinforcement {
	switch {
	case d >= 1700:
		return reinforcement{rows: 3, cols: 3, label: "3 x 3 Angle Bar 50mm x 50mm x 5mm", bar: 50}
	case d >= 1200:
		return reinforcement{rows: 2, cols: 2, label: "2 x 2 Angle Bar 40mm x 40mm x 4mm", bar: 40}
	case d >= 650:
		return reinforcement{rows: 1, label: "1 x Angle Bar 40mm x 40mm x 4mm", bar: 40}
	}
	return reinforcement{}
}

func buildBlindPlate(c *ctx) {
	d := c.num("d1")
	row := c.table.Lookup(d)
	k := plateScaleFor(row.OutsideDiameter)
	ro := row.OutsideDiameter * k / 2

	c.add(
		scene.Circle{CX: 0, CY: 0, R: ro, Class: scene.Body},
		draw.Centerline(scene.Pt(-ro, 0), scene.Pt(ro, 0), centerMark),
		draw.Centerline(scene.Pt(0, -ro), scene.Pt(0, ro), centerMark),
	)

	rf := reinforcementFor(d)
	inner := (c.p.Num("pcd", row.BoltCircleDiameter)*k)/2 - 2*math.Max(row.HoleSize*k/2, minHoleR)
	bw := math.Max(rf.bar*k, 3)
	var barAnchor vec.Vec2
	for i := range rf.rows {
		y := -inner + 2*inner*float64(i+1)/float64(rf.rows+1)
		half := math.Sqrt(math.Max(0, inner*inner-y*y))
		c.add(scene.Rect{X: -half, Y: y - bw/2, W: 2 * half, H: bw, Class: scene.Accent})
		if i == 0 {
			barAnchor = scene.Pt(half*0.5, y-bw/2)
		}
	}
	for i := range rf.cols {
		x := -inner + 2*inner*float64(i+1)/float64(rf.cols+1)
		half := math.Sqrt(math.Max(0, inner*inner-x*x))
		c.add(scene.Rect{X: x - bw/2, Y: -half, W: bw, H: 2 * half, Class: scene.Accent})
	}
	if rf.label != "" {
		nodes, _ := draw.Leader(barAnchor, rf.label, 1, -1, true)
		c.add(nodes...)
	}

	c.boltRing(k, ro+dimGap+draw.FontSize)
	c.add(draw.Horizontal(-ro, ro, -ro, dimGap, draw.Diameter(row.OutsideDiameter), c.on("d1"))...)

	// Edge view showing the plate thickness.
	thk := c.num("thickness")
	vt := geom.Clamp(thk*k*4, 4, 16)
	x := ro + viewGap
	c.add(scene.Rect{X: x, Y: -ro, W: vt, H: 2 * ro, Class: scene.Body})
	c.add(draw.Horizontal(x, x+vt, -ro, dimGap, draw.Num(thk)+" THK", c.on("thickness"))...)
	c.remark("remark1", scene.Pt(x+vt, -ro), 1)
}

func describeBlindPlate(p scene.Params) string {
	return fmt.Sprintf("BLIND PLATE %s x %sTHK", draw.Diameter(p.Num("d1", 0)), draw.Num(p.Num("thickness", 0)))
}

// ============================================================
// Angle flange
// ============================================================

// barSize parses an angle bar size such as "40 x 40 x 4".
func barSize(s string) (a, b, t float64) {
	a, b, t = 40, 40, 4
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == '*' || r == ' '
	})
	vals := make([]float64, 0, 3)
	for _, p := range parts {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(p, "mm"), 64); err == nil && f > 0 {
			vals = append(vals, f)
		}
	}
	if len(vals) == 3 {
		a, b, t = vals[0], vals[1], vals[2]
	}
	return a, b, t
}

const profileView = 70

func buildAngleFlange(c *ctx) {
	d := c.num("d1")
	row := c.table.Lookup(d)
	k := plateScaleFor(row.OutsideDiameter)
	ro := row.OutsideDiameter * k / 2
	ri := d * k / 2

	c.add(
		scene.Circle{CX: 0, CY: 0, R: ro, Class: scene.Flange},
		scene.Circle{CX: 0, CY: 0, R: ri, Class: scene.Flange},
		draw.Centerline(scene.Pt(-ro, 0), scene.Pt(ro, 0), centerMark),
		draw.Centerline(scene.Pt(0, -ro), scene.Pt(0, ro), centerMark),
	)
	c.boltRing(k, ro+dimGapOuter+draw.FontSize)
	c.add(draw.Horizontal(-ro, ro, -ro, dimGap, draw.Diameter(row.OutsideDiameter), false)...)
	c.add(draw.Horizontal(-ri, ri, ro, -dimGap, "ID "+draw.Diameter(d), c.on("d1"))...)

	// Section through the ring: the angle bar profile, exaggerated.
	a, b, t := barSize(c.p.Str("bar", ""))
	ps := profileView / math.Max(a, b)
	x0 := ro + viewGap
	y0 := -b * ps / 2
	c.add(scene.Polygon(scene.Body,
		scene.Pt(x0, y0), scene.Pt(x0+t*ps, y0), scene.Pt(x0+t*ps, y0+(b-t)*ps),
		scene.Pt(x0+a*ps, y0+(b-t)*ps), scene.Pt(x0+a*ps, y0+b*ps), scene.Pt(x0, y0+b*ps),
	))
	active := c.on("bar")
	c.add(draw.Horizontal(x0, x0+a*ps, y0+b*ps, -dimGap, draw.Num(a), active)...)
	c.add(draw.Vertical(x0, y0, y0+b*ps, dimGap, draw.Num(b), active)...)
	c.add(draw.Horizontal(x0, x0+t*ps, y0, dimGap, draw.Num(t), active)...)
	c.add(draw.Note(x0+a*ps/2, y0+b*ps+dimGapOuter, "SECTION", draw.FontSize, scene.AnchorCenter))
	c.remark("remark1", scene.Pt(x0+a*ps, y0), 1)
}

func describeAngleFlange(p scene.Params) string {
	a, b, t := barSize(p.Str("bar", ""))
	return fmt.Sprintf("ANGLE FLANGE %s %s x %s x %s",
		draw.Diameter(p.Num("d1", 0)), draw.Num(a), draw.Num(b), draw.Num(t))
}

// describeManual keeps the caller's text exactly as typed.
func describeManual(p scene.Params) string {
	s, _ := p["description"].(string)
	return s
}
