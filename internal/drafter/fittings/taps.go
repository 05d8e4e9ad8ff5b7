package fittings

import (
	"fmt"
	"strings"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	portPlateOverhang = 3
	threadMarks       = 3
	sectionClearance  = 16
)

func isNPT(t scene.Params) bool {
	return strings.EqualFold(t.Str("kind", "tap"), "npt")
}

func tapLabel(t scene.Params) string {
	d := draw.Diameter(t.Num("diameter", 0))
	if isNPT(t) {
		return "NPT " + d
	}
	return d + " TAP"
}

// buildStraightWithTaps draws a straight run with taps and threaded ports.
// Each port is drawn by where it faces: toward the viewer as a circle, away
// as a hidden circle, otherwise as a neck standing off the top or bottom
// edge. Distances from the inlet are stacked above the run, and section A-A
// shows every port at its clock angle.
func buildStraightWithTaps(c *ctx) {
	d, l := c.num("d1"), c.num("length")
	r := visualDiameter(d) / 2
	vl := max(visualLength(l, 240, 480), 240)
	ratio := geom.Ratio(vl, l, lengthScale)

	c.add(pipe(0, vl, 0, r)...)
	start, end := scene.Pt(0, 0), scene.Pt(vl, 0)
	c.add(draw.Flange(start, r, 0), draw.Flange(end, r, 0))

	section := scene.Pt(vl+viewGap+r, 0)
	var (
		stations    []draw.Station
		branches    []geom.Branch
		topClear    float64
		bottomClear float64
	)
	for i, t := range c.p.List("taps") {
		dist := t.Num("distance", 0)
		x := geom.Clamp(dist*ratio, 0, vl)
		vr := relative(t.Num("diameter", 0), d, 2*r, 6, 2*r*0.9) / 2
		vs := max(visualLength(t.Num("stick_out", 0), 12, 60), 12)
		clock := t.Num("angle", 0)
		o := geom.Classify(clock)
		front, back, _ := o.Facing()

		switch {
		case front:
			c.add(scene.Circle{CX: x, CY: 0, R: vr, Class: scene.Body})
			if isNPT(t) {
				c.add(scene.Circle{CX: x, CY: 0, R: vr * 0.75, Class: scene.Phantom})
			}
			c.add(draw.Note(x, vr+draw.SmallFont+2, tapLabel(t), draw.SmallFont, scene.AnchorCenter))
		case back:
			c.add(draw.HiddenCircle(scene.Pt(x, 0), vr))
			c.add(draw.Note(x, vr+draw.SmallFont+2, tapLabel(t)+" (FAR SIDE)", draw.SmallFont, scene.AnchorCenter))
		default:
			sign := 1.0
			if o == geom.Top || o == geom.TopLeft || o == geom.TopRight {
				sign = -1
				topClear = max(topClear, vs)
			} else {
				bottomClear = max(bottomClear, vs)
			}
			c.addNeck(t, x, sign*r, sign*(r+vs), vr, sign)
		}

		stations = append(stations, draw.Station{
			X:      x,
			Label:  draw.Num(dist),
			Active: c.on(fmt.Sprintf("taps.%d.distance", i)),
		})
		branches = append(branches, geom.RadialBranch(section, r, vr, clock, vs, 0))
	}

	baseline := -r - topClear - draw.FlangeOverhang
	nodes, outer := draw.DimensionStack(0, baseline, stations, vl, false)
	c.add(nodes...)

	bottom := r + bottomClear + draw.FlangeOverhang
	c.add(draw.Horizontal(0, vl, bottom, -dimGap, draw.Num(l), c.on("length"))...)
	c.add(draw.Vertical(-draw.FlangeThickness/2, -r, r, dimGap, draw.Diameter(d), c.on("d1"))...)

	// Cut plane beyond the tallest tier, looking back along the run.
	cut := vl + draw.FlangeThickness + 20
	c.add(draw.SectionMark(cut, baseline-outer-sectionClearance, bottom+dimGap, "A")...)

	c.sideView(section, r, branches...)
	for i, b := range branches {
		c.add(scene.Line{X1: b.Tip[0].X, Y1: b.Tip[0].Y, X2: b.Tip[1].X, Y2: b.Tip[1].Y, Class: scene.Body})
		label := b.EndCenter.Add(b.Axis.Mul(draw.SmallFont + 4))
		c.add(draw.Note(label.X, label.Y, fmt.Sprint(i+1), draw.SmallFont, scene.AnchorCenter))
	}
	c.add(draw.Note(section.X, r+dimGap+draw.FontSize, "SECTION A-A", draw.FontSize, scene.AnchorCenter))
	c.endRemarks(start, r, 0, end, r, 0)
}

// addNeck draws a side-facing port from the main edge at y0 to its plate at
// y1. sign is -1 above the run and +1 below.
func (c *ctx) addNeck(t scene.Params, x, y0, y1, vr, sign float64) {
	c.add(
		draw.Body(x-vr, y0, x-vr, y1),
		draw.Body(x+vr, y0, x+vr, y1),
		saddle(x-vr, x+vr, y0, geom.SaddleDip(sign*y0, vr), -sign),
		draw.Body(x-vr-portPlateOverhang, y1, x+vr+portPlateOverhang, y1),
		draw.Centerline(scene.Pt(x, y0), scene.Pt(x, y1), 6),
	)
	if isNPT(t) {
		step := (y1 - y0) / (threadMarks + 1)
		for k := 1; k <= threadMarks; k++ {
			y := y0 + step*float64(k)
			c.add(draw.Seam(scene.Pt(x-vr, y), scene.Pt(x+vr, y+step/2)))
		}
	}
	labelY := y1 + sign*4
	if sign > 0 {
		labelY += draw.SmallFont
	}
	c.add(draw.Note(x+vr+portPlateOverhang+4, labelY, tapLabel(t), draw.SmallFont, scene.AnchorLeft))
}

func describeStraightWithTaps(p scene.Params) string {
	taps, ports := 0, 0
	for _, t := range p.List("taps") {
		if isNPT(t) {
			ports++
		} else {
			taps++
		}
	}
	var extras []string
	if taps > 0 {
		extras = append(extras, plural(taps, "TAP"))
	}
	if ports > 0 {
		extras = append(extras, plural(ports, "NPT PORT"))
	}
	desc := describeStraight(p)
	if len(extras) > 0 {
		desc += " WITH " + strings.Join(extras, " + ")
	}
	return desc
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %sS", n, noun)
}
