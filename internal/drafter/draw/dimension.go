// Package draw builds the recurring drafting glyphs (dimensions, flanges,
// leaders) out of scene nodes.
package draw

import (
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	FontSize      = 12
	SmallFont     = 10
	arrowLength   = 8
	arrowWidth    = 3
	extensionGap  = 3
	extensionOver = 4
	textLift      = 4
)

// Dim describes a linear dimension between From and To. Offset moves the
// dimension line off the measured points along the left normal of From->To
// (upward for a left-to-right dimension on a Y-down canvas).
type Dim struct {
	From, To vec.Vec2
	Offset   float64
	Text     string
	Active   bool
	FontSize float64
}

// Dimension returns extension lines, the dimension line, two arrowheads and
// the label.
func Dimension(d Dim) []scene.Node {
	span := d.To.Sub(d.From)
	length := span.Length()
	if length == 0 {
		return nil
	}
	dir := span.Mul(1 / length)
	normal := vec.Vec2{X: dir.Y, Y: -dir.X}
	fs := d.FontSize
	if fs <= 0 {
		fs = FontSize
	}

	a := d.From.Add(normal.Mul(d.Offset))
	b := d.To.Add(normal.Mul(d.Offset))

	var nodes []scene.Node
	if math.Abs(d.Offset) > extensionGap {
		sign := 1.0
		if d.Offset < 0 {
			sign = -1
		}
		over := normal.Mul(sign * extensionOver)
		gap := normal.Mul(sign * extensionGap)
		nodes = append(nodes,
			line(d.From.Add(gap), a.Add(over), scene.Dimension, d.Active),
			line(d.To.Add(gap), b.Add(over), scene.Dimension, d.Active),
		)
	}
	nodes = append(nodes,
		line(a, b, scene.Dimension, d.Active),
		Arrow(a, dir.Mul(-1), d.Active),
		Arrow(b, dir, d.Active),
	)

	angle := math.Atan2(dir.Y, dir.X) * 180 / math.Pi
	// Keep labels readable: never upside down.
	side := 1.0
	if angle >= 90 || angle < -90 {
		angle += 180
		side = -1
	}
	if angle > 180 {
		angle -= 360
	}
	mid := a.Add(b).Mul(0.5)
	pos := mid.Add(normal.Mul(side * textLift))
	nodes = append(nodes, scene.Text{
		X: pos.X, Y: pos.Y,
		Content:  d.Text,
		FontSize: fs,
		Anchor:   scene.AnchorCenter,
		Rotation: angle,
		Class:    scene.Dimension,
		Active:   d.Active,
	})
	return nodes
}

// Arrow returns a filled arrowhead with its tip at tip pointing along dir.
func Arrow(tip, dir vec.Vec2, active bool) scene.Node {
	l := dir.Length()
	if l == 0 {
		dir = vec.Vec2{X: 1}
	} else {
		dir = dir.Mul(1 / l)
	}
	n := vec.Vec2{X: -dir.Y, Y: dir.X}
	base := tip.Sub(dir.Mul(arrowLength))
	p := scene.Polygon(scene.Dimension, tip, base.Add(n.Mul(arrowWidth)), base.Sub(n.Mul(arrowWidth)))
	p.Active = active
	return p
}

// Horizontal is a dimension between x0 and x1 at height y, lifted by offset.
func Horizontal(x0, x1, y, offset float64, text string, active bool) []scene.Node {
	return Dimension(Dim{From: scene.Pt(x0, y), To: scene.Pt(x1, y), Offset: offset, Text: text, Active: active})
}

// Vertical is a dimension between y0 and y1 at x, read bottom to top. With
// y0 < y1 a positive offset moves the line to the left.
func Vertical(x, y0, y1, offset float64, text string, active bool) []scene.Node {
	return Dimension(Dim{From: scene.Pt(x, y1), To: scene.Pt(x, y0), Offset: offset, Text: text, Active: active})
}

// Radius draws a leader-style radius call-out from the centre to a point on
// the arc at the given angle.
func Radius(center vec.Vec2, r, angleDeg float64, text string, active bool) []scene.Node {
	end := geom.Polar(center, r, angleDeg)
	dir := end.Sub(center)
	nodes := []scene.Node{
		line(center, end, scene.Dimension, active),
		Arrow(end, dir, active),
	}
	mid := center.Add(end).Mul(0.5)
	nodes = append(nodes, scene.Text{
		X: mid.X + textLift, Y: mid.Y - textLift,
		Content: text, FontSize: FontSize, Anchor: scene.AnchorLeft,
		Class: scene.Dimension, Active: active,
	})
	return nodes
}

// Diameter returns a label of the form Ø500.
func Diameter(v float64) string {
	return "Ø" + Num(v)
}

// Num formats a real-world magnitude with at most one decimal.
func Num(v float64) string {
	v = math.Round(v*10) / 10
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func line(a, b vec.Vec2, class scene.Class, active bool) scene.Line {
	return scene.Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Class: class, Active: active}
}
