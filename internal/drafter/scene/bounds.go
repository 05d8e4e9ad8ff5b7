package scene

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// textWidthFactor approximates glyph advance as a fraction of font size.
const textWidthFactor = 0.6

// Box is an axis-aligned bounding box in scene units.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
	set                    bool
}

func (b *Box) Add(p vec.Vec2) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

func (b *Box) Union(o Box) {
	if !o.set {
		return
	}
	b.Add(vec.Vec2{X: o.MinX, Y: o.MinY})
	b.Add(vec.Vec2{X: o.MaxX, Y: o.MaxY})
}

func (b Box) IsSet() bool      { return b.set }
func (b Box) Width() float64   { return b.MaxX - b.MinX }
func (b Box) Height() float64  { return b.MaxY - b.MinY }
func (b Box) Center() vec.Vec2 { return vec.Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2} }

// BoxOf returns a box spanning the two corners.
func BoxOf(x0, y0, x1, y1 float64) Box {
	var b Box
	b.Add(vec.Vec2{X: x0, Y: y0})
	b.Add(vec.Vec2{X: x1, Y: y1})
	return b
}

// Canvas returns the canvas box of the scene.
func (s *Scene) Canvas() Box {
	return BoxOf(0, 0, s.Width, s.Height)
}

// Bounds returns the content bounds with group rotations applied.
func (s *Scene) Bounds() Box {
	var b Box
	boundsOf(s.Nodes, matrix.Identity, &b)
	return b
}

// RotateAbout rotates p about pivot by deg degrees in the SVG sense
// (clockwise on a Y-down canvas).
func RotateAbout(p, pivot vec.Vec2, deg float64) vec.Vec2 {
	if deg == 0 {
		return p
	}
	return Apply(RotationAbout(pivot, deg), p)
}

// RotationAbout is the rotation by deg degrees about pivot.
func RotationAbout(pivot vec.Vec2, deg float64) matrix.Matrix {
	return matrix.Translate(-pivot.X, -pivot.Y).RotateDeg(deg).Translate(pivot.X, pivot.Y)
}

// Local maps the children of g into the space g lives in.
func (g Group) Local() matrix.Matrix {
	if g.Rotation == 0 {
		return matrix.Identity
	}
	return RotationAbout(g.Pivot, g.Rotation)
}

// Apply maps p through m.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := m.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

func boundsOf(nodes []Node, m matrix.Matrix, b *Box) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Line:
			b.Add(Apply(m, vec.Vec2{X: v.X1, Y: v.Y1}))
			b.Add(Apply(m, vec.Vec2{X: v.X2, Y: v.Y2}))
		case Rect:
			b.Add(Apply(m, vec.Vec2{X: v.X, Y: v.Y}))
			b.Add(Apply(m, vec.Vec2{X: v.X + v.W, Y: v.Y}))
			b.Add(Apply(m, vec.Vec2{X: v.X + v.W, Y: v.Y + v.H}))
			b.Add(Apply(m, vec.Vec2{X: v.X, Y: v.Y + v.H}))
		case Circle:
			c := Apply(m, vec.Vec2{X: v.CX, Y: v.CY})
			b.Add(vec.Vec2{X: c.X - v.R, Y: c.Y - v.R})
			b.Add(vec.Vec2{X: c.X + v.R, Y: c.Y + v.R})
		case Path:
			for _, cmd := range v.Commands {
				for _, p := range cmd.Points {
					b.Add(Apply(m, p))
				}
			}
		case Text:
			for _, p := range TextCorners(v) {
				b.Add(Apply(m, p))
			}
		case Group:
			boundsOf(v.Children, v.Local().Mul(m), b)
		}
	}
}

// TextCorners approximates the box occupied by a text node, rotated with it.
// The baseline sits at Y; the box extends one font size upward.
func TextCorners(t Text) []vec.Vec2 {
	w := float64(len([]rune(t.Content))) * t.FontSize * textWidthFactor
	h := t.FontSize
	var x0 float64
	switch t.Anchor {
	case AnchorCenter:
		x0 = t.X - w/2
	case AnchorRight:
		x0 = t.X - w
	default:
		x0 = t.X
	}
	corners := []vec.Vec2{
		{X: x0, Y: t.Y - h},
		{X: x0 + w, Y: t.Y - h},
		{X: x0 + w, Y: t.Y},
		{X: x0, Y: t.Y},
	}
	pivot := vec.Vec2{X: t.X, Y: t.Y}
	for i, c := range corners {
		corners[i] = RotateAbout(c, pivot, t.Rotation)
	}
	return corners
}
