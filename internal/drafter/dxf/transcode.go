package dxf

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	// FillFactor leaves a margin around a drawing inside its placement box.
	FillFactor = 0.9
	// QuadSteps is the number of straight segments a quadratic curve is
	// flattened into.
	QuadSteps = 6

	defaultFontSize = 12
)

// Placement is the target box of one drawing in document space (Y up).
type Placement struct {
	TargetCenter vec.Vec2 `json:"targetCenter"`
	MaxWidth     float64  `json:"maxWidth"`
	MaxHeight    float64  `json:"maxHeight"`
}

// Stats reports how much of a scene made it into the document.
type Stats struct {
	Entities int
	Skipped  int
}

func (s *Stats) Add(o Stats) {
	s.Entities += o.Entities
	s.Skipped += o.Skipped
}

// ============================================================
// Fitting
// ============================================================

// FitBox is the region of a scene that is scaled into a placement: the
// canvas, grown to cover content that strays outside it.
func FitBox(sc *scene.Scene) scene.Box {
	box := sc.Canvas()
	box.Union(sc.Bounds())
	return box
}

// FitMatrix maps scene space onto the placement: centre on the fit box,
// scale uniformly, flip Y and move to the target centre.
func FitMatrix(sc *scene.Scene, p Placement) matrix.Matrix {
	box := FitBox(sc)
	w, h := math.Max(box.Width(), 1e-9), math.Max(box.Height(), 1e-9)
	s := math.Min(p.MaxWidth/w, p.MaxHeight/h) * FillFactor
	if !(s > 0) || math.IsInf(s, 0) {
		s = 1
	}
	c := box.Center()
	return matrix.Translate(-c.X, -c.Y).Scale(s, -s).Translate(p.TargetCenter.X, p.TargetCenter.Y)
}

// CanvasPlacement keeps a scene at its own size: the fit box of the canvas
// lands on the canvas rectangle placed at the origin, Y up.
func CanvasPlacement(sc *scene.Scene) Placement {
	return Placement{
		TargetCenter: vec.Vec2{X: sc.Width / 2, Y: sc.Height / 2},
		MaxWidth:     sc.Width / FillFactor,
		MaxHeight:    sc.Height / FillFactor,
	}
}

// Transcode converts a scene into entities fitted into the placement.
func Transcode(sc *scene.Scene, p Placement) ([]Entity, Stats) {
	if sc == nil {
		return nil, Stats{}
	}
	return TranscodeWith(sc, FitMatrix(sc, p))
}

// TranscodeWith converts a scene with an explicit scene-to-document
// transform. Page templates use it with a plain translation and Y flip.
func TranscodeWith(sc *scene.Scene, m matrix.Matrix) ([]Entity, Stats) {
	if sc == nil {
		return nil, Stats{}
	}
	t := &transcoder{scale: math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))}
	t.nodes(sc.Nodes, m)
	t.stats.Entities = len(t.out)
	return t.out, t.stats
}

// ============================================================
// Transcoder
// ============================================================

// transcoder walks the node tree. Each level carries the matrix from its own
// coordinates into document space; a group prepends its rotation.
type transcoder struct {
	scale float64
	out   []Entity
	stats Stats
}

func point(m matrix.Matrix, x, y float64) vec.Vec2 {
	return scene.Apply(m, vec.Vec2{X: x, Y: y})
}

func (t *transcoder) emit(e Entity) {
	for _, p := range Points(e) {
		if !finite(p) {
			t.stats.Skipped++
			return
		}
	}
	t.out = append(t.out, e)
}

func (t *transcoder) nodes(nodes []scene.Node, m matrix.Matrix) {
	for _, n := range nodes {
		switch v := n.(type) {
		case scene.Line:
			t.emit(LineEntity{Style: StyleOf(v.Class), From: point(m, v.X1, v.Y1), To: point(m, v.X2, v.Y2)})
		case scene.Rect:
			t.emit(PolylineEntity{
				Style: StyleOf(v.Class),
				Points: []vec.Vec2{
					point(m, v.X, v.Y),
					point(m, v.X+v.W, v.Y),
					point(m, v.X+v.W, v.Y+v.H),
					point(m, v.X, v.Y+v.H),
				},
				Closed: true,
			})
		case scene.Circle:
			if v.R < 0 {
				t.stats.Skipped++
				continue
			}
			t.emit(CircleEntity{Style: StyleOf(v.Class), Center: point(m, v.CX, v.CY), Radius: v.R * t.scale})
		case scene.Path:
			t.path(v, m)
		case scene.Text:
			t.text(v, m)
		case scene.Group:
			t.nodes(v.Children, v.Local().Mul(m))
		default:
			t.stats.Skipped++
		}
	}
}

// path flattens a path into polylines. Each closepath ends a closed
// polyline; an unterminated contour is emitted open. A malformed command
// drops the whole path.
func (t *transcoder) path(p scene.Path, m matrix.Matrix) {
	contours, ok := Flatten(p.Commands)
	if !ok {
		t.stats.Skipped++
		return
	}
	style := StyleOf(p.Class)
	for _, c := range contours {
		pts := make([]vec.Vec2, len(c.Points))
		for i, q := range c.Points {
			pts[i] = scene.Apply(m, q)
		}
		t.emit(PolylineEntity{Style: style, Points: pts, Closed: c.Closed})
	}
}

func (t *transcoder) text(v scene.Text, m matrix.Matrix) {
	if v.Content == "" {
		return
	}
	size := v.FontSize
	if size <= 0 {
		size = defaultFontSize
	}

	// The baseline direction is carried through the linear part of the
	// transform, which adds group rotations and negates the angle under the
	// Y flip.
	linear := m
	linear[4], linear[5] = 0, 0
	dir := scene.Apply(matrix.RotateDeg(v.Rotation).Mul(linear), vec.Vec2{X: 1})
	angle := math.Atan2(dir.Y, dir.X) * 180 / math.Pi

	align := AlignLeft
	switch v.Anchor {
	case scene.AnchorCenter:
		align = AlignCenter
	case scene.AnchorRight:
		align = AlignRight
	}
	t.emit(TextEntity{
		Style:    StyleOf(v.Class),
		At:       point(m, v.X, v.Y),
		Height:   size * t.scale,
		Content:  v.Content,
		Rotation: angle,
		Align:    align,
	})
}

// ============================================================
// Curve flattening
// ============================================================

// Contour is one flattened subpath.
type Contour struct {
	Points []vec.Vec2
	Closed bool
}

// Flatten turns path commands into polyline contours. Quadratic curves are
// split into QuadSteps segments. It reports false for a command with the
// wrong number of points or a curve with no current point.
func Flatten(cmds []scene.Command) ([]Contour, bool) {
	var (
		out        []Contour
		acc        []vec.Vec2
		pen, start vec.Vec2
		hasPen     bool
	)
	flush := func(closed bool) {
		if len(acc) >= 2 {
			out = append(out, Contour{Points: acc, Closed: closed})
		}
		acc = nil
	}

	for _, c := range cmds {
		switch c.Op {
		case scene.MoveTo:
			if len(c.Points) != 1 {
				return nil, false
			}
			flush(false)
			pen, start, hasPen = c.Points[0], c.Points[0], true
			acc = []vec.Vec2{pen}
		case scene.LineTo:
			if len(c.Points) != 1 {
				return nil, false
			}
			if len(acc) == 0 {
				if !hasPen {
					start = c.Points[0]
				} else {
					acc = []vec.Vec2{pen}
				}
			}
			acc = append(acc, c.Points[0])
			pen, hasPen = c.Points[0], true
		case scene.QuadTo:
			if len(c.Points) != 2 || !hasPen {
				return nil, false
			}
			if len(acc) == 0 {
				acc = []vec.Vec2{pen}
			}
			acc = append(acc, QuadPoints(pen, c.Points[0], c.Points[1], QuadSteps)...)
			pen = c.Points[1]
		case scene.Close:
			flush(true)
			pen = start
		default:
			return nil, false
		}
	}
	flush(false)
	return out, true
}

// QuadPoints returns the n points B(i/n), i = 1..n, of the quadratic Bezier
// p0 c p2. The last point is p2.
func QuadPoints(p0, c, p2 vec.Vec2, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := 1; i <= n; i++ {
		s := float64(i) / float64(n)
		u := 1 - s
		pts[i-1] = vec.Vec2{
			X: u*u*p0.X + 2*u*s*c.X + s*s*p2.X,
			Y: u*u*p0.Y + 2*u*s*c.Y + s*s*p2.Y,
		}
	}
	pts[n-1] = p2
	return pts
}

func finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
