package draw

import (
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/geom"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Flanges
// ============================================================

const (
	FlangeThickness = 8
	FlangeOverhang  = 10
)

// Flange returns the flange glyph at a pipe end centred on c whose pipe
// radius (visual) is r. angleDeg is the pipe axis direction at the end; 0
// means the pipe runs horizontally and the flange stands upright.
func Flange(c vec.Vec2, r, angleDeg float64) scene.Node {
	half := r + FlangeOverhang
	rect := scene.Rect{
		X: c.X - FlangeThickness/2, Y: c.Y - half,
		W: FlangeThickness, H: 2 * half,
		Class: scene.Flange,
	}
	if angleDeg == 0 {
		return rect
	}
	return scene.Group{Rotation: angleDeg, Pivot: c, Children: []scene.Node{rect}}
}

// FlangeH is the flange of a pipe running vertically, lying flat.
func FlangeH(c vec.Vec2, r float64) scene.Node {
	half := r + FlangeOverhang
	return scene.Rect{
		X: c.X - half, Y: c.Y - FlangeThickness/2,
		W: 2 * half, H: FlangeThickness,
		Class: scene.Flange,
	}
}

// FlangeCorner returns the outer top corner of a Flange glyph, where remark
// leaders attach.
func FlangeCorner(c vec.Vec2, r, angleDeg float64, left bool) vec.Vec2 {
	dx := FlangeThickness / 2.0
	if left {
		dx = -dx
	}
	p := vec.Vec2{X: c.X + dx, Y: c.Y - r - FlangeOverhang}
	return scene.RotateAbout(p, c, angleDeg)
}

// ============================================================
// Leaders and labels
// ============================================================

const leaderLength = 40

// Leader renders a remark call-out at anchor. It returns nothing for blank
// text. The second result is the vertical room the call-out takes.
func Leader(anchor vec.Vec2, text string, direction, sideBias float64, textAbove bool) ([]scene.Node, float64) {
	l := geom.LeaderLayout(anchor, text, direction, sideBias, leaderLength, SmallFont, textAbove)
	if len(l.Lines) == 0 {
		return nil, 0
	}
	nodes := []scene.Node{
		scene.Circle{CX: anchor.X, CY: anchor.Y, R: 1.5, Class: scene.AnnotationText},
		line(anchor, l.Elbow, scene.AnnotationText, false),
		line(l.Elbow, l.Shoulder, scene.AnnotationText, false),
	}
	anchorKind := scene.AnchorLeft
	if l.AlignEnd {
		anchorKind = scene.AnchorRight
	}
	for i, text := range l.Lines {
		nodes = append(nodes, scene.Text{
			X: l.TextStart.X, Y: l.TextStart.Y + float64(i)*SmallFont*1.25,
			Content: text, FontSize: SmallFont, Anchor: anchorKind,
			Class: scene.AnnotationText,
		})
	}
	return nodes, l.Occupied
}

// Note places free text.
func Note(x, y float64, text string, size float64, anchor scene.Anchor) scene.Text {
	return scene.Text{X: x, Y: y, Content: text, FontSize: size, Anchor: anchor, Class: scene.AnnotationText}
}

// Centerline is a chain line through a and b, overshooting both ends.
func Centerline(a, b vec.Vec2, overshoot float64) scene.Line {
	d := b.Sub(a)
	l := d.Length()
	if l > 0 && overshoot > 0 {
		d = d.Mul(overshoot / l)
		a = a.Sub(d)
		b = b.Add(d)
	}
	return line(a, b, scene.Centerline, false)
}

// Body is a solid outline segment.
func Body(x1, y1, x2, y2 float64) scene.Line {
	return scene.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Class: scene.Body}
}

// Seam is a thin phantom line, used for gore seams and fold lines.
func Seam(a, b vec.Vec2) scene.Line {
	return line(a, b, scene.Phantom, false)
}

// HiddenCircle is a back-side circle.
func HiddenCircle(c vec.Vec2, r float64) scene.Circle {
	return scene.Circle{CX: c.X, CY: c.Y, R: r, Class: scene.Hidden}
}

// ============================================================
// Section marker
// ============================================================

// SectionMark draws a cut-plane marker "A-A" across the view at x, from y0 to
// y1, with arrows pointing in the viewing direction.
func SectionMark(x, y0, y1 float64, name string) []scene.Node {
	const tick = 14
	nodes := []scene.Node{
		scene.Line{X1: x, Y1: y0, X2: x, Y2: y0 + tick, Class: scene.Centerline},
		scene.Line{X1: x, Y1: y1 - tick, X2: x, Y2: y1, Class: scene.Centerline},
		Arrow(scene.Pt(x-tick, y0), scene.Pt(-1, 0), false),
		Arrow(scene.Pt(x-tick, y1), scene.Pt(-1, 0), false),
		scene.Line{X1: x, Y1: y0, X2: x - tick, Y2: y0, Class: scene.Dimension},
		scene.Line{X1: x, Y1: y1, X2: x - tick, Y2: y1, Class: scene.Dimension},
		Note(x+4, y0-4, name, FontSize, scene.AnchorLeft),
		Note(x+4, y1+FontSize+2, name, FontSize, scene.AnchorLeft),
	}
	return nodes
}
