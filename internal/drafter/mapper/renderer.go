package mapper

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/parser"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Renderer
// ============================================================

// Stylesheet maps each class to its stroke style. Highlighted nodes carry
// the extra class "active".
const Stylesheet = `
.body{fill:none;stroke:#000;stroke-width:1.5}
.flange{fill:none;stroke:#000;stroke-width:2.2}
.dimension{fill:none;stroke:#1f4fd6;stroke-width:0.8}
path.dimension{fill:#1f4fd6}
.centerline{fill:none;stroke:#555;stroke-width:0.6;stroke-dasharray:12,3,3,3}
.phantom{fill:none;stroke:#777;stroke-width:0.8;stroke-dasharray:10,4,2,4}
.hidden{fill:none;stroke:#555;stroke-width:0.8;stroke-dasharray:6,4}
.accent{fill:#2ca02c;fill-opacity:0.35;stroke:#2ca02c;stroke-width:1}
.frame{fill:none;stroke:#000;stroke-width:1}
.label,.logo{fill:#000;stroke:none}
text,.annotation-text{fill:#000;stroke:none;font-family:monospace}
text.dimension{fill:#1f4fd6;stroke:none}
.active{stroke:#d62728}
text.active{fill:#d62728}
`

type Renderer struct {
	// Decimals is the number of fraction digits written for coordinates.
	Decimals int
}

func NewRenderer() *Renderer {
	return &Renderer{Decimals: 4}
}

// Render writes the scene as a standalone SVG document.
func (r *Renderer) Render(sc *scene.Scene) (string, error) {
	if sc == nil {
		return "", fmt.Errorf("scene is nil")
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Decimals = r.Decimals

	canvas.Start(sc.Width, sc.Height,
		fmt.Sprintf(`viewBox="0 0 %s %s"`, parser.FormatFloat(sc.Width), parser.FormatFloat(sc.Height)))
	canvas.Style("text/css", Stylesheet)
	r.renderNodes(canvas, sc.Nodes)
	canvas.End()

	return buf.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderNodes(canvas *svg.SVG, nodes []scene.Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case scene.Line:
			canvas.Line(v.X1, v.Y1, v.X2, v.Y2, classAttr(v.Class, v.Active))
		case scene.Rect:
			canvas.Rect(v.X, v.Y, v.W, v.H, classAttr(v.Class, v.Active))
		case scene.Circle:
			canvas.Circle(v.CX, v.CY, v.R, classAttr(v.Class, v.Active))
		case scene.Path:
			if len(v.Commands) == 0 {
				continue
			}
			canvas.Path(parser.FormatPath(v.Commands), classAttr(v.Class, v.Active))
		case scene.Text:
			r.renderText(canvas, v)
		case scene.Group:
			canvas.Gtransform(rotate(v.Rotation, v.Pivot.X, v.Pivot.Y))
			r.renderNodes(canvas, v.Children)
			canvas.Gend()
		}
	}
}

func (r *Renderer) renderText(canvas *svg.SVG, t scene.Text) {
	attrs := []string{
		classAttr(t.Class, t.Active),
		fmt.Sprintf(`font-size="%s"`, parser.FormatFloat(t.FontSize)),
	}
	switch t.Anchor {
	case scene.AnchorCenter:
		attrs = append(attrs, `text-anchor="middle"`)
	case scene.AnchorRight:
		attrs = append(attrs, `text-anchor="end"`)
	}
	if t.Rotation != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="%s"`, rotate(t.Rotation, t.X, t.Y)))
	}
	canvas.Text(t.X, t.Y, t.Content, attrs...)
}

// ============================================================
// Formatting helpers
// ============================================================

func classAttr(c scene.Class, active bool) string {
	names := []string{string(c)}
	if active {
		names = append(names, "active")
	}
	return fmt.Sprintf(`class="%s"`, strings.Join(names, " "))
}

func rotate(deg, px, py float64) string {
	return fmt.Sprintf("rotate(%s %s %s)", parser.FormatFloat(deg), parser.FormatFloat(px), parser.FormatFloat(py))
}
