// Package preview rasterises scenes into small PNG thumbnails.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

const (
	DefaultSize = 256
	MaxSize     = 2048

	circleSteps = 48
	padding     = 4
)

var (
	black = color.RGBA{0, 0, 0, 255}
	blue  = color.RGBA{31, 79, 214, 255}
	gray  = color.RGBA{128, 128, 128, 255}
	green = color.RGBA{44, 160, 44, 255}
	red   = color.RGBA{214, 39, 40, 255}
)

// pen is the stroke of one class in pixels.
type pen struct {
	color color.RGBA
	width float32
}

func penFor(c scene.Class, active bool) pen {
	p := pen{black, 1}
	switch c {
	case scene.Flange:
		p.width = 1.5
	case scene.Dimension:
		p = pen{blue, 0.7}
	case scene.Centerline, scene.Phantom, scene.Hidden:
		p = pen{gray, 0.6}
	case scene.Accent:
		p = pen{green, 1}
	}
	if active {
		p.color = red
	}
	return p
}

// PNG renders the scene into an image whose longer edge is size pixels.
func PNG(sc *scene.Scene, size int) ([]byte, error) {
	img, err := Render(sc, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render rasterises the scene. Lines keep their class colours; text is
// drawn upright in a fixed bitmap font.
func Render(sc *scene.Scene, size int) (*image.RGBA, error) {
	if sc == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if size <= 0 {
		size = DefaultSize
	}
	size = min(size, MaxSize)

	box := dxf.FitBox(sc)
	long := math.Max(math.Max(box.Width(), box.Height()), 1)
	s := float64(size-2*padding) / long
	w := max(int(math.Ceil(box.Width()*s-1e-6))+2*padding, 1)
	h := max(int(math.Ceil(box.Height()*s-1e-6))+2*padding, 1)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := &raster{
		img:    img,
		layers: map[color.RGBA]*vector.Rasterizer{},
	}
	view := matrix.Translate(padding/s-box.MinX, padding/s-box.MinY).Scale(s, s)
	r.nodes(sc.Nodes, view)
	r.flush()
	for _, t := range r.texts {
		r.drawText(t)
	}
	return img, nil
}

// ============================================================
// Rasteriser
// ============================================================

type placedText struct {
	at     vec.Vec2
	text   string
	anchor scene.Anchor
	color  color.RGBA
}

type raster struct {
	img    *image.RGBA
	order  []color.RGBA
	layers map[color.RGBA]*vector.Rasterizer
	texts  []placedText
}

func (r *raster) layer(c color.RGBA) *vector.Rasterizer {
	z, ok := r.layers[c]
	if !ok {
		b := r.img.Bounds()
		z = vector.NewRasterizer(b.Dx(), b.Dy())
		r.layers[c] = z
		r.order = append(r.order, c)
	}
	return z
}

// nodes strokes the scene nodes, m mapping their space onto pixels.
func (r *raster) nodes(nodes []scene.Node, m matrix.Matrix) {
	pt := func(x, y float64) vec.Vec2 { return scene.Apply(m, vec.Vec2{X: x, Y: y}) }
	for _, n := range nodes {
		switch v := n.(type) {
		case scene.Line:
			r.stroke(penFor(v.Class, v.Active), false, pt(v.X1, v.Y1), pt(v.X2, v.Y2))
		case scene.Rect:
			r.stroke(penFor(v.Class, v.Active), true,
				pt(v.X, v.Y), pt(v.X+v.W, v.Y), pt(v.X+v.W, v.Y+v.H), pt(v.X, v.Y+v.H))
		case scene.Circle:
			pts := make([]vec.Vec2, circleSteps)
			for i := range pts {
				a := 2 * math.Pi * float64(i) / circleSteps
				pts[i] = pt(v.CX+v.R*math.Cos(a), v.CY+v.R*math.Sin(a))
			}
			r.stroke(penFor(v.Class, v.Active), true, pts...)
		case scene.Path:
			contours, ok := dxf.Flatten(v.Commands)
			if !ok {
				continue
			}
			for _, c := range contours {
				pts := make([]vec.Vec2, len(c.Points))
				for i, q := range c.Points {
					pts[i] = scene.Apply(m, q)
				}
				r.stroke(penFor(v.Class, v.Active), c.Closed, pts...)
			}
		case scene.Text:
			r.texts = append(r.texts, placedText{
				at: pt(v.X, v.Y), text: v.Content, anchor: v.Anchor, color: penFor(v.Class, v.Active).color,
			})
		case scene.Group:
			r.nodes(v.Children, v.Local().Mul(m))
		}
	}
}

// stroke adds each segment as a thin quad to the rasteriser of its colour.
func (r *raster) stroke(p pen, closed bool, pts ...vec.Vec2) {
	z := r.layer(p.color)
	half := float64(p.width) / 2
	seg := func(a, b vec.Vec2) {
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		n := vec.Vec2{X: -dy / l * half, Y: dx / l * half}
		z.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
		z.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
		z.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
		z.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
		z.ClosePath()
	}
	for i := 1; i < len(pts); i++ {
		seg(pts[i-1], pts[i])
	}
	if closed && len(pts) > 2 {
		seg(pts[len(pts)-1], pts[0])
	}
}

func (r *raster) flush() {
	for _, c := range r.order {
		r.layers[c].Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

func (r *raster) drawText(t placedText) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(t.color),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(t.at.X), int(t.at.Y)),
	}
	switch t.anchor {
	case scene.AnchorCenter:
		d.Dot.X -= d.MeasureString(t.text) / 2
	case scene.AnchorRight:
		d.Dot.X -= d.MeasureString(t.text)
	}
	d.DrawString(t.text)
}
