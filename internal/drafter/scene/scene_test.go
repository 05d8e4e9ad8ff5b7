package scene

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func sample() *Scene {
	sc := New(400, 300)
	sc.Add(
		Line{X1: 10, Y1: 20, X2: 110, Y2: 20, Class: Body},
		Rect{X: 5, Y: 5, W: 40, H: 30, Class: Flange, Active: true},
		Circle{CX: 200, CY: 150, R: 25, Class: Centerline},
		NewPath().MoveTo(0, 0).QuadTo(10, 20, 30, 0).LineTo(40, 0).Close().Build(Hidden),
		Text{X: 50, Y: 60, Content: "D500", FontSize: 12, Anchor: AnchorCenter, Rotation: 90, Class: Dimension},
		Group{Rotation: 45, Pivot: Pt(200, 150), Children: []Node{
			Line{X1: 150, Y1: 150, X2: 250, Y2: 150, Class: Phantom},
		}},
	)
	return sc
}

func TestCodecRoundTrip(t *testing.T) {
	sc := sample()
	data, err := json.Marshal(sc)
	require.NoError(t, err)

	var back Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sc.Width, back.Width)
	assert.Equal(t, sc.Height, back.Height)
	assert.Equal(t, sc.Nodes, back.Nodes)
}

func TestDecodeDefaults(t *testing.T) {
	var sc Scene
	err := json.Unmarshal([]byte(`{
		"width": 0,
		"nodes": [
			{"type": "line", "x2": 10, "class": "bogus"},
			{"type": "spline", "x": 1},
			{"type": "text", "content": "A"},
			{"type": "group", "children": [{"type": "circle", "r": 3, "class": "dim"}]}
		]
	}`), &sc)
	require.NoError(t, err)

	assert.Equal(t, float64(DefaultWidth), sc.Width)
	assert.Equal(t, float64(DefaultHeight), sc.Height)
	require.Len(t, sc.Nodes, 3)

	assert.Equal(t, Body, sc.Nodes[0].(Line).Class)
	txt := sc.Nodes[1].(Text)
	assert.Equal(t, AnnotationText, txt.Class)
	assert.Equal(t, AnchorLeft, txt.Anchor)
	g := sc.Nodes[2].(Group)
	assert.Equal(t, Pt(0, 0), g.Pivot)
	assert.Equal(t, Dimension, g.Children[0].(Circle).Class)

	assert.Error(t, json.Unmarshal([]byte(`{"nodes": 5}`), &sc))
}

func TestWalkAndCount(t *testing.T) {
	sc := sample()
	n := 0
	sc.Walk(func(Node) { n++ })
	assert.Equal(t, 6, n)
	assert.Equal(t, 1, sc.Count(Phantom))
	assert.Equal(t, 0, sc.Count(Frame))
	assert.Equal(t, []string{"D500"}, sc.Texts())
	assert.False(t, sc.Empty())

	empty := New(0, 0)
	empty.Add(Group{})
	assert.True(t, empty.Empty())
	assert.Equal(t, float64(DefaultWidth), empty.Width)
}

func TestBoundsWithRotatedGroup(t *testing.T) {
	sc := New(100, 100)
	sc.Add(Group{Rotation: 90, Pivot: Pt(0, 0), Children: []Node{
		Line{X1: 10, X2: 20, Class: Body},
	}})
	b := sc.Bounds()
	require.True(t, b.IsSet())
	assert.InDelta(t, 0, b.MinX, 1e-9)
	assert.InDelta(t, 0, b.MaxX, 1e-9)
	assert.InDelta(t, 10, b.MinY, 1e-9)
	assert.InDelta(t, 20, b.MaxY, 1e-9)

	var empty Scene
	assert.False(t, empty.Bounds().IsSet())
}

func TestRotationAbout(t *testing.T) {
	p := RotateAbout(Pt(20, 10), Pt(10, 10), 90)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 20, p.Y, 1e-9, "positive angles turn clockwise with y down")
	assert.Equal(t, Pt(3, 4), RotateAbout(Pt(3, 4), Pt(10, 10), 0))

	// Two turns about different pivots compose into one rigid motion.
	inner := Group{Rotation: 30, Pivot: Pt(5, 0)}
	outer := Group{Rotation: 60, Pivot: Pt(-5, 2)}
	m := inner.Local().Mul(outer.Local())
	for _, q := range []vec.Vec2{Pt(0, 0), Pt(12, -7), Pt(3.5, 40)} {
		want := RotateAbout(RotateAbout(q, inner.Pivot, 30), outer.Pivot, 60)
		got := Apply(m, q)
		assert.InDelta(t, want.X, got.X, 1e-9)
		assert.InDelta(t, want.Y, got.Y, 1e-9)
	}
	assert.Equal(t, Pt(7, 8), Apply(Group{}.Local(), Pt(7, 8)))
}

func TestTextCorners(t *testing.T) {
	c := TextCorners(Text{X: 100, Y: 50, Content: "ABCD", FontSize: 10, Anchor: AnchorRight})
	// four glyphs at 0.6 of the font size
	assert.InDelta(t, 76, c[0].X, 1e-9)
	assert.InDelta(t, 40, c[0].Y, 1e-9)
	assert.InDelta(t, 100, c[2].X, 1e-9)
	assert.InDelta(t, 50, c[2].Y, 1e-9)

	rot := TextCorners(Text{X: 0, Y: 0, Content: "AB", FontSize: 10, Rotation: 90})
	assert.InDelta(t, 0, rot[3].X, 1e-9)
	assert.InDelta(t, 12, rot[1].Y, 1e-9)
}

func TestTranslate(t *testing.T) {
	g := Translate(Group{Rotation: 30, Pivot: Pt(5, 5), Children: []Node{
		Rect{X: 1, Y: 2, W: 3, H: 4},
		Polyline(Body, Pt(0, 0), Pt(10, 0)),
	}}, 10, -2).(Group)

	assert.Equal(t, Pt(15, 3), g.Pivot)
	assert.Equal(t, Rect{X: 11, Y: 0, W: 3, H: 4}, g.Children[0])
	p := g.Children[1].(Path)
	assert.Equal(t, Pt(10, -2), p.Commands[0].Points[0])
	assert.Equal(t, Pt(20, -2), p.Commands[1].Points[0])
}

func TestCenter(t *testing.T) {
	sc := New(100, 100)
	sc.Add(Rect{W: 20, H: 10})
	sc.Center(5)
	assert.Equal(t, Rect{X: 40, Y: 45, W: 20, H: 10}, sc.Nodes[0])

	wide := New(100, 100)
	wide.Add(Rect{W: 200, H: 10})
	wide.Center(10)
	assert.Equal(t, 220.0, wide.Width)
	assert.Equal(t, 100.0, wide.Height)
	assert.Equal(t, Rect{X: 10, Y: 45, W: 200, H: 10}, wide.Nodes[0])
}

func TestParams(t *testing.T) {
	p := Params{
		"d1":     "  450 ",
		"angle":  json.Number("22.5"),
		"count":  3,
		"blank":  "   ",
		"flag":   true,
		"label":  " NORTH ",
		"taps":   []any{map[string]any{"angle": 90.0}, "junk"},
		"typed":  []Params{{"a": 1.0}},
		"nested": []map[string]any{{"b": 2.0}},
	}

	assert.Equal(t, 450.0, p.Num("d1", 0))
	assert.Equal(t, 22.5, p.Num("angle", 0))
	assert.Equal(t, 3, p.Int("count", 0))
	assert.Equal(t, 7.0, p.Num("blank", 7))
	assert.Equal(t, 1.0, p.Num("label", 1))
	assert.False(t, p.Has("blank"))
	assert.False(t, p.Has("missing"))

	assert.Equal(t, "NORTH", p.Str("label", ""))
	assert.Equal(t, "450", p.Str("d1", ""))
	assert.Equal(t, "true", p.Str("flag", ""))
	assert.Equal(t, "3", p.Str("count", ""))
	assert.Equal(t, "x", p.Str("blank", "x"))

	require.Len(t, p.List("taps"), 1)
	assert.Equal(t, 90.0, p.List("taps")[0].Num("angle", 0))
	assert.Len(t, p.List("typed"), 1)
	assert.Len(t, p.List("nested"), 1)
	assert.Nil(t, p.List("d1"))

	c := p.Clone()
	c["d1"] = 1.0
	assert.Equal(t, "  450 ", p["d1"])

	_, ok := ToFloat([]int{1})
	assert.False(t, ok)
	for _, v := range []any{"NaN", "Inf", "+Inf", "-inf", math.NaN(), math.Inf(1), json.Number("NaN")} {
		_, ok := ToFloat(v)
		assert.False(t, ok, "%v", v)
	}
	odd := Params{"d1": "NaN", "length": "Inf"}
	assert.Equal(t, 500.0, odd.Num("d1", 500))
	assert.Equal(t, 1200, odd.Int("length", 1200))
	f, ok := ToFloat(float32(1.5))
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
}

func TestParseClass(t *testing.T) {
	assert.Equal(t, Flange, ParseClass("flange"))
	assert.Equal(t, AnnotationText, ParseClass("text"))
	assert.Equal(t, Dimension, ParseClass("dim"))
	assert.Equal(t, Body, ParseClass("unknown"))
}
