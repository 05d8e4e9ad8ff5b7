package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

func textOf(t *testing.T, nodes []scene.Node) scene.Text {
	t.Helper()
	for _, n := range nodes {
		if txt, ok := n.(scene.Text); ok {
			return txt
		}
	}
	t.Fatal("no text node")
	return scene.Text{}
}

func TestHorizontalDimension(t *testing.T) {
	nodes := Horizontal(0, 100, 200, 20, "100", true)
	require.Len(t, nodes, 6, "two extension lines, dimension line, two arrows, label")

	dim := nodes[2].(scene.Line)
	assert.Equal(t, 180.0, dim.Y1, "positive offset lifts the line")
	assert.True(t, dim.Active)

	label := textOf(t, nodes)
	assert.Equal(t, "100", label.Content)
	assert.InDelta(t, 50, label.X, 1e-9)
	assert.InDelta(t, 176, label.Y, 1e-9)
	assert.InDelta(t, 0, label.Rotation, 1e-9)
	assert.Equal(t, scene.Dimension, label.Class)
}

func TestDimension_NoExtensionsWithoutOffset(t *testing.T) {
	nodes := Horizontal(0, 100, 0, 0, "100", false)
	assert.Len(t, nodes, 4)
}

func TestVerticalDimensionReadsBottomToTop(t *testing.T) {
	nodes := Vertical(50, 0, 100, 20, "100", false)
	dim := nodes[2].(scene.Line)
	assert.InDelta(t, 30, dim.X1, 1e-9)

	label := textOf(t, nodes)
	assert.InDelta(t, -90, label.Rotation, 1e-9)
}

func TestDimension_LabelNeverUpsideDown(t *testing.T) {
	nodes := Dimension(Dim{From: scene.Pt(100, 0), To: scene.Pt(0, 0), Text: "x"})
	label := textOf(t, nodes)
	assert.InDelta(t, 0, label.Rotation, 1e-9)
	assert.Nil(t, Dimension(Dim{From: scene.Pt(1, 1), To: scene.Pt(1, 1)}))
}

func TestArrowIsClosedTriangle(t *testing.T) {
	p := Arrow(scene.Pt(10, 10), scene.Pt(3, 0), false).(scene.Path)
	require.Len(t, p.Commands, 4)
	assert.Equal(t, scene.Close, p.Commands[3].Op)
	assert.Equal(t, scene.Pt(10, 10), p.Commands[0].Points[0])
	assert.InDelta(t, 2, p.Commands[1].Points[0].X, 1e-9)
}

func TestFlange(t *testing.T) {
	straight := Flange(scene.Pt(100, 100), 50, 0)
	r, ok := straight.(scene.Rect)
	require.True(t, ok)
	assert.Equal(t, scene.Flange, r.Class)
	assert.Equal(t, 120.0, r.H)

	rotated := Flange(scene.Pt(100, 100), 50, 45)
	g, ok := rotated.(scene.Group)
	require.True(t, ok)
	assert.Equal(t, 45.0, g.Rotation)
	assert.Len(t, g.Children, 1)

	sc := scene.New(0, 0)
	sc.Add(straight, rotated, FlangeH(scene.Pt(0, 0), 10))
	assert.Equal(t, 3, sc.Count(scene.Flange))
}

func TestLeader(t *testing.T) {
	nodes, occupied := Leader(scene.Pt(100, 100), "", -1, -1, true)
	assert.Nil(t, nodes)
	assert.Zero(t, occupied)

	nodes, occupied = Leader(scene.Pt(100, 100), "SEE NOTE", 1, -1, true)
	require.NotEmpty(t, nodes)
	assert.Greater(t, occupied, 0.0)
	label := textOf(t, nodes)
	assert.Equal(t, "SEE NOTE", label.Content)
	assert.Equal(t, scene.AnchorLeft, label.Anchor)
}

func TestCenterlineOvershoot(t *testing.T) {
	l := Centerline(scene.Pt(0, 0), scene.Pt(100, 0), 10)
	assert.Equal(t, -10.0, l.X1)
	assert.Equal(t, 110.0, l.X2)
	assert.Equal(t, scene.Centerline, l.Class)
}

func TestDimensionStack(t *testing.T) {
	stations := []Station{
		{X: 100, Label: "100"},
		{X: 105, Label: "105"},
		{X: 300, Label: "300"},
	}
	nodes, outer := DimensionStack(0, 200, stations, 400, false)
	assert.Equal(t, float64(2*TierSpacing), outer)

	var ys []float64
	for _, n := range nodes {
		if txt, ok := n.(scene.Text); ok {
			ys = append(ys, txt.Y)
		}
	}
	require.Len(t, ys, 3)
	assert.Equal(t, ys[0], ys[2], "far labels share the first tier")
	assert.Less(t, ys[1], ys[0], "colliding label moves outward")

	empty, h := DimensionStack(0, 0, nil, 100, false)
	assert.Nil(t, empty)
	assert.Zero(t, h)
}

func TestDimensionStackLabelsNeverOverlap(t *testing.T) {
	var stations []Station
	for _, x := range []float64{192, 222, 230, 60, 61, 300, 330, 410, 415, 470} {
		stations = append(stations, Station{X: x, Label: Num(x * 2.5)})
	}
	nodes, _ := DimensionStack(0, 0, stations, 480, false)

	var labels []scene.Text
	for _, n := range nodes {
		if txt, ok := n.(scene.Text); ok {
			labels = append(labels, txt)
		}
	}
	require.Len(t, labels, len(stations))

	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			a, b := labels[i], labels[j]
			if a.Y != b.Y {
				continue
			}
			ac, bc := scene.TextCorners(a), scene.TextCorners(b)
			apart := ac[1].X <= bc[0].X || bc[1].X <= ac[0].X
			assert.True(t, apart, "labels %q and %q share a tier and overlap", a.Content, b.Content)
		}
	}
}

func TestDimensionStackSeparatesCloseStations(t *testing.T) {
	// Stations 30 apart put their mid-line labels only 15 apart.
	nodes, outer := DimensionStack(0, 0, []Station{{X: 192, Label: "400"}, {X: 222, Label: "520"}}, 480, false)
	assert.Equal(t, float64(2*TierSpacing), outer)
	txt := textOf(t, nodes)
	assert.Equal(t, "400", txt.Content)
	for _, n := range nodes {
		if other, ok := n.(scene.Text); ok && other.Content == "520" {
			assert.NotEqual(t, txt.Y, other.Y)
		}
	}
}

func TestNum(t *testing.T) {
	assert.Equal(t, "250", Num(250))
	assert.Equal(t, "12.3", Num(12.34))
	assert.Equal(t, "0", Num(-0.01))
	assert.Equal(t, "Ø500", Diameter(500))
}
