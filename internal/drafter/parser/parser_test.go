package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

func TestParsePathAbsolute(t *testing.T) {
	cmds, err := ParsePath("M 10,20 L30 40 Q 50 60 70 80 Z")
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, scene.MoveTo, cmds[0].Op)
	assert.Equal(t, []vec.Vec2{{X: 10, Y: 20}}, cmds[0].Points)
	assert.Equal(t, scene.QuadTo, cmds[2].Op)
	assert.Equal(t, []vec.Vec2{{X: 50, Y: 60}, {X: 70, Y: 80}}, cmds[2].Points)
	assert.Equal(t, scene.Close, cmds[3].Op)
}

func TestParsePathRelativeAndImplicit(t *testing.T) {
	cmds, err := ParsePath("m10 10 5 0 h10 v-5 l-1-1 z l 2 2")
	require.NoError(t, err)

	want := []vec.Vec2{{X: 10, Y: 10}, {X: 15, Y: 10}, {X: 25, Y: 10}, {X: 25, Y: 5}, {X: 24, Y: 4}}
	for i, p := range want {
		assert.Equal(t, p, cmds[i].Points[0], "command %d", i)
	}
	assert.Equal(t, scene.LineTo, cmds[1].Op, "pairs after a moveto are linetos")
	// After closepath the pen is back at the subpath start.
	assert.Equal(t, vec.Vec2{X: 12, Y: 12}, cmds[6].Points[0])
}

func TestParsePathErrors(t *testing.T) {
	for _, d := range []string{"", "L 1 2", "M 1", "M 1 2 Q 3 4 5", "M 1 2 A 1 1 0 0 1 3 3", "M 1 2 Z 3"} {
		_, err := ParsePath(d)
		assert.Error(t, err, d)
	}
}

func TestFormatPath(t *testing.T) {
	cmds, err := ParsePath("M0 0 L10.5 -0.00001 Q1 2 3 4 Z")
	require.NoError(t, err)
	assert.Equal(t, "M 0 0 L 10.5 0 Q 1 2 3 4 Z", FormatPath(cmds))
}

func TestParseTransform(t *testing.T) {
	tfs, err := ParseTransform("translate(10, 20) rotate(45 100 100)")
	require.NoError(t, err)
	require.Len(t, tfs, 2)
	assert.Equal(t, vec.Vec2{X: 10, Y: 20}, tfs[0].Offset)
	assert.True(t, tfs[1].Rotate)
	assert.Equal(t, 45.0, tfs[1].Angle)
	assert.Equal(t, vec.Vec2{X: 100, Y: 100}, tfs[1].Pivot)

	_, err = ParseTransform("scale(2)")
	assert.Error(t, err)
	_, err = ParseTransform("rotate(1 2)")
	assert.Error(t, err)
}

const sample = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="850" height="600">
  <style>.body{stroke:#000}</style>
  <line x1="0" y1="0" x2="10" y2="0" class="dimension active"/>
  <rect x="1" y="2" width="3" height="4" class="flange"/>
  <circle cx="5" cy="5" r="2"/>
  <path d="M 0 0 L 5 5" class="phantom"/>
  <text x="20" y="30" font-size="14" text-anchor="middle" transform="rotate(-90 20 30)">R=250</text>
  <g transform="rotate(30 50 50)">
    <g transform="translate(10 0)">
      <line x1="0" y1="0" x2="1" y2="1" class="body"/>
    </g>
  </g>
  <ellipse cx="1" cy="1" rx="2" ry="3"/>
  <path d="M 0 0 A 5 5 0 0 1 10 10"/>
  <circle cx="oops" cy="0" r="1"/>
</svg>`

func TestParseSVG(t *testing.T) {
	res, err := ParseSVG(strings.NewReader(sample))
	require.NoError(t, err)
	sc := res.Scene

	assert.Equal(t, 850.0, sc.Width)
	assert.Equal(t, 600.0, sc.Height)
	assert.Equal(t, 3, res.Skipped, "ellipse, arc path and bad circle")
	require.Len(t, sc.Nodes, 6)

	line := sc.Nodes[0].(scene.Line)
	assert.Equal(t, scene.Dimension, line.Class)
	assert.True(t, line.Active)

	assert.Equal(t, scene.Body, sc.Nodes[2].(scene.Circle).Class, "unclassed shapes are body lines")

	txt := sc.Nodes[4].(scene.Text)
	assert.Equal(t, "R=250", txt.Content)
	assert.Equal(t, scene.AnchorCenter, txt.Anchor)
	assert.Equal(t, -90.0, txt.Rotation)
	assert.Equal(t, 14.0, txt.FontSize)
	assert.Equal(t, scene.AnnotationText, txt.Class)

	g := sc.Nodes[5].(scene.Group)
	assert.Equal(t, 30.0, g.Rotation)
	assert.Equal(t, vec.Vec2{X: 50, Y: 50}, g.Pivot)
	assert.Equal(t, scene.Line{X1: 10, Y1: 0, X2: 11, Y2: 1, Class: scene.Body}, g.Children[0])
}

func TestParseSVGViewBox(t *testing.T) {
	res, err := ParseSVG(strings.NewReader(`<svg viewBox="0 0 300 200"></svg>`))
	require.NoError(t, err)
	assert.Equal(t, 300.0, res.Scene.Width)
	assert.Equal(t, 200.0, res.Scene.Height)
	assert.True(t, res.Scene.Empty())
}

func TestParseSVGInvalid(t *testing.T) {
	for _, doc := range []string{"", "<html></html>", "<svg><line x1='0'", "not xml"} {
		_, err := ParseSVG(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}
