package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

func TestPNGDecodesAtRequestedSize(t *testing.T) {
	sc, err := fittings.Generate(fittings.Elbow, nil, "")
	require.NoError(t, err)

	data, err := PNG(&sc, 300)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 300, max(b.Dx(), b.Dy()))
}

func TestRenderDefaultsAndCapsSize(t *testing.T) {
	sc := scene.New(100, 50)
	sc.Add(scene.Line{X1: 0, Y1: 25, X2: 100, Y2: 25, Class: scene.Body})

	img, err := Render(sc, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Less(t, img.Bounds().Dy(), img.Bounds().Dx(), "aspect is kept")

	img, err = Render(sc, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, MaxSize, img.Bounds().Dx())
}

func TestRenderStrokesInClassColour(t *testing.T) {
	sc := scene.New(100, 100)
	sc.Add(scene.Line{X1: 0, Y1: 50, X2: 100, Y2: 50, Class: scene.Body, Active: true})

	img, err := Render(sc, 104)
	require.NoError(t, err)

	// The line crosses the middle row; the corner stays blank.
	mid := img.RGBAAt(52, 51)
	assert.Greater(t, mid.R, mid.G, "active lines are red")
	assert.Equal(t, uint8(255), img.RGBAAt(1, 1).G)
}

func TestRenderFollowsGroupRotation(t *testing.T) {
	// A horizontal line turned a quarter about its middle becomes vertical.
	sc := scene.New(100, 100)
	sc.Add(scene.Group{Rotation: 90, Pivot: scene.Pt(50, 50), Children: []scene.Node{
		scene.Line{X1: 0, Y1: 50, X2: 100, Y2: 50, Class: scene.Body, Active: true},
	}})

	img, err := Render(sc, 108)
	require.NoError(t, err)
	b := img.Bounds()
	mid := img.RGBAAt(b.Dx()/2, b.Dy()/2+20)
	assert.Greater(t, mid.R, mid.G, "the turned line runs down the middle")
	side := img.RGBAAt(b.Dx()/2+20, b.Dy()/2)
	assert.Equal(t, uint8(255), side.G, "nothing is left where the line started")
}

func TestRenderNilScene(t *testing.T) {
	_, err := PNG(nil, 10)
	assert.Error(t, err)
}
