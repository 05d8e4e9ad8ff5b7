package standards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

func TestLookup_NextTierUp(t *testing.T) {
	row := Lookup(220)
	assert.Equal(t, 250.0, row.NominalDiameter)
	assert.Equal(t, 200.0, Lookup(200).NominalDiameter)
	assert.Equal(t, 100.0, Lookup(10).NominalDiameter)
	assert.False(t, row.Extrapolated)
}

func TestLookup_ExtrapolatesBeyondTable(t *testing.T) {
	last := Lookup(2000)
	row := Lookup(2300)
	assert.True(t, row.Extrapolated)
	assert.Equal(t, last.NominalDiameter, row.NominalDiameter)
	assert.Equal(t, last.OutsideDiameter+300, row.OutsideDiameter)
	assert.Equal(t, last.BoltCircleDiameter+300, row.BoltCircleDiameter)
	assert.Equal(t, last.HoleCount, row.HoleCount)
}

func TestLookup_MonotonicAndIdempotent(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 2500; d += 7 {
		a, b := Lookup(d), Lookup(d)
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a.NominalDiameter, prev, "d=%v", d)
		prev = a.NominalDiameter
	}
}

func TestParse_SortsAndRejectsEmpty(t *testing.T) {
	tbl, err := Parse([]byte("rows:\n  - {dn: 300, holes: 8}\n  - {dn: 100, holes: 4}\n"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, tbl.Rows()[0].NominalDiameter)
	assert.Equal(t, 300.0, tbl.Lookup(150).NominalDiameter)

	_, err = Parse([]byte("rows: []\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("rows: [\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	tbl, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), tbl)

	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows:\n  - {dn: 900, pcd: 950, holes: 20}\n"), 0o644))
	tbl, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, tbl.Lookup(500).HoleCount)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsOverride(t *testing.T) {
	row := Lookup(500)
	tbl := Default()
	assert.False(t, tbl.IsOverride(500, row.HoleCount, row.BoltCircleDiameter))
	assert.False(t, tbl.IsOverride(500, 0, 0))
	assert.True(t, tbl.IsOverride(500, row.HoleCount+2, 0))
	assert.True(t, tbl.IsOverride(500, 0, row.BoltCircleDiameter+10))
}

func TestHydrate_DefaultsAndOverrides(t *testing.T) {
	tbl := Default()
	p := tbl.Hydrate("elbow", scene.Params{"d1": 800, "angle": "", "ext1": nil})
	assert.Equal(t, 800.0, p.Num("d1", 0))
	assert.Equal(t, 90.0, p.Num("angle", 0), "blank values keep the default")
	assert.Equal(t, 400.0, p.Num("radius", 0), "radius follows the diameter")

	p = tbl.Hydrate("elbow", scene.Params{"d1": 800, "radius": 300})
	assert.Equal(t, 300.0, p.Num("radius", 0))
}

func TestHydrate_NonNumericKeepsDefault(t *testing.T) {
	tbl := Default()
	p := tbl.Hydrate("elbow", scene.Params{"d1": "NaN", "angle": "Inf", "radius": "wide"})
	assert.Equal(t, tbl.Hydrate("elbow", nil), p)

	p = tbl.Hydrate("elbow", scene.Params{"d1": "800", "radius": "-Inf"})
	assert.Equal(t, "800", p["d1"])
	assert.Equal(t, 400.0, p.Num("radius", 0), "a rejected radius is derived again")
}

func TestHydrate_Idempotent(t *testing.T) {
	tbl := Default()
	once := tbl.Hydrate("blind_plate", scene.Params{"d1": 1250})
	twice := tbl.Hydrate("blind_plate", once)
	assert.Equal(t, once, twice)

	row := tbl.Lookup(1250)
	assert.Equal(t, row.HoleCount, once.Int("holes", 0))
	assert.Equal(t, row.BoltCircleDiameter, once.Num("pcd", 0))
}

func TestHydrate_UnknownArchetype(t *testing.T) {
	p := Default().Hydrate("nope", scene.Params{"d1": 10})
	assert.Equal(t, scene.Params{"d1": 10}, p)
	assert.Nil(t, Default().Defaults("nope"))
}

func TestDefaultsCoverEveryArchetype(t *testing.T) {
	names := Default().Archetypes()
	assert.Contains(t, names, "straight_with_taps")
	assert.Contains(t, names, "manual")
	assert.Len(t, names, 17)

	taps := Default().Defaults("straight_with_taps").List("taps")
	assert.Len(t, taps, 2)
}
