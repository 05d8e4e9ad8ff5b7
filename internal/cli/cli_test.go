package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STANDARDS_FILE", "")
	t.Setenv("COMPANY_NAME", "")
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestParseSets(t *testing.T) {
	p, err := ParseSets([]string{
		"d1=500",
		" angle = 45 ",
		"reinforced=true",
		"label=NORTH",
		`taps=[{"distance":400,"angle":90}]`,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, p["d1"])
	assert.Equal(t, 45.0, p["angle"])
	assert.Equal(t, true, p["reinforced"])
	assert.Equal(t, "NORTH", p["label"])
	require.Len(t, p.List("taps"), 1)
	assert.Equal(t, 90.0, p.List("taps")[0].Num("angle", 0))

	for _, bad := range []string{"novalue", "=5", "taps=[{"} {
		_, err := ParseSets([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestGenerateSVGToStdout(t *testing.T) {
	out, _, err := run(t, "generate", "elbow", "--set", "d1=400", "--active", "radius")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `class="dimension active"`)
}

func TestGenerateFormats(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out", "tee.png")
	_, _, err := run(t, "generate", "tee", "-o", pngPath, "--size", "200")
	require.NoError(t, err)
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, max(img.Bounds().Dx(), img.Bounds().Dy()))

	dxfPath := filepath.Join(dir, "plate.dxf")
	_, _, err = run(t, "generate", "blind_plate", "-o", dxfPath)
	require.NoError(t, err)
	data, err := os.ReadFile(dxfPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "0\nEOF\n"))

	out, _, err := run(t, "generate", "reducer", "--format", "json")
	require.NoError(t, err)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "reducer", resp.Archetype)
	assert.NotEmpty(t, resp.Description)
}

func TestGenerateErrors(t *testing.T) {
	_, _, err := run(t, "generate", "spiral")
	assert.ErrorContains(t, err, "unknown archetype")

	_, _, err = run(t, "generate", "elbow", "--format", "gif")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "generate")
	assert.Error(t, err)
}

func TestLoadProject(t *testing.T) {
	p, err := LoadProject(filepath.Join("testdata", "project.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "plant-4", p.Name)
	assert.Equal(t, "P4-EX-001", p.Header.DocumentNo)
	require.Len(t, p.Items, 3)
	assert.Equal(t, 400.0, p.Items[0].Params.Num("d1", 0))
	assert.Equal(t, 2, p.Items[0].Meta.Quantity)
	assert.Len(t, p.Items[1].Params.List("taps"), 1)

	jsonPath := filepath.Join(t.TempDir(), "site.json")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jsonPath, data, 0o644))
	q, err := LoadProject(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, p.Header, q.Header)
	assert.Len(t, q.Items, 3)

	_, err = LoadProject(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets.dxf")
	_, stderr, err := run(t, "export", filepath.Join("testdata", "project.yaml"), "-o", path, "--company", "NORTHWIND DUCTS")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	for _, want := range []string{"PLANT 4 EXHAUST", "NORTHWIND DUCTS", "SUPPORT BRACKET", "ITEM 3", "PAGE 1 OF 1"} {
		assert.Contains(t, out, want)
	}
}

func TestStandardAndArchetypes(t *testing.T) {
	out, _, err := run(t, "standard", "480")
	require.NoError(t, err)
	assert.Contains(t, out, "Bolt circle (PCD):")

	_, _, err = run(t, "standard", "-3")
	assert.Error(t, err)

	out, _, err = run(t, "archetypes")
	require.NoError(t, err)
	assert.Contains(t, out, "blind_plate")
	assert.Contains(t, out, "Lateral Tee")
}
