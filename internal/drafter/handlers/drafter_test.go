package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/standards"
)

func newApp() *fiber.App {
	app := fiber.New()
	NewDrafterHandler(nil, "TESTCO").Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestArchetypes(t *testing.T) {
	resp, body := do(t, newApp(), http.MethodGet, "/archetypes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []models.ArchetypeInfo
	require.NoError(t, json.Unmarshal(body, &infos))
	names := make([]string, len(infos))
	for i, a := range infos {
		names[i] = a.Name
	}
	assert.Contains(t, names, fittings.Elbow)
	assert.Contains(t, names, fittings.BlindPlate)
}

func TestGenerateSVG(t *testing.T) {
	resp, body := do(t, newApp(), http.MethodPost, "/generate", models.GenerateRequest{
		Archetype: fittings.Elbow, ActiveField: "radius",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<svg")
	assert.Contains(t, string(body), `class="dimension active"`)
}

func TestGenerateJSON(t *testing.T) {
	resp, body := do(t, newApp(), http.MethodPost, "/generate", models.GenerateRequest{
		Archetype: fittings.Straight, Format: "json",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.GenerateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, fittings.Straight, out.Archetype)
	assert.NotEmpty(t, out.Description)
	assert.NotEmpty(t, out.Params)
	assert.False(t, out.Scene.Empty())
}

func TestGeneratePNG(t *testing.T) {
	resp, body := do(t, newApp(), http.MethodPost, "/generate", models.GenerateRequest{
		Archetype: fittings.Reducer, Format: "png", Size: 128,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 128, max(img.Bounds().Dx(), img.Bounds().Dy()))
}

func TestGenerateErrors(t *testing.T) {
	app := newApp()
	cases := []struct {
		name   string
		body   any
		status int
	}{
		{"empty body", nil, http.StatusBadRequest},
		{"bad json", "{", http.StatusBadRequest},
		{"no archetype", models.GenerateRequest{}, http.StatusBadRequest},
		{"unknown archetype", models.GenerateRequest{Archetype: "spiral"}, http.StatusNotFound},
		{"unknown format", models.GenerateRequest{Archetype: fittings.Elbow, Format: "gif"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/generate", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			var e models.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestRenderThenConvert(t *testing.T) {
	app := newApp()
	sc, err := fittings.Generate(fittings.Elbow, nil, "")
	require.NoError(t, err)

	resp, svg := do(t, app, http.MethodPost, "/render", sc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "elbow.svg")
	require.NoError(t, err)
	_, err = part.Write(svg)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.ConvertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Skipped)
	assert.ElementsMatch(t, sc.Texts(), out.Scene.Texts())
}

func TestConvertRejectsNonSVG(t *testing.T) {
	resp, _ := do(t, newApp(), http.MethodPost, "/convert", "<html></html>")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTranscodeDefaultsToSceneSize(t *testing.T) {
	sc, err := fittings.Generate(fittings.BlindPlate, nil, "")
	require.NoError(t, err)

	resp, body := do(t, newApp(), http.MethodPost, "/transcode", models.TranscodeRequest{Scene: sc})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, DXFContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, "0", resp.Header.Get(SkippedHeader))
	assert.True(t, strings.HasSuffix(string(body), "0\nEOF\n"))
	assert.Contains(t, string(body), "CIRCLE")
}

func TestExport(t *testing.T) {
	req := models.ExportRequest{
		Header: models.DocumentHeader{Project: "PLANT 4", DocumentNo: "DOC 7/A"},
		Items: []models.Item{
			{Archetype: fittings.Elbow, Meta: models.ItemMeta{Tag: "E1", Quantity: 2}},
			{Archetype: "spiral"},
		},
	}
	resp, body := do(t, newApp(), http.MethodPost, "/export", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="DOC_7_A.dxf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "1", resp.Header.Get(SkippedHeader))

	out := string(body)
	assert.Contains(t, out, "TESTCO")
	assert.Contains(t, out, "PLANT 4")
	assert.Contains(t, out, "PAGE 1 OF 1")
}

func TestStandard(t *testing.T) {
	app := newApp()
	resp, body := do(t, app, http.MethodGet, "/standards/480", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var row standards.Row
	require.NoError(t, json.Unmarshal(body, &row))
	assert.Equal(t, standards.Lookup(480), row)
	assert.GreaterOrEqual(t, row.NominalDiameter, 480.0)

	for _, bad := range []string{"abc", "-5", "0"} {
		resp, _ := do(t, app, http.MethodGet, "/standards/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "drawing.dxf", FileName("  "))
	assert.Equal(t, "DOC-1.dxf", FileName("DOC-1"))
	assert.Equal(t, "A_B.dxf", FileName("A B\"\n"))
}
