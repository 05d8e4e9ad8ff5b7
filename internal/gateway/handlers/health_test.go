package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, status int) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/ready" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func checkHealth(t *testing.T, upstreams map[string]string) (int, map[string]any) {
	app := fiber.New()
	app.Get("/health/ready", NewReadiness(time.Second, upstreams).Probe)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestReadinessAllUp(t *testing.T) {
	status, body := checkHealth(t, map[string]string{
		"drafter":  upstream(t, http.StatusOK),
		"projects": upstream(t, http.StatusOK),
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestReadinessDegraded(t *testing.T) {
	status, body := checkHealth(t, map[string]string{
		"drafter":  upstream(t, http.StatusOK),
		"projects": upstream(t, http.StatusInternalServerError),
	})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	ups := body["upstreams"].(map[string]any)
	assert.Equal(t, "ready", ups["drafter"])
	assert.Equal(t, "unavailable", ups["projects"])
}

func TestLiveness(t *testing.T) {
	app := fiber.New()
	app.Get("/health/live", LivenessProbe)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDocs(t *testing.T) {
	docs, err := NewDocs("")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/docs", docs.UI("/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", docs.Spec)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/export:")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<title>Duct Drafter API</title>")
	assert.Contains(t, string(body), `"/docs/openapi.yaml"`)
}

func TestDocsFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(good, []byte("openapi: 3.0.3\ninfo:\n  title: Local <Ducts>\n"), 0o644))
	docs, err := NewDocs(good)
	require.NoError(t, err)
	assert.Equal(t, "Local <Ducts>", docs.title)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("info: [\n"), 0o644))
	_, err = NewDocs(bad)
	assert.Error(t, err)

	untitled := filepath.Join(dir, "untitled.yaml")
	require.NoError(t, os.WriteFile(untitled, []byte("openapi: 3.0.3\n"), 0o644))
	_, err = NewDocs(untitled)
	assert.Error(t, err)

	_, err = NewDocs(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
