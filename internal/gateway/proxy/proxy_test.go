package proxy

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo answers with what it received.
func echo(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Path", r.URL.RequestURI())
		w.Header().Set("X-Auth", r.Header.Get("Authorization"))
		w.Header().Set("X-Type", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/dxf")
		w.WriteHeader(http.StatusAccepted)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestForwardsPathQueryAndHeaders(t *testing.T) {
	up := echo(t)
	app := fiber.New()
	app.Get("/api/v1/projects/:id/dxf", New(time.Second).To(up.URL, "/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/7/dxf?rev=B", nil)
	req.Header.Set("Authorization", "Bearer t0k")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "/projects/7/dxf?rev=B", resp.Header.Get("X-Path"))
	assert.Equal(t, "Bearer t0k", resp.Header.Get("X-Auth"))
	assert.Equal(t, "application/dxf", resp.Header.Get("Content-Type"))
}

func TestForwardsMultipartUnchanged(t *testing.T) {
	up := echo(t)
	app := fiber.New()
	app.Post("/api/v1/convert", New(time.Second).To(up.URL, "/api/v1"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "a.svg")
	require.NoError(t, err)
	part.Write([]byte("<svg/>"))
	require.NoError(t, mw.Close())
	sent := buf.String()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(sent))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, sent, string(got))
	assert.Equal(t, mw.FormDataContentType(), resp.Header.Get("X-Type"))
}

func TestUnreachableUpstream(t *testing.T) {
	app := fiber.New()
	app.Get("/x", New(time.Second).To("http://127.0.0.1:1", ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
