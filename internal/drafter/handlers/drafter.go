package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/layout"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/mapper"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/parser"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/preview"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// DXFContentType is the media type of exported documents.
const DXFContentType = "application/dxf"

// SkippedHeader reports how many scene nodes were dropped while transcoding.
const SkippedHeader = "X-Skipped-Nodes"

// ============================================================
// Drafter Handler
// ============================================================

type DrafterHandler struct {
	lib      *fittings.Library
	company  string
	renderer *mapper.Renderer
}

func NewDrafterHandler(lib *fittings.Library, company string) *DrafterHandler {
	if lib == nil {
		lib = fittings.New(nil)
	}
	return &DrafterHandler{lib: lib, company: company, renderer: mapper.NewRenderer()}
}

// Register mounts the drafter routes on r.
func (h *DrafterHandler) Register(r fiber.Router) {
	r.Get("/archetypes", h.Archetypes)
	r.Post("/generate", h.Generate)
	r.Post("/render", h.Render)
	r.Post("/convert", h.Convert)
	r.Post("/transcode", h.Transcode)
	r.Post("/export", h.Export)
	r.Get("/standards/:diameter", h.Standard)
}

// Archetypes lists the drawable archetypes with their default parameters.
func (h *DrafterHandler) Archetypes(c fiber.Ctx) error {
	infos := h.lib.Archetypes()
	out := make([]models.ArchetypeInfo, len(infos))
	for i, a := range infos {
		out[i] = models.ArchetypeInfo{Name: a.Name, Title: a.Title, Defaults: a.Defaults}
	}
	return c.JSON(out)
}

// Generate draws one archetype as SVG, PNG or a JSON scene.
func (h *DrafterHandler) Generate(c fiber.Ctx) error {
	var req models.GenerateRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.Archetype == "" {
		return fail(c, http.StatusBadRequest, "archetype required")
	}
	log.Printf("[DRAFTER] Generate %s (format %q, active %q)", req.Archetype, req.Format, req.ActiveField)

	sc, err := h.lib.Generate(req.Archetype, req.Params, req.ActiveField)
	if errors.Is(err, fittings.ErrUnknownArchetype) {
		return fail(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	switch strings.ToLower(req.Format) {
	case "", "svg":
		return h.sendSVG(c, &sc)
	case "png":
		data, err := preview.PNG(&sc, req.Size)
		if err != nil {
			log.Printf("[DRAFTER] Preview error: %v", err)
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		c.Set("Content-Type", "image/png")
		return c.Send(data)
	case "json":
		desc, _ := h.lib.Describe(req.Archetype, req.Params)
		return c.JSON(models.GenerateResponse{
			Archetype:   req.Archetype,
			Description: desc,
			Params:      h.lib.Table().Hydrate(req.Archetype, req.Params),
			Scene:       sc,
		})
	default:
		return fail(c, http.StatusBadRequest, fmt.Sprintf("unknown format %q", req.Format))
	}
}

// Render serializes a JSON scene to SVG.
func (h *DrafterHandler) Render(c fiber.Ctx) error {
	var sc scene.Scene
	if err := decode(c, &sc); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return h.sendSVG(c, &sc)
}

// Convert reads SVG markup into a scene. The markup is taken from the
// multipart field "file" or, failing that, the raw body.
func (h *DrafterHandler) Convert(c fiber.Ctx) error {
	data, err := upload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	log.Printf("[DRAFTER] Convert %d bytes", len(data))

	res, err := parser.ParseSVG(bytes.NewReader(data))
	if err != nil {
		log.Printf("[DRAFTER] Conversion error: %v", err)
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(models.ConvertResponse{Scene: res.Scene, Skipped: res.Skipped})
}

// Transcode converts one scene into a DXF document. Without a placement
// the scene keeps its own size, centred on its canvas.
func (h *DrafterHandler) Transcode(c fiber.Ctx) error {
	var req models.TranscodeRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	p := req.Placement
	if p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		p = dxf.CanvasPlacement(&req.Scene)
	}

	ents, stats := dxf.Transcode(&req.Scene, p)
	doc := dxf.NewDocument()
	doc.Add(ents...)
	doc.Stats.Skipped = stats.Skipped
	return sendDXF(c, doc, "scene.dxf")
}

// Export composes the items onto pages and returns the document.
func (h *DrafterHandler) Export(c fiber.Ctx) error {
	var req models.ExportRequest
	if err := decode(c, &req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	log.Printf("[EXPORT] %d items, document %q", len(req.Items), req.Header.DocumentNo)

	doc := layout.Compose(req.Header, req.Items, layout.Options{Company: h.company, Library: h.lib})
	if doc.Stats.Skipped > 0 {
		log.Printf("[EXPORT] Skipped %d nodes", doc.Stats.Skipped)
	}
	return sendDXF(c, doc, FileName(req.Header.DocumentNo))
}

// Standard returns the flange table row for a diameter.
func (h *DrafterHandler) Standard(c fiber.Ctx) error {
	d, err := strconv.ParseFloat(c.Params("diameter"), 64)
	if err != nil || !(d > 0) || math.IsInf(d, 0) {
		return fail(c, http.StatusBadRequest, "diameter must be a positive number")
	}
	return c.JSON(h.lib.Table().Lookup(d))
}

func (h *DrafterHandler) sendSVG(c fiber.Ctx, sc *scene.Scene) error {
	out, err := h.renderer.Render(sc)
	if err != nil {
		log.Printf("[DRAFTER] Render error: %v", err)
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(out)
}

// ============================================================
// Helpers
// ============================================================

// FileName turns a document number into a download name.
func FileName(documentNo string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ' || r == '/':
			return '_'
		}
		return -1
	}, strings.TrimSpace(documentNo))
	if name == "" {
		name = "drawing"
	}
	return name + ".dxf"
}

func sendDXF(c fiber.Ctx, doc *dxf.Document, name string) error {
	c.Set("Content-Type", DXFContentType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set(SkippedHeader, strconv.Itoa(doc.Stats.Skipped))
	return c.Send(doc.Bytes())
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		log.Printf("[DRAFTER] Decode error: %v", err)
		return errors.New("invalid JSON payload")
	}
	return nil
}

func upload(c fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("file required in multipart/form-data")
		}
		f, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	if len(c.Body()) == 0 {
		return nil, errors.New("body required")
	}
	return c.Body(), nil
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: msg})
}
