package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	drafterhandlers "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/handlers"
	drafter "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/repository"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/service"
)

// ============================================================
// Projects Handler
// ============================================================

type ProjectsHandler struct {
	projects *service.ProjectService
	sessions *service.SessionManager
}

func NewProjectsHandler(projects *service.ProjectService, sessions *service.SessionManager) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, sessions: sessions}
}

type loginRequest struct {
	AccessCode string `json:"accessCode"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register mounts the login route and the token-gated project routes.
func (h *ProjectsHandler) Register(r fiber.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	p := r.Group("/projects", h.RequireSession)
	p.Get("/", h.List)
	p.Post("/", h.Save)
	p.Get("/:id", h.Get)
	p.Delete("/:id", h.Delete)
	p.Get("/:id/dxf", h.Export)
}

// Login exchanges the access code for a session token.
func (h *ProjectsHandler) Login(c fiber.Ctx) error {
	log.Printf("[PROJECTS] Login request")

	if len(c.Body()) == 0 {
		return fail(c, http.StatusBadRequest, "empty body")
	}
	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	token, ok := h.sessions.Login(req.AccessCode)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid access code")
	}
	return c.JSON(loginResponse{Token: token})
}

func (h *ProjectsHandler) Logout(c fiber.Ctx) error {
	if token := bearer(c); token != "" {
		h.sessions.Revoke(token)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequireSession rejects requests without a valid bearer token.
func (h *ProjectsHandler) RequireSession(c fiber.Ctx) error {
	if !h.sessions.Valid(bearer(c)) {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}

func (h *ProjectsHandler) List(c fiber.Ctx) error {
	list, err := h.projects.List(c.Context())
	if err != nil {
		return h.failWith(c, err)
	}
	return c.JSON(list)
}

// Save creates the project or replaces the one with the same name.
func (h *ProjectsHandler) Save(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return fail(c, http.StatusBadRequest, "empty body")
	}
	var p drafter.Project
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	rec, err := h.projects.Save(c.Context(), p)
	if err != nil {
		return h.failWith(c, err)
	}
	log.Printf("[PROJECTS] Saved %q (%s, %d items)", rec.Name, rec.ID, len(rec.Items))
	return c.Status(http.StatusCreated).JSON(rec)
}

func (h *ProjectsHandler) Get(c fiber.Ctx) error {
	rec, err := h.projects.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.failWith(c, err)
	}
	return c.JSON(rec)
}

func (h *ProjectsHandler) Delete(c fiber.Ctx) error {
	if err := h.projects.Delete(c.Context(), c.Params("id")); err != nil {
		return h.failWith(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Export returns the project as a DXF document.
func (h *ProjectsHandler) Export(c fiber.Ctx) error {
	doc, rec, err := h.projects.Export(c.Context(), c.Params("id"))
	if err != nil {
		return h.failWith(c, err)
	}
	log.Printf("[EXPORT] Project %q: %d entities, %d skipped", rec.Name, doc.Len(), doc.Stats.Skipped)

	name := rec.Header.DocumentNo
	if name == "" {
		name = rec.Name
	}
	c.Set("Content-Type", drafterhandlers.DXFContentType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, drafterhandlers.FileName(name)))
	c.Set(drafterhandlers.SkippedHeader, strconv.Itoa(doc.Stats.Skipped))
	return c.Send(doc.Bytes())
}

// ============================================================
// Helpers
// ============================================================

func (h *ProjectsHandler) failWith(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrInvalidProject):
		return fail(c, http.StatusBadRequest, err.Error())
	}
	log.Printf("[PROJECTS] %s %s: %v", c.Method(), c.Path(), err)
	return fail(c, http.StatusInternalServerError, "internal error")
}

func bearer(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(drafter.ErrorResponse{Error: msg})
}
