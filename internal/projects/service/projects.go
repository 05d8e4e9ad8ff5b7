package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/layout"
	drafter "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/models"
)

// ErrInvalidProject wraps validation failures of a saved project.
var ErrInvalidProject = errors.New("invalid project")

// Store persists project records.
type Store interface {
	Save(ctx context.Context, rec *models.Record) error
	GetByID(ctx context.Context, id string) (*models.Record, error)
	List(ctx context.Context) ([]models.Summary, error)
	Delete(ctx context.Context, id string) error
}

// ============================================================
// Project Service
// ============================================================

type ProjectService struct {
	store   Store
	lib     *fittings.Library
	company string
}

func NewProjectService(store Store, lib *fittings.Library, company string) *ProjectService {
	if lib == nil {
		lib = fittings.New(nil)
	}
	return &ProjectService{store: store, lib: lib, company: company}
}

// Save validates p and stores it under its name.
func (s *ProjectService) Save(ctx context.Context, p drafter.Project) (*models.Record, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidProject)
	}
	for i, item := range p.Items {
		if item.Scene == nil && !fittings.Known(item.Archetype) {
			return nil, fmt.Errorf("%w: item %d: unknown archetype %q", ErrInvalidProject, i+1, item.Archetype)
		}
		if item.Meta.Quantity < 0 {
			return nil, fmt.Errorf("%w: item %d: negative quantity", ErrInvalidProject, i+1)
		}
	}

	rec := &models.Record{Name: name, Header: p.Header, Items: p.Items}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Record, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]models.Summary, error) {
	return s.store.List(ctx)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Export composes the stored project into a DXF document.
func (s *ProjectService) Export(ctx context.Context, id string) (*dxf.Document, *models.Record, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc := layout.Compose(rec.Header, rec.Items, layout.Options{Company: s.company, Library: s.lib})
	return doc, rec, nil
}
