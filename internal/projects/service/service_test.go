package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/fittings"
	drafter "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/models"
)

var errMissing = errors.New("missing")

// memStore keeps records in a map keyed by name.
type memStore struct {
	mu     sync.Mutex
	byName map[string]*models.Record
}

func newMemStore() *memStore { return &memStore{byName: map[string]*models.Record{}} }

func (m *memStore) Save(_ context.Context, rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.byName[rec.Name]; ok {
		rec.ID = old.ID
	} else {
		rec.ID = strconv.Itoa(len(m.byName) + 1)
	}
	cp := *rec
	m.byName[rec.Name] = &cp
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byName {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errMissing
}

func (m *memStore) List(context.Context) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Summary
	for _, r := range m.byName {
		out = append(out, models.Summary{ID: r.ID, Name: r.Name, Items: len(r.Items)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, r := range m.byName {
		if r.ID == id {
			delete(m.byName, name)
			return nil
		}
	}
	return errMissing
}

func TestSessions(t *testing.T) {
	m := NewSessionManager("open-sesame")

	_, ok := m.Login("wrong")
	assert.False(t, ok)
	_, ok = m.Login("")
	assert.False(t, ok)

	token, ok := m.Login("open-sesame")
	require.True(t, ok)
	assert.True(t, m.Valid(token))
	assert.False(t, m.Valid("other"))

	other, _ := m.Login("open-sesame")
	assert.NotEqual(t, token, other)

	m.Revoke(token)
	assert.False(t, m.Valid(token))
	assert.True(t, m.Valid(other))
}

func TestSaveValidates(t *testing.T) {
	svc := NewProjectService(newMemStore(), nil, "")
	ctx := context.Background()

	cases := map[string]drafter.Project{
		"blank name":   {Name: "  "},
		"unknown item": {Name: "p", Items: []drafter.Item{{Archetype: "spiral"}}},
		"negative qty": {Name: "p", Items: []drafter.Item{{Archetype: fittings.Elbow, Meta: drafter.ItemMeta{Quantity: -1}}}},
	}
	for name, p := range cases {
		_, err := svc.Save(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidProject, name)
	}

	stored := scene.New(10, 10)
	stored.Add(scene.Line{X2: 10, Y2: 10})
	rec, err := svc.Save(ctx, drafter.Project{
		Name:  " p ",
		Items: []drafter.Item{{Archetype: "imported", Scene: stored}},
	})
	require.NoError(t, err)
	assert.Equal(t, "p", rec.Name, "names are trimmed")
}

func TestExport(t *testing.T) {
	svc := NewProjectService(newMemStore(), nil, "DUCTWORKS")
	ctx := context.Background()

	rec, err := svc.Save(ctx, drafter.Project{
		Name:   "plant",
		Header: drafter.DocumentHeader{DocumentNo: "DOC-9"},
		Items:  []drafter.Item{{Archetype: fittings.Straight}, {Archetype: fittings.Tee}},
	})
	require.NoError(t, err)

	doc, got, err := svc.Export(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "DOC-9", got.Header.DocumentNo)
	assert.Zero(t, doc.Stats.Skipped)

	var texts []string
	for _, e := range doc.Entities() {
		if txt, ok := e.(dxf.TextEntity); ok {
			texts = append(texts, txt.Content)
		}
	}
	assert.Contains(t, texts, "DUCTWORKS")
	assert.Contains(t, texts, "ITEM 2")

	_, _, err = svc.Export(ctx, "nope")
	assert.ErrorIs(t, err, errMissing)
}
