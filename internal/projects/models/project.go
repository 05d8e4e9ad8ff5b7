package models

import (
	drafter "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
)

// ============================================================
// Project Model
// ============================================================

// Record is a stored project. Names are unique; saving under an existing
// name replaces that project and keeps its ID.
type Record struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Header    drafter.DocumentHeader `json:"header"`
	Items     []drafter.Item         `json:"items"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at"`
}

// Summary is the listing form of a project.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Items     int    `json:"items"`
	UpdatedAt string `json:"updated_at"`
}

// Document is the drafter project the record describes.
func (r *Record) Document() drafter.Project {
	return drafter.Project{Name: r.Name, Header: r.Header, Items: r.Items}
}
