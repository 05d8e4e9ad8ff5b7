package models

import (
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/dxf"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Items & documents
// ============================================================

// ItemMeta is the fabrication data printed around an item's drawing.
type ItemMeta struct {
	Tag         string `json:"tag" yaml:"tag"`
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
	Material    string `json:"material" yaml:"material"`
	Thickness   string `json:"thickness" yaml:"thickness"`
	Finish      string `json:"finish" yaml:"finish"`
	Note        string `json:"note" yaml:"note"`
}

// Item is one fitting of a document. Scene, when present, is the stored
// drawing and takes precedence over regenerating from Params.
type Item struct {
	ID        string       `json:"id,omitempty" yaml:"id,omitempty"`
	Archetype string       `json:"archetype" yaml:"archetype"`
	Params    scene.Params `json:"params,omitempty" yaml:"params,omitempty"`
	Meta      ItemMeta     `json:"meta" yaml:"meta"`
	Scene     *scene.Scene `json:"scene,omitempty" yaml:"-"`
}

// DocumentHeader fills the metadata grid of every page.
type DocumentHeader struct {
	Project    string `json:"project" yaml:"project"`
	DocumentNo string `json:"documentNo" yaml:"documentNo"`
	Client     string `json:"client" yaml:"client"`
	Revision   string `json:"revision" yaml:"revision"`
	Contractor string `json:"contractor" yaml:"contractor"`
	Date       string `json:"date" yaml:"date"`
	DrawnBy    string `json:"drawnBy" yaml:"drawnBy"`
	CheckedBy  string `json:"checkedBy" yaml:"checkedBy"`
	System     string `json:"system" yaml:"system"`
	Pressure   string `json:"pressure" yaml:"pressure"`
	Address    string `json:"address" yaml:"address"`
}

// Project is a named document: header plus ordered items.
type Project struct {
	Name   string         `json:"name" yaml:"name"`
	Header DocumentHeader `json:"header" yaml:"header"`
	Items  []Item         `json:"items" yaml:"items"`
}

// ============================================================
// Drafter API payloads
// ============================================================

type GenerateRequest struct {
	Archetype   string       `json:"archetype"`
	Params      scene.Params `json:"params"`
	ActiveField string       `json:"activeField"`
	Format      string       `json:"format"` // svg (default), json, png
	Size        int          `json:"size"`   // png edge in pixels
}

type GenerateResponse struct {
	Archetype   string       `json:"archetype"`
	Description string       `json:"description"`
	Params      scene.Params `json:"params"`
	Scene       scene.Scene  `json:"scene"`
}

type TranscodeRequest struct {
	Scene     scene.Scene   `json:"scene"`
	Placement dxf.Placement `json:"placement"`
}

type ExportRequest struct {
	Header DocumentHeader `json:"header"`
	Items  []Item         `json:"items"`
}

type ArchetypeInfo struct {
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Defaults scene.Params `json:"defaults"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ConvertResponse is the scene read back from uploaded markup.
type ConvertResponse struct {
	Scene   scene.Scene `json:"scene"`
	Skipped int         `json:"skipped"`
}
