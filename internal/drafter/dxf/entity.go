package dxf

import (
	"seehuhn.de/go/geom/vec"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/scene"
)

// ============================================================
// Layers & colors
// ============================================================

const (
	LayerObject       = "OBJECT"
	LayerFlanges      = "FLANGES"
	LayerDimensions   = "DIMENSIONS"
	LayerConstruction = "CONSTRUCTION"
	LayerText         = "TEXT"
	LayerFrame        = "FRAME"
	LayerLabel        = "LABEL"
	LayerLogo         = "LOGO"
)

// ACI color indices.
const (
	ColorDefault = 7
	ColorRed     = 1
	ColorGreen   = 3
	ColorGray    = 8
)

// Layers lists every layer an entity can land on.
var Layers = []string{LayerObject, LayerFlanges, LayerDimensions, LayerConstruction, LayerText, LayerFrame, LayerLabel, LayerLogo}

// Style is the layer and color of an entity.
type Style struct {
	Layer string
	Color int
}

// StyleOf maps a class to its layer and color. Every class has a mapping;
// anything unrecognised lands on the object layer.
func StyleOf(c scene.Class) Style {
	switch c {
	case scene.Flange:
		return Style{LayerFlanges, ColorDefault}
	case scene.Dimension:
		return Style{LayerDimensions, ColorRed}
	case scene.Centerline, scene.Phantom, scene.Hidden:
		return Style{LayerConstruction, ColorGray}
	case scene.AnnotationText:
		return Style{LayerText, ColorDefault}
	case scene.Accent:
		return Style{LayerObject, ColorGreen}
	case scene.Frame:
		return Style{LayerFrame, ColorDefault}
	case scene.Label:
		return Style{LayerLabel, ColorDefault}
	case scene.Logo:
		return Style{LayerLogo, ColorDefault}
	}
	return Style{LayerObject, ColorDefault}
}

// ============================================================
// Entities
// ============================================================

// Entity is one record of the ENTITIES section.
type Entity interface {
	Name() string
	write(w *writer)
}

type LineEntity struct {
	Style
	From, To vec.Vec2
}

type CircleEntity struct {
	Style
	Center vec.Vec2
	Radius float64
}

// Horizontal text alignment (group code 72).
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

type TextEntity struct {
	Style
	At       vec.Vec2
	Height   float64
	Content  string
	Rotation float64 // degrees, counter-clockwise
	Align    int
}

type PolylineEntity struct {
	Style
	Points []vec.Vec2
	Closed bool
}

func (LineEntity) Name() string     { return "LINE" }
func (CircleEntity) Name() string   { return "CIRCLE" }
func (TextEntity) Name() string     { return "TEXT" }
func (PolylineEntity) Name() string { return "LWPOLYLINE" }

// Points returns every coordinate an entity occupies, for measuring.
func Points(e Entity) []vec.Vec2 {
	switch v := e.(type) {
	case LineEntity:
		return []vec.Vec2{v.From, v.To}
	case CircleEntity:
		return []vec.Vec2{
			{X: v.Center.X - v.Radius, Y: v.Center.Y - v.Radius},
			{X: v.Center.X + v.Radius, Y: v.Center.Y + v.Radius},
		}
	case TextEntity:
		return []vec.Vec2{v.At}
	case PolylineEntity:
		return v.Points
	}
	return nil
}

// Extent returns the bounding box of the entities.
func Extent(entities []Entity) scene.Box {
	var b scene.Box
	for _, e := range entities {
		for _, p := range Points(e) {
			b.Add(p)
		}
	}
	return b
}
