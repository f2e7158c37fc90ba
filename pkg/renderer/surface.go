// pkg/renderer/surface.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"slices"

	"github.com/airdash/airdash/pkg/math"
)

// Style describes how a primitive is drawn. Zero-valued fields fall back
// to the surface's defaults, so styles can be sparse.
type Style struct {
	Color       RGB
	Weight      float32
	Opacity     float32
	FillColor   RGB
	FillOpacity float32
	Dashed      bool
	ZIndex      int
}

///////////////////////////////////////////////////////////////////////////
// Primitives

type Primitive interface {
	Bounds() math.Extent2D
}

type Polygon struct {
	Exterior []math.Point2LL
	Style    Style
	OnClick  func()

	// Tris is the polygon's fill triangulation; it is computed lazily by
	// Triangulate and is empty for unfilled polygons.
	Tris [][3]math.Point2LL
}

func (p *Polygon) Bounds() math.Extent2D {
	return math.Extent2DFromP2LLs(p.Exterior)
}

type Polyline struct {
	Points  []math.Point2LL
	Style   Style
	OnClick func()
}

func (p *Polyline) Bounds() math.Extent2D {
	return math.Extent2DFromP2LLs(p.Points)
}

type Marker struct {
	P       math.Point2LL
	Icon    string
	Style   Style
	OnClick func()
}

func (m *Marker) Bounds() math.Extent2D {
	return math.Extent2DFromP2LLs([]math.Point2LL{m.P})
}

// Label is a non-interactive text annotation anchored at a point, e.g. a
// zone name at its polygon's centroid.
type Label struct {
	P     math.Point2LL
	Text  string
	Class string
}

func (l *Label) Bounds() math.Extent2D {
	return math.Extent2DFromP2LLs([]math.Point2LL{l.P})
}

///////////////////////////////////////////////////////////////////////////
// Layer groups

// LayerGroup collects the primitives of one dashboard layer so that the
// layer can be attached to and detached from a surface as a unit.
type LayerGroup struct {
	Name    string
	prims   []Primitive
	surface Surface
}

func NewLayerGroup(name string) *LayerGroup {
	return &LayerGroup{Name: name}
}

func (g *LayerGroup) Add(p Primitive) {
	g.prims = append(g.prims, p)
}

// Clear removes all primitives from the group; the group itself stays
// attached to its surface.
func (g *LayerGroup) Clear() {
	g.prims = nil
}

func (g *LayerGroup) Len() int { return len(g.prims) }

func (g *LayerGroup) Primitives() []Primitive {
	return slices.Clone(g.prims)
}

// AddToSurface attaches the group; attaching to the surface it is already
// on is a no-op.
func (g *LayerGroup) AddToSurface(s Surface) {
	if g.surface == s {
		return
	}
	if g.surface != nil {
		g.surface.Detach(g)
	}
	g.surface = s
	if s != nil {
		s.Attach(g)
	}
}

// RemoveFromSurface detaches the group, leaving its primitives intact so
// a later AddToSurface restores the layer as it was.
func (g *LayerGroup) RemoveFromSurface() {
	if g.surface != nil {
		g.surface.Detach(g)
		g.surface = nil
	}
}

func (g *LayerGroup) Attached() bool { return g.surface != nil }

///////////////////////////////////////////////////////////////////////////
// Surfaces

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float32
}

// Surface is where layer groups are ultimately displayed: a map widget in
// the UI, or a RecordingSurface in tests and the headless demo.
type Surface interface {
	Attach(g *LayerGroup)
	Detach(g *LayerGroup)
	Viewport() Viewport
	// Project converts a lat-long position to viewport pixel coordinates,
	// origin at the top left.
	Project(p math.Point2LL) [2]float32
}

// RecordingSurface implements Surface by keeping the attached groups in
// memory. It stands in for a real map widget headlessly, projecting
// positions linearly from its geographic bounds to the viewport.
type RecordingSurface struct {
	Size      Viewport
	GeoBounds math.Extent2D
	groups    []*LayerGroup
}

func NewRecordingSurface(w, h float32, bounds math.Extent2D) *RecordingSurface {
	return &RecordingSurface{Size: Viewport{Width: w, Height: h}, GeoBounds: bounds}
}

func (r *RecordingSurface) Attach(g *LayerGroup) {
	if !slices.Contains(r.groups, g) {
		r.groups = append(r.groups, g)
	}
}

func (r *RecordingSurface) Detach(g *LayerGroup) {
	r.groups = slices.DeleteFunc(r.groups, func(og *LayerGroup) bool { return og == g })
}

func (r *RecordingSurface) Viewport() Viewport { return r.Size }

func (r *RecordingSurface) Project(p math.Point2LL) [2]float32 {
	w, h := r.GeoBounds.Width(), r.GeoBounds.Height()
	if w == 0 || h == 0 {
		return [2]float32{0, 0}
	}
	x := (p[0] - r.GeoBounds.P0[0]) / w * r.Size.Width
	y := (r.GeoBounds.P1[1] - p[1]) / h * r.Size.Height // north up
	return [2]float32{x, y}
}

func (r *RecordingSurface) Groups() []*LayerGroup {
	return slices.Clone(r.groups)
}

// PrimitiveCount returns the total primitives across attached groups.
func (r *RecordingSurface) PrimitiveCount() int {
	n := 0
	for _, g := range r.groups {
		n += g.Len()
	}
	return n
}
