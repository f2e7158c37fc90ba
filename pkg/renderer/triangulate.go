// pkg/renderer/triangulate.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/mmp/earcut-go"

	"github.com/airdash/airdash/pkg/math"
)

// Triangulate computes the polygon's fill triangulation from its exterior
// ring. Degenerate polygons with fewer than three vertices get no fill.
func (p *Polygon) Triangulate() {
	p.Tris = nil
	if len(p.Exterior) < 3 {
		return
	}

	vertices := make([]earcut.Vertex, len(p.Exterior))
	for i, v := range p.Exterior {
		vertices[i].P = [2]float64{float64(v[0]), float64(v[1])}
	}

	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{vertices}}) {
		var v32 [3]math.Point2LL
		for i, v64 := range tri.Vertices {
			v32[i] = [2]float32{float32(v64.P[0]), float32(v64.P[1])}
		}
		p.Tris = append(p.Tris, v32)
	}
}
