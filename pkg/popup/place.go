// pkg/popup/place.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package popup

import (
	"github.com/airdash/airdash/pkg/renderer"
)

// Chart popup placement constants, in pixels.
const (
	ChartPopupWidth  = 400
	ChartPopupHeight = 300
	ViewportMargin   = 20

	// Pre-offset applied to the clicked element's position so the popup
	// sits beside and above it rather than covering it.
	AnchorOffsetX = 20
	AnchorOffsetY = -150
)

// FallbackPosition is used when a selection has no screen position, e.g.
// when an element is selected programmatically.
var FallbackPosition = [2]float32{100, 100}

// Place computes the top-left position of a chart popup for an element
// clicked at the given viewport position. The anchor is offset to clear
// the element, then clamped so the whole popup stays inside the viewport
// with a margin on every side. Clamping resolves the far edge first, so
// when the viewport is too small to satisfy both edges the near-edge
// margin wins.
func Place(anchor [2]float32, vp renderer.Viewport) [2]float32 {
	return Clamp(anchor[0]+AnchorOffsetX, anchor[1]+AnchorOffsetY, vp)
}

// PlaceFallback positions a popup for a selection without a screen
// position.
func PlaceFallback(vp renderer.Viewport) [2]float32 {
	return Clamp(FallbackPosition[0], FallbackPosition[1], vp)
}

// Clamp keeps the popup rectangle at (x, y) within the viewport margins.
func Clamp(x, y float32, vp renderer.Viewport) [2]float32 {
	if x+ChartPopupWidth > vp.Width-ViewportMargin {
		x = vp.Width - ChartPopupWidth - ViewportMargin
	}
	if x < ViewportMargin {
		x = ViewportMargin
	}

	if y+ChartPopupHeight > vp.Height-ViewportMargin {
		y = vp.Height - ChartPopupHeight - ViewportMargin
	}
	if y < ViewportMargin {
		y = ViewportMargin
	}

	return [2]float32{x, y}
}
