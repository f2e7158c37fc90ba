// pkg/layers/weather.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package layers

import (
	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/renderer"
)

// WeatherLayerManager owns the SIGMET and AIRMET advisory layers and the
// label overlay shared by both.
type WeatherLayerManager struct {
	surface renderer.Surface
	sigmet  *renderer.LayerGroup
	airmet  *renderer.LayerGroup
	labels  *renderer.LayerGroup
}

func NewWeatherLayerManager(surface renderer.Surface) *WeatherLayerManager {
	return &WeatherLayerManager{
		surface: surface,
		sigmet:  renderer.NewLayerGroup("sigmet"),
		airmet:  renderer.NewLayerGroup("airmet"),
		labels:  renderer.NewLayerGroup("fir-labels"),
	}
}

func (wm *WeatherLayerManager) AddToMap() {
	wm.sigmet.AddToSurface(wm.surface)
	wm.airmet.AddToSurface(wm.surface)
	wm.labels.AddToSurface(wm.surface)
}

func (wm *WeatherLayerManager) RemoveFromMap() {
	wm.sigmet.RemoveFromSurface()
	wm.airmet.RemoveFromSurface()
	wm.labels.RemoveFromSurface()
}

func (wm *WeatherLayerManager) ClearSigmet() { wm.sigmet.Clear() }
func (wm *WeatherLayerManager) ClearAirmet() { wm.airmet.Clear() }
func (wm *WeatherLayerManager) ClearLabels() { wm.labels.Clear() }

// AddFeature adds one advisory polygon to the layer for its class, plus a
// label at the polygon's centroid. Labels fall back to a per-class null
// placeholder when the feed gave neither hazard nor types.
func (wm *WeatherLayerManager) AddFeature(wf *aviation.WeatherFeature, class aviation.WeatherAdvisoryType,
	onClick func(*aviation.WeatherFeature)) {
	style := sigmetStyle
	group := wm.sigmet
	if class == aviation.AdvisoryAIRMET {
		style = airmetStyle
		group = wm.airmet
	}
	style.ZIndex = ZWeather

	var click func()
	if onClick != nil {
		click = func() { onClick(wf) }
	}

	poly := &renderer.Polygon{Exterior: wf.Geometry, Style: style, OnClick: click}
	poly.Triangulate()
	group.Add(poly)

	wm.labels.Add(&renderer.Label{
		P:     wf.Centroid(),
		Text:  wf.Label(class),
		Class: "fir-label",
	})
}

func (wm *WeatherLayerManager) Destroy() {
	wm.ClearSigmet()
	wm.ClearAirmet()
	wm.ClearLabels()
	wm.RemoveFromMap()
}
