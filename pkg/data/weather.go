// pkg/data/weather.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package data

import (
	"context"
	"log/slog"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/util"
)

const weatherCacheFilename = "weather.msgpack"

// WeatherSource supplies the raw advisory features; the production feed
// is not wired up, so the default source returns an empty list.
type WeatherSource func(ctx context.Context) ([]aviation.WeatherFeature, error)

func EmptyWeatherSource(ctx context.Context) ([]aviation.WeatherFeature, error) {
	return nil, ctx.Err()
}

// WeatherProvider fetches SIGMET/AIRMET advisories from its source. A
// fetch failure degrades to an empty advisory list rather than an
// error so that a dead weather feed never takes down the dashboard;
// the last successful fetch is cached on disk across restarts.
type WeatherProvider struct {
	source WeatherSource
	delay  DelayFunc
	lg     *log.Logger
}

func NewWeatherProvider(source WeatherSource, lg *log.Logger) *WeatherProvider {
	if source == nil {
		source = EmptyWeatherSource
	}
	return &WeatherProvider{source: source, delay: SleepDelay, lg: lg}
}

func (p *WeatherProvider) SetDelayFunc(d DelayFunc) { p.delay = d }

// FetchWeatherData returns the current advisory features. The returned
// slice is non-nil even when there are no advisories.
func (p *WeatherProvider) FetchWeatherData(ctx context.Context) ([]aviation.WeatherFeature, error) {
	if err := p.delay(ctx, airspaceLatency); err != nil {
		return nil, err
	}

	features, err := p.source(ctx)
	if err != nil {
		p.lg.Warn("weather fetch failed; serving empty advisory list",
			slog.Any("error", err))
		return []aviation.WeatherFeature{}, nil
	}
	if features == nil {
		features = []aviation.WeatherFeature{}
	}

	if len(features) > 0 {
		if err := util.CacheStoreObject(weatherCacheFilename, features); err != nil {
			p.lg.Warn("unable to cache weather advisories", slog.Any("error", err))
		}
	}
	return features, nil
}

// CachedWeatherData returns the advisories from the most recent
// successful fetch, possibly from a previous run, along with when they
// were stored. Returns an error if nothing has ever been cached.
func (p *WeatherProvider) CachedWeatherData() ([]aviation.WeatherFeature, time.Time, error) {
	var features []aviation.WeatherFeature
	stored, err := util.CacheRetrieveObject(weatherCacheFilename, &features)
	if err != nil {
		return nil, time.Time{}, err
	}
	return features, stored, nil
}

// CategorizeWeather splits advisory features into SIGMETs and AIRMETs.
// Features that advertise neither class are dropped.
func CategorizeWeather(features []aviation.WeatherFeature) (sigmets, airmets []aviation.WeatherFeature) {
	for _, wf := range features {
		switch class, ok := wf.AdvisoryType(); {
		case !ok:
		case class == aviation.AdvisorySIGMET:
			sigmets = append(sigmets, wf)
		case class == aviation.AdvisoryAIRMET:
			airmets = append(airmets, wf)
		}
	}
	return
}
