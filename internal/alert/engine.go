// Package alert evaluates forecast points against severe-condition
// thresholds and emits hazard alerts.
package alert

import (
	"fmt"
	"strings"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
)

// Default thresholds, tuned for temperate-climate severe conditions.
const (
	DefaultExtremeHeatC = 35.0
	DefaultFreezingC    = 0.0
	DefaultHighWindMS   = 20.0
	DefaultHeavyRainMMH = 10.0
)

// Thresholds are the numeric trigger points for the hazard rules. HeavyRainMMH
// is carried and settable but not evaluated: forecast points carry no
// precipitation rate, so there is nothing to compare it against yet.
type Thresholds struct {
	ExtremeHeatC float64
	FreezingC    float64
	HighWindMS   float64
	HeavyRainMMH float64
}

// Overrides are partial threshold updates. A nil field leaves the current
// value unchanged. Values are applied as-is; no range validation.
type Overrides struct {
	ExtremeHeatC *float64
	FreezingC    *float64
	HighWindMS   *float64
	HeavyRainMMH *float64
}

// Engine evaluates forecast points rule by rule. Analyze holds no state
// between calls; the only mutable state is the threshold set, which is meant
// to be configured at startup. The storm keyword set is fixed at construction.
type Engine struct {
	thresholds    Thresholds
	stormKeywords []string
}

// NewEngine creates an engine with the default thresholds and storm keywords.
func NewEngine() *Engine {
	return &Engine{
		thresholds: Thresholds{
			ExtremeHeatC: DefaultExtremeHeatC,
			FreezingC:    DefaultFreezingC,
			HighWindMS:   DefaultHighWindMS,
			HeavyRainMMH: DefaultHeavyRainMMH,
		},
		stormKeywords: []string{"thunderstorm", "storm", "hurricane", "tornado"},
	}
}

// Analyze evaluates every forecast point independently. A point can fire
// several alerts of different types; storm fires at most once per point, on
// the first matching keyword.
func (e *Engine) Analyze(points []domain.ForecastPoint) []domain.Alert {
	var alerts []domain.Alert

	for _, p := range points {
		if p.Temperature >= e.thresholds.ExtremeHeatC {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertExtremeHeat,
				Date:    p.Date,
				Value:   p.Temperature,
				Message: fmt.Sprintf("Extreme heat warning: %g°C expected on %s", p.Temperature, p.Date),
			})
		}

		if p.Temperature <= e.thresholds.FreezingC {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertFreezing,
				Date:    p.Date,
				Value:   p.Temperature,
				Message: fmt.Sprintf("Freezing conditions warning: %g°C expected on %s", p.Temperature, p.Date),
			})
		}

		if p.WindSpeed >= e.thresholds.HighWindMS {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertHighWinds,
				Date:    p.Date,
				Value:   p.WindSpeed,
				Message: fmt.Sprintf("High wind warning: %g m/s expected on %s", p.WindSpeed, p.Date),
			})
		}

		description := strings.ToLower(p.Description)
		for _, keyword := range e.stormKeywords {
			if strings.Contains(description, keyword) {
				alerts = append(alerts, domain.Alert{
					Type:    domain.AlertStorm,
					Date:    p.Date,
					Value:   description,
					Message: fmt.Sprintf("Storm warning: %s expected on %s", description, p.Date),
				})
				break
			}
		}
	}

	return alerts
}

// SetThresholds applies the supplied overrides, leaving nil fields untouched.
func (e *Engine) SetThresholds(o Overrides) {
	if o.ExtremeHeatC != nil {
		e.thresholds.ExtremeHeatC = *o.ExtremeHeatC
	}
	if o.FreezingC != nil {
		e.thresholds.FreezingC = *o.FreezingC
	}
	if o.HighWindMS != nil {
		e.thresholds.HighWindMS = *o.HighWindMS
	}
	if o.HeavyRainMMH != nil {
		e.thresholds.HeavyRainMMH = *o.HeavyRainMMH
	}
}

// Thresholds returns the current threshold set.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}
