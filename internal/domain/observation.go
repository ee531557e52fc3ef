package domain

import (
	"errors"
	"fmt"
	"time"
)

// DefaultPressureHPa is substituted when a historical record omits pressure.
const DefaultPressureHPa = 1013.0

var (
	// ErrMissingTimestamp is returned when a historical record has no timestamp.
	ErrMissingTimestamp = errors.New("observation missing timestamp")
	// ErrMissingTemperature is returned when a historical record has no temperature.
	ErrMissingTemperature = errors.New("observation missing temperature")
)

// RawRecord is the flat JSON shape shared by historical and forecast records.
// Pointer fields distinguish "absent" from zero values.
type RawRecord struct {
	Timestamp   string   `json:"timestamp,omitempty"`
	Date        string   `json:"date,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Observation is a parsed historical weather reading.
type Observation struct {
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
	Description string
}

// ForecastPoint is one forecast entry evaluated by the alert engine. Date
// carries whatever the producer sent (timestamp or plain date string), as
// alerts echo it back verbatim.
type ForecastPoint struct {
	Date        string
	Temperature float64
	WindSpeed   float64
	Description string
}

// ParseObservation converts a raw historical record into an Observation.
// Timestamp and temperature are required; pressure defaults to 1013 hPa.
func ParseObservation(rec RawRecord) (Observation, error) {
	if rec.Timestamp == "" {
		return Observation{}, ErrMissingTimestamp
	}
	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return Observation{}, fmt.Errorf("parse observation timestamp %q: %w", rec.Timestamp, err)
	}
	if rec.Temperature == nil {
		return Observation{}, ErrMissingTemperature
	}

	obs := Observation{
		Timestamp:   ts,
		Temperature: *rec.Temperature,
		Pressure:    DefaultPressureHPa,
		Description: rec.Description,
	}
	if rec.Humidity != nil {
		obs.Humidity = *rec.Humidity
	}
	if rec.Pressure != nil {
		obs.Pressure = *rec.Pressure
	}
	if rec.WindSpeed != nil {
		obs.WindSpeed = *rec.WindSpeed
	}
	return obs, nil
}

// ParseObservations parses an ordered batch, preserving order. The first
// malformed record fails the whole batch.
func ParseObservations(recs []RawRecord) ([]Observation, error) {
	out := make([]Observation, 0, len(recs))
	for i, rec := range recs {
		obs, err := ParseObservation(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, obs)
	}
	return out, nil
}

// ToForecastPoint converts a raw forecast record, tolerating absent fields.
func ToForecastPoint(rec RawRecord) ForecastPoint {
	p := ForecastPoint{
		Date:        rec.Timestamp,
		Description: rec.Description,
	}
	if p.Date == "" {
		p.Date = rec.Date
	}
	if rec.Temperature != nil {
		p.Temperature = *rec.Temperature
	}
	if rec.WindSpeed != nil {
		p.WindSpeed = *rec.WindSpeed
	}
	return p
}

// ToForecastPoints converts a batch of raw forecast records in order.
func ToForecastPoints(recs []RawRecord) []ForecastPoint {
	out := make([]ForecastPoint, len(recs))
	for i, rec := range recs {
		out[i] = ToForecastPoint(rec)
	}
	return out
}
