// Package domain models the records flowing through the forecast analytics
// service: historical weather observations in, temperature predictions and
// severe-condition alerts out.
//
// # Input Records
//
// The upstream weather-data service publishes request envelopes to the source
// topic. An envelope carries a kind ("historical" or "forecast"), a city name,
// and a list of flat JSON records:
//
//	historical: {"timestamp": RFC3339, "temperature": °C, "humidity": %,
//	             "pressure": hPa (optional, defaults to 1013),
//	             "wind_speed": m/s (optional), "description": text (optional)}
//	forecast:   {"timestamp" or "date", "temperature", "wind_speed", "description"}
//
// Records arrive ordered by timestamp; ordering is the producer's contract and
// is never re-established here. Missing timestamp or temperature on a
// historical record is a hard parse failure. Forecast records are forgiving:
// absent numeric fields read as zero, matching the upstream service's
// best-effort forecast payloads.
//
// # Output Records
//
// PredictionResult and AlertResult are the two sink-topic payloads. Prediction
// dates are calendar dates ("2006-01-02") with no time component. Alert types
// form the compatibility contract (extreme_heat, freezing, high_winds, storm);
// alert message wording does not.
package domain
