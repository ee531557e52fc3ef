package domain

// AlertType identifies which hazard rule fired. The four values are the
// compatibility contract with downstream consumers.
type AlertType string

const (
	AlertExtremeHeat AlertType = "extreme_heat"
	AlertFreezing    AlertType = "freezing"
	AlertHighWinds   AlertType = "high_winds"
	AlertStorm       AlertType = "storm"
)

// Alert is one triggered hazard for one forecast point. Value holds the
// triggering measurement: a temperature or wind speed for threshold rules,
// the full description text for storm alerts.
type Alert struct {
	Type    AlertType `json:"type"`
	Date    string    `json:"date"`
	Value   any       `json:"value"`
	Message string    `json:"message"`
}
