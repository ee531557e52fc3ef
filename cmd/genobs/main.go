// Command genobs generates synthetic weather request envelopes for local
// development and test fixtures. It uses the actual domain and alert packages
// so the fixtures reflect real analysis behavior.
//
// Usage:
//
//	go run ./cmd/genobs \
//	  -city Lisbon \
//	  -days 60 \
//	  -out data/mock/lisbon_requests.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/skylabs-meteo/forecast-analytics/internal/alert"
	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
)

var baseDate = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	city := flag.String("city", "Lisbon", "city name stamped on the envelopes")
	days := flag.Int("days", 60, "number of daily historical observations")
	forecastDays := flag.Int("forecast-days", 7, "number of forecast points")
	seed := flag.Int64("seed", 1, "random seed for reproducible noise")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	envelopes := []domain.RequestEnvelope{
		{
			Kind:    domain.KindHistorical,
			City:    *city,
			Records: historicalRecords(rng, *days),
		},
		{
			Kind:    domain.KindForecast,
			City:    *city,
			Records: forecastRecords(rng, *days, *forecastDays),
		},
	}

	if err := writeJSON(*out, envelopes); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d envelopes (%d observations, %d forecast points): %s",
		len(envelopes), *days, *forecastDays, *out)

	printStats(envelopes[1])
	return nil
}

// historicalRecords produces daily readings following a warming seasonal
// curve with bounded noise, so the trend model has a real signal to learn.
func historicalRecords(rng *rand.Rand, days int) []domain.RawRecord {
	records := make([]domain.RawRecord, days)
	for i := range records {
		d := float64(i)
		temp := 12 + 0.25*d + 2.5*math.Sin(d/3) + rng.Float64()
		humidity := 55 + 15*math.Sin(d/5) + 3*rng.Float64()
		pressure := 1013 + 6*math.Sin(d/7)
		wind := 3 + 2*rng.Float64()

		records[i] = domain.RawRecord{
			Timestamp:   baseDate.AddDate(0, 0, i).Format(time.RFC3339),
			Temperature: ptr(round1(temp)),
			Humidity:    ptr(round1(humidity)),
			Pressure:    ptr(round1(pressure)),
			WindSpeed:   ptr(round1(wind)),
		}
	}
	return records
}

// forecastRecords continues the historical curve and salts in conditions that
// trip each alert rule, so fixtures exercise every branch of the engine.
func forecastRecords(rng *rand.Rand, offsetDays, days int) []domain.RawRecord {
	descriptions := []string{"clear sky", "scattered clouds", "thunderstorm", "light rain"}

	records := make([]domain.RawRecord, days)
	for i := range records {
		d := float64(offsetDays + i)
		temp := 12 + 0.25*d + 2.5*math.Sin(d/3)
		wind := 3 + 2*rng.Float64()

		switch i {
		case 1:
			temp = 36.5 // extreme heat day
		case 3:
			wind = 24 // high winds day
		}

		records[i] = domain.RawRecord{
			Date:        baseDate.AddDate(0, 0, offsetDays+i).Format("2006-01-02"),
			Temperature: ptr(round1(temp)),
			WindSpeed:   ptr(round1(wind)),
			Description: descriptions[rng.Intn(len(descriptions))],
		}
	}
	return records
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats runs the real alert engine over the forecast envelope and prints
// the counts, for updating test assertions.
func printStats(env domain.RequestEnvelope) {
	engine := alert.NewEngine()
	alerts := engine.Analyze(domain.ToForecastPoints(env.Records))

	counts := map[domain.AlertType]int{}
	for _, a := range alerts {
		counts[a.Type]++
	}

	fmt.Println("\n=== Alert stats for updating test assertions ===")
	fmt.Printf("Total alerts: %d\n", len(alerts))
	fmt.Printf("By type: extreme_heat=%d, freezing=%d, high_winds=%d, storm=%d\n",
		counts[domain.AlertExtremeHeat], counts[domain.AlertFreezing],
		counts[domain.AlertHighWinds], counts[domain.AlertStorm])
	for _, a := range alerts {
		fmt.Printf("  %s %s: %s\n", a.Date, a.Type, a.Message)
	}
}

func ptr(f float64) *float64 { return &f }

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
