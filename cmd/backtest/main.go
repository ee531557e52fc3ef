// Command backtest evaluates the trend model against a holdout split of a
// historical fixture. It trains on the leading observations, predicts across
// the holdout window, and checks error, determinism, and artifact round-trip
// behavior.
//
// Usage:
//
//	go run ./cmd/backtest \
//	  -input data/mock/lisbon_requests.json \
//	  -holdout 7 \
//	  -max-mae 4.0
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
	"github.com/skylabs-meteo/forecast-analytics/internal/model"
	"github.com/skylabs-meteo/forecast-analytics/internal/modelstore"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to a genobs fixture (JSON array of request envelopes)")
	holdout := flag.Int("holdout", 7, "trailing observations held out for evaluation")
	maxMAE := flag.Float64("max-mae", 4.0, "maximum acceptable mean absolute error in °C")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *holdout, *maxMAE); code != 0 {
		os.Exit(code)
	}
}

func run(input string, holdout int, maxMAE float64) int {
	fmt.Println("=== Trend Model Backtest ===")
	fmt.Println()

	observations, err := loadObservations(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load observations: %v\n", err)
		return 1
	}

	if holdout <= 0 || len(observations) <= holdout+model.MinTrainObservations {
		fmt.Fprintf(os.Stderr, "FATAL: need more than %d observations for a %d-day holdout, got %d\n",
			holdout+model.MinTrainObservations, holdout, len(observations))
		return 1
	}

	train := observations[:len(observations)-holdout]
	held := observations[len(observations)-holdout:]

	predictions, trainPhase := trainAndPredict(train, holdout)
	phases := []*phase{
		trainPhase,
		evaluateAccuracy(predictions, held, maxMAE),
		checkDeterminism(train, holdout, predictions),
		checkArtifactRoundTrip(train, holdout, predictions),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	fmt.Println()
	fmt.Printf("Observations: %d train, %d holdout\n", len(train), len(held))

	if allPassed {
		fmt.Println("\nBacktest passed.")
		return 0
	}
	fmt.Println("\nBacktest FAILED.")
	return 1
}

// loadObservations reads a genobs fixture and parses the historical envelope.
func loadObservations(path string) ([]domain.Observation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var envelopes []domain.RequestEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, err
	}
	for _, env := range envelopes {
		if env.Kind != domain.KindHistorical {
			continue
		}
		return domain.ParseObservations(env.Records)
	}
	return nil, fmt.Errorf("no historical envelope in %s", path)
}

// trainAndPredict fits a fresh predictor on the training window and forecasts
// the holdout window.
func trainAndPredict(train []domain.Observation, horizon int) ([]domain.PredictionPoint, *phase) {
	p := &phase{name: "Phase 1: Training"}

	predictor, err := model.NewTrendPredictor(modelstore.NewMemoryStore())
	if err != nil {
		p.errorf("new predictor: %v", err)
		return nil, p
	}

	trained, err := predictor.Train(train)
	if err != nil {
		p.errorf("train: %v", err)
		return nil, p
	}
	if !trained {
		p.errorf("training skipped: %d observations below minimum %d", len(train), model.MinTrainObservations)
		return nil, p
	}

	predictions, err := predictor.Predict(train, horizon)
	if err != nil {
		p.errorf("predict: %v", err)
		return nil, p
	}
	if len(predictions) != horizon {
		p.errorf("expected %d predictions, got %d", horizon, len(predictions))
	}
	return predictions, p
}

// evaluateAccuracy compares predictions against the held-out observations.
func evaluateAccuracy(predictions []domain.PredictionPoint, held []domain.Observation, maxMAE float64) *phase {
	p := &phase{name: "Phase 2: Accuracy (holdout MAE)"}
	if len(predictions) == 0 {
		p.errorf("no predictions to evaluate")
		return p
	}

	n := min(len(predictions), len(held))
	var absErr, bias float64
	for i := 0; i < n; i++ {
		diff := predictions[i].PredictedTemperature - held[i].Temperature
		absErr += math.Abs(diff)
		bias += diff

		wantDate := held[i].Timestamp.Format("2006-01-02")
		if predictions[i].Date != wantDate {
			p.errorf("day %d: predicted date %s, holdout date %s", i+1, predictions[i].Date, wantDate)
		}
	}
	mae := absErr / float64(n)
	bias /= float64(n)

	fmt.Printf("  MAE: %.2f °C, bias: %+.2f °C over %d days\n", mae, bias, n)
	if mae > maxMAE {
		p.errorf("MAE %.2f exceeds limit %.2f", mae, maxMAE)
	}
	return p
}

// checkDeterminism retrains from scratch and verifies identical output.
func checkDeterminism(train []domain.Observation, horizon int, want []domain.PredictionPoint) *phase {
	p := &phase{name: "Phase 3: Determinism (fixed seed)"}
	got, tp := trainAndPredict(train, horizon)
	if !tp.passed() {
		p.errors = append(p.errors, tp.errors...)
		return p
	}
	comparePredictions(p, want, got)
	return p
}

// checkArtifactRoundTrip persists the artifact and verifies a predictor
// restored from it produces the same forecast.
func checkArtifactRoundTrip(train []domain.Observation, horizon int, want []domain.PredictionPoint) *phase {
	p := &phase{name: "Phase 4: Artifact round-trip (gob)"}

	store := modelstore.NewMemoryStore()
	predictor, err := model.NewTrendPredictor(store)
	if err != nil {
		p.errorf("new predictor: %v", err)
		return p
	}
	if _, err := predictor.Train(train); err != nil {
		p.errorf("train: %v", err)
		return p
	}

	restored, err := model.NewTrendPredictor(store)
	if err != nil {
		p.errorf("restore predictor: %v", err)
		return p
	}
	got, err := restored.Predict(train, horizon)
	if err != nil {
		p.errorf("predict after restore: %v", err)
		return p
	}
	comparePredictions(p, want, got)
	return p
}

func comparePredictions(p *phase, want, got []domain.PredictionPoint) {
	if len(want) != len(got) {
		p.errorf("prediction count: expected %d, got %d", len(want), len(got))
		return
	}
	for i := range want {
		if want[i].Date != got[i].Date {
			p.errorf("day %d: date %s != %s", i+1, got[i].Date, want[i].Date)
		}
		if math.Abs(want[i].PredictedTemperature-got[i].PredictedTemperature) > 1e-9 {
			p.errorf("day %d: temperature %.6f != %.6f", i+1, got[i].PredictedTemperature, want[i].PredictedTemperature)
		}
	}
}
