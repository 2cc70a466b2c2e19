package analytics

import (
	"errors"
	"math"
	"testing"

	domsvc "LOBSim/internal/domain/service"
)

func TestComputeMetricsHandComputed(t *testing.T) {
	m, err := ComputeMetrics([]float64{1, 2, 3, 2}, []float64{1.1, 1.9, 3.2, 1.8})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// Errors: -0.1, 0.1, -0.2, 0.2.
	if math.Abs(m.MSE-0.025) > 1e-12 {
		t.Fatalf("mse: got %v want 0.025", m.MSE)
	}
	if math.Abs(m.RMSE-math.Sqrt(0.025)) > 1e-12 {
		t.Fatalf("rmse: got %v want %v", m.RMSE, math.Sqrt(0.025))
	}
	if math.Abs(m.MAE-0.15) > 1e-12 {
		t.Fatalf("mae: got %v want 0.15", m.MAE)
	}
	// Diffs: actual +1,+1,-1; predicted +0.8,+1.3,-1.4: all matched.
	if m.DirectionAccuracy != 100 || !m.DirectionValid {
		t.Fatalf("direction: got %v (valid=%v) want 100 (valid)", m.DirectionAccuracy, m.DirectionValid)
	}
}

func TestComputeMetricsDirectionRange(t *testing.T) {
	m, err := ComputeMetrics([]float64{1, 2, 1, 2, 1}, []float64{5, 4, 5, 4, 5})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if m.DirectionAccuracy != 0 {
		t.Fatalf("opposed streams: got %v want 0", m.DirectionAccuracy)
	}
	m, err = ComputeMetrics([]float64{1, 2, 1}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if m.DirectionAccuracy < 0 || m.DirectionAccuracy > 100 {
		t.Fatalf("direction accuracy out of [0,100]: %v", m.DirectionAccuracy)
	}
}

func TestComputeMetricsFlatIsNotAMatch(t *testing.T) {
	// A flat actual step only matches a flat predicted step.
	m, err := ComputeMetrics([]float64{1, 1}, []float64{2, 3})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if m.DirectionAccuracy != 0 {
		t.Fatalf("flat vs rising: got %v want 0", m.DirectionAccuracy)
	}
	m, err = ComputeMetrics([]float64{1, 1}, []float64{2, 2})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if m.DirectionAccuracy != 100 {
		t.Fatalf("flat vs flat: got %v want 100", m.DirectionAccuracy)
	}
}

func TestComputeMetricsSinglePointPolicy(t *testing.T) {
	m, err := ComputeMetrics([]float64{5}, []float64{4})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if m.DirectionValid {
		t.Fatalf("single point: direction must be flagged invalid")
	}
	if m.DirectionAccuracy != 0 {
		t.Fatalf("single point: direction accuracy reported as %v, want 0", m.DirectionAccuracy)
	}
	if m.MSE != 1 || m.MAE != 1 || m.RMSE != 1 {
		t.Fatalf("single point: mse/rmse/mae = %v/%v/%v, want 1/1/1", m.MSE, m.RMSE, m.MAE)
	}
}

func TestComputeMetricsInvalidInput(t *testing.T) {
	if _, err := ComputeMetrics([]float64{1, 2}, []float64{1}); !errors.Is(err, domsvc.ErrAnalysisUnavailable) {
		t.Fatalf("length mismatch: expected ErrAnalysisUnavailable, got %v", err)
	}
	if _, err := ComputeMetrics(nil, nil); !errors.Is(err, domsvc.ErrAnalysisUnavailable) {
		t.Fatalf("empty: expected ErrAnalysisUnavailable, got %v", err)
	}
}
