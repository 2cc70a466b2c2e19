package analytics

import (
	"testing"

	"LOBSim/internal/domain/models"
)

func featsWithVols(vols []float64) []models.FeatureVector {
	out := make([]models.FeatureVector, 0, len(vols))
	for _, v := range vols {
		out = append(out, models.FeatureVector{Volatility: v, MidPrice: 100})
	}
	return out
}

func TestClassifyRegimesThresholds(t *testing.T) {
	// avgVol = 3.25: high above 4.875, low below 1.625.
	feats := featsWithVols([]float64{1, 1, 1, 10})
	points := ClassifyRegimes(feats)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	want := []models.VolRegime{models.RegimeLow, models.RegimeLow, models.RegimeLow, models.RegimeHigh}
	for i, p := range points {
		if p.Regime != want[i] {
			t.Fatalf("point %d: regime %q want %q", i, p.Regime, want[i])
		}
		if p.Volatility != feats[i].Volatility {
			t.Fatalf("point %d: volatility %v want %v", i, p.Volatility, feats[i].Volatility)
		}
	}
}

func TestClassifyRegimesNormalBand(t *testing.T) {
	// All volatilities equal the mean: strictly inside both thresholds.
	points := ClassifyRegimes(featsWithVols([]float64{2, 2, 2, 2}))
	for i, p := range points {
		if p.Regime != models.RegimeNormal {
			t.Fatalf("point %d: regime %q want normal", i, p.Regime)
		}
	}
}

func TestClassifyRegimesTrailingWindow(t *testing.T) {
	vols := make([]float64, 620)
	for i := range vols {
		vols[i] = 0.0002
	}
	feats := featsWithVols(vols)
	points := ClassifyRegimes(feats)
	if len(points) != 500 {
		t.Fatalf("expected trailing window of 500, got %d", len(points))
	}
}

func TestClassifyRegimesMeanUsesFullSequence(t *testing.T) {
	// 600 quiet points followed by 20 loud ones. The mean covers the full
	// sequence, so the trailing window is classified against a mean the
	// quiet majority dominates.
	vols := make([]float64, 620)
	for i := range vols {
		vols[i] = 0.0001
	}
	for i := 600; i < 620; i++ {
		vols[i] = 0.01
	}
	points := ClassifyRegimes(featsWithVols(vols))
	if len(points) != 500 {
		t.Fatalf("expected 500 points, got %d", len(points))
	}
	// Last 20 are far above 1.5x the diluted mean.
	for i := 480; i < 500; i++ {
		if points[i].Regime != models.RegimeHigh {
			t.Fatalf("point %d: regime %q want high", i, points[i].Regime)
		}
	}
}

func TestClassifyRegimesEmpty(t *testing.T) {
	points := ClassifyRegimes(nil)
	if points == nil || len(points) != 0 {
		t.Fatalf("expected valid empty result, got %v", points)
	}
}
