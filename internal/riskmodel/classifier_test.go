package riskmodel

import (
	"math"
	"path/filepath"
	"testing"
)

func TestPredictProbabilityStaysInRange(t *testing.T) {
	c := &LogisticClassifier{
		Columns: []string{"a", "b"},
		Weights: []float64{3.5, -2.0},
		Bias:    0.4,
	}
	inputs := [][]float64{
		{0, 0},
		{1, 1},
		{100, -100},
		{-100, 100},
	}
	for _, in := range inputs {
		p := c.PredictProbability(in)
		if p < 0 || p > 1 {
			t.Errorf("PredictProbability(%v) = %v, outside [0, 1]", in, p)
		}
	}
}

func TestPredictProbabilityMonotonicInPositiveWeight(t *testing.T) {
	c := &LogisticClassifier{
		Columns: []string{"a"},
		Weights: []float64{1.0},
		Bias:    0,
	}
	prev := c.PredictProbability([]float64{-5})
	for _, x := range []float64{-2, 0, 2, 5} {
		p := c.PredictProbability([]float64{x})
		if p <= prev {
			t.Fatalf("probability should rise with input, got %v after %v", p, prev)
		}
		prev = p
	}
}

func TestPredictProbabilityZeroInputGivesSigmoidOfBias(t *testing.T) {
	c := &LogisticClassifier{Weights: []float64{1, 2, 3}, Bias: 0}
	if got := c.PredictProbability([]float64{0, 0, 0}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("zero input with zero bias: got %v, want 0.5", got)
	}
}

func TestPredictProbabilityToleratesShortVector(t *testing.T) {
	c := &LogisticClassifier{
		Columns: []string{"a", "b", "c"},
		Weights: []float64{1, 1, 1},
		Bias:    0,
	}
	// Missing trailing values contribute nothing.
	want := c.PredictProbability([]float64{2, 3, 0})
	if got := c.PredictProbability([]float64{2, 3}); math.Abs(got-want) > 1e-9 {
		t.Errorf("short vector: got %v, want %v", got, want)
	}
}

func TestClassifierSaveLoadRoundTrip(t *testing.T) {
	original := &LogisticClassifier{
		Columns: []string{"trabaja", "promedio_previo"},
		Weights: []float64{0.9, -0.65},
		Bias:    1.8,
	}

	path := filepath.Join(t.TempDir(), "modelo.json")
	if err := original.Save(path); err != nil {
		t.Fatalf("failed to save classifier: %v", err)
	}

	loaded, err := LoadClassifier(path)
	if err != nil {
		t.Fatalf("failed to load classifier: %v", err)
	}

	if len(loaded.Columns) != len(original.Columns) {
		t.Fatalf("columns mismatch: got %v, want %v", loaded.Columns, original.Columns)
	}
	for i, col := range original.Columns {
		if loaded.Columns[i] != col {
			t.Errorf("column %d: got %q, want %q", i, loaded.Columns[i], col)
		}
	}
	if loaded.Bias != original.Bias {
		t.Errorf("bias: got %v, want %v", loaded.Bias, original.Bias)
	}

	in := []float64{1, 7.5}
	if got, want := loaded.PredictProbability(in), original.PredictProbability(in); math.Abs(got-want) > 1e-12 {
		t.Errorf("loaded model predicts %v, original %v", got, want)
	}
}

func TestLoadClassifierMissingFile(t *testing.T) {
	if _, err := LoadClassifier(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing artifact file")
	}
}
