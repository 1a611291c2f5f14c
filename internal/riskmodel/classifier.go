package riskmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Classifier produces a positive-class probability in [0, 1] for an
// aligned feature vector. FeatureNames returns the column signature the
// model was trained against, or nil when the artifact carries none.
type Classifier interface {
	PredictProbability(values []float64) float64
	FeatureNames() []string
}

// LogisticClassifier is the trained artifact shipped on disk. Weights are
// parallel to Columns; older artifacts may lack the column signature, in
// which case alignment falls back to natural feature order.
type LogisticClassifier struct {
	Columns []string  `json:"columns,omitempty"`
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// PredictProbability computes sigmoid(w·x + b). Vectors shorter than the
// weight list contribute nothing for the missing positions.
func (c *LogisticClassifier) PredictProbability(values []float64) float64 {
	sum := c.Bias
	for i, w := range c.Weights {
		if i < len(values) {
			sum += w * values[i]
		}
	}
	return sigmoid(sum)
}

// FeatureNames returns the stored column signature.
func (c *LogisticClassifier) FeatureNames() []string {
	return c.Columns
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Save writes the classifier to a JSON file.
func (c *LogisticClassifier) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal classifier: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write classifier file: %w", err)
	}
	return nil
}

// LoadClassifier reads a classifier artifact from a JSON file.
func LoadClassifier(path string) (*LogisticClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier file: %w", err)
	}
	var c LogisticClassifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classifier: %w", err)
	}
	return &c, nil
}
