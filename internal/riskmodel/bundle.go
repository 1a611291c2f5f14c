package riskmodel

import (
	"errors"
	"fmt"
	"math"

	"futured/internal/features"
	"futured/internal/model"
)

// ErrModelNotReady is returned when classification is requested before a
// model bundle has been loaded.
var ErrModelNotReady = errors.New("model not ready")

// Bundle ties the trained classifier to the encoder registry it was
// fitted with. The two artifacts only make sense together, so they are
// loaded together and the bundle is never mutated after construction. A
// nil bundle is valid and simply not ready.
type Bundle struct {
	classifier Classifier
	encoders   *features.Registry
}

// NewBundle wraps an already loaded classifier and registry.
func NewBundle(c Classifier, reg *features.Registry) *Bundle {
	return &Bundle{classifier: c, encoders: reg}
}

// LoadBundle reads both artifacts from disk. Either one missing fails the
// load; the caller decides whether to serve degraded or abort.
func LoadBundle(modelPath, encodersPath string) (*Bundle, error) {
	classifier, err := LoadClassifier(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier: %w", err)
	}
	registry, err := features.LoadRegistry(encodersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoder registry: %w", err)
	}
	return NewBundle(classifier, registry), nil
}

// Ready reports whether the bundle can classify.
func (b *Bundle) Ready() bool {
	return b != nil && b.classifier != nil
}

// ExpectedColumns returns the classifier's column signature, or nil when
// the bundle is not ready or the artifact carries none.
func (b *Bundle) ExpectedColumns() []string {
	if !b.Ready() {
		return nil
	}
	return b.classifier.FeatureNames()
}

// Result is the outcome of scoring one survey document.
type Result struct {
	RiskPercentage float64
	Band           Band
	Vector         features.AlignedFeatureVector
}

// Score runs the full pipeline on one document: normalize, encode, align
// to the classifier's columns, predict, band. Missing sections and
// unseen categorical values degrade to zero codes instead of failing, so
// the only error here is an unloaded model.
func (b *Bundle) Score(doc *model.SurveyDocument, policy Policy) (*Result, error) {
	if !b.Ready() {
		return nil, ErrModelNotReady
	}
	record := features.Normalize(doc)
	encoded := features.Encode(record, b.encoders)
	vector := features.Align(encoded, b.ExpectedColumns())
	probability := b.classifier.PredictProbability(vector.Values)
	percentage := math.Round(probability*100*100) / 100
	return &Result{
		RiskPercentage: percentage,
		Band:           policy.Evaluate(percentage),
		Vector:         vector,
	}, nil
}
