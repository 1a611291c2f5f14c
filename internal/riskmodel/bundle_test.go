package riskmodel

import (
	"path/filepath"
	"strings"
	"testing"

	"futured/internal/features"
	"futured/internal/model"
)

// fixedClassifier always returns the same probability, so banding can be
// tested without crafting logistic weights.
type fixedClassifier struct {
	probability float64
	columns     []string
}

func (f *fixedClassifier) PredictProbability(values []float64) float64 { return f.probability }
func (f *fixedClassifier) FeatureNames() []string                      { return f.columns }

func healthySurvey() *model.SurveyDocument {
	return &model.SurveyDocument{
		StudentID:        "stu_1",
		EnrollmentNumber: "20240001001",
		Socioeconomic: map[string]interface{}{
			"trabaja":         "No",
			"ingreso_mensual": 6000,
		},
		Health: map[string]interface{}{
			"horas_sueno":          "6-8",
			"alimentacion":         "Buena",
			"padecimiento_cronico": "No",
			"atencion_psicologica": "No",
		},
		Academic: map[string]interface{}{
			"promedio_previo":      9.5,
			"materias_reprobadas":  0,
			"motivacion":           5,
			"dificultad_estudio":   "Tiempo",
			"expectativa_terminar": "Muy seguro",
		},
	}
}

func TestScoreLowRiskSurvey(t *testing.T) {
	bundle := NewBundle(&fixedClassifier{probability: 0.05, columns: features.FeatureNames()}, features.NewRegistry())

	res, err := bundle.Score(healthySurvey(), FourBand)
	if err != nil {
		t.Fatalf("failed to score: %v", err)
	}
	if res.RiskPercentage != 5.0 {
		t.Errorf("risk percentage: got %v, want 5.0", res.RiskPercentage)
	}
	if res.Band.Tier != model.TierLow {
		t.Errorf("tier: got %q, want Low", res.Band.Tier)
	}
	if res.Band.Motive != "No apparent risk" {
		t.Errorf("motive: got %q", res.Band.Motive)
	}
}

func TestScoreHighRiskSurvey(t *testing.T) {
	doc := healthySurvey()
	doc.Socioeconomic["trabaja"] = "Sí"
	doc.Academic["promedio_previo"] = 6.0
	doc.Academic["materias_reprobadas"] = 4

	bundle := NewBundle(&fixedClassifier{probability: 0.85, columns: features.FeatureNames()}, features.NewRegistry())

	res, err := bundle.Score(doc, FourBand)
	if err != nil {
		t.Fatalf("failed to score: %v", err)
	}
	if res.RiskPercentage != 85.0 {
		t.Errorf("risk percentage: got %v, want 85.0", res.RiskPercentage)
	}
	if res.Band.Tier != model.TierHigh {
		t.Errorf("tier: got %q, want High", res.Band.Tier)
	}
	if !strings.Contains(res.Band.Motive, "multiple academic and personal risk factors") {
		t.Errorf("motive should name the risk factors, got %q", res.Band.Motive)
	}
}

func TestScoreSurveyMissingHealthSection(t *testing.T) {
	doc := healthySurvey()
	doc.Health = nil

	bundle := NewBundle(&fixedClassifier{probability: 0.3, columns: features.FeatureNames()}, features.NewRegistry())

	res, err := bundle.Score(doc, FourBand)
	if err != nil {
		t.Fatalf("a missing section must not fail scoring: %v", err)
	}
	if len(res.Vector.Values) != len(features.FeatureNames()) {
		t.Fatalf("vector length: got %d, want %d", len(res.Vector.Values), len(features.FeatureNames()))
	}
	for i, col := range res.Vector.Columns {
		if col == "horas_sueno" || col == "padecimiento_cronico" {
			if res.Vector.Values[i] != 0 {
				t.Errorf("%s should encode to 0 when the section is absent, got %v", col, res.Vector.Values[i])
			}
		}
	}
}

func TestScoreFailsFastWhenNotReady(t *testing.T) {
	var bundle *Bundle
	if _, err := bundle.Score(healthySurvey(), FourBand); err != ErrModelNotReady {
		t.Fatalf("nil bundle: got %v, want ErrModelNotReady", err)
	}
	empty := NewBundle(nil, features.NewRegistry())
	if _, err := empty.Score(healthySurvey(), FourBand); err != ErrModelNotReady {
		t.Fatalf("bundle without classifier: got %v, want ErrModelNotReady", err)
	}
}

func TestScoreWithoutColumnSignatureIsDegraded(t *testing.T) {
	bundle := NewBundle(&fixedClassifier{probability: 0.5}, features.NewRegistry())

	res, err := bundle.Score(healthySurvey(), FourBand)
	if err != nil {
		t.Fatalf("failed to score: %v", err)
	}
	if !res.Vector.Degraded {
		t.Error("vector should be flagged degraded without a stored signature")
	}
	if len(res.Vector.Values) != len(features.FeatureNames()) {
		t.Errorf("degraded vector still covers the schema: got %d values", len(res.Vector.Values))
	}
}

func TestLoadBundleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "modelo.json")
	encodersPath := filepath.Join(dir, "label_encoders.json")

	classifier := &LogisticClassifier{
		Columns: features.FeatureNames(),
		Weights: make([]float64, len(features.FeatureNames())),
		Bias:    -1.2,
	}
	if err := classifier.Save(modelPath); err != nil {
		t.Fatalf("failed to save classifier: %v", err)
	}

	registry := features.NewRegistry()
	registry.Fit("horas_sueno", []string{"<6", "6-8", ">8"})
	if err := registry.Save(encodersPath); err != nil {
		t.Fatalf("failed to save registry: %v", err)
	}

	bundle, err := LoadBundle(modelPath, encodersPath)
	if err != nil {
		t.Fatalf("failed to load bundle: %v", err)
	}
	if !bundle.Ready() {
		t.Fatal("loaded bundle should be ready")
	}
	if got := len(bundle.ExpectedColumns()); got != len(features.FeatureNames()) {
		t.Errorf("expected columns: got %d, want %d", got, len(features.FeatureNames()))
	}
}

func TestLoadBundleMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "modelo.json")

	classifier := &LogisticClassifier{Weights: []float64{1}, Bias: 0}
	if err := classifier.Save(modelPath); err != nil {
		t.Fatalf("failed to save classifier: %v", err)
	}

	if _, err := LoadBundle(modelPath, filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error when the encoder artifact is missing")
	}
	if _, err := LoadBundle(filepath.Join(dir, "missing.json"), modelPath); err == nil {
		t.Fatal("expected error when the classifier artifact is missing")
	}
}
