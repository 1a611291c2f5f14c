package main

import (
	"context"
	"fmt"
	"futured/internal/config"
	"futured/internal/features"
	"futured/internal/model"
	"futured/internal/repository"
	"futured/internal/riskmodel"
	"futured/internal/service"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fixed seed so reruns regenerate the same cohort
var rng = rand.New(rand.NewSource(42))

const studentsPerDecile = 100

var programs = []model.Program{
	{ID: "prog_idgs", Code: "IDGS", Name: "Ingeniería en Desarrollo y Gestión de Software"},
	{ID: "prog_iric", Code: "IRIC", Name: "Ingeniería en Redes Inteligentes y Ciberseguridad"},
}

var groups = []model.Group{
	{ID: "grp_idgs_81", Code: "IDGS-81", ProgramID: "prog_idgs", Term: 8},
	{ID: "grp_idgs_82", Code: "IDGS-82", ProgramID: "prog_idgs", Term: 8},
	{ID: "grp_idgs_83", Code: "IDGS-83", ProgramID: "prog_idgs", Term: 8},
	{ID: "grp_iric_81", Code: "IRIC-81", ProgramID: "prog_iric", Term: 8},
	{ID: "grp_iric_82", Code: "IRIC-82", ProgramID: "prog_iric", Term: 8},
	{ID: "grp_iric_83", Code: "IRIC-83", ProgramID: "prog_iric", Term: 8},
}

var firstNames = []string{
	"Ana", "Luis", "María", "Diego", "Sofía", "Carlos", "Valeria", "Jorge",
	"Fernanda", "Miguel", "Daniela", "Alejandro", "Ximena", "Ricardo", "Paola",
}

var surnames = []string{
	"García", "Hernández", "Martínez", "López", "González", "Pérez",
	"Sánchez", "Ramírez", "Torres", "Flores", "Rivera", "Cruz",
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	studentRepo := repository.NewStudentRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	programRepo := repository.NewProgramRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	// Reference data
	for i := range programs {
		if err := programRepo.Upsert(ctx, &programs[i]); err != nil {
			log.Fatalf("Failed to upsert program %s: %v", programs[i].Code, err)
		}
	}
	for i := range groups {
		if err := groupRepo.Upsert(ctx, &groups[i]); err != nil {
			log.Fatalf("Failed to upsert group %s: %v", groups[i].Code, err)
		}
	}
	fmt.Printf("Seeded %d programs, %d groups\n", len(programs), len(groups))

	// Students and surveys, one risk decile at a time
	surveys := make([]*model.SurveyDocument, 0, 10*studentsPerDecile)
	for risk := 10; risk <= 100; risk += 10 {
		for i := 0; i < studentsPerDecile; i++ {
			student, survey := generateStudent(risk)

			if err := studentRepo.Upsert(ctx, student); err != nil {
				log.Printf("Warning: failed to upsert student %s: %v", student.EnrollmentNumber, err)
				continue
			}
			if _, err := surveyRepo.Create(ctx, survey); err != nil {
				log.Printf("Warning: failed to insert survey for %s: %v", student.EnrollmentNumber, err)
				continue
			}
			surveys = append(surveys, survey)
		}
	}
	fmt.Printf("Seeded %d students with surveys\n", len(surveys))

	// Fit the encoder registry over the generated corpus and write both
	// artifacts next to each other
	registry := fitRegistry(surveys)
	classifier := demoClassifier()

	if err := os.MkdirAll(filepath.Dir(cfg.ModelPath), 0755); err != nil {
		log.Fatalf("Failed to create artifact directory: %v", err)
	}
	if err := classifier.Save(cfg.ModelPath); err != nil {
		log.Fatalf("Failed to save classifier: %v", err)
	}
	if err := registry.Save(cfg.EncodersPath); err != nil {
		log.Fatalf("Failed to save encoders: %v", err)
	}
	fmt.Printf("Wrote artifacts: %s, %s\n", cfg.ModelPath, cfg.EncodersPath)

	// Score the whole cohort with the fresh bundle. Seeded data carries the
	// coarse at-risk/no-risk labels, so sync under the two-band policy.
	bundle := riskmodel.NewBundle(classifier, registry)
	predictionSvc := service.NewPredictionService(bundle, studentRepo, surveyRepo, groupRepo, assessmentRepo, nil, nil)
	syncSvc := service.NewSyncService(predictionSvc, studentRepo)

	report, err := syncSvc.SyncAll(ctx, model.SyncOptions{Policy: model.PolicyTwoBand})
	if err != nil {
		log.Fatalf("Failed to sync assessments: %v", err)
	}

	fmt.Printf("Synced assessments: %d submitted, %d created, %d updated, %d skipped (%.1fs)\n",
		report.Submitted, report.Created, report.Updated, len(report.Skipped), report.Elapsed.Seconds())
}

// generateStudent builds one student and their survey. Feature
// distributions follow the decile label: profiles at or above the alert
// threshold lean toward working students with failed subjects, low
// averages and poor sleep, the rest toward the inverse.
func generateStudent(risk int) (*model.Student, *model.SurveyDocument) {
	atRisk := riskmodel.TwoBand.Evaluate(float64(risk)).Tier == model.TierHigh

	group := groups[rng.Intn(len(groups))]
	student := &model.Student{
		ID:               uuid.NewString(),
		EnrollmentNumber: fmt.Sprintf("%d", 10000000000+rng.Int63n(90000000000)),
		FirstName:        pick(firstNames),
		PaternalSurname:  pick(surnames),
		MaternalSurname:  pick(surnames),
		GroupID:          group.ID,
		ProgramID:        group.ProgramID,
		EnrolledAt:       time.Now().UTC().AddDate(0, -rng.Intn(36), 0),
	}

	var (
		trabaja      string
		ingreso      int
		padecimiento string
		atencion     string
		sueno        string
		alimentacion string
		reprobadas   int
		promedio     float64
		motivacion   int
		expectativa  string
	)

	if atRisk {
		trabaja = pickWeighted("Sí", 0.75, "No")
		ingreso = []int{0, 2000, 4000}[rng.Intn(3)]
		padecimiento = pickWeighted("Sí", 0.35, "No")
		atencion = pickWeighted("Sí", 0.45, "No")
		sueno = pickWeighted("<6", 0.70, pick([]string{"6-8", ">8"}))
		alimentacion = pickWeighted("Mala", 0.45, pick([]string{"Regular", "Buena"}))
		reprobadas = 2 + rng.Intn(4)
		promedio = 5.0 + rng.Float64()*2.5
		motivacion = 1 + rng.Intn(3)
		expectativa = pick([]string{"Poco seguro", "Inseguro"})
	} else {
		trabaja = pickWeighted("Sí", 0.20, "No")
		ingreso = []int{2000, 4000, 6000, 8000}[rng.Intn(4)]
		padecimiento = pickWeighted("Sí", 0.10, "No")
		atencion = pickWeighted("Sí", 0.12, "No")
		sueno = pickWeighted("6-8", 0.70, pick([]string{">8", "<6"}))
		alimentacion = pickWeighted("Buena", 0.55, pick([]string{"Regular", "Mala"}))
		reprobadas = rng.Intn(2)
		promedio = 8.0 + rng.Float64()*1.8
		motivacion = 4 + rng.Intn(2)
		expectativa = pick([]string{"Muy seguro", "Seguro"})
	}

	survey := &model.SurveyDocument{
		StudentID:        student.ID,
		EnrollmentNumber: student.EnrollmentNumber,
		Socioeconomic: map[string]interface{}{
			"trabaja":         trabaja,
			"ingreso_mensual": ingreso,
			"horas_trabajo":   nil,
			"aporte_familiar": pick([]string{"Padre", "Madre", "Hermano", "Otro"}),
		},
		Health: map[string]interface{}{
			"padecimiento_cronico": padecimiento,
			"atencion_psicologica": atencion,
			"horas_sueno":          sueno,
			"alimentacion":         alimentacion,
			"embarazada":           "No",
		},
		Academic: map[string]interface{}{
			"promedio_previo":      math.Round(promedio*100) / 100,
			"materias_reprobadas":  reprobadas,
			"motivacion":           motivacion,
			"dificultad_estudio":   pick([]string{"Académica", "Salud", "Familiar", "Dinero", "Tiempo"}),
			"expectativa_terminar": expectativa,
			"horas_estudio_diario": pick([]string{"<1", "1-2", "2-4", ">4"}),
			"repitio_anio":         pickWeighted("Sí", 0.15, "No"),
		},
		SubmittedAt: time.Now().UTC(),
	}

	return student, survey
}

// fitRegistry fits one encoder per free-text categorical feature over the
// generated corpus. Boolean features resolve by affirmative matching and
// numeric ones pass through raw, so neither needs an encoder.
func fitRegistry(surveys []*model.SurveyDocument) *features.Registry {
	fitted := []string{"horas_sueno", "alimentacion", "dificultad_estudio", "expectativa_terminar"}

	corpus := make(map[string][]string, len(fitted))
	for _, survey := range surveys {
		rec := features.Normalize(survey)
		for _, name := range fitted {
			if v := rec[name]; v != nil {
				corpus[name] = append(corpus[name], fmt.Sprint(v))
			}
		}
	}

	registry := features.NewRegistry()
	for _, name := range fitted {
		registry.Fit(name, corpus[name])
	}
	return registry
}

// demoClassifier returns hand-tuned logistic weights that separate the
// seeded profiles well enough for a live demo. Real deployments replace
// the artifact with a trained one; the column signature keeps alignment
// stable either way.
func demoClassifier() *riskmodel.LogisticClassifier {
	weights := map[string]float64{
		"trabaja":              0.9,
		"ingreso_mensual":      -0.00012,
		"padecimiento_cronico": 0.6,
		"atencion_psicologica": 0.5,
		"horas_sueno":          0.3,
		"alimentacion":         0.2,
		"materias_reprobadas":  0.55,
		"promedio_previo":      -0.65,
		"motivacion":           -0.3,
		"dificultad_estudio":   0.12,
		"expectativa_terminar": -0.15,
	}

	columns := features.FeatureNames()
	ordered := make([]float64, len(columns))
	for i, name := range columns {
		ordered[i] = weights[name]
	}

	return &riskmodel.LogisticClassifier{
		Columns: columns,
		Weights: ordered,
		Bias:    2.3,
	}
}

func pick(items []string) string {
	return items[rng.Intn(len(items))]
}

// pickWeighted returns favored with probability p, otherwise other.
func pickWeighted(favored string, p float64, other string) string {
	if rng.Float64() < p {
		return favored
	}
	return other
}
