package service

import (
	"context"
	"errors"
	"fmt"
	"futured/internal/cache"
	"futured/internal/model"
	"futured/internal/repository"
	"futured/internal/riskmodel"
	"log"
	"time"
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrSurveyNotFound     = errors.New("no survey found for student")
	ErrAssessmentNotFound = errors.New("no assessment stored for student")
)

// PredictionService runs the classification pipeline and owns the stored
// assessments. Cache and leaderboard are best-effort layers; only the
// MongoDB write is a hard dependency.
type PredictionService struct {
	bundle         *riskmodel.Bundle
	studentRepo    repository.StudentRepo
	surveyRepo     repository.SurveyRepo
	groupRepo      repository.GroupRepo
	assessmentRepo repository.AssessmentRepo
	assessments    cache.AssessmentCache
	leaderboard    cache.RiskLeaderboard
	broadcaster    Broadcaster
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	bundle *riskmodel.Bundle,
	studentRepo repository.StudentRepo,
	surveyRepo repository.SurveyRepo,
	groupRepo repository.GroupRepo,
	assessmentRepo repository.AssessmentRepo,
	assessments cache.AssessmentCache,
	leaderboard cache.RiskLeaderboard,
) *PredictionService {
	return &PredictionService{
		bundle:         bundle,
		studentRepo:    studentRepo,
		surveyRepo:     surveyRepo,
		groupRepo:      groupRepo,
		assessmentRepo: assessmentRepo,
		assessments:    assessments,
		leaderboard:    leaderboard,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *PredictionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Ready reports whether the model bundle can classify.
func (s *PredictionService) Ready() bool {
	return s.bundle.Ready()
}

// ScoreDocument classifies one raw survey document without persisting
// anything. Identity stays whatever the document carries.
func (s *PredictionService) ScoreDocument(ctx context.Context, doc *model.SurveyDocument, policyName model.BandPolicy) (*model.RiskAssessment, error) {
	if doc == nil {
		doc = &model.SurveyDocument{}
	}
	policy := riskmodel.PolicyByName(policyName)
	result, err := s.bundle.Score(doc, policy)
	if err != nil {
		return nil, err
	}
	if result.Vector.Degraded {
		log.Printf("Warning: classifier artifact carries no column signature, scoring in natural feature order")
	}
	return newAssessment(doc.StudentID, doc.EnrollmentNumber, result, policy), nil
}

// AssessStudent classifies the student's newest survey and resolves the
// display identity. Nothing is persisted here. The returned state tells
// the caller whether identity lookup fully resolved or degraded to
// placeholders.
func (s *PredictionService) AssessStudent(ctx context.Context, student *model.Student, policyName model.BandPolicy) (*model.RiskAssessment, model.AssessmentState, error) {
	survey, err := s.surveyRepo.LatestByStudentID(ctx, student.ID)
	if err != nil {
		return nil, model.StatePending, fmt.Errorf("failed to fetch survey: %w", err)
	}
	if survey == nil {
		return nil, model.StatePending, ErrSurveyNotFound
	}

	policy := riskmodel.PolicyByName(policyName)
	result, err := s.bundle.Score(survey, policy)
	if err != nil {
		return nil, model.StatePending, err
	}

	assessment := newAssessment(student.ID, student.EnrollmentNumber, result, policy)
	state := s.enrichIdentity(ctx, assessment, student)
	return assessment, state, nil
}

// PredictByEnrollment runs the full path for one student: lookup, latest
// survey, classification, identity enrichment, idempotent persist.
func (s *PredictionService) PredictByEnrollment(ctx context.Context, enrollment string) (*model.RiskAssessment, error) {
	student, err := s.studentRepo.GetByEnrollment(ctx, enrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	assessment, state, err := s.AssessStudent(ctx, student, model.PolicyFourBand)
	if err != nil {
		return nil, err
	}
	if state == model.StateLookupDegraded {
		log.Printf("Warning: identity lookup degraded for student %s", student.ID)
	}

	if _, err := s.persist(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// GetByEnrollment returns the stored assessment for a student,
// cache-first.
func (s *PredictionService) GetByEnrollment(ctx context.Context, enrollment string) (*model.RiskAssessment, error) {
	student, err := s.studentRepo.GetByEnrollment(ctx, enrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	assessment, err := s.cachedAssessment(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}
	return assessment, nil
}

// List returns every stored assessment, highest risk first.
func (s *PredictionService) List(ctx context.Context) ([]*model.RiskAssessment, error) {
	return s.assessmentRepo.GetAll(ctx)
}

// TopAtRisk returns the highest-risk students in rank order. The Redis
// leaderboard serves the ranking; without one the sorted collection scan
// answers instead.
func (s *PredictionService) TopAtRisk(ctx context.Context, limit int) ([]*model.RiskAssessment, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.leaderboard == nil {
		all, err := s.assessmentRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	entries, err := s.leaderboard.GetTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk leaderboard: %w", err)
	}

	top := make([]*model.RiskAssessment, 0, len(entries))
	for _, entry := range entries {
		assessment, err := s.cachedAssessment(ctx, entry.StudentID)
		if err != nil || assessment == nil {
			log.Printf("Warning: leaderboard entry %s has no stored assessment", entry.StudentID)
			continue
		}
		top = append(top, assessment)
	}
	return top, nil
}

// enrichIdentity fills the display name and group code from the identity
// records. A missing group or empty name degrades to the Unknown
// placeholder instead of failing the record.
func (s *PredictionService) enrichIdentity(ctx context.Context, assessment *model.RiskAssessment, student *model.Student) model.AssessmentState {
	assessment.FullName = student.FullName()
	assessment.GroupName = model.UnknownIdentity

	state := model.StateLookupResolved
	if assessment.FullName == model.UnknownIdentity {
		state = model.StateLookupDegraded
	}

	if student.GroupID == "" {
		return model.StateLookupDegraded
	}
	group, err := s.groupRepo.GetByID(ctx, student.GroupID)
	if err != nil || group == nil {
		log.Printf("Warning: group %s not found for student %s", student.GroupID, student.ID)
		return model.StateLookupDegraded
	}
	assessment.GroupName = group.Code
	return state
}

// persist upserts the assessment and refreshes the best-effort layers.
// Returns true when the student had no stored assessment before.
func (s *PredictionService) persist(ctx context.Context, assessment *model.RiskAssessment) (bool, error) {
	created, err := s.assessmentRepo.Upsert(ctx, assessment)
	if err != nil {
		return false, fmt.Errorf("failed to upsert assessment: %w", err)
	}

	if s.assessments != nil {
		if err := s.assessments.SetAssessment(ctx, assessment); err != nil {
			log.Printf("Warning: failed to cache assessment for student %s: %v", assessment.StudentID, err)
		}
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.UpdateScore(ctx, assessment.StudentID, assessment.RiskPercentage); err != nil {
			log.Printf("Warning: failed to update risk leaderboard for student %s: %v", assessment.StudentID, err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("assessment_upserted", assessment)
	}
	return created, nil
}

// cachedAssessment reads through the cache into the collection,
// backfilling on a miss.
func (s *PredictionService) cachedAssessment(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	if s.assessments != nil {
		if cached, err := s.assessments.GetAssessment(ctx, studentID); err == nil && cached != nil {
			return cached, nil
		}
	}

	assessment, err := s.assessmentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	if assessment == nil {
		return nil, nil
	}
	if s.assessments != nil {
		if err := s.assessments.SetAssessment(ctx, assessment); err != nil {
			log.Printf("Warning: failed to cache assessment for student %s: %v", studentID, err)
		}
	}
	return assessment, nil
}

func newAssessment(studentID, enrollment string, result *riskmodel.Result, policy riskmodel.Policy) *model.RiskAssessment {
	return &model.RiskAssessment{
		StudentID:        studentID,
		EnrollmentNumber: enrollment,
		RiskPercentage:   result.RiskPercentage,
		Tier:             result.Band.Tier,
		Motive:           result.Band.Motive,
		Recommendation:   result.Band.Recommendation,
		Policy:           policy.Name,
		CreatedAt:        time.Now().UTC(),
	}
}
