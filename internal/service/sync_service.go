package service

import (
	"context"
	"fmt"
	"futured/internal/model"
	"futured/internal/repository"
	"futured/internal/riskmodel"
	"log"
	"time"

	"github.com/google/uuid"
)

// SyncService reconciles stored assessments against the current survey
// data. One bad record never aborts a batch; each failure is logged,
// recorded in the report, and the loop moves on.
type SyncService struct {
	predictions *PredictionService
	studentRepo repository.StudentRepo
	broadcaster Broadcaster
}

// NewSyncService creates a new sync service
func NewSyncService(predictions *PredictionService, studentRepo repository.StudentRepo) *SyncService {
	return &SyncService{
		predictions: predictions,
		studentRepo: studentRepo,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *SyncService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SyncAll classifies the newest survey of every student and upserts the
// results. Students without surveys are skipped and named in the report.
// An unloaded model fails the whole batch up front; nothing else does.
func (s *SyncService) SyncAll(ctx context.Context, opts model.SyncOptions) (*model.SyncReport, error) {
	if !s.predictions.Ready() {
		return nil, riskmodel.ErrModelNotReady
	}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	report := newSyncReport()
	log.Printf("Sync %s: scoring %d students", report.BatchID, len(students))

	for _, student := range students {
		if budgetExhausted(report, opts) {
			log.Printf("Sync %s: failure budget of %d exhausted, stopping early", report.BatchID, opts.MaxFailures)
			break
		}
		report.Submitted++

		assessment, state, err := s.predictions.AssessStudent(ctx, student, opts.Policy)
		if err != nil {
			skipRecord(report, student.ID, student.EnrollmentNumber, err)
			continue
		}
		if state == model.StateLookupDegraded {
			log.Printf("Warning: identity lookup degraded for student %s", student.ID)
		}

		created, err := s.predictions.persist(ctx, assessment)
		if err != nil {
			skipRecord(report, student.ID, student.EnrollmentNumber, err)
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.finish(report)
	return report, nil
}

// Sync persists a prepared batch of assessments, resolving identity per
// record. Records whose student no longer exists are skipped and named;
// a missing group only degrades that record's identity to placeholders.
func (s *SyncService) Sync(ctx context.Context, assessments []*model.RiskAssessment, opts model.SyncOptions) *model.SyncReport {
	report := newSyncReport()

	for _, assessment := range assessments {
		if budgetExhausted(report, opts) {
			log.Printf("Sync %s: failure budget of %d exhausted, stopping early", report.BatchID, opts.MaxFailures)
			break
		}
		report.Submitted++

		student, err := s.studentRepo.GetByID(ctx, assessment.StudentID)
		if err != nil {
			skipRecord(report, assessment.StudentID, assessment.EnrollmentNumber, fmt.Errorf("failed to fetch student: %w", err))
			continue
		}
		if student == nil {
			skipRecord(report, assessment.StudentID, assessment.EnrollmentNumber, ErrStudentNotFound)
			continue
		}

		if state := s.predictions.enrichIdentity(ctx, assessment, student); state == model.StateLookupDegraded {
			log.Printf("Warning: identity lookup degraded for student %s", student.ID)
		}

		created, err := s.predictions.persist(ctx, assessment)
		if err != nil {
			skipRecord(report, assessment.StudentID, assessment.EnrollmentNumber, err)
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.finish(report)
	return report
}

func (s *SyncService) finish(report *model.SyncReport) {
	report.Elapsed = time.Since(report.StartedAt)
	log.Printf("Sync %s complete: %d submitted, %d created, %d updated, %d skipped in %v",
		report.BatchID, report.Submitted, report.Created, report.Updated, len(report.Skipped), report.Elapsed)
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("sync_completed", report)
	}
}

func newSyncReport() *model.SyncReport {
	return &model.SyncReport{
		BatchID:   "sync_" + uuid.New().String()[:8],
		Skipped:   []model.SkippedRecord{},
		StartedAt: time.Now().UTC(),
	}
}

func skipRecord(report *model.SyncReport, studentID, enrollment string, err error) {
	log.Printf("Warning: skipping student %s: %v", studentID, err)
	report.Skipped = append(report.Skipped, model.SkippedRecord{
		StudentID:        studentID,
		EnrollmentNumber: enrollment,
		Reason:           err.Error(),
	})
}

func budgetExhausted(report *model.SyncReport, opts model.SyncOptions) bool {
	return opts.MaxFailures > 0 && len(report.Skipped) > opts.MaxFailures
}
