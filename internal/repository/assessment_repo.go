package repository

import (
	"context"
	"futured/internal/model"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssessmentRepo handles MongoDB operations for persisted risk
// assessments. The collection holds at most one document per student.
type AssessmentRepo interface {
	Upsert(ctx context.Context, assessment *model.RiskAssessment) (bool, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.RiskAssessment, error)
	GetAll(ctx context.Context) ([]*model.RiskAssessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository with indexes
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	repo := &assessmentRepo{
		collection: db.Collection("risk_assessments"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *assessmentRepo) ensureIndexes(ctx context.Context) {
	uniqueOpts := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}},
		Options: uniqueOpts,
	})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}

	sortOpts := options.Index().SetUnique(false)
	_, err = r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "risk_percentage", Value: -1}},
		Options: sortOpts,
	})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

// Upsert replaces the student's stored assessment, inserting when none
// exists yet. Returns true when a new document was created.
func (r *assessmentRepo) Upsert(ctx context.Context, assessment *model.RiskAssessment) (bool, error) {
	opts := options.Replace().SetUpsert(true)
	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"student_id": assessment.StudentID},
		assessment,
		opts,
	)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *assessmentRepo) GetByStudentID(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	var assessment model.RiskAssessment
	err := r.collection.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetAll returns every stored assessment, highest risk first.
func (r *assessmentRepo) GetAll(ctx context.Context) ([]*model.RiskAssessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "risk_percentage", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []*model.RiskAssessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}
