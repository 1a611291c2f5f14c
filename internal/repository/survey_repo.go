package repository

import (
	"context"
	"futured/internal/model"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyRepo handles MongoDB operations for survey documents
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.SurveyDocument) (string, error)
	LatestByStudentID(ctx context.Context, studentID string) (*model.SurveyDocument, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository with indexes
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	repo := &surveyRepo{
		collection: db.Collection("surveys"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *surveyRepo) ensureIndexes(ctx context.Context) {
	opts := options.Index().SetUnique(false)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}},
		Options: opts,
	})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

// Create inserts a survey document. Ids are ObjectID hex strings, so the
// lexicographic order of _id matches insertion order.
func (r *surveyRepo) Create(ctx context.Context, survey *model.SurveyDocument) (string, error) {
	if survey.ID == "" {
		survey.ID = primitive.NewObjectID().Hex()
	}
	if survey.SubmittedAt.IsZero() {
		survey.SubmittedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, survey); err != nil {
		return "", err
	}
	return survey.ID, nil
}

// LatestByStudentID returns the student's newest survey, highest _id
// first, or nil when the student never submitted one.
func (r *surveyRepo) LatestByStudentID(ctx context.Context, studentID string) (*model.SurveyDocument, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var survey model.SurveyDocument
	err := r.collection.FindOne(ctx, bson.M{"student_id": studentID}, opts).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}
