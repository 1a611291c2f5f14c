package repository

import (
	"context"
	"futured/internal/model"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StudentRepo handles MongoDB operations for student identity records
type StudentRepo interface {
	Upsert(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEnrollment(ctx context.Context, enrollment string) (*model.Student, error)
	GetAll(ctx context.Context) ([]*model.Student, error)
}

type studentRepo struct {
	collection *mongo.Collection
}

// NewStudentRepo creates a new student repository with indexes
func NewStudentRepo(db *mongo.Database) StudentRepo {
	repo := &studentRepo{
		collection: db.Collection("students"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *studentRepo) ensureIndexes(ctx context.Context) {
	opts := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "enrollment_number", Value: 1}},
		Options: opts,
	})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

func (r *studentRepo) Upsert(ctx context.Context, student *model.Student) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": student.ID},
		student,
		opts,
	)
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEnrollment(ctx context.Context, enrollment string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"enrollment_number": enrollment}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetAll(ctx context.Context) ([]*model.Student, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
