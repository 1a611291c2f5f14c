package repository

import (
	"context"
	"futured/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgramRepo handles MongoDB operations for degree programs. Programs
// are reference data written by the seeder; serving reads go through
// groups, whose codes already carry the program prefix.
type ProgramRepo interface {
	Upsert(ctx context.Context, program *model.Program) error
}

type programRepo struct {
	collection *mongo.Collection
}

// NewProgramRepo creates a new program repository
func NewProgramRepo(db *mongo.Database) ProgramRepo {
	return &programRepo{
		collection: db.Collection("programs"),
	}
}

func (r *programRepo) Upsert(ctx context.Context, program *model.Program) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": program.ID},
		program,
		opts,
	)
	return err
}
