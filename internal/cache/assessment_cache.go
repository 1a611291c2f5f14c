package cache

import (
	"context"
	"encoding/json"
	"futured/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// AssessmentCache handles Redis operations for stored risk assessments.
// It is a read-through layer over the assessments collection; a miss is
// never an error.
type AssessmentCache interface {
	SetAssessment(ctx context.Context, assessment *model.RiskAssessment) error
	GetAssessment(ctx context.Context, studentID string) (*model.RiskAssessment, error)
}

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *assessmentCache) key() string {
	return "assessments"
}

func (c *assessmentCache) SetAssessment(ctx context.Context, assessment *model.RiskAssessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	if err := c.client.HSet(ctx, c.key(), assessment.StudentID, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, c.key(), c.ttl).Err()
}

func (c *assessmentCache) GetAssessment(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	data, err := c.client.HGet(ctx, c.key(), studentID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var assessment model.RiskAssessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}
