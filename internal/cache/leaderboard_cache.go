package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RiskLeaderboard handles Redis ZSET operations for the at-risk ranking.
// Scores are risk percentages, so the top of the board is the cohort
// that needs attention first.
type RiskLeaderboard interface {
	UpdateScore(ctx context.Context, studentID string, riskPercentage float64) error
	GetTop(ctx context.Context, limit int) ([]RiskRankEntry, error)
}

// RiskRankEntry represents a single leaderboard entry
type RiskRankEntry struct {
	StudentID      string  `json:"studentId"`
	RiskPercentage float64 `json:"riskPercentage"`
	Rank           int     `json:"rank"`
}

type riskLeaderboard struct {
	client *redis.Client
}

// NewRiskLeaderboard creates a new risk leaderboard cache
func NewRiskLeaderboard(client *redis.Client) RiskLeaderboard {
	return &riskLeaderboard{
		client: client,
	}
}

func (c *riskLeaderboard) key() string {
	return "students:risk:lb"
}

func (c *riskLeaderboard) UpdateScore(ctx context.Context, studentID string, riskPercentage float64) error {
	return c.client.ZAdd(ctx, c.key(), redis.Z{
		Score:  riskPercentage,
		Member: studentID,
	}).Err()
}

func (c *riskLeaderboard) GetTop(ctx context.Context, limit int) ([]RiskRankEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]RiskRankEntry, len(results))
	for i, z := range results {
		entries[i] = RiskRankEntry{
			StudentID:      z.Member.(string),
			RiskPercentage: z.Score,
			Rank:           i + 1,
		}
	}
	return entries, nil
}
