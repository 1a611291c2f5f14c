package service

import (
	"context"
	"sort"

	"futured/internal/cache"
	"futured/internal/features"
	"futured/internal/model"
)

// stubClassifier pins the probability so banding and persistence can be
// asserted without crafting logistic weights.
type stubClassifier struct {
	probability float64
}

func (c *stubClassifier) PredictProbability(values []float64) float64 { return c.probability }
func (c *stubClassifier) FeatureNames() []string                      { return features.FeatureNames() }

type studentRepoFake struct {
	students  []*model.Student
	getAllErr error
}

func (f *studentRepoFake) Upsert(ctx context.Context, student *model.Student) error {
	f.students = append(f.students, student)
	return nil
}

func (f *studentRepoFake) GetByID(ctx context.Context, id string) (*model.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *studentRepoFake) GetByEnrollment(ctx context.Context, enrollment string) (*model.Student, error) {
	for _, s := range f.students {
		if s.EnrollmentNumber == enrollment {
			return s, nil
		}
	}
	return nil, nil
}

func (f *studentRepoFake) GetAll(ctx context.Context) ([]*model.Student, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	return f.students, nil
}

type surveyRepoFake struct {
	latest map[string]*model.SurveyDocument
}

func (f *surveyRepoFake) Create(ctx context.Context, survey *model.SurveyDocument) (string, error) {
	if f.latest == nil {
		f.latest = make(map[string]*model.SurveyDocument)
	}
	f.latest[survey.StudentID] = survey
	return survey.ID, nil
}

func (f *surveyRepoFake) LatestByStudentID(ctx context.Context, studentID string) (*model.SurveyDocument, error) {
	return f.latest[studentID], nil
}

type groupRepoFake struct {
	groups map[string]*model.Group
}

func (f *groupRepoFake) Upsert(ctx context.Context, group *model.Group) error {
	if f.groups == nil {
		f.groups = make(map[string]*model.Group)
	}
	f.groups[group.ID] = group
	return nil
}

func (f *groupRepoFake) GetByID(ctx context.Context, id string) (*model.Group, error) {
	return f.groups[id], nil
}

type assessmentRepoFake struct {
	stored  map[string]*model.RiskAssessment
	upserts int
	failFor map[string]error
	getErr  error
}

func newAssessmentRepoFake() *assessmentRepoFake {
	return &assessmentRepoFake{stored: make(map[string]*model.RiskAssessment)}
}

func (f *assessmentRepoFake) Upsert(ctx context.Context, assessment *model.RiskAssessment) (bool, error) {
	if err := f.failFor[assessment.StudentID]; err != nil {
		return false, err
	}
	_, existed := f.stored[assessment.StudentID]
	stored := *assessment
	f.stored[assessment.StudentID] = &stored
	f.upserts++
	return !existed, nil
}

func (f *assessmentRepoFake) GetByStudentID(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored[studentID], nil
}

func (f *assessmentRepoFake) GetAll(ctx context.Context) ([]*model.RiskAssessment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	all := make([]*model.RiskAssessment, 0, len(f.stored))
	for _, a := range f.stored {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RiskPercentage > all[j].RiskPercentage })
	return all, nil
}

type assessmentCacheFake struct {
	entries map[string]*model.RiskAssessment
	sets    int
}

func newAssessmentCacheFake() *assessmentCacheFake {
	return &assessmentCacheFake{entries: make(map[string]*model.RiskAssessment)}
}

func (f *assessmentCacheFake) SetAssessment(ctx context.Context, assessment *model.RiskAssessment) error {
	f.entries[assessment.StudentID] = assessment
	f.sets++
	return nil
}

func (f *assessmentCacheFake) GetAssessment(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	return f.entries[studentID], nil
}

type leaderboardFake struct {
	scores map[string]float64
}

func newLeaderboardFake() *leaderboardFake {
	return &leaderboardFake{scores: make(map[string]float64)}
}

func (f *leaderboardFake) UpdateScore(ctx context.Context, studentID string, riskPercentage float64) error {
	f.scores[studentID] = riskPercentage
	return nil
}

func (f *leaderboardFake) GetTop(ctx context.Context, limit int) ([]cache.RiskRankEntry, error) {
	entries := make([]cache.RiskRankEntry, 0, len(f.scores))
	for id, score := range f.scores {
		entries = append(entries, cache.RiskRankEntry{StudentID: id, RiskPercentage: score})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RiskPercentage > entries[j].RiskPercentage })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

type broadcasterFake struct {
	messages []string
}

func (f *broadcasterFake) Broadcast(msgType string, payload interface{}) {
	f.messages = append(f.messages, msgType)
}

func (f *broadcasterFake) received(msgType string) int {
	n := 0
	for _, m := range f.messages {
		if m == msgType {
			n++
		}
	}
	return n
}
