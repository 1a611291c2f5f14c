package model

import "time"

// RiskTier is the actionable bucket a risk percentage falls into.
type RiskTier string

const (
	TierHigh       RiskTier = "High"
	TierMediumHigh RiskTier = "Medium-High"
	TierMediumLow  RiskTier = "Medium-Low"
	TierLow        RiskTier = "Low"
)

// BandPolicy selects which threshold banding interprets a risk
// percentage. The four-band policy is the serving default; the two-band
// policy belongs to the data-generation path. They are never merged.
type BandPolicy string

const (
	PolicyFourBand BandPolicy = "four_band"
	PolicyTwoBand  BandPolicy = "two_band"
)

// AssessmentState tracks an assessment through a sync batch. Any failure
// before StatePersisted drops that one record from the batch's success
// set without touching its siblings.
type AssessmentState string

const (
	StatePending        AssessmentState = "pending"
	StateClassified     AssessmentState = "classified"
	StateLookupResolved AssessmentState = "lookup_resolved"
	StateLookupDegraded AssessmentState = "lookup_degraded"
	StatePersisted      AssessmentState = "persisted"
)

// RiskAssessment is the persisted outcome of one classification. It is
// immutable once created; the next assessment for the same student
// replaces it wholesale. Keyed by StudentID, so replacements never carry
// their own record id.
type RiskAssessment struct {
	StudentID        string     `json:"studentId" bson:"student_id"`
	EnrollmentNumber string     `json:"enrollmentNumber" bson:"enrollment_number"`
	FullName         string     `json:"fullName" bson:"full_name"`
	GroupName        string     `json:"groupName" bson:"group_name"`
	RiskPercentage   float64    `json:"riskPercentage" bson:"risk_percentage"`
	Tier             RiskTier   `json:"tier" bson:"tier"`
	Motive           string     `json:"motive" bson:"motive"`
	Recommendation   string     `json:"recommendation" bson:"recommendation"`
	Policy           BandPolicy `json:"policy" bson:"policy"`
	CreatedAt        time.Time  `json:"createdAt" bson:"created_at"`
}

// SkippedRecord names an assessment the synchronizer could not persist
// and why.
type SkippedRecord struct {
	StudentID        string `json:"studentId"`
	EnrollmentNumber string `json:"enrollmentNumber,omitempty"`
	Reason           string `json:"reason"`
}

// SyncReport summarizes one synchronizer batch. It is always returned,
// even when individual records failed.
type SyncReport struct {
	BatchID   string          `json:"batchId"`
	Submitted int             `json:"submitted"`
	Created   int             `json:"created"`
	Updated   int             `json:"updated"`
	Skipped   []SkippedRecord `json:"skipped"`
	StartedAt time.Time       `json:"startedAt"`
	Elapsed   time.Duration   `json:"elapsedNs"`
}

// Persisted is Created + Updated.
func (r *SyncReport) Persisted() int {
	return r.Created + r.Updated
}

// SyncOptions carries per-batch knobs. MaxFailures is the caller-supplied
// failure budget: once more than MaxFailures records have been skipped
// the batch stops early. Zero means no budget.
type SyncOptions struct {
	Policy      BandPolicy `json:"policy,omitempty"`
	MaxFailures int        `json:"maxFailures,omitempty"`
}
