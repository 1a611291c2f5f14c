package model

import "time"

// Section names a nested block of a SurveyDocument.
type Section string

const (
	SectionSocioeconomic Section = "socioeconomic"
	SectionHealth        Section = "health"
	SectionAcademic      Section = "academic"
)

// SurveyDocument is the semi-structured survey record a student submits.
// The three nested sections are open-ended mappings; fields come and go
// across survey revisions, so nothing beyond the identity fields is
// guaranteed to be present.
type SurveyDocument struct {
	ID               string                 `json:"id" bson:"_id,omitempty"`
	StudentID        string                 `json:"studentId" bson:"student_id"`
	EnrollmentNumber string                 `json:"enrollmentNumber" bson:"enrollment_number"`
	Socioeconomic    map[string]interface{} `json:"socioeconomic,omitempty" bson:"socioeconomic,omitempty"`
	Health           map[string]interface{} `json:"health,omitempty" bson:"health,omitempty"`
	Academic         map[string]interface{} `json:"academic,omitempty" bson:"academic,omitempty"`
	SubmittedAt      time.Time              `json:"submittedAt" bson:"submitted_at"`
}

// SectionMap returns the named nested section, or nil when the document
// does not carry it. Lookups against a nil map are safe, so callers never
// need to branch on presence.
func (d *SurveyDocument) SectionMap(name Section) map[string]interface{} {
	switch name {
	case SectionSocioeconomic:
		return d.Socioeconomic
	case SectionHealth:
		return d.Health
	case SectionAcademic:
		return d.Academic
	}
	return nil
}
