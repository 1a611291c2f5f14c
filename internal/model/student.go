package model

import (
	"strings"
	"time"
)

// Student is the identity record risk assessments are keyed by.
type Student struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	EnrollmentNumber string    `json:"enrollmentNumber" bson:"enrollment_number"`
	FirstName        string    `json:"firstName" bson:"first_name"`
	PaternalSurname  string    `json:"paternalSurname" bson:"paternal_surname"`
	MaternalSurname  string    `json:"maternalSurname" bson:"maternal_surname"`
	GroupID          string    `json:"groupId" bson:"group_id"`
	ProgramID        string    `json:"programId" bson:"program_id"`
	EnrolledAt       time.Time `json:"enrolledAt" bson:"enrolled_at"`
}

// UnknownIdentity is the placeholder for names and groups that cannot be
// resolved. A failed lookup degrades to this value instead of failing the
// record.
const UnknownIdentity = "Unknown"

// FullName joins the non-empty name parts, or UnknownIdentity when the
// student has no name fields at all.
func (s *Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.PaternalSurname, s.MaternalSurname} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return UnknownIdentity
	}
	return strings.Join(parts, " ")
}

// Group is a cohort of students within a program, e.g. "IDGS-81".
type Group struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Code      string `json:"code" bson:"code"`
	ProgramID string `json:"programId" bson:"program_id"`
	Term      int    `json:"term" bson:"term"`
}

// Program is a degree program, e.g. "IDGS".
type Program struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Code string `json:"code" bson:"code"`
	Name string `json:"name" bson:"name"`
}
