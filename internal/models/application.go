package models

import (
	"time"

	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusOffered     ApplicationStatus = "offered"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// stageRank orders the forward pipeline. Rejected and withdrawn sit outside
// the pipeline: rejected is reachable from any non-terminal stage, withdrawn
// only through the withdraw operation.
var stageRank = map[ApplicationStatus]int{
	StatusPending:     0,
	StatusReviewing:   1,
	StatusShortlisted: 2,
	StatusInterviewed: 3,
	StatusOffered:     4,
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusInterviewed,
		StatusOffered, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Terminal statuses admit no further transition.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusOffered || s == StatusRejected || s == StatusWithdrawn
}

// CanTransitionTo reports whether an employer status update from s to to is
// legal. Skipping forward stages is allowed; moving backwards is not, and
// withdrawn is never reachable through a status update.
func (s ApplicationStatus) CanTransitionTo(to ApplicationStatus) bool {
	if s.Terminal() || !to.Valid() || to == s {
		return false
	}
	if to == StatusRejected {
		return true
	}
	if to == StatusWithdrawn {
		return false
	}
	return stageRank[to] > stageRank[s]
}

// StatusChange is one entry of the append-only audit trail.
type StatusChange struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy string            `json:"changedBy,omitempty"`
	Comment   string            `json:"comment,omitempty"`
	ChangedAt time.Time         `json:"changedAt"`
}

type Note struct {
	Text      string    `json:"text"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type Application struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID       string `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index:idx_applications_job_status" json:"jobId"`
	ApplicantID string `gorm:"column:applicant_id;type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index:idx_applications_applicant_created" json:"applicantId"`

	// Snapshot of the applicant's resume path at apply time.
	Resume      string `gorm:"column:resume;type:text;not null" json:"resume"`
	CoverLetter string `gorm:"column:cover_letter;type:varchar(2000)" json:"coverLetter"`

	Status  ApplicationStatus `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_applications_job_status" json:"status"`
	Answers datatypes.JSON    `gorm:"column:answers;type:jsonb" json:"answers"`

	Notes         datatypes.JSONSlice[Note]         `gorm:"column:notes;type:jsonb" json:"notes"`
	StatusHistory datatypes.JSONSlice[StatusChange] `gorm:"column:status_history;type:jsonb" json:"statusHistory"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index:idx_applications_applicant_created" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Application) TableName() string { return "applications" }
