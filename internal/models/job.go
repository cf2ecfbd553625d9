package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

type JobLocation struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Remote  bool   `json:"remote,omitempty"`
}

type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

type Job struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`

	CompanyID  string `gorm:"column:company_id;type:uuid;not null;index" json:"companyId"`
	PostedByID string `gorm:"column:posted_by_id;type:uuid;not null;index" json:"postedById"`

	Location datatypes.JSONType[JobLocation] `gorm:"column:location;type:jsonb" json:"location"`
	Salary   datatypes.JSONType[Salary]      `gorm:"column:salary;type:jsonb" json:"salary"`

	JobType         string `gorm:"column:job_type;type:varchar(20);not null" json:"jobType"`
	ExperienceLevel string `gorm:"column:experience_level;type:varchar(20);not null" json:"experienceLevel"`
	Category        string `gorm:"column:category;type:varchar(50);not null;index" json:"category"`

	Skills           pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Requirements     pq.StringArray `gorm:"column:requirements;type:text[]" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"column:responsibilities;type:text[]" json:"responsibilities"`
	Benefits         pq.StringArray `gorm:"column:benefits;type:text[]" json:"benefits"`

	Openings            int        `gorm:"column:openings;default:1" json:"openings"`
	ApplicationDeadline *time.Time `gorm:"column:application_deadline;type:timestamptz" json:"applicationDeadline"`

	Status JobStatus `gorm:"column:status;type:varchar(10);not null;default:active;index:idx_jobs_status_created" json:"status"`

	// Denormalized; kept consistent with the applications table inside the
	// transactions owned by the application repository.
	ApplicationsCount int `gorm:"column:applications_count;default:0" json:"applicationsCount"`
	Views             int `gorm:"column:views;default:0" json:"views"`

	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	PostedBy *User    `gorm:"foreignKey:PostedByID" json:"postedBy,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index:idx_jobs_status_created" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// JobStats is the employer-facing summary of a single posting.
type JobStats struct {
	Views        int `json:"views"`
	Applications int `json:"applications"`
	Openings     int `json:"openings"`
	DaysActive   int `json:"daysActive"`
}

func (j *Job) Stats(now time.Time) JobStats {
	return JobStats{
		Views:        j.Views,
		Applications: j.ApplicationsCount,
		Openings:     j.Openings,
		DaysActive:   int(now.Sub(j.CreatedAt).Hours() / 24),
	}
}
