package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Principal is the authenticated caller, decoded from the bearer token.
// It is passed explicitly into every service operation.
type Principal struct {
	ID   string
	Role Role
}

type User struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Email    string `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;type:text;not null" json:"-"`
	Role     Role   `gorm:"column:role;type:varchar(20);not null;default:jobseeker" json:"role"`

	Phone  string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Avatar string `gorm:"column:avatar;type:text" json:"avatar"`
	Resume string `gorm:"column:resume;type:text" json:"resume"`

	Skills     pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Experience int            `gorm:"column:experience" json:"experience"`
	Education  datatypes.JSON `gorm:"column:education;type:jsonb" json:"education"`
	Location   datatypes.JSON `gorm:"column:location;type:jsonb" json:"location"`
	Bio        string         `gorm:"column:bio;type:varchar(500)" json:"bio"`

	// At most one company per employer; decoupled reference, no hard FK.
	CompanyID *string        `gorm:"column:company_id;type:uuid" json:"companyId"`
	SavedJobs pq.StringArray `gorm:"column:saved_jobs;type:text[]" json:"savedJobs"`

	IsEmailVerified bool `gorm:"column:is_email_verified;default:false" json:"isEmailVerified"`
	IsActive        bool `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// HasSaved reports whether jobID is in the user's saved set.
func (u *User) HasSaved(jobID string) bool {
	for _, id := range u.SavedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}
