package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Company struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description;type:varchar(2000);not null" json:"description"`
	Logo        string `gorm:"column:logo;type:text" json:"logo"`
	Website     string `gorm:"column:website;type:text" json:"website"`
	Industry    string `gorm:"column:industry;type:text;not null" json:"industry"`
	CompanySize string `gorm:"column:company_size;type:varchar(20);not null" json:"companySize"`
	FoundedYear *int   `gorm:"column:founded_year" json:"foundedYear"`

	Location    datatypes.JSON `gorm:"column:location;type:jsonb" json:"location"`
	SocialLinks datatypes.JSON `gorm:"column:social_links;type:jsonb" json:"socialLinks"`
	Benefits    pq.StringArray `gorm:"column:benefits;type:text[]" json:"benefits"`
	Culture     string         `gorm:"column:culture;type:varchar(1000)" json:"culture"`

	OwnerID string `gorm:"column:owner_id;type:uuid;not null;index" json:"ownerId,omitempty"`

	IsVerified   bool    `gorm:"column:is_verified;default:false" json:"isVerified"`
	Rating       float64 `gorm:"column:rating;type:decimal(2,1);default:0" json:"rating"`
	ReviewsCount int     `gorm:"column:reviews_count;default:0" json:"reviewsCount"`

	Jobs []Job `gorm:"foreignKey:CompanyID" json:"jobs,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Company) TableName() string { return "companies" }
