package postgres

import (
	"context"
	"errors"

	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/gorm"
)

// ErrDuplicateApplication surfaces the unique (job_id, applicant_id) constraint.
var ErrDuplicateApplication = errors.New("duplicate application")

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByIDWithRelations(ctx context.Context, id string) (*models.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string, status models.ApplicationStatus, p models.PageRequest) ([]models.Application, int64, error)
	Update(ctx context.Context, a *models.Application) error
	Withdraw(ctx context.Context, a *models.Application) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts the application and increments the job's applications_count
// in the same transaction, so the counter cannot drift from the row it counts.
func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", a.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *applicationRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) FindByIDWithRelations(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Applicant", func(db *gorm.DB) *gorm.DB {
			return db.Omit("password")
		}).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "logo")
		}).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string, status models.ApplicationStatus, p models.PageRequest) ([]models.Application, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Where("job_id = ?", jobID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := base().Model(&models.Application{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := base().
		Preload("Applicant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "avatar", "skills", "experience", "location")
		}).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *applicationRepo) Update(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Withdraw persists the withdrawn application and decrements the job's
// applications_count, floored at zero, in one transaction.
func (r *applicationRepo) Withdraw(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", a.JobID).
			UpdateColumn("applications_count", gorm.Expr("GREATEST(applications_count - 1, 0)")).Error
	})
}
