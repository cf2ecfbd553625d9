package postgres

import (
	"context"
	"errors"

	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/gorm"
)

type JobRepository interface {
	List(ctx context.Context, f models.JobFilter, p models.PageRequest) ([]models.Job, int64, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindByIDWithRelations(ctx context.Context, id string) (*models.Job, error)
	IncrementViews(ctx context.Context, id string) error
	Insert(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id string) error
	ListByPoster(ctx context.Context, posterID string) ([]models.Job, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

// sortColumns whitelists the sortable fields of the public listing.
var sortColumns = map[string]string{
	"createdAt":         "created_at",
	"title":             "title",
	"views":             "views",
	"applicationsCount": "applications_count",
}

func orderClause(s models.SortOrder) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "created_at"
	}
	if s.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// applyJobFilter translates the filter into ANDed predicate groups. Search and
// location each OR over their own columns so that supplying both still narrows
// by both.
func applyJobFilter(q *gorm.DB, f models.JobFilter) *gorm.DB {
	q = q.Where("status = ?", models.JobActive)

	if f.Search != "" {
		pat := "%" + f.Search + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ?)", pat, pat)
	}
	if f.Location != "" {
		pat := "%" + f.Location + "%"
		q = q.Where("(location->>'city' ILIKE ? OR location->>'country' ILIKE ?)", pat, pat)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinSalary != nil {
		q = q.Where("(salary->>'min')::int >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("(salary->>'max')::int <= ?", *f.MaxSalary)
	}
	if f.Remote {
		q = q.Where("(location->>'remote')::boolean IS TRUE")
	}
	return q
}

func (r *jobRepo) List(ctx context.Context, f models.JobFilter, p models.PageRequest) ([]models.Job, int64, error) {
	var total int64
	if err := applyJobFilter(r.db.WithContext(ctx).Model(&models.Job{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := applyJobFilter(r.db.WithContext(ctx), f).
		Preload("Company", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "logo", "location")
		}).
		Preload("PostedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order(orderClause(f.Sort)).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) FindByIDWithRelations(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("PostedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

// IncrementViews bumps the counter in place; no read-modify-write.
func (r *jobRepo) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *jobRepo) Insert(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) Update(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error
}

func (r *jobRepo) ListByPoster(ctx context.Context, posterID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Company", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "logo")
		}).
		Where("posted_by_id = ?", posterID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
