package postgres

import (
	"context"
	"errors"

	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/gorm"
)

// ErrDuplicateCompanyName surfaces the unique company name constraint.
var ErrDuplicateCompanyName = errors.New("duplicate company name")

type CompanyRepository interface {
	List(ctx context.Context, f models.CompanyFilter, p models.PageRequest) ([]models.Company, int64, error)
	FindByID(ctx context.Context, id string) (*models.Company, error)
	FindByIDWithJobs(ctx context.Context, id string) (*models.Company, error)
	CreateAndLinkOwner(ctx context.Context, c *models.Company) error
	Update(ctx context.Context, c *models.Company) error
	DeleteAndUnlinkOwner(ctx context.Context, c *models.Company) error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func applyCompanyFilter(q *gorm.DB, f models.CompanyFilter) *gorm.DB {
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		q = q.Where("(name ILIKE ? OR description ILIKE ?)", pat, pat)
	}
	if f.Industry != "" {
		q = q.Where("industry = ?", f.Industry)
	}
	if f.CompanySize != "" {
		q = q.Where("company_size = ?", f.CompanySize)
	}
	return q
}

func (r *companyRepo) List(ctx context.Context, f models.CompanyFilter, p models.PageRequest) ([]models.Company, int64, error) {
	var total int64
	if err := applyCompanyFilter(r.db.WithContext(ctx).Model(&models.Company{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := applyCompanyFilter(r.db.WithContext(ctx), f).
		Omit("owner_id"). // not exposed on the public listing
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&companies).Error
	return companies, total, err
}

func (r *companyRepo) FindByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *companyRepo) FindByIDWithJobs(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).
		Preload("Jobs").
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

// CreateAndLinkOwner inserts the company and points the owner's company_id at
// it in one transaction.
func (r *companyRepo) CreateAndLinkOwner(ctx context.Context, c *models.Company) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", c.OwnerID).
			Update("company_id", c.ID).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCompanyName
	}
	return err
}

func (r *companyRepo) Update(ctx context.Context, c *models.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteAndUnlinkOwner removes the company and nulls the owner's company_id in
// one transaction. The reference is decoupled, so both sides are written here.
func (r *companyRepo) DeleteAndUnlinkOwner(ctx context.Context, c *models.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Company{}, "id = ?", c.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", c.OwnerID).
			Update("company_id", nil).Error
	})
}
