package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/storage"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/datatypes"
)

type CreateCompanyInput struct {
	Name        string
	Description string
	Website     string
	Industry    string
	CompanySize string
	FoundedYear *int
	Location    json.RawMessage
	SocialLinks json.RawMessage
	Benefits    []string
	Culture     string
}

type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Website     *string
	Industry    *string
	CompanySize *string
	FoundedYear *int
	Location    *json.RawMessage
	SocialLinks *json.RawMessage
	Benefits    *[]string
	Culture     *string
}

type CompanyService interface {
	List(ctx context.Context, f models.CompanyFilter, p models.PageRequest) ([]models.Company, int64, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	Create(ctx context.Context, caller models.Principal, in CreateCompanyInput) (*models.Company, *models.User, error)
	Update(ctx context.Context, caller models.Principal, id string, in UpdateCompanyInput) (*models.Company, error)
	Delete(ctx context.Context, caller models.Principal, id string) error
	MyCompany(ctx context.Context, caller models.Principal) (*models.Company, error)
	UploadLogo(ctx context.Context, caller models.Principal, id, objectName, contentType string, r io.Reader) (*models.Company, error)
}

type companyService struct {
	companies pgrepo.CompanyRepository
	users     pgrepo.UserRepository
	uploader  storage.Uploader
}

func NewCompanyService(companies pgrepo.CompanyRepository, users pgrepo.UserRepository, uploader storage.Uploader) CompanyService {
	return &companyService{companies: companies, users: users, uploader: uploader}
}

func (s *companyService) List(ctx context.Context, f models.CompanyFilter, p models.PageRequest) ([]models.Company, int64, error) {
	const op = "CompanyService.List"

	companies, total, err := s.companies.List(ctx, f, p)
	if err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to list companies", err)
	}
	return companies, total, nil
}

func (s *companyService) Get(ctx context.Context, id string) (*models.Company, error) {
	const op = "CompanyService.Get"

	c, err := s.companies.FindByIDWithJobs(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	return c, nil
}

func (s *companyService) Create(ctx context.Context, caller models.Principal, in CreateCompanyInput) (*models.Company, *models.User, error) {
	const op = "CompanyService.Create"

	owner, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if owner.CompanyID != nil {
		return nil, nil, utils.E(utils.CodeInvalidState, op, "you already have a company profile", nil)
	}
	if in.Name == "" || in.Description == "" || in.Industry == "" || in.CompanySize == "" {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "name, description, industry and company size are required", nil)
	}

	now := time.Now().UTC()
	c := &models.Company{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Industry:    in.Industry,
		CompanySize: in.CompanySize,
		FoundedYear: in.FoundedYear,
		Location:    datatypes.JSON(in.Location),
		SocialLinks: datatypes.JSON(in.SocialLinks),
		Benefits:    in.Benefits,
		Culture:     in.Culture,
		OwnerID:     caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.companies.CreateAndLinkOwner(ctx, c); err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateCompanyName) {
			return nil, nil, utils.E(utils.CodeConflict, op, "a company with this name already exists", err)
		}
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}

	owner, err = s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to reload user", err)
	}
	return c, owner, nil
}

func (s *companyService) Update(ctx context.Context, caller models.Principal, id string, in UpdateCompanyInput) (*models.Company, error) {
	const op = "CompanyService.Update"

	c, err := s.findOwned(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.Industry != nil {
		c.Industry = *in.Industry
	}
	if in.CompanySize != nil {
		c.CompanySize = *in.CompanySize
	}
	if in.FoundedYear != nil {
		c.FoundedYear = in.FoundedYear
	}
	if in.Location != nil {
		c.Location = datatypes.JSON(*in.Location)
	}
	if in.SocialLinks != nil {
		c.SocialLinks = datatypes.JSON(*in.SocialLinks)
	}
	if in.Benefits != nil {
		c.Benefits = *in.Benefits
	}
	if in.Culture != nil {
		c.Culture = *in.Culture
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.companies.Update(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update company", err)
	}
	return c, nil
}

func (s *companyService) Delete(ctx context.Context, caller models.Principal, id string) error {
	const op = "CompanyService.Delete"

	c, err := s.findOwned(ctx, op, caller, id)
	if err != nil {
		return err
	}
	if err := s.companies.DeleteAndUnlinkOwner(ctx, c); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete company", err)
	}
	return nil
}

func (s *companyService) MyCompany(ctx context.Context, caller models.Principal) (*models.Company, error) {
	const op = "CompanyService.MyCompany"

	owner, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if owner.CompanyID == nil {
		return nil, utils.E(utils.CodeNotFound, op, "you do not have a company profile", nil)
	}

	c, err := s.companies.FindByIDWithJobs(ctx, *owner.CompanyID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	return c, nil
}

func (s *companyService) UploadLogo(ctx context.Context, caller models.Principal, id, objectName, contentType string, r io.Reader) (*models.Company, error) {
	const op = "CompanyService.UploadLogo"

	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	c, err := s.findOwned(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	storedPath, err := s.uploader.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload logo", err)
	}

	c.Logo = storedPath
	c.UpdatedAt = time.Now().UTC()
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist logo", err)
	}
	return c, nil
}

// findOwned resolves the company and enforces ownership. Existence is checked
// before ownership so missing resources stay 404 and foreign ones 403.
func (s *companyService) findOwned(ctx context.Context, op string, caller models.Principal, id string) (*models.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	if c.OwnerID != caller.ID {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to manage this company", nil)
	}
	return c, nil
}
