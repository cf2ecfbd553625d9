package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/datatypes"
)

type CreateJobInput struct {
	Title               string
	Description         string
	Location            models.JobLocation
	Salary              models.Salary
	JobType             string
	ExperienceLevel     string
	Category            string
	Skills              []string
	Requirements        []string
	Responsibilities    []string
	Benefits            []string
	Openings            int
	ApplicationDeadline *time.Time
	Status              models.JobStatus
}

type UpdateJobInput struct {
	Title               *string
	Description         *string
	Location            *models.JobLocation
	Salary              *models.Salary
	JobType             *string
	ExperienceLevel     *string
	Category            *string
	Skills              *[]string
	Requirements        *[]string
	Responsibilities    *[]string
	Benefits            *[]string
	Openings            *int
	ApplicationDeadline *time.Time
	Status              *models.JobStatus
}

type JobService interface {
	List(ctx context.Context, f models.JobFilter, p models.PageRequest) ([]models.Job, int64, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, caller models.Principal, in CreateJobInput) (*models.Job, error)
	Update(ctx context.Context, caller models.Principal, id string, in UpdateJobInput) (*models.Job, error)
	Delete(ctx context.Context, caller models.Principal, id string) error
	MyJobs(ctx context.Context, caller models.Principal) ([]models.Job, error)
	Stats(ctx context.Context, caller models.Principal, id string) (*models.JobStats, error)
	SaveJob(ctx context.Context, caller models.Principal, id string) (*models.User, error)
	UnsaveJob(ctx context.Context, caller models.Principal, id string) (*models.User, error)
}

type jobService struct {
	jobs      pgrepo.JobRepository
	companies pgrepo.CompanyRepository
	users     pgrepo.UserRepository
}

func NewJobService(jobs pgrepo.JobRepository, companies pgrepo.CompanyRepository, users pgrepo.UserRepository) JobService {
	return &jobService{jobs: jobs, companies: companies, users: users}
}

func (s *jobService) List(ctx context.Context, f models.JobFilter, p models.PageRequest) ([]models.Job, int64, error) {
	const op = "JobService.List"

	jobs, total, err := s.jobs.List(ctx, f, p)
	if err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, total, nil
}

// Get returns the job and counts the view. Every fetch counts; there is no
// per-viewer deduplication.
func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	j, err := s.jobs.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count view", err)
	}
	j.Views++

	return j, nil
}

func (s *jobService) Create(ctx context.Context, caller models.Principal, in CreateJobInput) (*models.Job, error) {
	const op = "JobService.Create"

	poster, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if poster.CompanyID == nil {
		return nil, utils.E(utils.CodeInvalidState, op, "please create a company profile first", nil)
	}

	company, err := s.companies.FindByID(ctx, *poster.CompanyID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
	}
	if company.OwnerID != caller.ID {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to post jobs for this company", nil)
	}

	if in.Title == "" || in.Description == "" || in.JobType == "" || in.ExperienceLevel == "" || in.Category == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title, description, job type, experience level and category are required", nil)
	}
	if in.Openings < 1 {
		in.Openings = 1
	}
	if in.Status == "" {
		in.Status = models.JobActive
	}

	now := time.Now().UTC()
	j := &models.Job{
		ID:                  uuid.NewString(),
		Title:               in.Title,
		Description:         in.Description,
		CompanyID:           company.ID,
		PostedByID:          caller.ID,
		Location:            datatypes.NewJSONType(in.Location),
		Salary:              datatypes.NewJSONType(in.Salary),
		JobType:             in.JobType,
		ExperienceLevel:     in.ExperienceLevel,
		Category:            in.Category,
		Skills:              in.Skills,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		Benefits:            in.Benefits,
		Openings:            in.Openings,
		ApplicationDeadline: in.ApplicationDeadline,
		Status:              in.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.jobs.Insert(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, caller models.Principal, id string, in UpdateJobInput) (*models.Job, error) {
	const op = "JobService.Update"

	j, err := s.findPosted(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Location != nil {
		j.Location = datatypes.NewJSONType(*in.Location)
	}
	if in.Salary != nil {
		j.Salary = datatypes.NewJSONType(*in.Salary)
	}
	if in.JobType != nil {
		j.JobType = *in.JobType
	}
	if in.ExperienceLevel != nil {
		j.ExperienceLevel = *in.ExperienceLevel
	}
	if in.Category != nil {
		j.Category = *in.Category
	}
	if in.Skills != nil {
		j.Skills = *in.Skills
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.Responsibilities != nil {
		j.Responsibilities = *in.Responsibilities
	}
	if in.Benefits != nil {
		j.Benefits = *in.Benefits
	}
	if in.Openings != nil && *in.Openings >= 1 {
		j.Openings = *in.Openings
	}
	if in.ApplicationDeadline != nil {
		j.ApplicationDeadline = in.ApplicationDeadline
	}
	if in.Status != nil {
		j.Status = *in.Status
	}
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, caller models.Principal, id string) error {
	const op = "JobService.Delete"

	if _, err := s.findPosted(ctx, op, caller, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	return nil
}

func (s *jobService) MyJobs(ctx context.Context, caller models.Principal) ([]models.Job, error) {
	const op = "JobService.MyJobs"

	jobs, err := s.jobs.ListByPoster(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Stats(ctx context.Context, caller models.Principal, id string) (*models.JobStats, error) {
	const op = "JobService.Stats"

	j, err := s.findPosted(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}
	stats := j.Stats(time.Now().UTC())
	return &stats, nil
}

func (s *jobService) SaveJob(ctx context.Context, caller models.Principal, id string) (*models.User, error) {
	const op = "JobService.SaveJob"

	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	u, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if !u.HasSaved(id) {
		u.SavedJobs = append(u.SavedJobs, id)
		u.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, u); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to save job", err)
		}
	}
	return u, nil
}

func (s *jobService) UnsaveJob(ctx context.Context, caller models.Principal, id string) (*models.User, error) {
	const op = "JobService.UnsaveJob"

	u, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	kept := u.SavedJobs[:0]
	for _, saved := range u.SavedJobs {
		if saved != id {
			kept = append(kept, saved)
		}
	}
	if len(kept) != len(u.SavedJobs) {
		u.SavedJobs = kept
		u.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, u); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to unsave job", err)
		}
	}
	return u, nil
}

// findPosted resolves the job and enforces poster ownership; existence before
// ownership.
func (s *jobService) findPosted(ctx context.Context, op string, caller models.Principal, id string) (*models.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if j.PostedByID != caller.ID {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to manage this job", nil)
	}
	return j, nil
}
