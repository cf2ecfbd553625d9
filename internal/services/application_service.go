package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/datatypes"
)

type ApplyInput struct {
	JobID       string
	CoverLetter string
	Answers     json.RawMessage
}

type ApplicationService interface {
	Apply(ctx context.Context, caller models.Principal, in ApplyInput) (*models.Application, error)
	MyApplications(ctx context.Context, caller models.Principal) ([]models.Application, error)
	Get(ctx context.Context, caller models.Principal, id string) (*models.Application, error)
	ListForJob(ctx context.Context, caller models.Principal, jobID string, status models.ApplicationStatus, p models.PageRequest) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, caller models.Principal, id string, status models.ApplicationStatus, comment string) (*models.Application, error)
	Withdraw(ctx context.Context, caller models.Principal, id string) (*models.Application, error)
	AddNote(ctx context.Context, caller models.Principal, id, text string) (*models.Application, error)
}

type applicationService struct {
	apps  pgrepo.ApplicationRepository
	jobs  pgrepo.JobRepository
	users pgrepo.UserRepository
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, users pgrepo.UserRepository) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, users: users}
}

// Apply checks, in order: job exists, job is accepting applications, the
// caller has not already applied, the caller has a resume on file. The insert
// and the applications_count increment are one transaction in the repository.
func (s *applicationService) Apply(ctx context.Context, caller models.Principal, in ApplyInput) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if in.JobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if job.Status != models.JobActive {
		return nil, utils.E(utils.CodeInvalidState, op, "this job is no longer accepting applications", nil)
	}

	if _, err := s.apps.FindByJobAndApplicant(ctx, in.JobID, caller.ID); err == nil {
		return nil, utils.E(utils.CodeInvalidState, op, "you have already applied for this job", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}

	applicant, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if applicant.Resume == "" {
		return nil, utils.E(utils.CodeInvalidState, op, "please upload your resume before applying", nil)
	}

	now := time.Now().UTC()
	a := &models.Application{
		ID:          uuid.NewString(),
		JobID:       in.JobID,
		ApplicantID: caller.ID,
		Resume:      applicant.Resume,
		CoverLetter: in.CoverLetter,
		Status:      models.StatusPending,
		Answers:     datatypes.JSON(in.Answers),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.apps.Create(ctx, a); err != nil {
		// the unique (job_id, applicant_id) index is the authority; a
		// concurrent racer gets the same answer as the pre-check
		if errors.Is(err, pgrepo.ErrDuplicateApplication) {
			return nil, utils.E(utils.CodeInvalidState, op, "you have already applied for this job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return a, nil
}

func (s *applicationService) MyApplications(ctx context.Context, caller models.Principal) ([]models.Application, error) {
	const op = "ApplicationService.MyApplications"

	apps, err := s.apps.ListByApplicant(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return apps, nil
}

// Get is readable by the applicant or by the poster of the parent job.
func (s *applicationService) Get(ctx context.Context, caller models.Principal, id string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	a, err := s.apps.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	isPoster := a.Job != nil && a.Job.PostedByID == caller.ID
	if a.ApplicantID != caller.ID && !isPoster {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to view this application", nil)
	}
	return a, nil
}

func (s *applicationService) ListForJob(ctx context.Context, caller models.Principal, jobID string, status models.ApplicationStatus, p models.PageRequest) ([]models.Application, int64, error) {
	const op = "ApplicationService.ListForJob"

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, 0, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if job.PostedByID != caller.ID {
		return nil, 0, utils.E(utils.CodeForbidden, op, "not authorized to view applications for this job", nil)
	}
	if status != "" && !status.Valid() {
		return nil, 0, utils.E(utils.CodeInvalidArgument, op, "invalid status filter", nil)
	}

	apps, total, err := s.apps.ListByJob(ctx, jobID, status, p)
	if err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return apps, total, nil
}

// UpdateStatus is the single canonical transition path: it validates the
// forward transition and appends the one statusHistory entry for the change.
func (s *applicationService) UpdateStatus(ctx context.Context, caller models.Principal, id string, status models.ApplicationStatus, comment string) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	a, err := s.findForPoster(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}
	if !a.Status.CanTransitionTo(status) {
		return nil, utils.E(utils.CodeInvalidState, op,
			fmt.Sprintf("cannot move application from %s to %s", a.Status, status), nil)
	}

	a.Status = status
	a.StatusHistory = append(a.StatusHistory, models.StatusChange{
		Status:    status,
		ChangedBy: caller.ID,
		Comment:   comment,
		ChangedAt: time.Now().UTC(),
	})
	a.UpdatedAt = time.Now().UTC()

	if err := s.apps.Update(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}
	return a, nil
}

// Withdraw moves a non-terminal application to withdrawn and decrements the
// job counter (floored at zero) in the repository transaction.
func (s *applicationService) Withdraw(ctx context.Context, caller models.Principal, id string) (*models.Application, error) {
	const op = "ApplicationService.Withdraw"

	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if a.ApplicantID != caller.ID {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to withdraw this application", nil)
	}
	if a.Status.Terminal() {
		return nil, utils.E(utils.CodeInvalidState, op, "cannot withdraw application at this stage", nil)
	}

	a.Status = models.StatusWithdrawn
	a.StatusHistory = append(a.StatusHistory, models.StatusChange{
		Status:    models.StatusWithdrawn,
		ChangedBy: caller.ID,
		ChangedAt: time.Now().UTC(),
	})
	a.UpdatedAt = time.Now().UTC()

	if err := s.apps.Withdraw(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to withdraw application", err)
	}
	return a, nil
}

// AddNote appends an employer note; status and statusHistory are untouched.
func (s *applicationService) AddNote(ctx context.Context, caller models.Principal, id, text string) (*models.Application, error) {
	const op = "ApplicationService.AddNote"

	if text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "text is required", nil)
	}

	a, err := s.findForPoster(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	a.Notes = append(a.Notes, models.Note{
		Text:      text,
		AddedBy:   caller.ID,
		CreatedAt: time.Now().UTC(),
	})
	a.UpdatedAt = time.Now().UTC()

	if err := s.apps.Update(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add note", err)
	}
	return a, nil
}

// findForPoster resolves the application and requires the caller to be the
// poster of its parent job.
func (s *applicationService) findForPoster(ctx context.Context, op string, caller models.Principal, id string) (*models.Application, error) {
	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	job, err := s.jobs.FindByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if job.PostedByID != caller.ID {
		return nil, utils.E(utils.CodeForbidden, op, "not authorized to manage this application", nil)
	}
	return a, nil
}
