package services

import (
	"context"
	"sort"

	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/utils"
)

// In-memory fakes over the repository interfaces. Counter maintenance mirrors
// the real repository transactions: create increments, withdraw decrements
// floored at zero.

type fakeUserRepo struct {
	users     map[string]*models.User
	insertErr error // forced on the next Insert, simulating a constraint race
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *models.User) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*models.Company
	userRepo  *fakeUserRepo
	createErr error // forced on the next CreateAndLinkOwner, simulating a constraint race
}

func newFakeCompanyRepo(users *fakeUserRepo) *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*models.Company{}, userRepo: users}
}

func (r *fakeCompanyRepo) List(_ context.Context, _ models.CompanyFilter, p models.PageRequest) ([]models.Company, int64, error) {
	var all []models.Company
	for _, c := range r.companies {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	lo := p.Offset()
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + p.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id string) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) FindByIDWithJobs(ctx context.Context, id string) (*models.Company, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeCompanyRepo) CreateAndLinkOwner(_ context.Context, c *models.Company) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *c
	r.companies[c.ID] = &cp
	if u, ok := r.userRepo.users[c.OwnerID]; ok {
		id := c.ID
		u.CompanyID = &id
	}
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) DeleteAndUnlinkOwner(_ context.Context, c *models.Company) error {
	delete(r.companies, c.ID)
	if u, ok := r.userRepo.users[c.OwnerID]; ok {
		u.CompanyID = nil
	}
	return nil
}

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*models.Job{}}
}

func (r *fakeJobRepo) List(_ context.Context, f models.JobFilter, p models.PageRequest) ([]models.Job, int64, error) {
	var active []models.Job
	for _, j := range r.jobs {
		if j.Status == models.JobActive {
			active = append(active, *j)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	total := int64(len(active))
	lo := p.Offset()
	if lo > len(active) {
		lo = len(active)
	}
	hi := lo + p.Limit
	if hi > len(active) {
		hi = len(active)
	}
	return active[lo:hi], total, nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) FindByIDWithRelations(ctx context.Context, id string) (*models.Job, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeJobRepo) IncrementViews(_ context.Context, id string) error {
	j, ok := r.jobs[id]
	if !ok {
		return utils.ErrNotFound
	}
	j.Views++
	return nil
}

func (r *fakeJobRepo) Insert(_ context.Context, j *models.Job) error {
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *models.Job) error {
	if _, ok := r.jobs[j.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ListByPoster(_ context.Context, posterID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.PostedByID == posterID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeApplicationRepo struct {
	apps        map[string]*models.Application
	jobRepo     *fakeJobRepo
	createCalls int
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]*models.Application{}, jobRepo: jobs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.createCalls++
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return pgrepo.ErrDuplicateApplication
		}
	}
	cp := *a
	r.apps[a.ID] = &cp
	if j, ok := r.jobRepo.jobs[a.JobID]; ok {
		j.ApplicationsCount++
	}
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) FindByIDWithRelations(_ context.Context, id string) (*models.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	if j, ok := r.jobRepo.jobs[a.JobID]; ok {
		jc := *j
		cp.Job = &jc
	}
	return &cp, nil
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(_ context.Context, jobID, applicantID string) (*models.Application, error) {
	for _, a := range r.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID string, status models.ApplicationStatus, p models.PageRequest) ([]models.Application, int64, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.JobID == jobID && (status == "" || a.Status == status) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	lo := p.Offset()
	if lo > len(out) {
		lo = len(out)
	}
	hi := lo + p.Limit
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], total, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, a *models.Application) error {
	if _, ok := r.apps[a.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *a
	r.apps[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) Withdraw(_ context.Context, a *models.Application) error {
	if err := r.Update(context.Background(), a); err != nil {
		return err
	}
	if j, ok := r.jobRepo.jobs[a.JobID]; ok && j.ApplicationsCount > 0 {
		j.ApplicationsCount--
	}
	return nil
}
