package services

import (
	"context"
	"testing"

	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/utils"
)

type companyFixture struct {
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	svc       CompanyService

	employer models.Principal
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()

	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	users.users["employer-1"] = &models.User{ID: "employer-1", Role: models.RoleEmployer}

	return &companyFixture{
		users:     users,
		companies: companies,
		svc:       NewCompanyService(companies, users, nil),
		employer:  models.Principal{ID: "employer-1", Role: models.RoleEmployer},
	}
}

func validCompanyInput() CreateCompanyInput {
	return CreateCompanyInput{
		Name:        "Acme",
		Description: "We make everything",
		Industry:    "manufacturing",
		CompanySize: "51-200",
	}
}

func TestCreateCompanyLinksOwner(t *testing.T) {
	f := newCompanyFixture(t)

	c, owner, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.OwnerID != "employer-1" {
		t.Fatalf("ownerId = %s", c.OwnerID)
	}
	if owner.CompanyID == nil || *owner.CompanyID != c.ID {
		t.Fatalf("owner companyId = %v, want %s", owner.CompanyID, c.ID)
	}
}

func TestCreateCompanyWhenAlreadyOwned(t *testing.T) {
	f := newCompanyFixture(t)

	if _, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validCompanyInput()
	in.Name = "Second Co"
	_, _, err := f.svc.Create(context.Background(), f.employer, in)
	if !utils.IsCode(err, utils.CodeInvalidState) {
		t.Fatalf("want INVALID_STATE, got %v", err)
	}
}

func TestCreateCompanyDuplicateNameRace(t *testing.T) {
	f := newCompanyFixture(t)

	// another employer claims the name between our checks and the insert;
	// the unique index rejects ours
	f.companies.createErr = pgrepo.ErrDuplicateCompanyName
	_, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("want CONFLICT, got %v", err)
	}
}

func TestCreateCompanyMissingFields(t *testing.T) {
	f := newCompanyFixture(t)

	in := validCompanyInput()
	in.Industry = ""
	_, _, err := f.svc.Create(context.Background(), f.employer, in)
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("want INVALID_ARGUMENT, got %v", err)
	}
}

func TestUpdateCompanyOwnership(t *testing.T) {
	f := newCompanyFixture(t)
	c, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := models.Principal{ID: "employer-2", Role: models.RoleEmployer}
	name := "Evil Corp"
	_, err = f.svc.Update(context.Background(), stranger, c.ID, UpdateCompanyInput{Name: &name})
	if !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("want FORBIDDEN, got %v", err)
	}

	_, err = f.svc.Update(context.Background(), f.employer, "missing", UpdateCompanyInput{Name: &name})
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.employer, c.ID, UpdateCompanyInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Evil Corp" {
		t.Fatalf("name = %q", updated.Name)
	}
}

func TestDeleteCompanyNotOwnerLeavesIntact(t *testing.T) {
	f := newCompanyFixture(t)
	c, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := models.Principal{ID: "employer-2", Role: models.RoleEmployer}
	err = f.svc.Delete(context.Background(), stranger, c.ID)
	if !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("want FORBIDDEN, got %v", err)
	}
	if _, ok := f.companies.companies[c.ID]; !ok {
		t.Fatal("company was deleted by a non-owner")
	}
	if f.users.users["employer-1"].CompanyID == nil {
		t.Fatal("owner link was cleared by a non-owner")
	}
}

func TestDeleteCompanyUnlinksOwner(t *testing.T) {
	f := newCompanyFixture(t)
	c, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.employer, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.companies.companies[c.ID]; ok {
		t.Fatal("company still present")
	}
	if f.users.users["employer-1"].CompanyID != nil {
		t.Fatal("owner companyId not cleared")
	}
}

func TestMyCompany(t *testing.T) {
	f := newCompanyFixture(t)

	_, err := f.svc.MyCompany(context.Background(), f.employer)
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}

	c, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := f.svc.MyCompany(context.Background(), f.employer)
	if err != nil {
		t.Fatalf("MyCompany: %v", err)
	}
	if mine.ID != c.ID {
		t.Fatalf("id = %s, want %s", mine.ID, c.ID)
	}
}

func TestUploadLogoWithoutUploader(t *testing.T) {
	f := newCompanyFixture(t)
	c, _, err := f.svc.Create(context.Background(), f.employer, validCompanyInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.UploadLogo(context.Background(), f.employer, c.ID, "logos/x.png", "image/png", nil)
	if !utils.IsCode(err, utils.CodeInternal) {
		t.Fatalf("want INTERNAL, got %v", err)
	}
}
