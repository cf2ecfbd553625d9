package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/utils"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, AuthService) {
	t.Helper()
	users := newFakeUserRepo()
	return users, NewAuthService(users, "test-secret", time.Hour)
}

func TestRegisterNormalizesAndDefaults(t *testing.T) {
	_, svc := newAuthFixture(t)

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Jane Doe  ",
		Email:    "  Jane@Example.COM ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Name != "Jane Doe" || u.Email != "jane@example.com" {
		t.Fatalf("name=%q email=%q", u.Name, u.Email)
	}
	if u.Role != models.RoleJobseeker {
		t.Fatalf("role = %s, want jobseeker default", u.Role)
	}
	if !u.IsActive {
		t.Fatal("new user must be active")
	}
	if u.Password == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if token == "" {
		t.Fatal("no token issued")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if sub, _ := claims.GetSubject(); sub != u.ID {
		t.Fatalf("sub = %q, want %s", sub, u.ID)
	}
	if claims["role"] != string(models.RoleJobseeker) {
		t.Fatalf("role claim = %v", claims["role"])
	}
}

func TestRegisterValidation(t *testing.T) {
	_, svc := newAuthFixture(t)

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "secret1"}},
		{"missing email", RegisterInput{Name: "A", Password: "secret1"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "12345"}},
		{"admin role", RegisterInput{Name: "A", Email: "a@b.com", Password: "secret1", Role: models.RoleAdmin}},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.in); !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("%s: want INVALID_ARGUMENT, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	in := RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("Register: %v", err)
	}

	in.Name = "Other Jane"
	_, _, err := svc.Register(context.Background(), in)
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("want CONFLICT, got %v", err)
	}
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	users, svc := newAuthFixture(t)

	// a concurrent registration wins between the pre-check and the insert;
	// the unique index rejects ours
	users.insertErr = pgrepo.ErrDuplicateEmail
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret1",
	})
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("want CONFLICT, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	users, svc := newAuthFixture(t)

	u, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleEmployer,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, token, err := svc.Login(context.Background(), "Jane@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != u.ID || token == "" {
		t.Fatalf("id=%s token=%q", got.ID, token)
	}

	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong-pass")
	if !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Fatalf("wrong password: want UNAUTHORIZED, got %v", err)
	}

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	if !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Fatalf("unknown email: want UNAUTHORIZED, got %v", err)
	}

	users.users[u.ID].IsActive = false
	_, _, err = svc.Login(context.Background(), "jane@example.com", "secret1")
	if !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("deactivated: want FORBIDDEN, got %v", err)
	}
}
