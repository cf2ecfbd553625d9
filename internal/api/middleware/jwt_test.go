package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/manabi09/job-portal/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret, sub, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authEngine(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)

	r := gin.New()
	r.GET("/whoami", JWTAuth(), func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	return r
}

func doGet(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthValidToken(t *testing.T) {
	r := authEngine(t, "test-secret")
	token := signToken(t, "test-secret", "user-1", "employer", time.Hour)

	w := doGet(r, "/whoami", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	r := authEngine(t, "test-secret")

	for _, header := range []string{"", "Bearer ", "Basic abc", "token-without-scheme"} {
		w := doGet(r, "/whoami", header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestJWTAuthBadSignature(t *testing.T) {
	r := authEngine(t, "test-secret")
	token := signToken(t, "other-secret", "user-1", "employer", time.Hour)

	w := doGet(r, "/whoami", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	r := authEngine(t, "test-secret")
	token := signToken(t, "test-secret", "user-1", "employer", -time.Hour)

	w := doGet(r, "/whoami", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthMissingSubject(t *testing.T) {
	r := authEngine(t, "test-secret")
	token := signToken(t, "test-secret", "", "employer", time.Hour)

	w := doGet(r, "/whoami", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthDefaultsRole(t *testing.T) {
	r := authEngine(t, "test-secret")
	token := signToken(t, "test-secret", "user-1", "", time.Hour)

	w := doGet(r, "/whoami", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"role":"`+string(models.RoleJobseeker)+`"`) {
		t.Fatalf("body = %s, want jobseeker role", body)
	}
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := gin.New()
	r.GET("/employer-only", JWTAuth(), RequireEmployer(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{"employer", http.StatusOK},
		{"admin", http.StatusOK},
		{"jobseeker", http.StatusForbidden},
	}
	for _, tc := range cases {
		token := signToken(t, "test-secret", "user-1", tc.role, time.Hour)
		w := doGet(r, "/employer-only", "Bearer "+token)
		if w.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.role, w.Code, tc.want)
		}
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	r := gin.New()
	r.GET("/guarded", RequireEmployer(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGet(r, "/guarded", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
