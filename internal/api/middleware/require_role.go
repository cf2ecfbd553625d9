package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manabi09/job-portal/internal/models"
)

func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	allow := map[models.Role]struct{}{}
	for _, a := range allowed {
		if a != "" {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Message: "forbidden",
			})
			return
		}

		if _, ok := allow[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Message: "forbidden",
			})
			return
		}

		c.Next()
	}
}

func RequireEmployer() gin.HandlerFunc  { return RequireRole(models.RoleEmployer, models.RoleAdmin) }
func RequireJobseeker() gin.HandlerFunc { return RequireRole(models.RoleJobseeker, models.RoleAdmin) }
