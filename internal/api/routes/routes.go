package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/manabi09/job-portal/internal/api/handlers"
	"github.com/manabi09/job-portal/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Job         *handlers.JobHandler
	Company     *handlers.CompanyHandler
	Application *handlers.ApplicationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	authed := auth.Group("/")
	authed.Use(middleware.JWTAuth())
	authed.GET("/me", d.Auth.Me)
	authed.PUT("/profile", d.Auth.UpdateProfile)
	authed.PUT("/password", d.Auth.UpdatePassword)
	authed.POST("/avatar", d.Auth.UploadAvatar)
	authed.POST("/resume", d.Auth.UploadResume)

	// Jobs
	jobs := api.Group("/jobs")
	jobs.GET("", d.Job.List)
	jobs.GET("/:id", d.Job.Get)

	jobsEmployer := api.Group("/jobs")
	jobsEmployer.Use(middleware.JWTAuth(), middleware.RequireEmployer())
	jobsEmployer.POST("", d.Job.Create)
	jobsEmployer.PUT("/:id", d.Job.Update)
	jobsEmployer.DELETE("/:id", d.Job.Delete)
	jobsEmployer.GET("/my/posted", d.Job.MyJobs)
	jobsEmployer.GET("/:id/stats", d.Job.Stats)

	jobsSeeker := api.Group("/jobs")
	jobsSeeker.Use(middleware.JWTAuth(), middleware.RequireJobseeker())
	jobsSeeker.POST("/:id/save", d.Job.Save)
	jobsSeeker.DELETE("/:id/save", d.Job.Unsave)

	// Companies
	companies := api.Group("/companies")
	companies.GET("", d.Company.List)
	companies.GET("/:id", d.Company.Get)

	companiesEmployer := api.Group("/companies")
	companiesEmployer.Use(middleware.JWTAuth(), middleware.RequireEmployer())
	companiesEmployer.POST("", d.Company.Create)
	companiesEmployer.PUT("/:id", d.Company.Update)
	companiesEmployer.DELETE("/:id", d.Company.Delete)
	companiesEmployer.GET("/my/company", d.Company.MyCompany)
	companiesEmployer.POST("/:id/logo", d.Company.UploadLogo)

	// Applications
	appsSeeker := api.Group("/applications")
	appsSeeker.Use(middleware.JWTAuth(), middleware.RequireJobseeker())
	appsSeeker.POST("", d.Application.Apply)
	appsSeeker.GET("", d.Application.My)
	appsSeeker.PUT("/:id/withdraw", d.Application.Withdraw)

	appsEmployer := api.Group("/applications")
	appsEmployer.Use(middleware.JWTAuth(), middleware.RequireEmployer())
	appsEmployer.GET("/job/:jobId", d.Application.ListForJob)
	appsEmployer.PUT("/:id/status", d.Application.UpdateStatus)
	appsEmployer.POST("/:id/notes", d.Application.AddNote)

	appsCommon := api.Group("/applications")
	appsCommon.Use(middleware.JWTAuth())
	appsCommon.GET("/:id", d.Application.Get)
}
