package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/manabi09/job-portal/config"
	"github.com/manabi09/job-portal/internal/api/handlers"
	"github.com/manabi09/job-portal/internal/api/middleware"
	"github.com/manabi09/job-portal/internal/api/routes"
	"github.com/manabi09/job-portal/internal/logger"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/services"
	"github.com/manabi09/job-portal/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	db, err := config.NewPostgres()
	if err != nil {
		log.Fatalf("postgres init error: %v", err)
	}
	log.Info("postgres connected")

	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcsUploader, err := storage.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			log.Fatalf("gcs init error: %v", err)
		}
		defer gcsUploader.Close()
		uploader = gcsUploader
		log.WithField("bucket", bucket).Info("gcs uploader configured")
	} else {
		log.Warn("GCS_BUCKET not set; file uploads disabled")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	jwtTTL := 7 * 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			jwtTTL = d
		}
	}

	// Repositories
	users := pgrepo.NewUserRepo(db)
	companies := pgrepo.NewCompanyRepo(db)
	jobs := pgrepo.NewJobRepo(db)
	applications := pgrepo.NewApplicationRepo(db)

	// Services
	authSvc := services.NewAuthService(users, jwtSecret, jwtTTL)
	userSvc := services.NewUserService(users, uploader)
	companySvc := services.NewCompanyService(companies, users, uploader)
	jobSvc := services.NewJobService(jobs, companies, users)
	applicationSvc := services.NewApplicationService(applications, jobs, users)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc, userSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Company:     handlers.NewCompanyHandler(companySvc),
		Application: handlers.NewApplicationHandler(applicationSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
