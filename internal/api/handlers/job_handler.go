package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/services"
	"github.com/manabi09/job-portal/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func jobFilterFromQuery(c *gin.Context) models.JobFilter {
	f := models.JobFilter{
		Search:          c.Query("search"),
		Location:        c.Query("location"),
		JobType:         c.Query("jobType"),
		ExperienceLevel: c.Query("experienceLevel"),
		Category:        c.Query("category"),
		Remote:          c.Query("remote") == "true",
		Sort:            models.ParseSort(c.DefaultQuery("sort", "-createdAt")),
	}
	if v := c.Query("minSalary"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinSalary = &n
		}
	}
	if v := c.Query("maxSalary"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MaxSalary = &n
		}
	}
	return f
}

func (h *JobHandler) List(c *gin.Context) {
	f := jobFilterFromQuery(c)
	p := pageFromQuery(c)

	jobs, total, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		writeError(c, err)
		return
	}
	respondPage(c, models.NewPageInfo(len(jobs), total, p), jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, job)
}

type CreateJobRequest struct {
	Title               string             `json:"title" binding:"required,max=100"`
	Description         string             `json:"description" binding:"required,max=5000"`
	Location            models.JobLocation `json:"location"`
	Salary              models.Salary      `json:"salary"`
	JobType             string             `json:"jobType" binding:"required,oneof=full-time part-time contract internship freelance"`
	ExperienceLevel     string             `json:"experienceLevel" binding:"required,oneof=entry mid senior lead executive"`
	Category            string             `json:"category" binding:"required"`
	Skills              []string           `json:"skills,omitempty"`
	Requirements        []string           `json:"requirements,omitempty"`
	Responsibilities    []string           `json:"responsibilities,omitempty"`
	Benefits            []string           `json:"benefits,omitempty"`
	Openings            int                `json:"openings" binding:"omitempty,min=1"`
	ApplicationDeadline *time.Time         `json:"applicationDeadline,omitempty"`
	Status              models.JobStatus   `json:"status" binding:"omitempty,oneof=active closed draft"`
}

func (h *JobHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	job, err := h.svc.Create(c.Request.Context(), p, services.CreateJobInput{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Salary:              req.Salary,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		Category:            req.Category,
		Skills:              req.Skills,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Benefits:            req.Benefits,
		Openings:            req.Openings,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusCreated, "job created successfully", job)
}

type UpdateJobRequest struct {
	Title               *string             `json:"title,omitempty" binding:"omitempty,max=100"`
	Description         *string             `json:"description,omitempty" binding:"omitempty,max=5000"`
	Location            *models.JobLocation `json:"location,omitempty"`
	Salary              *models.Salary      `json:"salary,omitempty"`
	JobType             *string             `json:"jobType,omitempty" binding:"omitempty,oneof=full-time part-time contract internship freelance"`
	ExperienceLevel     *string             `json:"experienceLevel,omitempty" binding:"omitempty,oneof=entry mid senior lead executive"`
	Category            *string             `json:"category,omitempty"`
	Skills              *[]string           `json:"skills,omitempty"`
	Requirements        *[]string           `json:"requirements,omitempty"`
	Responsibilities    *[]string           `json:"responsibilities,omitempty"`
	Benefits            *[]string           `json:"benefits,omitempty"`
	Openings            *int                `json:"openings,omitempty" binding:"omitempty,min=1"`
	ApplicationDeadline *time.Time          `json:"applicationDeadline,omitempty"`
	Status              *models.JobStatus   `json:"status,omitempty" binding:"omitempty,oneof=active closed draft"`
}

func (h *JobHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}

	job, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), services.UpdateJobInput{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Salary:              req.Salary,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		Category:            req.Category,
		Skills:              req.Skills,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Benefits:            req.Benefits,
		Openings:            req.Openings,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "job updated successfully", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "job deleted successfully"})
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.svc.MyJobs(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	respondCount(c, len(jobs), jobs)
}

func (h *JobHandler) Stats(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

func (h *JobHandler) Save(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.svc.SaveJob(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "job saved", user)
}

func (h *JobHandler) Unsave(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.svc.UnsaveJob(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "job removed from saved", user)
}
