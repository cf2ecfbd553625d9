package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/services"
	"github.com/manabi09/job-portal/internal/utils"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type ApplyRequest struct {
	JobID       string          `json:"jobId" binding:"required,uuid"`
	CoverLetter string          `json:"coverLetter" binding:"omitempty,max=2000"`
	Answers     json.RawMessage `json:"answers,omitempty"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Apply", "invalid request body", err))
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), p, services.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		Answers:     req.Answers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusCreated, "application submitted successfully", app)
}

func (h *ApplicationHandler) My(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	apps, err := h.svc.MyApplications(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	respondCount(c, len(apps), apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, app)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	status := models.ApplicationStatus(c.Query("status"))
	page := pageFromQuery(c)

	apps, total, err := h.svc.ListForJob(c.Request.Context(), p, c.Param("jobId"), status, page)
	if err != nil {
		writeError(c, err)
		return
	}
	respondPage(c, models.NewPageInfo(len(apps), total, page), apps)
}

type UpdateStatusRequest struct {
	Status  models.ApplicationStatus `json:"status" binding:"required"`
	Comment string                   `json:"comment" binding:"omitempty,max=1000"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), p, c.Param("id"), req.Status, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "application status updated successfully", app)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	app, err := h.svc.Withdraw(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "application withdrawn successfully", app)
}

type AddNoteRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func (h *ApplicationHandler) AddNote(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.AddNote", "invalid request body", err))
		return
	}

	app, err := h.svc.AddNote(c.Request.Context(), p, c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "note added successfully", app)
}
