package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/services"
	"github.com/manabi09/job-portal/internal/utils"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) List(c *gin.Context) {
	f := models.CompanyFilter{
		Search:      c.Query("search"),
		Industry:    c.Query("industry"),
		CompanySize: c.Query("companySize"),
	}
	p := pageFromQuery(c)

	companies, total, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		writeError(c, err)
		return
	}
	respondPage(c, models.NewPageInfo(len(companies), total, p), companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, company)
}

type CreateCompanyRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"required,max=2000"`
	Website     string          `json:"website" binding:"omitempty,url"`
	Industry    string          `json:"industry" binding:"required"`
	CompanySize string          `json:"companySize" binding:"required,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	FoundedYear *int            `json:"foundedYear" binding:"omitempty,min=1800"`
	Location    json.RawMessage `json:"location,omitempty"`
	SocialLinks json.RawMessage `json:"socialLinks,omitempty"`
	Benefits    []string        `json:"benefits,omitempty"`
	Culture     string          `json:"culture" binding:"omitempty,max=1000"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Create", "invalid request body", err))
		return
	}

	company, owner, err := h.svc.Create(c.Request.Context(), p, services.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		FoundedYear: req.FoundedYear,
		Location:    req.Location,
		SocialLinks: req.SocialLinks,
		Benefits:    req.Benefits,
		Culture:     req.Culture,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "company created successfully",
		"data":    company,
		"user":    owner,
	})
}

type UpdateCompanyRequest struct {
	Name        *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	Website     *string          `json:"website,omitempty" binding:"omitempty,url"`
	Industry    *string          `json:"industry,omitempty"`
	CompanySize *string          `json:"companySize,omitempty" binding:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	FoundedYear *int             `json:"foundedYear,omitempty" binding:"omitempty,min=1800"`
	Location    *json.RawMessage `json:"location,omitempty"`
	SocialLinks *json.RawMessage `json:"socialLinks,omitempty"`
	Benefits    *[]string        `json:"benefits,omitempty"`
	Culture     *string          `json:"culture,omitempty" binding:"omitempty,max=1000"`
}

func (h *CompanyHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CompanyHandler.Update", "invalid request body", err))
		return
	}

	company, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), services.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		FoundedYear: req.FoundedYear,
		Location:    req.Location,
		SocialLinks: req.SocialLinks,
		Benefits:    req.Benefits,
		Culture:     req.Culture,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "company updated successfully", company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "company deleted successfully"})
}

func (h *CompanyHandler) MyCompany(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	company, err := h.svc.MyCompany(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, company)
}

func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	const op = "CompanyHandler.UploadLogo"

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	r, fh, ct, closeFn, err := openUpload(c, op, "logo", 2<<20, []string{".jpg", ".jpeg", ".png"})
	if err != nil {
		writeError(c, err)
		return
	}
	defer closeFn()

	if !strings.HasPrefix(ct, "image/") {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be an image)", nil))
		return
	}

	objectName := "logos/" + c.Param("id") + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	company, err := h.svc.UploadLogo(c.Request.Context(), p, c.Param("id"), objectName, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "logo uploaded successfully", company)
}
