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

type AuthHandler struct {
	auth  services.AuthService
	users services.UserService
}

func NewAuthHandler(auth services.AuthService, users services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=jobseeker employer"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "invalid request body", err))
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "registered successfully",
		"token":   token,
		"data":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"data":    user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.users.GetMe(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name       *string          `json:"name,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Bio        *string          `json:"bio,omitempty"`
	Skills     *[]string        `json:"skills,omitempty"`
	Experience *int             `json:"experience,omitempty"`
	Education  *json.RawMessage `json:"education,omitempty"`
	Location   *json.RawMessage `json:"location,omitempty"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.UpdateProfile", "invalid request body", err))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), p.ID, services.UpdateProfileInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Bio:        req.Bio,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		Location:   req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "profile updated successfully", user)
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.UpdatePassword", "invalid request body", err))
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated successfully"})
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	const op = "AuthHandler.UploadAvatar"

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	r, fh, ct, closeFn, err := openUpload(c, op, "avatar", 5<<20, []string{".jpg", ".jpeg", ".png"})
	if err != nil {
		writeError(c, err)
		return
	}
	defer closeFn()

	if !strings.HasPrefix(ct, "image/") {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be an image)", nil))
		return
	}

	objectName := "avatars/" + p.ID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	user, err := h.users.UploadAvatar(c.Request.Context(), p.ID, objectName, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "avatar uploaded successfully", user)
}

func (h *AuthHandler) UploadResume(c *gin.Context) {
	const op = "AuthHandler.UploadResume"

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	r, fh, ct, closeFn, err := openUpload(c, op, "resume", 10<<20, []string{".pdf", ".doc", ".docx"})
	if err != nil {
		writeError(c, err)
		return
	}
	defer closeFn()

	// pdf uploads must actually be pdf; doc/docx containers sniff as zip/ole
	if strings.ToLower(filepath.Ext(fh.Filename)) == ".pdf" && ct != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil))
		return
	}

	objectName := "resumes/" + p.ID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	user, err := h.users.UploadResume(c.Request.Context(), p.ID, objectName, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "resume uploaded successfully", user)
}
