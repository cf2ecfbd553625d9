package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manabi09/job-portal/internal/api/middleware"
	"github.com/manabi09/job-portal/internal/models"
	"github.com/manabi09/job-portal/internal/utils"
)

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMsg(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondCount(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondPage(c *gin.Context, info models.PageInfo, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       info.Count,
		"total":       info.Total,
		"totalPages":  info.TotalPages,
		"currentPage": info.CurrentPage,
		"data":        data,
	})
}

func writeError(c *gin.Context, err error) {
	c.JSON(utils.HTTPStatus(err), gin.H{
		"success": false,
		"message": utils.Message(err),
	})
}

func requirePrincipal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
		return models.Principal{}, false
	}
	return p, true
}

func pageFromQuery(c *gin.Context) models.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return models.NewPageRequest(page, limit)
}

// readJoin re-composes the sniffed head with the remaining stream.
type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}

// openUpload validates a multipart file field and returns a reader positioned
// at the start together with the sniffed content type.
func openUpload(c *gin.Context, op, field string, maxSize int64, allowedExts []string) (io.Reader, *multipart.FileHeader, string, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, "", nil, utils.E(utils.CodeInvalidArgument, op, "missing multipart field '"+field+"'", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	okExt := false
	for _, a := range allowedExts {
		if ext == a {
			okExt = true
			break
		}
	}
	if !okExt {
		return nil, nil, "", nil, utils.E(utils.CodeInvalidArgument, op, "file type "+ext+" is not allowed", nil)
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		return nil, nil, "", nil, utils.E(utils.CodeInvalidArgument, op, "file too large", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, "", nil, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}

	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)

	r := &readJoin{a: bytes.NewReader(head), b: file}
	closeFn := func() { _ = file.Close() }
	return r, fh, ct, closeFn, nil
}
