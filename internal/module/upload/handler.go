package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// multipartOverhead leaves room for the form boundary and headers on top of
// the file itself.
const multipartOverhead = 64 << 10

// UploadHandler handles REST API requests for file uploads.
type UploadHandler struct {
	svc Service
}

// NewUploadHandler creates a new UploadHandler with the given service.
func NewUploadHandler(svc Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload handles POST /api/v1/uploads with a multipart "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.svc.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			pkg.Error(c, domain.NewValidationError(map[string]string{"file": "Must be at most " + humanSize(limit)}))
			return
		}
		pkg.Error(c, domain.NewValidationError(map[string]string{"file": "This field is required"}))
		return
	}

	f, err := header.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to read upload", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to read upload", err))
		return
	}

	res, err := h.svc.Upload(c.Request.Context(), header.Filename, data)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "file uploaded", res)
}
