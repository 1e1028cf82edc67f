package upload

import "github.com/gin-gonic/gin"

// UploadModule implements the app.Module interface for image uploads.
type UploadModule struct {
	handler *UploadHandler
}

// NewModule creates a new UploadModule with the given handler.
// Panics if h is nil.
func NewModule(h *UploadHandler) *UploadModule {
	if h == nil {
		panic("upload.NewModule: handler must not be nil")
	}
	return &UploadModule{handler: h}
}

// RegisterRoutes registers upload API routes. Uploads are admin-only.
func (m *UploadModule) RegisterRoutes(_, admin *gin.RouterGroup) {
	admin.POST("/uploads", m.handler.Upload)
}
