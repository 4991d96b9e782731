package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/parley-ai/parley-backend/internal/services"
)

type UploadHandler struct {
  uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
  return &UploadHandler{uploadService: uploadService}
}

// GetUploadAuth returns a fresh short-lived upload credential. The
// client passes the triple straight to the media CDN.
func (uh *UploadHandler) GetUploadAuth(c *gin.Context) {
  c.JSON(http.StatusOK, uh.uploadService.GetAuthenticationParameters())
}
