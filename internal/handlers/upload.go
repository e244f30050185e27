package handlers

import (
	"path"
	"strings"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/brikvest/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

var (
	documentExtensions = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true,
	}
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	}
)

type UploadHandler struct {
	storage *services.StorageService
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	storage, err := services.NewStorageService(&cfg.Storage)
	if err != nil {
		logger.Warnf("Storage service unavailable: %v", err)
		return &UploadHandler{}
	}
	return &UploadHandler{storage: storage}
}

// UploadDocument stores a partnership document (PDF/Word)
// POST /api/admin/uploads/documents
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	h.upload(c, "documents", documentExtensions)
}

// UploadImage stores a property image
// POST /api/admin/uploads/images
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.upload(c, "images", imageExtensions)
}

func (h *UploadHandler) upload(c *gin.Context, folder string, allowed map[string]bool) {
	if h.storage == nil {
		response.ServerError(c, "file storage is not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, "file exceeds the 10MB limit")
		return
	}

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if !allowed[ext] {
		response.BadRequest(c, "unsupported file type: "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.storage.Upload(c.Request.Context(), folder, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
