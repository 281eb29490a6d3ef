package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	services "github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/types"
	"github.com/ocrlab/pdf-ocr-be/utils"
)

type UploadHandler struct {
	registry *services.RegistryService
	maxSize  int64
}

func NewUploadHandler(registry *services.RegistryService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		registry: registry,
		maxSize:  maxSize,
	}
}

// UploadDocumentHandler accepts one or more PDF files in the "file" field
// and adds them to the registry
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid multipart form",
		})
		return
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No files provided",
		})
		return
	}

	uploaded := make([]string, 0, len(headers))
	for _, header := range headers {
		if !utils.IsPDF(header.Filename) {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Only PDF files are allowed: " + header.Filename,
			})
			return
		}
		if header.Size > h.maxSize {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "File too large: " + header.Filename,
			})
			return
		}

		src, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.DataResponse{
				Status:  false,
				Message: "Cannot open uploaded file: " + header.Filename,
			})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.DataResponse{
				Status:  false,
				Message: "Cannot read uploaded file: " + header.Filename,
			})
			return
		}
		if len(data) == 0 {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Empty file: " + header.Filename,
			})
			return
		}

		if err := h.registry.Add(header.Filename, data); err != nil {
			c.JSON(http.StatusConflict, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
			return
		}
		uploaded = append(uploaded, header.Filename)
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.UploadResponse{
			Uploaded: uploaded,
		},
	})
}

// ListDocumentsHandler returns the current registry contents in order
func (h *UploadHandler) ListDocumentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   h.registry.Infos(),
	})
}

// RemoveDocumentHandler deletes one file from the registry by name
func (h *UploadHandler) RemoveDocumentHandler(c *gin.Context) {
	name := c.Param("name")
	if err := h.registry.Remove(name); err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "Removed " + name,
	})
}
