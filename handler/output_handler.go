package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	services "github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/types"
)

type OutputHandler struct {
	output *services.OutputService
}

func NewOutputHandler(output *services.OutputService) *OutputHandler {
	return &OutputHandler{
		output: output,
	}
}

// ListOutputsHandler returns the Markdown files written so far
func (h *OutputHandler) ListOutputsHandler(c *gin.Context) {
	infos, err := h.output.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   infos,
	})
}

// ServeOutputHandler streams one written Markdown file to the client
func (h *OutputHandler) ServeOutputHandler(c *gin.Context) {
	requestedName := c.Param("name")
	if requestedName == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File name is required",
		})
		return
	}

	// filepath.Base strips any directory components a client sneaks in
	requestedName = filepath.Base(requestedName)
	if filepath.Ext(requestedName) != ".md" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Only Markdown files are allowed",
		})
		return
	}

	path := filepath.Join(h.output.Dir(), requestedName)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "File not found",
		})
		return
	}

	c.Header("Content-Type", "text/markdown; charset=utf-8")
	c.Header("Content-Disposition", "inline; filename="+requestedName)
	c.File(path)
}
