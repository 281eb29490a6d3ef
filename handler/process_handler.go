package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	services "github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/types"
)

type ProcessHandler struct {
	registry *services.RegistryService
	extract  *services.ExtractService
}

func NewProcessHandler(registry *services.RegistryService, extract *services.ExtractService) *ProcessHandler {
	return &ProcessHandler{
		registry: registry,
		extract:  extract,
	}
}

// HandleProcess runs the pipeline over the current registry snapshot and
// streams progress as SSE events, terminated by a "summary" event. The
// client going away cancels the request context and stops the run between
// pages.
func (h *ProcessHandler) HandleProcess(c *gin.Context) {
	files := h.registry.List()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	statusChan := make(chan types.ProcessingStatus, 64)
	done := make(chan struct{})

	var summary *types.RunSummary
	var runErr error
	go func() {
		defer close(done)
		summary, runErr = h.extract.Process(c.Request.Context(), files, statusChan)
		close(statusChan)
	}()

	for status := range statusChan {
		jsonStatus, err := json.Marshal(status)
		if err != nil {
			continue
		}
		c.SSEvent("message", string(jsonStatus))
		c.Writer.Flush()
	}
	<-done

	if runErr != nil {
		c.SSEvent("error", runErr.Error())
		c.Writer.Flush()
		return
	}

	jsonSummary, err := json.Marshal(summary)
	if err != nil {
		c.SSEvent("error", "failed to encode summary")
		c.Writer.Flush()
		return
	}
	c.SSEvent("summary", string(jsonSummary))
	c.Writer.Flush()
}

// HandleProcessStatus lets the UI poll whether anything is registered
// before enabling the start button
func (h *ProcessHandler) HandleProcessStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   gin.H{"registered": len(h.registry.List())},
	})
}
