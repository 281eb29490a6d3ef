package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ocrlab/pdf-ocr-be/types"
)

// Error markers written inline for pages that could not be processed
const (
	RenderFailedMarker  = "[Page rendering failed]"
	ExtractFailedMarker = "[Text extraction failed for this page]"
)

// PageRenderer rasterizes a single page of an in-memory PDF
type PageRenderer interface {
	PageCount(pdf []byte) (int, error)
	RenderPage(pdf []byte, pageIndex int) ([]byte, error)
}

// ExtractService runs the OCR pipeline: one file at a time, one page at a
// time, render then infer, accumulating one Markdown document per file.
type ExtractService struct {
	renderer PageRenderer
	vision   VisionService
	writer   *OutputService
}

func NewExtractService(renderer PageRenderer, vision VisionService, writer *OutputService) *ExtractService {
	return &ExtractService{
		renderer: renderer,
		vision:   vision,
		writer:   writer,
	}
}

// Process handles the uploaded files strictly sequentially. A page failure
// never aborts its file; a file failure never aborts the run. The returned
// error is only non-nil when the output directory cannot be created at all
// or the context is cancelled, which aborts the whole run.
func (s *ExtractService) Process(ctx context.Context, files []types.UploadedFile, statusChan chan<- types.ProcessingStatus) (*types.RunSummary, error) {
	if err := s.writer.EnsureDir(); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}

	start := time.Now()
	summary := &types.RunSummary{
		Files: make([]types.FileResult, 0, len(files)),
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		result := s.processFile(ctx, file, statusChan)
		summary.Files = append(summary.Files, result)
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	summary.ElapsedSeconds = time.Since(start).Seconds()
	s.emit(statusChan, types.ProcessingStatus{
		Status:  types.StatusCompleted,
		Message: fmt.Sprintf("Processed %d file(s): %d succeeded, %d failed", len(files), summary.Succeeded, summary.Failed),
	})
	return summary, nil
}

// processFile walks the pages of one PDF in ascending order. Failed pages
// get their error marker and the loop moves on.
func (s *ExtractService) processFile(ctx context.Context, file types.UploadedFile, statusChan chan<- types.ProcessingStatus) types.FileResult {
	start := time.Now()
	result := types.FileResult{Name: file.Name}

	totalPages, err := s.renderer.PageCount(file.Data)
	if err != nil {
		log.Printf("Failed to open %s: %v", file.Name, err)
		result.Error = err.Error()
		result.ElapsedSeconds = time.Since(start).Seconds()
		s.emit(statusChan, types.ProcessingStatus{
			Status:  types.StatusFileFailed,
			File:    file.Name,
			Message: fmt.Sprintf("Cannot read PDF: %v", err),
		})
		return result
	}

	if totalPages == 0 {
		result.Error = "no pages found"
		result.ElapsedSeconds = time.Since(start).Seconds()
		s.emit(statusChan, types.ProcessingStatus{
			Status:  types.StatusWarning,
			File:    file.Name,
			Message: "Skipping: no pages found",
		})
		return result
	}
	result.TotalPages = totalPages

	pages := make([]types.ExtractedPage, 0, totalPages)
	for i := 0; i < totalPages; i++ {
		select {
		case <-ctx.Done():
			result.Error = ctx.Err().Error()
			result.ElapsedSeconds = time.Since(start).Seconds()
			return result
		default:
		}

		pageNum := i + 1
		text, failed := s.processPage(ctx, file, i)
		if failed {
			result.PagesFailed++
		} else {
			result.PagesOK++
		}
		pages = append(pages, types.ExtractedPage{PageNum: pageNum, Text: text, Failed: failed})

		s.emit(statusChan, types.ProcessingStatus{
			Status:         types.StatusProcessing,
			File:           file.Name,
			Message:        fmt.Sprintf("Page %d/%d", pageNum, totalPages),
			Progress:       float64(pageNum) / float64(totalPages),
			TotalPages:     totalPages,
			ProcessedPages: pageNum,
		})
	}

	doc := types.OutputDocument{
		SourceName: file.Name,
		Markdown:   buildMarkdown(file.Name, pages, result.PagesFailed > 0),
	}
	path, err := s.writer.Write(doc)
	if err != nil {
		log.Printf("Failed to write output for %s: %v", file.Name, err)
		result.Error = err.Error()
		result.ElapsedSeconds = time.Since(start).Seconds()
		s.emit(statusChan, types.ProcessingStatus{
			Status:  types.StatusFileFailed,
			File:    file.Name,
			Message: fmt.Sprintf("Cannot write output: %v", err),
		})
		return result
	}

	result.OutputPath = path
	result.Success = true
	result.ElapsedSeconds = time.Since(start).Seconds()
	s.emit(statusChan, types.ProcessingStatus{
		Status: types.StatusFileDone,
		File:   file.Name,
		Message: fmt.Sprintf("Done: %d/%d pages extracted in %.2fs",
			result.PagesOK, totalPages, result.ElapsedSeconds),
		TotalPages:     totalPages,
		ProcessedPages: totalPages,
		Progress:       1.0,
	})
	return result
}

// processPage renders then extracts one page. On failure it returns the
// error marker so the document keeps one section per physical page.
func (s *ExtractService) processPage(ctx context.Context, file types.UploadedFile, pageIndex int) (text string, failed bool) {
	pageNum := pageIndex + 1

	image, err := s.renderer.RenderPage(file.Data, pageIndex)
	if err != nil {
		log.Printf("Warning: failed to render page %d of %s: %v", pageNum, file.Name, err)
		return RenderFailedMarker, true
	}

	extracted, err := s.vision.ExtractText(ctx, image, pageNum)
	if err != nil {
		log.Printf("Warning: failed to extract text from page %d of %s: %v", pageNum, file.Name, err)
		return ExtractFailedMarker, true
	}
	return extracted, false
}

func buildMarkdown(sourceName string, pages []types.ExtractedPage, partial bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# OCR Output for: %s\n\n", sourceName))
	if partial {
		b.WriteString("**Note:** Text extraction or page rendering failed for one or more pages. The output may be incomplete.\n\n---\n\n")
	}
	for _, page := range pages {
		b.WriteString(fmt.Sprintf("## Page %d\n\n%s\n\n---\n", page.PageNum, page.Text))
	}
	return b.String()
}

// emit sends a status event without ever blocking the pipeline
func (s *ExtractService) emit(statusChan chan<- types.ProcessingStatus, status types.ProcessingStatus) {
	if statusChan == nil {
		return
	}
	select {
	case statusChan <- status:
	default:
		log.Printf("Status channel full, dropping event: %s", status.Status)
	}
}
