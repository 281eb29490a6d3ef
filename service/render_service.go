package service

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

const defaultRenderZoom = 2.0

// RenderService rasterizes PDF pages to PNG images using MuPDF.
// Each call opens the document from the in-memory PDF bytes, so a
// corrupt file surfaces as an error on the first call.
type RenderService struct {
	zoom float64
}

// NewRenderService creates a renderer with the given zoom factor
// (2.0 is roughly 144 DPI)
func NewRenderService(zoom float64) *RenderService {
	if zoom <= 0 {
		zoom = defaultRenderZoom
	}
	return &RenderService{zoom: zoom}
}

// PageCount returns the number of pages in the PDF
func (s *RenderService) PageCount(pdf []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// RenderPage renders one page (0-indexed) to PNG bytes at the fixed zoom
func (s *RenderService) RenderPage(pdf []byte, pageIndex int) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range", pageIndex+1)
	}

	img, err := doc.ImageDPI(pageIndex, s.zoom*72)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex+1, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page %d as PNG: %w", pageIndex+1, err)
	}
	return buf.Bytes(), nil
}
