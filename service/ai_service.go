package service

import (
	"context"
)

// VisionService issues a single image-plus-prompt request to a multimodal
// model and returns its textual response.
type VisionService interface {
	ExtractText(ctx context.Context, image []byte, pageNum int) (string, error)
}
