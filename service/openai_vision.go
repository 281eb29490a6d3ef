package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ExtractionPrompt is the fixed instruction sent with every page image
const ExtractionPrompt = "Extract all text content from this image accurately. Preserve the original structure and formatting as much as possible in Markdown format."

const extractionTemperature = 0.1

// OpenAIVisionService talks to a locally hosted multimodal model through
// its OpenAI-compatible chat completions endpoint (Ollama, LM Studio, ...)
type OpenAIVisionService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIVisionService(baseURL, apiKey, model string, timeout time.Duration) *OpenAIVisionService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL // Set this to your local LLM server URL
	client := openai.NewClientWithConfig(config)
	return &OpenAIVisionService{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// ExtractText sends one page image with the fixed transcription prompt and
// returns the model's text. The per-page timeout bounds the whole call.
func (s *OpenAIVisionService) ExtractText(ctx context.Context, image []byte, pageNum int) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       s.model,
			Temperature: extractionTemperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: ExtractionPrompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL:    dataURL,
								Detail: openai.ImageURLDetailAuto,
							},
						},
					},
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("inference call failed for page %d: %w", pageNum, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response for page %d", pageNum)
	}
	return content, nil
}
