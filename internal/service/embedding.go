package service

import (
	"context"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
)

// EmbeddingClient defines the provider interface for generating embeddings.
// Both the OpenAI and Gemini clients satisfy it.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingService validates input and maps provider failures to domain
// errors before they cross the service boundary.
type EmbeddingService struct {
	client EmbeddingClient
}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService(client EmbeddingClient) *EmbeddingService {
	return &EmbeddingService{client: client}
}

// Embed generates an embedding for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyEmbedInput
	}

	vector, err := s.client.Embed(ctx, text)
	if err != nil {
		return nil, domain.NewEmbeddingError(err)
	}

	return vector, nil
}

// EmbedBatch generates embeddings for texts, one vector per input in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.ErrEmptyEmbedInput
		}
	}

	vectors, err := s.client.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, domain.NewEmbeddingError(err)
	}

	return vectors, nil
}
