package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingService_Embed(t *testing.T) {
	client := new(MockEmbeddingClient)
	client.On("Embed", mock.Anything, "hello").Return([]float32{0.1, 0.2}, nil)

	svc := NewEmbeddingService(client)

	vector, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vector)
	client.AssertExpectations(t)
}

func TestEmbeddingService_Embed_EmptyInput(t *testing.T) {
	svc := NewEmbeddingService(new(MockEmbeddingClient))

	_, err := svc.Embed(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyEmbedInput)
}

func TestEmbeddingService_Embed_ProviderFailure(t *testing.T) {
	client := new(MockEmbeddingClient)
	client.On("Embed", mock.Anything, "hello").Return(nil, errors.New("rate limited"))

	svc := NewEmbeddingService(client)

	_, err := svc.Embed(context.Background(), "hello")

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeEmbedding, de.Code)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestEmbeddingService_EmbedBatch(t *testing.T) {
	client := new(MockEmbeddingClient)
	client.On("EmbedBatch", mock.Anything, []string{"a", "b"}).
		Return([][]float32{{0.1}, {0.2}}, nil)

	svc := NewEmbeddingService(client)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1}, vectors[0])
	assert.Equal(t, []float32{0.2}, vectors[1])
}

func TestEmbeddingService_EmbedBatch_EmptyList(t *testing.T) {
	svc := NewEmbeddingService(new(MockEmbeddingClient))

	vectors, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbeddingService_EmbedBatch_BlankEntry(t *testing.T) {
	svc := NewEmbeddingService(new(MockEmbeddingClient))

	_, err := svc.EmbedBatch(context.Background(), []string{"a", " "})
	assert.ErrorIs(t, err, domain.ErrEmptyEmbedInput)
}
