package openai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	embedReq  openai.EmbeddingRequest
	embedResp openai.EmbeddingResponse
	embedErr  error
	chatReq   openai.ChatCompletionRequest
	chatResp  openai.ChatCompletionResponse
	chatErr   error
}

func (f *fakeAPI) CreateEmbeddings(_ context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	f.embedReq = req.(openai.EmbeddingRequest)
	return f.embedResp, f.embedErr
}

func (f *fakeAPI) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.chatReq = req
	return f.chatResp, f.chatErr
}

func vector(dims int, fill float32) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = fill
	}
	return v
}

func TestEmbedBatch(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{
				{Embedding: vector(4, 0.1)},
				{Embedding: vector(4, 0.2)},
			},
		},
	}
	client := NewClientWithAPI(api, 4)

	vectors, err := client.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, float32(0.1), vectors[0][0])
	assert.Equal(t, float32(0.2), vectors[1][0])

	assert.Equal(t, []string{"first", "second"}, api.embedReq.Input)
	assert.Equal(t, 4, api.embedReq.Dimensions)
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{{Embedding: vector(4, 0.1)}},
		},
	}
	client := NewClientWithAPI(api, 4)

	_, err := client.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "expected 2 embeddings")
}

func TestEmbedBatch_WrongDimensions(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{{Embedding: vector(3, 0.1)}},
		},
	}
	client := NewClientWithAPI(api, 4)

	_, err := client.EmbedBatch(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrWrongDimensions)
}

func TestEmbed(t *testing.T) {
	api := &fakeAPI{
		embedResp: openai.EmbeddingResponse{
			Data: []openai.Embedding{{Embedding: vector(4, 0.5)}},
		},
	}
	client := NewClientWithAPI(api, 4)

	v, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, 4)
}

func TestEmbed_APIError(t *testing.T) {
	api := &fakeAPI{embedErr: errors.New("rate limited")}
	client := NewClientWithAPI(api, 4)

	_, err := client.Embed(context.Background(), "hello")
	assert.ErrorContains(t, err, "rate limited")
}

func TestComplete(t *testing.T) {
	api := &fakeAPI{
		chatResp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "the answer"}},
			},
		},
	}
	client := NewClientWithAPI(api, 4)

	got, err := client.Complete(context.Background(), "the question")
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)

	require.Len(t, api.chatReq.Messages, 1)
	assert.Equal(t, "the question", api.chatReq.Messages[0].Content)
}

func TestComplete_NoChoices(t *testing.T) {
	api := &fakeAPI{}
	client := NewClientWithAPI(api, 4)

	_, err := client.Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoCompletion)
}
