package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	genaiopt "google.golang.org/api/option"
)

const (
	DefaultEmbeddingModel = "embedding-001"
	DefaultChatModel      = "gemini-2.5-pro"
)

// ErrEmptyResponse is returned when the API answers without usable content.
var ErrEmptyResponse = errors.New("no response from Gemini")

// Client wraps the Google generative AI API for embeddings and completions.
type Client struct {
	client         *genai.Client
	embeddingModel string
	chatModel      string
}

type Config struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
}

// NewClient dials the Gemini API with the given configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}

	client, err := genai.NewClient(ctx, genaiopt.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}

	return &Client{
		client:         client,
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Embed converts one text into a vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	model := c.client.EmbeddingModel(c.embeddingModel)

	rsp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}

	if rsp == nil || rsp.Embedding == nil || len(rsp.Embedding.Values) == 0 {
		return nil, ErrEmptyResponse
	}

	return rsp.Embedding.Values, nil
}

// EmbedBatch converts texts into vectors in a single round trip,
// preserving input order 1:1.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	model := c.client.EmbeddingModel(c.embeddingModel)

	batch := model.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	rsp, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, err
	}

	if rsp == nil || len(rsp.Embeddings) != len(texts) {
		return nil, ErrEmptyResponse
	}

	vectors := make([][]float32, len(rsp.Embeddings))
	for i, e := range rsp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, ErrEmptyResponse
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}

// Complete sends a single-turn prompt to the generative model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.chatModel)

	rsp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil || len(rsp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}
