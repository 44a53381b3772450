package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/telemetry"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

const systemInstruction = "You are an expert assistant. Use the following context as your background knowledge to answer the user's question directly and naturally. " +
	"Do not mention the context or your sources. Minimize speculation and hallucination. If you are unsure, answer concisely and do not make up information."

// VectorIndex defines the retrieval interface backed by pgvector.
type VectorIndex interface {
	Upsert(ctx context.Context, namespace string, entries []domain.IndexEntry) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.RetrievalMatch, error)
	DeleteBySource(ctx context.Context, namespace, source string) error
}

// CompletionClient defines the provider interface for LLM completions.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnswerService performs retrieval-augmented answering: embed the question,
// fetch similar chunks, assemble a prompt, complete it.
type AnswerService struct {
	embedding *EmbeddingService
	index     VectorIndex
	llm       CompletionClient
	namespace string
}

// AnswerResult carries the completion text and the source label of every
// retrieved match, in retrieval order.
type AnswerResult struct {
	Response string
	Sources  []string
	Matches  []domain.RetrievalMatch
}

// NewAnswerService creates a new AnswerService instance
func NewAnswerService(embedding *EmbeddingService, index VectorIndex, llm CompletionClient, namespace string) *AnswerService {
	return &AnswerService{
		embedding: embedding,
		index:     index,
		llm:       llm,
		namespace: namespace,
	}
}

// Ask answers a question against the index. An empty retrieval result is
// not an error; the prompt simply carries no context.
func (s *AnswerService) Ask(ctx context.Context, message string, history []domain.Turn, topK int) (*AnswerResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrMissingMessage
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	ctx, span := telemetry.StartSpan(ctx, "AnswerService.Ask", telemetry.SpanAttributes{
		Namespace: s.namespace,
		Operation: "ask",
	})
	defer span.End()

	vector, err := s.embedding.Embed(ctx, message)
	if err != nil {
		return nil, err
	}

	matches, err := s.index.Query(ctx, s.namespace, vector, topK)
	if err != nil {
		return nil, domain.NewIndexError(err)
	}

	prompt := buildPrompt(message, history, matches)

	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMError(err)
	}

	sources := make([]string, len(matches))
	for i, m := range matches {
		sources[i] = m.Source
	}

	return &AnswerResult{
		Response: response,
		Sources:  sources,
		Matches:  matches,
	}, nil
}

// Complete sends a prompt straight to the LLM, bypassing retrieval.
func (s *AnswerService) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", domain.NewLLMError(err)
	}
	return response, nil
}

func buildPrompt(message string, history []domain.Turn, matches []domain.RetrievalMatch) string {
	contextLines := make([]string, len(matches))
	for i, m := range matches {
		contextLines[i] = m.Source + ": " + m.Text
	}

	historyLines := make([]string, len(history))
	for i, turn := range history {
		historyLines[i] = capitalize(string(turn.Role)) + ": " + turn.Content
	}

	return fmt.Sprintf("%s\n\nContext:\n%s\n\nChat History:\n%s\n\nUser: %s\nAssistant:",
		systemInstruction,
		strings.Join(contextLines, "\n"),
		strings.Join(historyLines, "\n"),
		message,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
