package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
)

const intentPrompt = `Classify the user's message for a token launchpad terminal.
Respond with JSON only, no prose, in the form:
{"intent": "<ask|buy|sell|launch|chat>", "entities": {"token": "<symbol or empty>", "amount": "<amount or empty>"}}

Rules:
- "ask" for questions about the platform, tokens, or how things work.
- "buy" / "sell" for trade commands, "launch" for creating a new token.
- "chat" for greetings and anything else.

Message: `

// IntentService classifies a message into one of the closed intent
// variants. The LLM does the classification; a keyword scan covers the
// cases where the completion fails or returns something unparseable.
type IntentService struct {
	llm CompletionClient
}

// NewIntentService creates a new IntentService instance
func NewIntentService(llm CompletionClient) *IntentService {
	return &IntentService{llm: llm}
}

// Classify determines the intent and entities of a message. It never
// fails: an unusable completion falls back to keyword matching.
func (s *IntentService) Classify(ctx context.Context, message string) domain.Classification {
	raw, err := s.llm.Complete(ctx, intentPrompt+message)
	if err == nil {
		if c, ok := parseClassification(raw); ok {
			return c
		}
	}
	return classifyByKeywords(message)
}

type classificationPayload struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
}

// parseClassification extracts the JSON object from a completion, which
// models tend to wrap in markdown fences or surrounding prose.
func parseClassification(raw string) (domain.Classification, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.Classification{}, false
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return domain.Classification{}, false
	}

	intent := domain.Intent(strings.ToLower(strings.TrimSpace(payload.Intent)))
	if !intent.Valid() {
		return domain.Classification{}, false
	}

	entities := payload.Entities
	if entities == nil {
		entities = map[string]string{}
	}
	for k, v := range entities {
		if strings.TrimSpace(v) == "" {
			delete(entities, k)
		}
	}

	return domain.Classification{Intent: intent, Entities: entities}, true
}

func classifyByKeywords(message string) domain.Classification {
	lower := strings.ToLower(message)
	entities := map[string]string{}

	if token := extractToken(message); token != "" {
		entities["token"] = token
	}

	var intent domain.Intent
	switch {
	case strings.Contains(lower, "buy "), strings.HasPrefix(lower, "buy"):
		intent = domain.IntentBuy
	case strings.Contains(lower, "sell "), strings.HasPrefix(lower, "sell"):
		intent = domain.IntentSell
	case strings.Contains(lower, "launch"), strings.Contains(lower, "create token"), strings.Contains(lower, "deploy"):
		intent = domain.IntentLaunch
	case strings.Contains(lower, "?"), strings.HasPrefix(lower, "what"),
		strings.HasPrefix(lower, "how"), strings.HasPrefix(lower, "why"),
		strings.HasPrefix(lower, "who"), strings.HasPrefix(lower, "when"),
		strings.HasPrefix(lower, "where"):
		intent = domain.IntentAsk
	default:
		intent = domain.IntentChat
	}

	return domain.Classification{Intent: intent, Entities: entities}
}

// extractToken picks the first $SYMBOL-style word out of a message.
func extractToken(message string) string {
	for _, field := range strings.Fields(message) {
		if len(field) > 1 && field[0] == '$' {
			return strings.ToUpper(strings.Trim(field[1:], ".,!?"))
		}
	}
	return ""
}
