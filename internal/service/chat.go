package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
)

// ChatService classifies each incoming message once and routes it: questions
// go through retrieval-augmented answering, trade commands produce an action
// for the frontend, everything else is plain conversation.
type ChatService struct {
	intent *IntentService
	answer *AnswerService
}

// ChatResult is one completed exchange. History is the client-supplied
// history plus the new user and assistant turns, in order.
type ChatResult struct {
	Response string
	Sources  []string
	History  []domain.Turn
	Action   *domain.Action
}

// NewChatService creates a new ChatService instance
func NewChatService(intent *IntentService, answer *AnswerService) *ChatService {
	return &ChatService{
		intent: intent,
		answer: answer,
	}
}

// Chat handles one message against the supplied history.
func (s *ChatService) Chat(ctx context.Context, history []domain.Turn, message string, topK int) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrMissingMessage
	}

	classification := s.intent.Classify(ctx, message)

	updated := make([]domain.Turn, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated, domain.Turn{Role: domain.RoleUser, Content: message})

	switch classification.Intent {
	case domain.IntentAsk:
		result, err := s.answer.Ask(ctx, message, history, topK)
		if err != nil {
			return nil, err
		}
		updated = append(updated, domain.Turn{Role: domain.RoleAssistant, Content: result.Response})
		return &ChatResult{
			Response: result.Response,
			Sources:  result.Sources,
			History:  updated,
		}, nil

	case domain.IntentBuy, domain.IntentSell, domain.IntentLaunch:
		reply := fmt.Sprintf("Okay, running %s for %s...", classification.Intent, classification.Entities["token"])
		updated = append(updated, domain.Turn{Role: domain.RoleAssistant, Content: reply})
		return &ChatResult{
			Response: reply,
			Sources:  []string{},
			History:  updated,
			Action: &domain.Action{
				Type:   string(classification.Intent),
				Params: classification.Entities,
			},
		}, nil

	default:
		reply, err := s.answer.Complete(ctx, buildPrompt(message, history, nil))
		if err != nil {
			return nil, err
		}
		updated = append(updated, domain.Turn{Role: domain.RoleAssistant, Content: reply})
		return &ChatResult{
			Response: reply,
			Sources:  []string{},
			History:  updated,
		}, nil
	}
}
