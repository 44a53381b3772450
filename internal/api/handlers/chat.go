package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prompt-fun/promptd/internal/api"
	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/service"
)

type ChatService interface {
	Chat(ctx context.Context, history []domain.Turn, message string, topK int) (*service.ChatResult, error)
}

type AnswerService interface {
	Ask(ctx context.Context, message string, history []domain.Turn, topK int) (*service.AnswerResult, error)
}

type IntentService interface {
	Classify(ctx context.Context, message string) domain.Classification
}

// ChatHandler serves the conversational endpoints: /chat routes on intent,
// /ask is direct retrieval-augmented answering, /parse exposes the intent
// classifier on its own.
type ChatHandler struct {
	chat   ChatService
	answer AnswerService
	intent IntentService
}

func NewChatHandler(chat ChatService, answer AnswerService, intent IntentService) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		answer: answer,
		intent: intent,
	}
}

type ChatRequest struct {
	History []domain.Turn `json:"history"`
	Message string        `json:"message"`
	TopK    int           `json:"top_k"`
}

type ChatResponse struct {
	Response string         `json:"response"`
	Sources  []string       `json:"sources"`
	History  []domain.Turn  `json:"history"`
	Action   *domain.Action `json:"action,omitempty"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chat.Chat(r.Context(), req.History, req.Message, req.TopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, ChatResponse{
		Response: result.Response,
		Sources:  result.Sources,
		History:  result.History,
		Action:   result.Action,
	})
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string      `json:"answer"`
	Raw    interface{} `json:"raw"`
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		api.HandleError(w, domain.ErrMissingQuestion)
		return
	}

	result, err := h.answer.Ask(r.Context(), req.Question, nil, service.DefaultTopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, AskResponse{
		Answer: result.Response,
		Raw: map[string]interface{}{
			"answer":  result.Response,
			"sources": result.Sources,
		},
	})
}

type ParseRequest struct {
	Prompt string `json:"prompt"`
}

type ParseResponse struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
	Raw      interface{}       `json:"raw"`
}

func (h *ChatHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		api.HandleError(w, domain.ErrMissingMessage)
		return
	}

	classification := h.intent.Classify(r.Context(), req.Prompt)

	api.JSON(w, http.StatusOK, ParseResponse{
		Intent:   string(classification.Intent),
		Entities: classification.Entities,
		Raw:      classification,
	})
}
