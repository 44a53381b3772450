package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prompt-fun/promptd/internal/api"
	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/pagination"
)

type MarketplaceService interface {
	Launch(ctx context.Context, token *domain.LaunchedToken) (*domain.LaunchedToken, error)
	Get(ctx context.Context, symbol string) (*domain.LaunchedToken, error)
	List(ctx context.Context, cursor string, limit int) (*pagination.PageResult[*domain.LaunchedToken], error)
}

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, address string, entry domain.Activity) error
}

// MarketplaceHandler serves launched-token records plus the token action
// stubs the terminal frontend calls after an on-chain transaction.
type MarketplaceHandler struct {
	market   MarketplaceService
	activity ActivityRecorder
}

func NewMarketplaceHandler(market MarketplaceService, activity ActivityRecorder) *MarketplaceHandler {
	return &MarketplaceHandler{
		market:   market,
		activity: activity,
	}
}

type LaunchRequest struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	TxHash    string   `json:"txHash"`
	Creator   string   `json:"creator"`
	Supply    *int64   `json:"supply"`
	BasePrice *float64 `json:"basePrice"`
}

func (h *MarketplaceHandler) Launch(w http.ResponseWriter, r *http.Request) {
	var req LaunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.market.Launch(r.Context(), &domain.LaunchedToken{
		Symbol:    req.Symbol,
		Name:      req.Name,
		TxHash:    req.TxHash,
		Creator:   req.Creator,
		Supply:    req.Supply,
		BasePrice: req.BasePrice,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	if req.Creator != "" {
		entry := domain.Activity{
			Action: "Launched",
			Token:  "$" + token.Symbol,
			Amount: supplyLabel(token.Supply),
			Time:   "just now",
			Type:   "launch",
		}
		if err := h.activity.RecordActivity(r.Context(), req.Creator, entry); err != nil {
			api.HandleError(w, err)
			return
		}
	}

	api.JSON(w, http.StatusCreated, token)
}

func (h *MarketplaceHandler) Launched(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.market.List(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, page)
}

func (h *MarketplaceHandler) LaunchedBySymbol(w http.ResponseWriter, r *http.Request) {
	token, err := h.market.Get(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, token)
}

type tokenActionRequest struct {
	Address string `json:"address"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

type TokenActionResponse struct {
	Status string      `json:"status"`
	Raw    interface{} `json:"raw"`
}

// tokenAction implements the /launch-token, /buy-token, and /sell-token
// stubs: echo the payload with a status and, when the caller identifies
// itself, record a feed entry.
func (h *MarketplaceHandler) tokenAction(w http.ResponseWriter, r *http.Request, status, action, actionType string) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := tokenActionFrom(raw)
	if req.Address != "" {
		entry := domain.Activity{
			Action: action,
			Token:  req.Token,
			Amount: req.Amount,
			Time:   "just now",
			Type:   actionType,
		}
		if err := h.activity.RecordActivity(r.Context(), req.Address, entry); err != nil {
			api.HandleError(w, err)
			return
		}
	}

	api.JSON(w, http.StatusOK, TokenActionResponse{Status: status, Raw: raw})
}

func (h *MarketplaceHandler) LaunchToken(w http.ResponseWriter, r *http.Request) {
	h.tokenAction(w, r, "launched", "Launched", "launch")
}

func (h *MarketplaceHandler) BuyToken(w http.ResponseWriter, r *http.Request) {
	h.tokenAction(w, r, "bought", "Bought", "buy")
}

func (h *MarketplaceHandler) SellToken(w http.ResponseWriter, r *http.Request) {
	h.tokenAction(w, r, "sold", "Sold", "sell")
}

func tokenActionFrom(raw map[string]interface{}) tokenActionRequest {
	str := func(key string) string {
		if v, ok := raw[key].(string); ok {
			return v
		}
		return ""
	}
	return tokenActionRequest{
		Address: str("address"),
		Token:   str("token"),
		Amount:  str("amount"),
	}
}

func supplyLabel(supply *int64) string {
	if supply == nil {
		return ""
	}
	return fmt.Sprintf("%d tokens", *supply)
}
