package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prompt-fun/promptd/internal/api"
	"github.com/prompt-fun/promptd/internal/domain"
)

type ProfileService interface {
	GetOrCreate(ctx context.Context, address string, xp int) (*domain.UserProfile, error)
}

type GamifyService interface {
	Achievements(ctx context.Context, address string) ([]domain.Achievement, error)
	Quests(ctx context.Context, address string) ([]domain.Quest, error)
	Activity(ctx context.Context, address string) ([]domain.Activity, error)
}

// ProfileHandler serves the /user endpoints. Each collection accepts the
// same identity two ways: GET with address/xp query parameters or POST
// with a JSON body.
type ProfileHandler struct {
	profiles ProfileService
	gamify   GamifyService
}

func NewProfileHandler(profiles ProfileService, gamify GamifyService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		gamify:   gamify,
	}
}

type UserXPRequest struct {
	Address string `json:"address"`
	XP      int    `json:"xp"`
}

// identity pulls (address, xp) from the query string on GET and from the
// body on POST. A missing address surfaces as a validation error from the
// service layer.
func identity(r *http.Request) (string, int, error) {
	if r.Method == http.MethodGet {
		address := r.URL.Query().Get("address")
		xp, _ := strconv.Atoi(r.URL.Query().Get("xp"))
		return address, xp, nil
	}

	var req UserXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", 0, err
	}
	return req.Address, req.XP, nil
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	address, xp, err := identity(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.GetOrCreate(r.Context(), address, xp)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	address, _, err := identity(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	achievements, err := h.gamify.Achievements(r.Context(), address)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, achievements)
}

func (h *ProfileHandler) Quests(w http.ResponseWriter, r *http.Request) {
	address, _, err := identity(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quests, err := h.gamify.Quests(r.Context(), address)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, quests)
}

func (h *ProfileHandler) Activity(w http.ResponseWriter, r *http.Request) {
	address, _, err := identity(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	activity, err := h.gamify.Activity(r.Context(), address)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, activity)
}
