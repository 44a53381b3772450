package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prompt-fun/promptd/internal/api"
	"github.com/prompt-fun/promptd/internal/api/handlers"
	"github.com/prompt-fun/promptd/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler        *handlers.ChatHandler
	ProfileHandler     *handlers.ProfileHandler
	MarketplaceHandler *handlers.MarketplaceHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.CORS)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/chat", cfg.ChatHandler.Chat)
	r.Post("/ask", cfg.ChatHandler.Ask)
	r.Post("/parse", cfg.ChatHandler.Parse)

	r.Route("/user", func(r chi.Router) {
		r.Get("/profile", cfg.ProfileHandler.Profile)
		r.Post("/profile", cfg.ProfileHandler.Profile)
		r.Get("/achievements", cfg.ProfileHandler.Achievements)
		r.Post("/achievements", cfg.ProfileHandler.Achievements)
		r.Get("/quests", cfg.ProfileHandler.Quests)
		r.Post("/quests", cfg.ProfileHandler.Quests)
		r.Get("/activity", cfg.ProfileHandler.Activity)
		r.Post("/activity", cfg.ProfileHandler.Activity)
	})

	r.Route("/api/marketplace", func(r chi.Router) {
		r.Post("/launch", cfg.MarketplaceHandler.Launch)
		r.Get("/launched", cfg.MarketplaceHandler.Launched)
		r.Get("/launched/{symbol}", cfg.MarketplaceHandler.LaunchedBySymbol)
	})

	r.Post("/launch-token", cfg.MarketplaceHandler.LaunchToken)
	r.Post("/buy-token", cfg.MarketplaceHandler.BuyToken)
	r.Post("/sell-token", cfg.MarketplaceHandler.SellToken)

	return r
}
