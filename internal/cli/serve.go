package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/prompt-fun/promptd/internal/api/handlers"
	"github.com/prompt-fun/promptd/internal/config"
	"github.com/prompt-fun/promptd/internal/database"
	"github.com/prompt-fun/promptd/internal/gemini"
	"github.com/prompt-fun/promptd/internal/openai"
	"github.com/prompt-fun/promptd/internal/repository"
	"github.com/prompt-fun/promptd/internal/server"
	"github.com/prompt-fun/promptd/internal/service"
	"github.com/prompt-fun/promptd/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the prompt.fun API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8000", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8000" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	embeddingClient, completionClient, closeProvider, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	chunkRepo := repository.NewChunkRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)
	questRepo := repository.NewQuestRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	embeddingSvc := service.NewEmbeddingService(embeddingClient)
	answerSvc := service.NewAnswerService(embeddingSvc, chunkRepo, completionClient, cfg.Namespace)
	intentSvc := service.NewIntentService(completionClient)
	chatSvc := service.NewChatService(intentSvc, answerSvc)
	profileSvc := service.NewProfileService(profileRepo)
	gamifySvc := service.NewGamifyService(profileRepo, achievementRepo, questRepo, activityRepo)
	marketSvc := service.NewMarketplaceService(tokenRepo)

	routerCfg := server.RouterConfig{
		ChatHandler:        handlers.NewChatHandler(chatSvc, answerSvc, intentSvc),
		ProfileHandler:     handlers.NewProfileHandler(profileSvc, gamifySvc),
		MarketplaceHandler: handlers.NewMarketplaceHandler(marketSvc, gamifySvc),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// buildProvider wires the configured LLM provider. Both provider clients
// satisfy the embedding and completion interfaces used by the services.
func buildProvider(ctx context.Context, cfg *config.Config) (service.EmbeddingClient, service.CompletionClient, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if !cfg.HasGemini() {
			return nil, nil, nil, fmt.Errorf("LLM_PROVIDER=gemini requires GOOGLE_API_KEY")
		}
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.GoogleAPIKey,
			EmbeddingModel: cfg.GeminiEmbeddingModel,
			ChatModel:      cfg.GeminiChatModel,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		log.Printf("using gemini provider (chat: %s)", cfg.GeminiChatModel)
		return client, client, func() { _ = client.Close() }, nil

	default:
		if !cfg.HasOpenAI() {
			return nil, nil, nil, fmt.Errorf("LLM_PROVIDER=openai requires OPENAI_API_KEY")
		}
		client := openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: goopenai.EmbeddingModel(cfg.OpenAIEmbeddingModel),
			ChatModel:      cfg.OpenAIChatModel,
			Dimensions:     cfg.EmbeddingDimensions,
		})
		log.Printf("using openai provider (chat: %s)", cfg.OpenAIChatModel)
		return client, client, func() {}, nil
	}
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
