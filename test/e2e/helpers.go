//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prompt-fun/promptd/internal/api/handlers"
	"github.com/prompt-fun/promptd/internal/repository"
	"github.com/prompt-fun/promptd/internal/server"
	"github.com/prompt-fun/promptd/internal/service"
	"github.com/prompt-fun/promptd/internal/testutil"
)

const embeddingDimensions = 768

const cannedAnswer = "prompt.fun is a launchpad where tokens are created and traded from a chat terminal."

// fakeProvider is a deterministic stand-in for the LLM provider. Embeddings
// are bag-of-words vectors, so texts sharing words score close in cosine
// space. Completions return a canned answer; the classification prompt gets
// an unusable reply so intent routing exercises the keyword fallback.
type fakeProvider struct{}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return embedText(text), nil
}

func (f *fakeProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embedText(text)
	}
	return vectors, nil
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Classify") {
		return "classification unavailable", nil
	}
	return cannedAnswer, nil
}

func embedText(text string) []float32 {
	v := make([]float32, embeddingDimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(word, ".,!?")))
		v[h.Sum32()%embeddingDimensions]++
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range v {
			v[i] *= scale
		}
	}
	return v
}

// TestEnv holds everything one e2e run needs.
type TestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	Embedding    *service.EmbeddingService
	ChunkRepo    *repository.ChunkRepository
	HTTPClient   *http.Client
}

// SetupTestEnv starts postgres, runs migrations, and serves the full router
// in-process against the fake provider.
func SetupTestEnv(t *testing.T) *TestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	provider := &fakeProvider{}

	chunkRepo := repository.NewChunkRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)
	questRepo := repository.NewQuestRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	embeddingSvc := service.NewEmbeddingService(provider)
	answerSvc := service.NewAnswerService(embeddingSvc, chunkRepo, provider, "default")
	intentSvc := service.NewIntentService(provider)
	chatSvc := service.NewChatService(intentSvc, answerSvc)
	profileSvc := service.NewProfileService(profileRepo)
	gamifySvc := service.NewGamifyService(profileRepo, achievementRepo, questRepo, activityRepo)
	marketSvc := service.NewMarketplaceService(tokenRepo)

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:        handlers.NewChatHandler(chatSvc, answerSvc, intentSvc),
		ProfileHandler:     handlers.NewProfileHandler(profileSvc, gamifySvc),
		MarketplaceHandler: handlers.NewMarketplaceHandler(marketSvc, gamifySvc),
	})

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return &TestEnv{
		T:         t,
		Ctx:       ctx,
		PostgresC: pgC,
		Pool:      pool,
		ServerURL: serverURL,
		ServerCloser: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		},
		Embedding:  embeddingSvc,
		ChunkRepo:  chunkRepo,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *TestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Get performs a GET request and decodes the JSON response into out.
func (e *TestEnv) Get(path string, out interface{}) (int, error) {
	return e.doRequest(http.MethodGet, path, nil, out)
}

// Post performs a POST request and decodes the JSON response into out.
func (e *TestEnv) Post(path string, body interface{}, out interface{}) (int, error) {
	return e.doRequest(http.MethodPost, path, body, out)
}

func (e *TestEnv) doRequest(method, path string, body, out interface{}) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode %s: %w", string(respBody), err)
		}
	}
	return resp.StatusCode, nil
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
