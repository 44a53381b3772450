package service

import (
	"context"
	"strings"
	"time"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/pagination"
)

// DefaultPageSize bounds marketplace listings.
const DefaultPageSize = 50

// TokenRepositoryInterface defines the repository interface for launched tokens
type TokenRepositoryInterface interface {
	Upsert(ctx context.Context, token *domain.LaunchedToken) error
	GetBySymbol(ctx context.Context, symbol string) (*domain.LaunchedToken, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*domain.LaunchedToken, error)
}

// MarketplaceService tracks tokens launched through the terminal.
type MarketplaceService struct {
	repo TokenRepositoryInterface
	now  func() time.Time
}

// NewMarketplaceService creates a new MarketplaceService instance
func NewMarketplaceService(repo TokenRepositoryInterface) *MarketplaceService {
	return &MarketplaceService{
		repo: repo,
		now:  time.Now,
	}
}

// Launch records a launched token. Re-launching the same symbol updates the
// record in place rather than erroring.
func (s *MarketplaceService) Launch(ctx context.Context, token *domain.LaunchedToken) (*domain.LaunchedToken, error) {
	token.Symbol = normalizeSymbol(token.Symbol)
	if token.Symbol == "" || strings.TrimSpace(token.Name) == "" {
		return nil, domain.ErrMissingRequiredField
	}

	now := s.now().UTC()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	token.UpdatedAt = now

	if err := s.repo.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Get looks up one launched token by symbol.
func (s *MarketplaceService) Get(ctx context.Context, symbol string) (*domain.LaunchedToken, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.ErrMissingRequiredField
	}
	return s.repo.GetBySymbol(ctx, symbol)
}

// List returns a page of launched tokens, newest first.
func (s *MarketplaceService) List(ctx context.Context, cursorStr string, limit int) (*pagination.PageResult[*domain.LaunchedToken], error) {
	if limit <= 0 || limit > DefaultPageSize {
		limit = DefaultPageSize
	}

	cursor, err := pagination.DecodeCursor(cursorStr)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}

	// fetch one extra row to detect a further page
	tokens, err := s.repo.ListWithCursor(ctx, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(tokens) > limit
	if hasMore {
		tokens = tokens[:limit]
	}

	next := ""
	if hasMore {
		next = pagination.CreateNextCursor(tokens, limit,
			func(t *domain.LaunchedToken) string { return t.Symbol },
			func(t *domain.LaunchedToken) time.Time { return t.CreatedAt },
		)
	}

	return &pagination.PageResult[*domain.LaunchedToken]{
		Items:   tokens,
		Cursor:  next,
		HasMore: hasMore,
	}, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(symbol), "$"))
}
