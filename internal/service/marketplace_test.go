package service

import (
	"context"
	"testing"
	"time"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceService_Launch(t *testing.T) {
	repo := new(MockTokenRepository)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(tok *domain.LaunchedToken) bool {
		return tok.Symbol == "MOON" && !tok.CreatedAt.IsZero()
	})).Return(nil)

	svc := NewMarketplaceService(repo)

	token, err := svc.Launch(context.Background(), &domain.LaunchedToken{
		Symbol: "$moon",
		Name:   "Moon Token",
	})
	require.NoError(t, err)

	assert.Equal(t, "MOON", token.Symbol)
	repo.AssertExpectations(t)
}

func TestMarketplaceService_Launch_MissingFields(t *testing.T) {
	svc := NewMarketplaceService(new(MockTokenRepository))

	_, err := svc.Launch(context.Background(), &domain.LaunchedToken{Symbol: "MOON"})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	_, err = svc.Launch(context.Background(), &domain.LaunchedToken{Name: "Moon"})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestMarketplaceService_Get(t *testing.T) {
	repo := new(MockTokenRepository)
	repo.On("GetBySymbol", mock.Anything, "MOON").
		Return(&domain.LaunchedToken{Symbol: "MOON", Name: "Moon Token"}, nil)

	svc := NewMarketplaceService(repo)

	token, err := svc.Get(context.Background(), "$moon")
	require.NoError(t, err)
	assert.Equal(t, "Moon Token", token.Name)
}

func TestMarketplaceService_Get_NotFound(t *testing.T) {
	repo := new(MockTokenRepository)
	repo.On("GetBySymbol", mock.Anything, "NOPE").Return(nil, domain.ErrTokenNotFound)

	svc := NewMarketplaceService(repo)

	_, err := svc.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestMarketplaceService_List(t *testing.T) {
	now := time.Now().UTC()
	tokens := make([]*domain.LaunchedToken, 3)
	for i := range tokens {
		tokens[i] = &domain.LaunchedToken{
			Symbol:    string(rune('A' + i)),
			Name:      "Token",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}

	repo := new(MockTokenRepository)
	// limit+1 rows requested; three back means more pages exist
	repo.On("ListWithCursor", mock.Anything, (*pagination.Cursor)(nil), 3).Return(tokens, nil)

	svc := NewMarketplaceService(repo)

	page, err := svc.List(context.Background(), "", 2)
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.Cursor)
}

func TestMarketplaceService_List_LastPage(t *testing.T) {
	repo := new(MockTokenRepository)
	repo.On("ListWithCursor", mock.Anything, (*pagination.Cursor)(nil), 3).
		Return([]*domain.LaunchedToken{{Symbol: "A", Name: "Token", CreatedAt: time.Now()}}, nil)

	svc := NewMarketplaceService(repo)

	page, err := svc.List(context.Background(), "", 2)
	require.NoError(t, err)

	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Cursor)
}

func TestMarketplaceService_List_BadCursor(t *testing.T) {
	svc := NewMarketplaceService(new(MockTokenRepository))

	_, err := svc.List(context.Background(), "not-base64!!", 10)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeValidation, de.Code)
}
