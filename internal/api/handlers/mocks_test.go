package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/pagination"
	"github.com/prompt-fun/promptd/internal/service"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, history []domain.Turn, message string, topK int) (*service.ChatResult, error) {
	args := m.Called(ctx, history, message, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatResult), args.Error(1)
}

type MockAnswerService struct {
	mock.Mock
}

func (m *MockAnswerService) Ask(ctx context.Context, message string, history []domain.Turn, topK int) (*service.AnswerResult, error) {
	args := m.Called(ctx, message, history, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnswerResult), args.Error(1)
}

type MockIntentService struct {
	mock.Mock
}

func (m *MockIntentService) Classify(ctx context.Context, message string) domain.Classification {
	args := m.Called(ctx, message)
	return args.Get(0).(domain.Classification)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetOrCreate(ctx context.Context, address string, xp int) (*domain.UserProfile, error) {
	args := m.Called(ctx, address, xp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockGamifyService struct {
	mock.Mock
}

func (m *MockGamifyService) Achievements(ctx context.Context, address string) ([]domain.Achievement, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockGamifyService) Quests(ctx context.Context, address string) ([]domain.Quest, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockGamifyService) Activity(ctx context.Context, address string) ([]domain.Activity, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockGamifyService) RecordActivity(ctx context.Context, address string, entry domain.Activity) error {
	args := m.Called(ctx, address, entry)
	return args.Error(0)
}

type MockMarketplaceService struct {
	mock.Mock
}

func (m *MockMarketplaceService) Launch(ctx context.Context, token *domain.LaunchedToken) (*domain.LaunchedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaunchedToken), args.Error(1)
}

func (m *MockMarketplaceService) Get(ctx context.Context, symbol string) (*domain.LaunchedToken, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaunchedToken), args.Error(1)
}

func (m *MockMarketplaceService) List(ctx context.Context, cursor string, limit int) (*pagination.PageResult[*domain.LaunchedToken], error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PageResult[*domain.LaunchedToken]), args.Error(1)
}
