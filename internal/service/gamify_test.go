package service

import (
	"context"
	"testing"
	"time"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAchievementRepository is a mock implementation of AchievementRepositoryInterface
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListByAddress(ctx context.Context, address string) ([]domain.Achievement, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) Seed(ctx context.Context, address string, achievements []domain.Achievement) error {
	args := m.Called(ctx, address, achievements)
	return args.Error(0)
}

// MockQuestRepository is a mock implementation of QuestRepositoryInterface
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) ListByAddress(ctx context.Context, address string) ([]domain.Quest, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestRepository) Seed(ctx context.Context, address string, quests []domain.Quest) error {
	args := m.Called(ctx, address, quests)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of ActivityRepositoryInterface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) ListByAddress(ctx context.Context, address string) ([]domain.Activity, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) Seed(ctx context.Context, address string, activity []domain.Activity) error {
	args := m.Called(ctx, address, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Append(ctx context.Context, address string, entry domain.Activity) error {
	args := m.Called(ctx, address, entry)
	return args.Error(0)
}

func newGamifyFixture() (*MockProfileRepository, *MockAchievementRepository, *MockQuestRepository, *MockActivityRepository, *GamifyService) {
	profiles := new(MockProfileRepository)
	achievements := new(MockAchievementRepository)
	quests := new(MockQuestRepository)
	activity := new(MockActivityRepository)
	svc := NewGamifyService(profiles, achievements, quests, activity)
	return profiles, achievements, quests, activity, svc
}

func TestGamifyService_Achievements_SeedsDefaults(t *testing.T) {
	profiles, achievements, _, _, svc := newGamifyFixture()

	achievements.On("ListByAddress", mock.Anything, "0xABC").
		Return([]domain.Achievement{}, nil)
	achievements.On("Seed", mock.Anything, "0xABC", mock.Anything).Return(nil)
	profiles.On("GetByAddress", mock.Anything, "0xABC").
		Return(nil, domain.ErrProfileNotFound)

	got, err := svc.Achievements(context.Background(), "0xABC")
	require.NoError(t, err)

	require.Len(t, got, 6)
	for _, a := range got {
		assert.False(t, a.Unlocked)
	}
	achievements.AssertExpectations(t)
}

func TestGamifyService_Achievements_UnlockRules(t *testing.T) {
	profiles, achievements, _, _, svc := newGamifyFixture()

	achievements.On("ListByAddress", mock.Anything, "0xABC").
		Return(domain.DefaultAchievements(), nil)

	profile := domain.NewDefaultProfile("0xABC", 0, time.Now().UTC())
	profile.TokensCreated = 5
	profile.Streak = 6
	profile.HoldDays = 31
	profile.TotalVolume = "12M APT"
	profile.LargestTrade = "0.5M APT"
	profiles.On("GetByAddress", mock.Anything, "0xABC").Return(profile, nil)

	got, err := svc.Achievements(context.Background(), "0xABC")
	require.NoError(t, err)

	byTitle := map[string]bool{}
	for _, a := range got {
		byTitle[a.Title] = a.Unlocked
	}

	assert.True(t, byTitle[domain.AchievementFirstLaunch])
	assert.True(t, byTitle[domain.AchievementMemeMaster])
	assert.True(t, byTitle[domain.AchievementHotStreak])
	assert.True(t, byTitle[domain.AchievementDiamondHands])
	assert.True(t, byTitle[domain.AchievementVolumeMilestone])
	// the pattern is unanchored, so "0.5M" counts via its "5M" substring
	assert.True(t, byTitle[domain.AchievementWhaleHunter])
}

func TestGamifyService_Achievements_SubMillionStaysLocked(t *testing.T) {
	profiles, achievements, _, _, svc := newGamifyFixture()

	achievements.On("ListByAddress", mock.Anything, "0xABC").
		Return(domain.DefaultAchievements(), nil)

	profile := domain.NewDefaultProfile("0xABC", 0, time.Now().UTC())
	profile.TotalVolume = "900K APT"
	profile.LargestTrade = "500K APT"
	profiles.On("GetByAddress", mock.Anything, "0xABC").Return(profile, nil)

	got, err := svc.Achievements(context.Background(), "0xABC")
	require.NoError(t, err)

	byTitle := map[string]bool{}
	for _, a := range got {
		byTitle[a.Title] = a.Unlocked
	}

	assert.False(t, byTitle[domain.AchievementVolumeMilestone])
	assert.False(t, byTitle[domain.AchievementWhaleHunter])
}

func TestGamifyService_Quests_SeedsDefaults(t *testing.T) {
	_, _, quests, _, svc := newGamifyFixture()

	quests.On("ListByAddress", mock.Anything, "0xABC").Return([]domain.Quest{}, nil)
	quests.On("Seed", mock.Anything, "0xABC", mock.Anything).Return(nil)

	got, err := svc.Quests(context.Background(), "0xABC")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestGamifyService_Quests_NoReseed(t *testing.T) {
	_, _, quests, _, svc := newGamifyFixture()

	existing := []domain.Quest{{Title: "Daily Trader", Progress: 3, Total: 5}}
	quests.On("ListByAddress", mock.Anything, "0xABC").Return(existing, nil)

	got, err := svc.Quests(context.Background(), "0xABC")
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	quests.AssertNotCalled(t, "Seed", mock.Anything, mock.Anything, mock.Anything)
}

func TestGamifyService_Activity_SeedsDefaults(t *testing.T) {
	_, _, _, activity, svc := newGamifyFixture()

	activity.On("ListByAddress", mock.Anything, "0xABC").Return([]domain.Activity{}, nil)
	activity.On("Seed", mock.Anything, "0xABC", mock.Anything).Return(nil)

	got, err := svc.Activity(context.Background(), "0xABC")
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestGamifyService_RecordActivity(t *testing.T) {
	_, _, _, activity, svc := newGamifyFixture()

	entry := domain.Activity{Action: "Launched", Token: "$MOON", Amount: "2000 tokens", Time: "just now", Type: "launch"}
	activity.On("Append", mock.Anything, "0xABC", entry).Return(nil)

	require.NoError(t, svc.RecordActivity(context.Background(), "0xABC", entry))
	activity.AssertExpectations(t)
}

func TestGamifyService_MissingAddress(t *testing.T) {
	_, _, _, _, svc := newGamifyFixture()

	_, err := svc.Achievements(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingAddress)

	_, err = svc.Quests(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingAddress)

	_, err = svc.Activity(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingAddress)
}
