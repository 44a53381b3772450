package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
)

// millionsPattern matches display amounts in the millions, e.g. "12M APT".
var millionsPattern = regexp.MustCompile(`[1-9][0-9]*M`)

// AchievementRepositoryInterface defines the repository interface for achievements
type AchievementRepositoryInterface interface {
	ListByAddress(ctx context.Context, address string) ([]domain.Achievement, error)
	Seed(ctx context.Context, address string, achievements []domain.Achievement) error
}

// QuestRepositoryInterface defines the repository interface for quests
type QuestRepositoryInterface interface {
	ListByAddress(ctx context.Context, address string) ([]domain.Quest, error)
	Seed(ctx context.Context, address string, quests []domain.Quest) error
}

// ActivityRepositoryInterface defines the repository interface for activity feeds
type ActivityRepositoryInterface interface {
	ListByAddress(ctx context.Context, address string) ([]domain.Activity, error)
	Seed(ctx context.Context, address string, activity []domain.Activity) error
	Append(ctx context.Context, address string, entry domain.Activity) error
}

// GamifyService serves the achievement, quest, and activity collections,
// seeding the default tables on first access per address. Achievement
// unlock state is evaluated live against the profile, not persisted.
type GamifyService struct {
	profiles     ProfileRepositoryInterface
	achievements AchievementRepositoryInterface
	quests       QuestRepositoryInterface
	activity     ActivityRepositoryInterface
}

// NewGamifyService creates a new GamifyService instance
func NewGamifyService(
	profiles ProfileRepositoryInterface,
	achievements AchievementRepositoryInterface,
	quests QuestRepositoryInterface,
	activity ActivityRepositoryInterface,
) *GamifyService {
	return &GamifyService{
		profiles:     profiles,
		achievements: achievements,
		quests:       quests,
		activity:     activity,
	}
}

// Achievements returns the achievement set for an address with unlock
// state applied.
func (s *GamifyService) Achievements(ctx context.Context, address string) ([]domain.Achievement, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.ErrMissingAddress
	}

	achievements, err := s.achievements.ListByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(achievements) == 0 {
		achievements = domain.DefaultAchievements()
		if err := s.achievements.Seed(ctx, address, achievements); err != nil {
			return nil, err
		}
	}

	profile, err := s.profiles.GetByAddress(ctx, address)
	if err != nil {
		// no profile yet means nothing is unlocked
		return achievements, nil
	}

	for i := range achievements {
		achievements[i].Unlocked = unlocked(achievements[i].Title, profile)
	}
	return achievements, nil
}

// Quests returns the quest board for an address, seeding defaults if empty.
func (s *GamifyService) Quests(ctx context.Context, address string) ([]domain.Quest, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.ErrMissingAddress
	}

	quests, err := s.quests.ListByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(quests) == 0 {
		quests = domain.DefaultQuests()
		if err := s.quests.Seed(ctx, address, quests); err != nil {
			return nil, err
		}
	}
	return quests, nil
}

// Activity returns the activity feed for an address, seeding defaults if
// empty.
func (s *GamifyService) Activity(ctx context.Context, address string) ([]domain.Activity, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.ErrMissingAddress
	}

	activity, err := s.activity.ListByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(activity) == 0 {
		activity = domain.DefaultActivity()
		if err := s.activity.Seed(ctx, address, activity); err != nil {
			return nil, err
		}
	}
	return activity, nil
}

// RecordActivity appends one entry to an address's feed.
func (s *GamifyService) RecordActivity(ctx context.Context, address string, entry domain.Activity) error {
	if strings.TrimSpace(address) == "" {
		return domain.ErrMissingAddress
	}
	return s.activity.Append(ctx, address, entry)
}

func unlocked(title string, p *domain.UserProfile) bool {
	switch title {
	case domain.AchievementFirstLaunch:
		return p.TokensCreated >= 1
	case domain.AchievementMemeMaster:
		return p.TokensCreated >= 5
	case domain.AchievementHotStreak:
		return p.Streak >= 5
	case domain.AchievementDiamondHands:
		return p.HoldDays >= 30
	case domain.AchievementVolumeMilestone:
		return millionsPattern.MatchString(p.TotalVolume)
	case domain.AchievementWhaleHunter:
		return millionsPattern.MatchString(p.LargestTrade)
	}
	return false
}
