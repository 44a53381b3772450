package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prompt-fun/promptd/internal/domain"
)

// ProfileRepositoryInterface defines the repository interface for user profiles
type ProfileRepositoryInterface interface {
	GetByAddress(ctx context.Context, address string) (*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile) error
}

// ProfileService hands out user profiles, creating the default record on
// first sight of an address. Level and NextLevelXP are always derived from
// the XP supplied with the request, never from storage.
type ProfileService struct {
	repo ProfileRepositoryInterface
	now  func() time.Time
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo ProfileRepositoryInterface) *ProfileService {
	return &ProfileService{
		repo: repo,
		now:  time.Now,
	}
}

// GetOrCreate returns the profile for an address, seeding the default
// record if none exists. Repeated calls never create duplicates.
func (s *ProfileService) GetOrCreate(ctx context.Context, address string, xp int) (*domain.UserProfile, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.ErrMissingAddress
	}

	profile, err := s.repo.GetByAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}

		profile = domain.NewDefaultProfile(address, xp, s.now().UTC())
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile.Level = domain.CalcLevel(xp)
	profile.NextLevelXP = domain.NextLevelXP(xp)
	return profile, nil
}
