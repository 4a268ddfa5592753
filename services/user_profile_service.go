package services

import (
	"context"
	"fmt"
	"log"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"
)

// UserProfileService handles client and tradesman profiles. Identity and
// credentials live in the external auth service; this only keeps the
// marketplace-facing profile data.
type UserProfileService struct {
	Store ProfileStore
}

// AddProfile creates the caller's profile.
func (s *UserProfileService) AddProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" || profile.Name == "" {
		return nil, fmt.Errorf("userId and name are required: %w", errs.ErrValidation)
	}
	if profile.Role != models.RoleClient && profile.Role != models.RoleTradesman {
		return nil, fmt.Errorf("role must be %q or %q: %w", models.RoleClient, models.RoleTradesman, errs.ErrValidation)
	}

	profile.CreatedAt = models.NowStamp()
	if err := s.Store.Put(ctx, &profile); err != nil {
		return nil, err
	}

	log.Printf("👤 Profile created for %s (%s)", profile.UserID, profile.Role)
	return &profile, nil
}

// GetProfile fetches one profile by user id.
func (s *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", errs.ErrValidation)
	}
	return s.Store.Get(ctx, userID)
}

// GetProfilesBatch bulk-hydrates profile summaries; used by the chat list to
// resolve the partners of a page in one round trip.
func (s *UserProfileService) GetProfilesBatch(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	return s.Store.GetBatch(ctx, userIDs)
}

// UpdateProfile patches the caller's own profile fields.
func (s *UserProfileService) UpdateProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no updates provided: %w", errs.ErrValidation)
	}
	for _, field := range []string{"userId", "role", "createdAt"} {
		if _, ok := updates[field]; ok {
			return nil, fmt.Errorf("field %s cannot be updated: %w", field, errs.ErrValidation)
		}
	}
	return s.Store.Update(ctx, userID, updates)
}

// DeleteProfile removes the caller's profile.
func (s *UserProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.Store.Delete(ctx, userID)
}

// BrowseTradesmen lists tradesman profiles, optionally narrowed by trade and
// location.
func (s *UserProfileService) BrowseTradesmen(ctx context.Context, trade, location string) ([]models.UserProfile, error) {
	filters := map[string]string{}
	if trade != "" {
		filters["trade"] = trade
	}
	if location != "" {
		filters["location"] = location
	}
	return s.Store.BrowseTradesmen(ctx, filters)
}
