package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// ProfileService handles profile and activity operations. It validates
// inputs at the boundary, delegates to the storage layer and keeps expected
// conditions (validation, not-found, duplicate) as sentinel errors while
// wrapping anything unexpected in ErrInternalError.
type ProfileService struct {
	repo   repository.ProfileRepository
	logger zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repository.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger.With().Str("service", "profile").Logger(),
	}
}

// =============================================================================
// Input/Output Structs
// =============================================================================

// CreateProfileInput contains the data needed to create a profile.
type CreateProfileInput struct {
	UserID string
	Name   string
	Age    int
	Role   string
}

// UpdateProfileInput contains a partial update for an existing profile.
type UpdateProfileInput struct {
	UserID string
	Patch  repository.ProfilePatch
}

// ListProfilesInput contains the optional role filter.
type ListProfilesInput struct {
	// Role filters by exact role text when non-empty.
	Role string
}

// AddActivityInput contains the data needed to log an activity.
type AddActivityInput struct {
	UserID          string
	ActivityType    string
	DurationMinutes int
	CaloriesBurned  int
	Notes           string
}

// Statistics is the derived per-user statistics view.
type Statistics struct {
	UserID                     string
	Name                       string
	Role                       domain.Role
	TotalActivities            int
	TotalActivityTimeMinutes   int
	TotalCaloriesBurned        int
	AverageCaloriesPerActivity int
}

// =============================================================================
// Service Methods
// =============================================================================

// CreateProfile validates the input and creates a new profile.
func (s *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.UserProfile, error) {
	if input.UserID == "" || input.Name == "" {
		return nil, ErrMissingRequiredFields
	}
	if err := domain.ValidateAge(input.Age); err != nil {
		return nil, err
	}
	if _, err := domain.ParseRole(input.Role); err != nil {
		return nil, err
	}

	profile, err := s.repo.Create(ctx, input.UserID, input.Name, input.Age, input.Role)
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create profile")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("user_id", profile.UserID).
		Str("role", profile.Role.String()).
		Msg("profile created")

	return profile, nil
}

// GetProfile retrieves a profile by user_id.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return profile, nil
}

// UpdateProfile applies a partial update to an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.UserProfile, error) {
	profile, err := s.repo.Update(ctx, input.UserID, input.Patch)
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to update profile")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("user_id", input.UserID).Msg("profile updated")
	return profile, nil
}

// DeleteProfile removes a profile by user_id.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if isExpected(err) {
			return err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete profile")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("user_id", userID).Msg("profile deleted")
	return nil
}

// ListProfiles returns all profiles, optionally filtered by role.
func (s *ProfileService) ListProfiles(ctx context.Context, input ListProfilesInput) ([]*domain.UserProfile, error) {
	var (
		profiles []*domain.UserProfile
		err      error
	)

	if input.Role != "" {
		role, parseErr := domain.ParseRole(input.Role)
		if parseErr != nil {
			return nil, parseErr
		}
		profiles, err = s.repo.ListByRole(ctx, role)
	} else {
		profiles, err = s.repo.List(ctx)
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list profiles")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return profiles, nil
}

// AddActivity validates the input and appends an activity to a profile.
func (s *ProfileService) AddActivity(ctx context.Context, input AddActivityInput) (*domain.UserProfile, error) {
	if input.ActivityType == "" {
		return nil, ErrMissingActivityType
	}
	if input.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if input.CaloriesBurned < 0 {
		return nil, ErrInvalidCalories
	}

	profile, err := s.repo.AddActivity(ctx, input.UserID, input.ActivityType, input.DurationMinutes, input.CaloriesBurned, input.Notes)
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to add activity")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Str("activity_type", input.ActivityType).
		Int("duration_minutes", input.DurationMinutes).
		Msg("activity added")

	return profile, nil
}

// GetUserStatistics returns the derived statistics for a profile.
func (s *ProfileService) GetUserStatistics(ctx context.Context, userID string) (*Statistics, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		UserID:                     profile.UserID,
		Name:                       profile.Name,
		Role:                       profile.Role,
		TotalActivities:            profile.TotalActivities(),
		TotalActivityTimeMinutes:   profile.TotalActivityTime(),
		TotalCaloriesBurned:        profile.TotalCaloriesBurned(),
		AverageCaloriesPerActivity: profile.AverageCaloriesPerActivity(),
	}, nil
}

// isExpected reports whether err is a recoverable business condition rather
// than an infrastructure failure.
func isExpected(err error) bool {
	return errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrProfileAlreadyExists) ||
		errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidRole)
}
