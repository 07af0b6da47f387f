package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/service"
)

// Operations exposes the profile operation set with the uniform response
// shape. Expected failures surface as 400/404 envelopes; anything else is
// caught here and converted to a 500 so a single bad request can never
// crash the calling process.
type Operations struct {
	svc *service.ProfileService
}

// NewOperations creates the operation layer over a profile service.
func NewOperations(svc *service.ProfileService) *Operations {
	return &Operations{svc: svc}
}

// CreateProfile creates a new user profile.
func (o *Operations) CreateProfile(ctx context.Context, userID, name string, age int, role string) Response {
	profile, err := o.svc.CreateProfile(ctx, service.CreateProfileInput{
		UserID: userID,
		Name:   name,
		Age:    age,
		Role:   role,
	})
	if err != nil {
		return o.failure(userID, err)
	}

	return successResponse(profileView(profile), "Profile created successfully", http.StatusCreated)
}

// GetProfile retrieves a profile by user_id, including its full activity
// history and derived stats.
func (o *Operations) GetProfile(ctx context.Context, userID string) Response {
	profile, err := o.svc.GetProfile(ctx, userID)
	if err != nil {
		return o.failure(userID, err)
	}

	return successResponse(profileView(profile), "Profile retrieved successfully", http.StatusOK)
}

// UpdateProfile applies a partial update to a profile.
func (o *Operations) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) Response {
	profile, err := o.svc.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID: userID,
		Patch:  patch,
	})
	if err != nil {
		return o.failure(userID, err)
	}

	return successResponse(profileView(profile), "Profile updated successfully", http.StatusOK)
}

// DeleteProfile removes a profile by user_id.
func (o *Operations) DeleteProfile(ctx context.Context, userID string) Response {
	if err := o.svc.DeleteProfile(ctx, userID); err != nil {
		return o.failure(userID, err)
	}

	return successResponse(nil, "Profile deleted successfully", http.StatusOK)
}

// ListProfiles returns the reduced-field view of all profiles, optionally
// filtered by role.
func (o *Operations) ListProfiles(ctx context.Context, role string) Response {
	profiles, err := o.svc.ListProfiles(ctx, service.ListProfilesInput{Role: role})
	if err != nil {
		return o.failure("", err)
	}

	return successResponse(
		profileListView(profiles),
		fmt.Sprintf("Retrieved %d profile(s)", len(profiles)),
		http.StatusOK,
	)
}

// AddActivity logs an activity against a profile and returns the updated
// full profile with recomputed stats.
func (o *Operations) AddActivity(ctx context.Context, userID, activityType string, durationMinutes, caloriesBurned int, notes string) Response {
	profile, err := o.svc.AddActivity(ctx, service.AddActivityInput{
		UserID:          userID,
		ActivityType:    activityType,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  caloriesBurned,
		Notes:           notes,
	})
	if err != nil {
		return o.failure(userID, err)
	}

	return successResponse(profileView(profile), "Activity added successfully", http.StatusCreated)
}

// GetUserStatistics returns the derived statistics for a profile.
func (o *Operations) GetUserStatistics(ctx context.Context, userID string) Response {
	stats, err := o.svc.GetUserStatistics(ctx, userID)
	if err != nil {
		return o.failure(userID, err)
	}

	return successResponse(statisticsView(stats), "Statistics retrieved successfully", http.StatusOK)
}

// failure maps an error to the uniform envelope: 404 for unknown profiles,
// 400 for validation and duplicate-key conditions, 500 for everything else.
func (o *Operations) failure(userID string, err error) Response {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return errorResponse(
			fmt.Sprintf("Profile with user_id '%s' not found", userID),
			http.StatusNotFound, "")

	case errors.Is(err, domain.ErrProfileAlreadyExists):
		return errorResponse(
			fmt.Sprintf("Profile with user_id '%s' already exists", userID),
			http.StatusBadRequest, "")

	case isValidation(err):
		return errorResponse(err.Error(), http.StatusBadRequest, "")

	default:
		return errorResponse("Internal server error: "+err.Error(), http.StatusInternalServerError, err.Error())
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, service.ErrMissingRequiredFields) ||
		errors.Is(err, service.ErrMissingActivityType) ||
		errors.Is(err, service.ErrInvalidDuration) ||
		errors.Is(err, service.ErrInvalidCalories)
}
