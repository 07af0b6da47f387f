// Package repository defines the storage contract for OctoFit Tracker.
// The interface abstracts the profile collection, allowing interchangeable
// backends (JSON file, embedded SQLite, in-memory for tests) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/octofit/octofit-tracker/internal/domain"
)

// ProfileRepository defines the interface for profile data access.
//
// Expected conditions (unknown user, duplicate user_id, invalid fields) are
// reported as domain sentinel errors; hard failures are reserved for
// infrastructure problems such as I/O errors during persistence.
type ProfileRepository interface {
	// Create constructs and stores a new profile. Returns
	// domain.ErrProfileAlreadyExists if the user_id is taken, or a
	// validation error from entity construction.
	Create(ctx context.Context, userID, name string, age int, role string) (*domain.UserProfile, error)

	// Get retrieves a profile by user_id.
	// Returns domain.ErrProfileNotFound if absent.
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)

	// Update applies the supplied subset of fields to an existing profile,
	// re-validating age/role exactly as construction does. Fields not
	// present in the patch are left untouched.
	Update(ctx context.Context, userID string, patch ProfilePatch) (*domain.UserProfile, error)

	// Delete removes a profile by user_id.
	// Returns domain.ErrProfileNotFound if absent.
	Delete(ctx context.Context, userID string) error

	// List returns all profiles in a stable iteration order.
	List(ctx context.Context) ([]*domain.UserProfile, error)

	// ListByRole returns profiles with an exact role match, preserving the
	// relative order of List. An empty result is not an error.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.UserProfile, error)

	// AddActivity appends an activity to a profile's history and returns
	// the updated profile. Returns domain.ErrProfileNotFound if absent.
	AddActivity(ctx context.Context, userID, activityType string, durationMinutes, caloriesBurned int, notes string) (*domain.UserProfile, error)
}

// ProfilePatch describes a partial update to a profile. Nil fields are left
// untouched; user_id and created_at are never patchable.
type ProfilePatch struct {
	Name *string
	Age  *int
	Role *string
}

// IsEmpty returns true if the patch carries no fields.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Role == nil
}

// ApplyPatch validates every supplied field before mutating the profile, so
// a rejected patch leaves the profile unchanged.
func ApplyPatch(profile *domain.UserProfile, patch ProfilePatch) error {
	var role domain.Role
	if patch.Role != nil {
		parsed, err := domain.ParseRole(*patch.Role)
		if err != nil {
			return err
		}
		role = parsed
	}

	if patch.Age != nil {
		if err := domain.ValidateAge(*patch.Age); err != nil {
			return err
		}
	}

	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.Age != nil {
		profile.Age = *patch.Age
	}
	if patch.Role != nil {
		profile.Role = role
	}

	return nil
}
