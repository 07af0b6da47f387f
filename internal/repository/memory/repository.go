// Package memory provides an in-memory profile repository with no
// persistence. It is useful for tests and temporary usage.
package memory

import (
	"context"
	"sync"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// Repository implements repository.ProfileRepository in memory.
type Repository struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
	order    []string
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		profiles: make(map[string]*domain.UserProfile),
	}
}

// Create constructs and stores a new profile.
func (r *Repository) Create(ctx context.Context, userID, name string, age int, role string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[userID]; exists {
		return nil, domain.NewDomainError(domain.ErrProfileAlreadyExists, "create profile", userID)
	}

	profile, err := domain.NewUserProfile(userID, name, age, role)
	if err != nil {
		return nil, err
	}

	r.profiles[userID] = profile
	r.order = append(r.order, userID)
	return profile, nil
}

// Get retrieves a profile by user_id.
func (r *Repository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

// Update applies a partial update to an existing profile.
func (r *Repository) Update(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, domain.ErrProfileNotFound
	}

	if err := repository.ApplyPatch(profile, patch); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[userID]; !exists {
		return domain.ErrProfileNotFound
	}

	delete(r.profiles, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all profiles in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.UserProfile, 0, len(r.order))
	for _, userID := range r.order {
		result = append(result, r.profiles[userID])
	}
	return result, nil
}

// ListByRole returns profiles matching the role, preserving List order.
func (r *Repository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.UserProfile, 0)
	for _, userID := range r.order {
		if p := r.profiles[userID]; p.Role == role {
			result = append(result, p)
		}
	}
	return result, nil
}

// AddActivity appends an activity to a profile's history.
func (r *Repository) AddActivity(ctx context.Context, userID, activityType string, durationMinutes, caloriesBurned int, notes string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, domain.ErrProfileNotFound
	}

	profile.AddActivity(activityType, durationMinutes, caloriesBurned, notes)
	return profile, nil
}

// Ensure Repository implements the storage contract.
var _ repository.ProfileRepository = (*Repository)(nil)
