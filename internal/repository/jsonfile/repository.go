// Package jsonfile provides the durable, file-backed profile repository.
// The whole collection is kept in memory and re-serialized to a single JSON
// file on every mutation (full-file overwrite, not an append log). This is
// a consistency-by-full-rewrite design: fine for single-process, low-volume
// usage, but not safe under concurrent writers.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// Repository implements repository.ProfileRepository backed by a JSON file.
type Repository struct {
	path   string
	logger zerolog.Logger

	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
	order    []string // user_ids in stable iteration order
}

// NewRepository opens (or initializes) the repository at path. A missing
// file starts an empty collection; a corrupt file is logged and reset to
// empty rather than failing the boot.
func NewRepository(path string, logger zerolog.Logger) (*Repository, error) {
	r := &Repository{
		path:     path,
		logger:   logger.With().Str("repository", "jsonfile").Str("path", path).Logger(),
		profiles: make(map[string]*domain.UserProfile),
	}

	if err := r.loadAll(); err != nil {
		return nil, err
	}

	return r, nil
}

// loadAll reads the backing file into memory.
func (r *Repository) loadAll() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading profile store: %w", err)
	}

	var records map[string]domain.ProfileRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		r.logger.Warn().Err(err).Msg("profile store is not valid JSON, starting empty")
		r.profiles = make(map[string]*domain.UserProfile)
		r.order = nil
		return nil
	}

	profiles := make(map[string]*domain.UserProfile, len(records))
	for userID, rec := range records {
		profile, err := domain.ProfileFromRecord(rec)
		if err != nil {
			r.logger.Warn().Err(err).Str("user_id", userID).Msg("invalid profile record, starting empty")
			return nil
		}
		profiles[userID] = profile
	}

	// Go maps do not preserve key order, so reloaded profiles are ordered
	// by creation time (user_id as tie-break) to keep iteration stable.
	order := make([]string, 0, len(profiles))
	for userID := range profiles {
		order = append(order, userID)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := profiles[order[i]], profiles[order[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.UserID < b.UserID
	})

	r.profiles = profiles
	r.order = order
	return nil
}

// saveAll re-serializes the whole collection and overwrites the backing
// file. The write goes to a uniquely named temp file first and is renamed
// into place so a crash mid-write cannot corrupt the store.
func (r *Repository) saveAll() error {
	records := make(map[string]domain.ProfileRecord, len(r.profiles))
	for userID, profile := range r.profiles {
		records[userID] = profile.Record()
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile store: %w", err)
	}

	dir := filepath.Dir(r.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	tmp := fmt.Sprintf("%s.%s.tmp", r.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing profile store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing profile store: %w", err)
	}

	return nil
}

// Create constructs, stores and persists a new profile.
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

	if err := r.saveAll(); err != nil {
		return nil, err
	}

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

// Update applies a partial update and persists the collection.
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

	if err := r.saveAll(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Delete removes a profile and persists the collection.
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

	return r.saveAll()
}

// List returns all profiles in stable iteration order.
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

// AddActivity appends an activity to a profile and persists the collection.
func (r *Repository) AddActivity(ctx context.Context, userID, activityType string, durationMinutes, caloriesBurned int, notes string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, domain.ErrProfileNotFound
	}

	profile.AddActivity(activityType, durationMinutes, caloriesBurned, notes)

	if err := r.saveAll(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Ensure Repository implements the storage contract.
var _ repository.ProfileRepository = (*Repository)(nil)
