package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// Timestamps are stored as RFC 3339 text so they round-trip exactly.
const timeLayout = time.RFC3339Nano

// ProfileRepo implements repository.ProfileRepository on SQLite.
// Activity rows are keyed by an autoincrement id, which preserves append
// order; the unique primary key on user_id supplies duplicate detection.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates a profile repository over the given database.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Create constructs and inserts a new profile.
func (r *ProfileRepo) Create(ctx context.Context, userID, name string, age int, role string) (*domain.UserProfile, error) {
	profile, err := domain.NewUserProfile(userID, name, age, role)
	if err != nil {
		return nil, err
	}

	_, err = r.db.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, age, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		profile.UserID, profile.Name, profile.Age, profile.Role.String(),
		profile.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewDomainError(domain.ErrProfileAlreadyExists, "create profile", userID)
		}
		return nil, fmt.Errorf("inserting profile: %w", err)
	}

	return profile, nil
}

// Get retrieves a profile with its full activity history.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := r.db.db.QueryRowContext(ctx,
		`SELECT user_id, name, age, role, created_at FROM profiles WHERE user_id = ?`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	if err := r.loadActivities(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update applies a partial update to an existing profile.
func (r *ProfileRepo) Update(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.UserProfile, error) {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := repository.ApplyPatch(profile, patch); err != nil {
		return nil, err
	}

	_, err = r.db.db.ExecContext(ctx,
		`UPDATE profiles SET name = ?, age = ?, role = ? WHERE user_id = ?`,
		profile.Name, profile.Age, profile.Role.String(), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return profile, nil
}

// Delete removes a profile and its activities (cascade).
func (r *ProfileRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.db.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// List returns all profiles in insertion order.
func (r *ProfileRepo) List(ctx context.Context) ([]*domain.UserProfile, error) {
	return r.list(ctx, `SELECT user_id, name, age, role, created_at FROM profiles ORDER BY rowid`)
}

// ListByRole returns profiles matching the role, preserving List order.
func (r *ProfileRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.UserProfile, error) {
	return r.list(ctx,
		`SELECT user_id, name, age, role, created_at FROM profiles WHERE role = ? ORDER BY rowid`,
		role.String())
}

// AddActivity inserts an activity row and returns the updated profile.
func (r *ProfileRepo) AddActivity(ctx context.Context, userID, activityType string, durationMinutes, caloriesBurned int, notes string) (*domain.UserProfile, error) {
	if _, err := r.Get(ctx, userID); err != nil {
		return nil, err
	}

	entry := domain.NewActivityEntry(activityType, durationMinutes, caloriesBurned, notes)
	_, err := r.db.db.ExecContext(ctx,
		`INSERT INTO activities (user_id, activity_type, duration_minutes, calories_burned, timestamp, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, entry.ActivityType, entry.DurationMinutes, entry.CaloriesBurned,
		entry.Timestamp.Format(timeLayout), entry.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting activity: %w", err)
	}

	return r.Get(ctx, userID)
}

func (r *ProfileRepo) list(ctx context.Context, query string, args ...any) ([]*domain.UserProfile, error) {
	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*domain.UserProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	for _, profile := range profiles {
		if err := r.loadActivities(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *ProfileRepo) loadActivities(ctx context.Context, profile *domain.UserProfile) error {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT activity_type, duration_minutes, calories_burned, timestamp, notes
		 FROM activities WHERE user_id = ? ORDER BY id`, profile.UserID)
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.ActivityEntry
		var ts string
		if err := rows.Scan(&entry.ActivityType, &entry.DurationMinutes, &entry.CaloriesBurned, &ts, &entry.Notes); err != nil {
			return fmt.Errorf("scanning activity: %w", err)
		}
		entry.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return fmt.Errorf("parsing activity timestamp: %w", err)
		}
		profile.ActivityHistory = append(profile.ActivityHistory, entry)
	}
	return rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var (
		profile   domain.UserProfile
		role      string
		createdAt string
	)
	if err := row.Scan(&profile.UserID, &profile.Name, &profile.Age, &role, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	profile.Role = parsed

	profile.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing profile created_at: %w", err)
	}

	profile.ActivityHistory = []domain.ActivityEntry{}
	return &profile, nil
}

// Ensure ProfileRepo implements the storage contract.
var _ repository.ProfileRepository = (*ProfileRepo)(nil)
