package domain

import (
	"fmt"
	"time"
)

// Role classifies a profile as a student or a gym teacher.
type Role string

const (
	// RoleStudent is a student user.
	RoleStudent Role = "student"

	// RoleGymTeacher is a gym teacher user.
	RoleGymTeacher Role = "gym_teacher"
)

// ParseRole converts raw text into a Role. The match is exact and
// case-sensitive; anything else is rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleGymTeacher:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w, got '%s'", ErrInvalidRole, s)
	}
}

// IsValid returns true if the role is one of the recognized values.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleGymTeacher
}

// String returns the text encoding used for persistence and display.
func (r Role) String() string {
	return string(r)
}

// ValidateAge checks the age is within the accepted range.
func ValidateAge(age int) error {
	if age < 0 || age > 150 {
		return ErrInvalidAge
	}
	return nil
}

// UserProfile is a user's identity plus their accumulated activity history.
// UserID and CreatedAt are immutable after construction; Name, Age and Role
// change only through the storage layer's update operation.
type UserProfile struct {
	// UserID is the unique identifier for the user within a storage instance.
	UserID string `json:"user_id"`

	// Name is the full name of the user.
	Name string `json:"name"`

	// Age of the user. Constraint: 0-150 inclusive.
	Age int `json:"age"`

	// Role of the user (student or gym_teacher).
	Role Role `json:"role"`

	// ActivityHistory holds logged activities in insertion order,
	// which is also chronological order.
	ActivityHistory []ActivityEntry `json:"activity_history"`

	// CreatedAt is when the profile was created. Restored on load.
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfile creates a profile with eager validation. Age and role are
// checked up front so no partially-invalid profile ever exists.
func NewUserProfile(userID, name string, age int, role string) (*UserProfile, error) {
	if err := ValidateAge(age); err != nil {
		return nil, err
	}

	parsed, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		UserID:          userID,
		Name:            name,
		Age:             age,
		Role:            parsed,
		ActivityHistory: []ActivityEntry{},
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// AddActivity appends a new entry to the activity history and returns it.
// There is no upper bound on history length.
func (p *UserProfile) AddActivity(activityType string, durationMinutes, caloriesBurned int, notes string) ActivityEntry {
	entry := NewActivityEntry(activityType, durationMinutes, caloriesBurned, notes)
	p.ActivityHistory = append(p.ActivityHistory, entry)
	return entry
}

// TotalActivities returns the number of logged activities.
func (p *UserProfile) TotalActivities() int {
	return len(p.ActivityHistory)
}

// TotalActivityTime returns the total minutes spent across all activities.
func (p *UserProfile) TotalActivityTime() int {
	total := 0
	for _, a := range p.ActivityHistory {
		total += a.DurationMinutes
	}
	return total
}

// TotalCaloriesBurned returns the calories burned across all activities.
func (p *UserProfile) TotalCaloriesBurned() int {
	total := 0
	for _, a := range p.ActivityHistory {
		total += a.CaloriesBurned
	}
	return total
}

// AverageCaloriesPerActivity returns the integer-truncated average calories
// per activity, or 0 when no activities have been logged.
func (p *UserProfile) AverageCaloriesPerActivity() int {
	if len(p.ActivityHistory) == 0 {
		return 0
	}
	return p.TotalCaloriesBurned() / len(p.ActivityHistory)
}
