package domain

import "time"

// ActivityEntry is a single exercise event logged against a profile.
// Entries have no identity of their own; they belong to exactly one
// UserProfile and are kept in append order.
type ActivityEntry struct {
	// ActivityType describes the exercise (e.g., "running", "strength_training").
	ActivityType string `json:"activity_type"`

	// DurationMinutes is the length of the activity in minutes.
	DurationMinutes int `json:"duration_minutes"`

	// CaloriesBurned is the estimated calories burned during the activity.
	CaloriesBurned int `json:"calories_burned"`

	// Timestamp records when the activity was logged. It is set at creation
	// and only restored (never regenerated) when decoding persisted data.
	Timestamp time.Time `json:"timestamp"`

	// Notes holds optional free-form text about the activity.
	Notes string `json:"notes"`
}

// NewActivityEntry creates an activity entry timestamped now.
// Range checks on duration/calories are the caller's responsibility;
// the operation layer guards the boundary.
func NewActivityEntry(activityType string, durationMinutes, caloriesBurned int, notes string) ActivityEntry {
	return ActivityEntry{
		ActivityType:    activityType,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  caloriesBurned,
		Timestamp:       time.Now().UTC(),
		Notes:           notes,
	}
}
