package domain

import "time"

// Persisted record types. The durable storage backend serializes the whole
// collection as a JSON object keyed by user_id whose values are ProfileRecord.
// Decoding restores the original timestamps; the stats block is informational
// only and is always recomputed from the activity history on load.

// StatsRecord is the derived statistics block written alongside a profile.
type StatsRecord struct {
	TotalActivities          int `json:"total_activities"`
	TotalActivityTimeMinutes int `json:"total_activity_time_minutes"`
	TotalCaloriesBurned      int `json:"total_calories_burned"`
}

// ProfileRecord is the canonical structured encoding of a UserProfile.
type ProfileRecord struct {
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Role            string          `json:"role"`
	CreatedAt       time.Time       `json:"created_at"`
	ActivityHistory []ActivityEntry `json:"activity_history"`
	Stats           StatsRecord     `json:"stats"`
}

// Record converts the profile to its persisted encoding.
func (p *UserProfile) Record() ProfileRecord {
	history := make([]ActivityEntry, len(p.ActivityHistory))
	copy(history, p.ActivityHistory)

	return ProfileRecord{
		UserID:          p.UserID,
		Name:            p.Name,
		Age:             p.Age,
		Role:            p.Role.String(),
		CreatedAt:       p.CreatedAt,
		ActivityHistory: history,
		Stats: StatsRecord{
			TotalActivities:          p.TotalActivities(),
			TotalActivityTimeMinutes: p.TotalActivityTime(),
			TotalCaloriesBurned:      p.TotalCaloriesBurned(),
		},
	}
}

// ProfileFromRecord reconstructs a profile from its persisted encoding,
// applying the same validation as construction. Original timestamps are
// preserved; missing ones fall back to now. rec.Stats is ignored since
// derived data is never a second source of truth.
func ProfileFromRecord(rec ProfileRecord) (*UserProfile, error) {
	profile, err := NewUserProfile(rec.UserID, rec.Name, rec.Age, rec.Role)
	if err != nil {
		return nil, err
	}

	if !rec.CreatedAt.IsZero() {
		profile.CreatedAt = rec.CreatedAt
	}

	for _, a := range rec.ActivityHistory {
		if a.Timestamp.IsZero() {
			a.Timestamp = time.Now().UTC()
		}
		profile.ActivityHistory = append(profile.ActivityHistory, a)
	}

	return profile, nil
}
