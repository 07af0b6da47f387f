package api

import (
	"time"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/service"
)

// Serialized views returned in Response.Data. Timestamps are rendered as
// RFC 3339 text, matching the persisted encoding.

// ActivityView is the serialized form of one activity entry.
type ActivityView struct {
	ActivityType    string `json:"activity_type"`
	DurationMinutes int    `json:"duration_minutes"`
	CaloriesBurned  int    `json:"calories_burned"`
	Timestamp       string `json:"timestamp"`
	Notes           string `json:"notes"`
}

// StatsView is the derived statistics block of a profile view.
type StatsView struct {
	TotalActivities          int `json:"total_activities"`
	TotalActivityTimeMinutes int `json:"total_activity_time_minutes"`
	TotalCaloriesBurned      int `json:"total_calories_burned"`
}

// ProfileView is the full serialized profile, including activity history.
type ProfileView struct {
	UserID          string         `json:"user_id"`
	Name            string         `json:"name"`
	Age             int            `json:"age"`
	Role            string         `json:"role"`
	CreatedAt       string         `json:"created_at"`
	ActivityHistory []ActivityView `json:"activity_history"`
	Stats           StatsView      `json:"stats"`
}

// ProfileListItem is the reduced per-profile view used by list operations;
// the full activity history is omitted for efficiency.
type ProfileListItem struct {
	UserID              string `json:"user_id"`
	Name                string `json:"name"`
	Age                 int    `json:"age"`
	Role                string `json:"role"`
	TotalActivities     int    `json:"total_activities"`
	TotalCaloriesBurned int    `json:"total_calories_burned"`
}

// StatisticsView is the serialized per-user statistics payload.
type StatisticsView struct {
	UserID                     string `json:"user_id"`
	Name                       string `json:"name"`
	Role                       string `json:"role"`
	TotalActivities            int    `json:"total_activities"`
	TotalActivityTimeMinutes   int    `json:"total_activity_time_minutes"`
	TotalCaloriesBurned        int    `json:"total_calories_burned"`
	AverageCaloriesPerActivity int    `json:"average_calories_per_activity"`
}

func activityView(a domain.ActivityEntry) ActivityView {
	return ActivityView{
		ActivityType:    a.ActivityType,
		DurationMinutes: a.DurationMinutes,
		CaloriesBurned:  a.CaloriesBurned,
		Timestamp:       a.Timestamp.Format(time.RFC3339Nano),
		Notes:           a.Notes,
	}
}

func profileView(p *domain.UserProfile) ProfileView {
	history := make([]ActivityView, 0, len(p.ActivityHistory))
	for _, a := range p.ActivityHistory {
		history = append(history, activityView(a))
	}

	return ProfileView{
		UserID:          p.UserID,
		Name:            p.Name,
		Age:             p.Age,
		Role:            p.Role.String(),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339Nano),
		ActivityHistory: history,
		Stats: StatsView{
			TotalActivities:          p.TotalActivities(),
			TotalActivityTimeMinutes: p.TotalActivityTime(),
			TotalCaloriesBurned:      p.TotalCaloriesBurned(),
		},
	}
}

func profileListView(profiles []*domain.UserProfile) []ProfileListItem {
	items := make([]ProfileListItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, ProfileListItem{
			UserID:              p.UserID,
			Name:                p.Name,
			Age:                 p.Age,
			Role:                p.Role.String(),
			TotalActivities:     p.TotalActivities(),
			TotalCaloriesBurned: p.TotalCaloriesBurned(),
		})
	}
	return items
}

func statisticsView(s *service.Statistics) StatisticsView {
	return StatisticsView{
		UserID:                     s.UserID,
		Name:                       s.Name,
		Role:                       s.Role.String(),
		TotalActivities:            s.TotalActivities,
		TotalActivityTimeMinutes:   s.TotalActivityTimeMinutes,
		TotalCaloriesBurned:        s.TotalCaloriesBurned,
		AverageCaloriesPerActivity: s.AverageCaloriesPerActivity,
	}
}
