package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewUserProfile(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		role    string
		wantErr error
	}{
		{name: "valid student", age: 16, role: "student"},
		{name: "valid gym teacher", age: 45, role: "gym_teacher"},
		{name: "age lower bound", age: 0, role: "student"},
		{name: "age upper bound", age: 150, role: "student"},
		{name: "age below range", age: -1, role: "student", wantErr: ErrInvalidAge},
		{name: "age above range", age: 151, role: "student", wantErr: ErrInvalidAge},
		{name: "unknown role", age: 20, role: "coach", wantErr: ErrInvalidRole},
		{name: "role is case sensitive", age: 20, role: "Student", wantErr: ErrInvalidRole},
		{name: "empty role", age: 20, role: "", wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewUserProfile("u1", "Test User", tt.age, tt.role)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.TotalActivities() != 0 {
				t.Errorf("new profile should have 0 activities, got %d", profile.TotalActivities())
			}
			if profile.CreatedAt.IsZero() {
				t.Error("expected created_at to be set")
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("student"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseRole("gym_teacher"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseRole("GYM_TEACHER"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserProfile_Statistics(t *testing.T) {
	profile, err := NewUserProfile("u1", "Test User", 16, "student")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile.AddActivity("running", 30, 300, "")
	profile.AddActivity("cycling", 45, 350, "hill route")

	if got := profile.TotalActivities(); got != 2 {
		t.Errorf("expected 2 activities, got %d", got)
	}
	if got := profile.TotalActivityTime(); got != 75 {
		t.Errorf("expected total time 75, got %d", got)
	}
	if got := profile.TotalCaloriesBurned(); got != 650 {
		t.Errorf("expected total calories 650, got %d", got)
	}
	if got := profile.AverageCaloriesPerActivity(); got != 325 {
		t.Errorf("expected average calories 325, got %d", got)
	}
}

func TestUserProfile_AverageWithNoActivities(t *testing.T) {
	profile, err := NewUserProfile("u1", "Test User", 16, "student")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := profile.AverageCaloriesPerActivity(); got != 0 {
		t.Errorf("expected average 0 with no activities, got %d", got)
	}
}

func TestUserProfile_AverageTruncates(t *testing.T) {
	profile, _ := NewUserProfile("u1", "Test User", 16, "student")
	profile.AddActivity("running", 30, 100, "")
	profile.AddActivity("walking", 20, 101, "")

	// 201 / 2 truncates to 100
	if got := profile.AverageCaloriesPerActivity(); got != 100 {
		t.Errorf("expected truncated average 100, got %d", got)
	}
}

func TestProfileRecord_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		profile, err := NewUserProfile("u1", "Test User", 16, "student")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < n; i++ {
			profile.AddActivity("running", 30+i, 300+i, "lap")
		}

		data, err := json.Marshal(profile.Record())
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var rec ProfileRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		restored, err := ProfileFromRecord(rec)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		if restored.UserID != profile.UserID || restored.Name != profile.Name ||
			restored.Age != profile.Age || restored.Role != profile.Role {
			t.Errorf("restored fields differ: %+v vs %+v", restored, profile)
		}
		if !restored.CreatedAt.Equal(profile.CreatedAt) {
			t.Errorf("created_at not preserved: %v vs %v", restored.CreatedAt, profile.CreatedAt)
		}
		if len(restored.ActivityHistory) != n {
			t.Fatalf("expected %d activities, got %d", n, len(restored.ActivityHistory))
		}
		for i, a := range restored.ActivityHistory {
			orig := profile.ActivityHistory[i]
			if !a.Timestamp.Equal(orig.Timestamp) {
				t.Errorf("activity %d timestamp not preserved: %v vs %v", i, a.Timestamp, orig.Timestamp)
			}
			if a.ActivityType != orig.ActivityType || a.DurationMinutes != orig.DurationMinutes ||
				a.CaloriesBurned != orig.CaloriesBurned || a.Notes != orig.Notes {
				t.Errorf("activity %d differs: %+v vs %+v", i, a, orig)
			}
		}
	}
}

func TestProfileFromRecord_InvalidFields(t *testing.T) {
	rec := ProfileRecord{UserID: "u1", Name: "Test", Age: 200, Role: "student"}
	if _, err := ProfileFromRecord(rec); !errors.Is(err, ErrInvalidAge) {
		t.Errorf("expected ErrInvalidAge, got %v", err)
	}

	rec = ProfileRecord{UserID: "u1", Name: "Test", Age: 20, Role: "teacher"}
	if _, err := ProfileFromRecord(rec); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestProfileFromRecord_MissingTimestamps(t *testing.T) {
	rec := ProfileRecord{
		UserID: "u1",
		Name:   "Test",
		Age:    20,
		Role:   "student",
		ActivityHistory: []ActivityEntry{
			{ActivityType: "running", DurationMinutes: 30, CaloriesBurned: 300},
		},
	}

	profile, err := ProfileFromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.CreatedAt.IsZero() {
		t.Error("expected created_at fallback to now")
	}
	if profile.ActivityHistory[0].Timestamp.IsZero() {
		t.Error("expected activity timestamp fallback to now")
	}
	if profile.ActivityHistory[0].Notes != "" {
		t.Errorf("expected empty notes default, got %q", profile.ActivityHistory[0].Notes)
	}
}

func TestProfileRecord_IgnoresPersistedStats(t *testing.T) {
	rec := ProfileRecord{
		UserID: "u1",
		Name:   "Test",
		Age:    20,
		Role:   "student",
		ActivityHistory: []ActivityEntry{
			{ActivityType: "running", DurationMinutes: 30, CaloriesBurned: 300, Timestamp: time.Now()},
		},
		// Stale stats block; derived values must be recomputed from history.
		Stats: StatsRecord{TotalActivities: 99, TotalActivityTimeMinutes: 99, TotalCaloriesBurned: 99},
	}

	profile, err := ProfileFromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := profile.TotalActivities(); got != 1 {
		t.Errorf("expected recomputed total 1, got %d", got)
	}
	if got := profile.TotalCaloriesBurned(); got != 300 {
		t.Errorf("expected recomputed calories 300, got %d", got)
	}
}
