package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

func newTestRepo(t *testing.T) *ProfileRepo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "octofit.db")
	db, err := NewDB(context.Background(), DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProfileRepo(db)
}

func TestProfileRepo_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, "alice", "Alice Smith", 16, "student")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "Alice Again", 17, "student")
	require.ErrorIs(t, err, domain.ErrProfileAlreadyExists)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
	require.Equal(t, created.Age, got.Age)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, repo.Delete(ctx, "alice"))
	_, err = repo.Get(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "alice"), domain.ErrProfileNotFound)
}

func TestProfileRepo_ActivitiesPreserveAppendOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, "alice", "Alice Smith", 16, "student")
	require.NoError(t, err)

	_, err = repo.AddActivity(ctx, "alice", "running", 30, 300, "morning run")
	require.NoError(t, err)
	updated, err := repo.AddActivity(ctx, "alice", "cycling", 45, 350, "")
	require.NoError(t, err)

	require.Equal(t, 2, updated.TotalActivities())
	require.Equal(t, "running", updated.ActivityHistory[0].ActivityType)
	require.Equal(t, "cycling", updated.ActivityHistory[1].ActivityType)
	require.Equal(t, 75, updated.TotalActivityTime())
	require.Equal(t, 650, updated.TotalCaloriesBurned())
	require.False(t, updated.ActivityHistory[0].Timestamp.IsZero())

	_, err = repo.AddActivity(ctx, "ghost", "running", 30, 300, "")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepo_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Create(ctx, "alice", "Alice", 16, "student")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "coach", "Coach Carter", 40, "gym_teacher")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "bob", "Bob", 15, "student")
	require.NoError(t, err)

	age := 17
	updated, err := repo.Update(ctx, "alice", repository.ProfilePatch{Age: &age})
	require.NoError(t, err)
	require.Equal(t, 17, updated.Age)
	require.Equal(t, "Alice", updated.Name)

	badRole := "principal"
	_, err = repo.Update(ctx, "alice", repository.ProfilePatch{Role: &badRole})
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alice", all[0].UserID)
	require.Equal(t, "coach", all[1].UserID)
	require.Equal(t, "bob", all[2].UserID)

	students, err := repo.ListByRole(ctx, domain.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "alice", students[0].UserID)
	require.Equal(t, "bob", students[1].UserID)
}

func TestProfileRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "octofit.db")

	db, err := NewDB(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	repo := NewProfileRepo(db)

	_, err = repo.Create(ctx, "alice", "Alice Smith", 16, "student")
	require.NoError(t, err)
	_, err = repo.AddActivity(ctx, "alice", "running", 30, 300, "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db2, err := NewDB(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	defer db2.Close()

	got, err := NewProfileRepo(db2).Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", got.Name)
	require.Equal(t, 1, got.TotalActivities())
}
