package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/domain"
	"github.com/octofit/octofit-tracker/internal/repository"
)

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, err := repo.Create(ctx, "alice", "Alice Smith", 16, "student")
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, created.Role)

	_, err = repo.Create(ctx, "alice", "Alice Again", 17, "student")
	require.ErrorIs(t, err, domain.ErrProfileAlreadyExists)

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", got.Name)

	role := "gym_teacher"
	updated, err := repo.Update(ctx, "alice", repository.ProfilePatch{Role: &role})
	require.NoError(t, err)
	require.Equal(t, domain.RoleGymTeacher, updated.Role)
	require.Equal(t, "Alice Smith", updated.Name) // untouched

	_, err = repo.AddActivity(ctx, "alice", "running", 30, 300, "")
	require.NoError(t, err)
	got, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalActivities())

	require.NoError(t, repo.Delete(ctx, "alice"))
	_, err = repo.Get(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepository_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, id, "User "+id, 20, "student")
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.UserID)
	}
	require.Equal(t, []string{"c", "a", "b"}, ids)
}
