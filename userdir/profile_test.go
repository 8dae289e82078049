package userdir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
)

func TestProfileByUsernameIsCaseInsensitive(t *testing.T) {
	dir, _ := newTestDirectory(t)

	user, err := dir.Register("Alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	profile, err := dir.ProfileByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, user.Id, profile.UserID)
	require.Equal(t, "Alice", profile.User.Username)

	_, err = dir.ProfileByUsername("nobody")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestProfileByUserIdBackfillsMissingProfile(t *testing.T) {
	dir, db := newTestDirectory(t)

	user, err := dir.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.NoError(t, db.Delete(&model.Profile{}, "user_id = ?", user.Id).Error)

	profile, err := dir.ProfileByUserId(user.Id)
	require.NoError(t, err)
	require.Equal(t, user.Id, profile.UserID)

	// The backfilled row persists.
	var count int64
	require.NoError(t, db.Model(&model.Profile{}).Where("user_id = ?", user.Id).Count(&count).Error)
	require.Equal(t, int64(1), count)

	_, err = dir.ProfileByUserId("no-such-user")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	dir, _ := newTestDirectory(t)

	user, err := dir.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	updated, err := dir.UpdateProfile(user.Id, "https://cdn.example.com/a.png", "movie person")
	require.NoError(t, err)
	require.Equal(t, "movie person", updated.Bio)

	reread, err := dir.ProfileByUserId(user.Id)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a.png", reread.AvatarUrl)
	require.Equal(t, "movie person", reread.Bio)
}

func TestListProfiles(t *testing.T) {
	dir, _ := newTestDirectory(t)

	_, err := dir.Register("alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	_, err = dir.Register("bob", "bob@example.com", "correct horse")
	require.NoError(t, err)

	all, err := dir.ListProfiles("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotEmpty(t, all[0].User.Username)

	one, err := dir.ListProfiles("BOB")
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "bob", one[0].User.Username)
}
