package social

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
	"github.com/mediamux/mediamux/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestFollowCreatesDirectedEdge(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")

	follow, err := graph.Follow(alice.Id, bob.Id)
	require.NoError(t, err)
	require.Equal(t, alice.Id, follow.FollowerID)
	require.Equal(t, bob.Id, follow.FollowingID)

	// The edge is directed: bob does not follow alice back.
	following, _, err := graph.IsFollowing(alice.Id, bob.Id)
	require.NoError(t, err)
	require.True(t, following)
	reverse, _, err := graph.IsFollowing(bob.Id, alice.Id)
	require.NoError(t, err)
	require.False(t, reverse)
}

func TestFollowRejectsSelfAndUnknown(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")

	_, err := graph.Follow(alice.Id, alice.Id)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = graph.Follow(alice.Id, "no-such-user")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestFollowDuplicateIsConflict(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")

	_, err := graph.Follow(alice.Id, bob.Id)
	require.NoError(t, err)
	_, err = graph.Follow(alice.Id, bob.Id)
	require.ErrorIs(t, err, model.ErrConflict)

	var count int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUnfollowOwnershipGate(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	carol := utils.TestCreateUser(t, db, "carol")

	follow, err := graph.Follow(alice.Id, bob.Id)
	require.NoError(t, err)

	require.ErrorIs(t, graph.Unfollow(carol.Id, follow.Id), model.ErrUnauthorized)
	require.NoError(t, graph.Unfollow(alice.Id, follow.Id))
	require.ErrorIs(t, graph.Unfollow(alice.Id, follow.Id), model.ErrNotFound)
}

func TestUnfollowUserRemovesEdge(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")

	_, err := graph.Follow(alice.Id, bob.Id)
	require.NoError(t, err)

	require.NoError(t, graph.UnfollowUser(alice.Id, bob.Id))
	require.ErrorIs(t, graph.UnfollowUser(alice.Id, bob.Id), model.ErrNotFound)
}

func TestListingsAndCounts(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	graph := NewGraph(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	carol := utils.TestCreateUser(t, db, "carol")

	_, err := graph.Follow(alice.Id, bob.Id)
	require.NoError(t, err)
	_, err = graph.Follow(alice.Id, carol.Id)
	require.NoError(t, err)
	_, err = graph.Follow(bob.Id, carol.Id)
	require.NoError(t, err)

	following, err := graph.ListFollowing(alice.Id)
	require.NoError(t, err)
	require.Len(t, following, 2)
	// Target users come preloaded for display.
	require.NotEmpty(t, following[0].Following.Username)

	followers, err := graph.ListFollowers(carol.Id)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	require.NotEmpty(t, followers[0].Follower.Username)

	count, err := graph.FollowerCount(carol.Id)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = graph.FollowingCount(alice.Id)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = graph.FollowerCount(alice.Id)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
