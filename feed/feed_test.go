package feed

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
	"github.com/mediamux/mediamux/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestRecordAppendsActivity(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()

	user := utils.TestCreateUser(t, db, "recorder_user")
	content := utils.TestCreateMovie(t, db, "42", "The Answer")

	activity, err := recorder.Record(db, RecordInput{
		ActorID:      user.Id,
		ActivityType: model.ActivityTypeLibrary,
		ContentID:    &content.Id,
	})
	require.NoError(t, err)
	require.NotEmpty(t, activity.Id)

	var stored model.Activity
	require.NoError(t, db.Where("id = ?", activity.Id).First(&stored).Error)
	require.Equal(t, user.Id, stored.UserID)
	require.Equal(t, model.ActivityTypeLibrary, stored.ActivityType)
	require.Equal(t, content.Id, *stored.ContentID)
}

func TestRecordRejectsUnknownActor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()

	_, err := recorder.Record(db, RecordInput{
		ActorID:      "no-such-user",
		ActivityType: model.ActivityTypeLibrary,
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Activity{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestGetFeedCoversSelfAndFollowees(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()
	assembler := NewAssembler(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	carol := utils.TestCreateUser(t, db, "carol")
	content := utils.TestCreateMovie(t, db, "42", "The Answer")

	for _, actor := range []*model.User{alice, bob, carol} {
		_, err := recorder.Record(db, RecordInput{
			ActorID:      actor.Id,
			ActivityType: model.ActivityTypeRating,
			ContentID:    &content.Id,
		})
		require.NoError(t, err)
	}

	// Alice follows Bob but not Carol.
	require.NoError(t, db.Create(&model.Follow{
		Id:          "edge-alice-bob",
		FollowerID:  alice.Id,
		FollowingID: bob.Id,
	}).Error)

	activities, err := assembler.GetFeed(Query{ViewerID: alice.Id})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	actors := []string{activities[0].UserID, activities[1].UserID}
	require.Contains(t, actors, alice.Id)
	require.Contains(t, actors, bob.Id)
	require.NotContains(t, actors, carol.Id)

	// Content rides along preloaded.
	require.NotNil(t, activities[0].Content)
	require.Equal(t, content.Id, activities[0].Content.Id)
}

func TestGetFeedFilterMode(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()
	assembler := NewAssembler(db)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")

	for _, actor := range []*model.User{alice, bob} {
		_, err := recorder.Record(db, RecordInput{
			ActorID:      actor.Id,
			ActivityType: model.ActivityTypeLibrary,
		})
		require.NoError(t, err)
	}

	// Filter mode ignores follow relationships entirely: alice does not
	// follow bob, yet bob's log is readable.
	activities, err := assembler.GetFeed(Query{ViewerID: alice.Id, FilterUserID: &bob.Id})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, bob.Id, activities[0].UserID)
}

func TestGetFeedOrderingAndTiebreak(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()
	assembler := NewAssembler(db)

	alice := utils.TestCreateUser(t, db, "alice")

	older := time.Now().Add(-time.Hour).Truncate(time.Second)
	newer := time.Now().Truncate(time.Second)

	first, err := recorder.Record(db, RecordInput{ActorID: alice.Id, ActivityType: model.ActivityTypeLibrary})
	require.NoError(t, err)
	second, err := recorder.Record(db, RecordInput{ActorID: alice.Id, ActivityType: model.ActivityTypeLibrary})
	require.NoError(t, err)
	third, err := recorder.Record(db, RecordInput{ActorID: alice.Id, ActivityType: model.ActivityTypeLibrary})
	require.NoError(t, err)

	// Two records share a timestamp, one is strictly newer.
	utils.TestBackdateActivity(t, db, first.Id, older)
	utils.TestBackdateActivity(t, db, second.Id, older)
	utils.TestBackdateActivity(t, db, third.Id, newer)

	var previous []string
	for run := 0; run < 3; run++ {
		activities, err := assembler.GetFeed(Query{ViewerID: alice.Id})
		require.NoError(t, err)
		require.Len(t, activities, 3)

		// Strictly non-increasing creation time.
		for i := 1; i < len(activities); i++ {
			require.False(t, activities[i].CreatedAt.After(activities[i-1].CreatedAt))
		}
		require.Equal(t, third.Id, activities[0].Id)

		// The tie resolves identically on every call.
		ids := []string{activities[0].Id, activities[1].Id, activities[2].Id}
		if previous != nil {
			require.Equal(t, previous, ids)
		}
		previous = ids
	}
}

func TestGetFeedBeforeCursorAndLimit(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()
	assembler := NewAssembler(db)

	alice := utils.TestCreateUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 5; i++ {
		activity, err := recorder.Record(db, RecordInput{ActorID: alice.Id, ActivityType: model.ActivityTypeLibrary})
		require.NoError(t, err)
		utils.TestBackdateActivity(t, db, activity.Id, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, activity.Id)
	}

	page, err := assembler.GetFeed(Query{ViewerID: alice.Id, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[4], page[0].Id)
	require.Equal(t, ids[3], page[1].Id)

	cursor := page[1].CreatedAt
	rest, err := assembler.GetFeed(Query{ViewerID: alice.Id, Before: &cursor})
	require.NoError(t, err)
	require.Len(t, rest, 3)
	require.Equal(t, ids[2], rest[0].Id)
}

func TestRecordBestEffortSurvivesFailure(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	recorder := NewRecorder()

	// Invalid actor makes both the attempt and the retry fail; the caller
	// still gets control back with a nil activity instead of an error.
	activity := recorder.RecordBestEffort(db, RecordInput{
		ActorID:      "no-such-user",
		ActivityType: model.ActivityTypeLibrary,
	})
	require.Nil(t, activity)
}
