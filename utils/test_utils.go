package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
)

// Fixture helpers shared by package tests. They write directly through gorm
// so tests can arrange state without going through the HTTP surface.

// TestCreateUser inserts a user (and its profile) and returns it.
func TestCreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := model.User{
		Id:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&model.Profile{
		Id:     uuid.New().String(),
		UserID: user.Id,
	}).Error)
	return &user
}

// TestCreateContent inserts a minimal catalog record and returns it.
func TestCreateContent(t *testing.T, db *gorm.DB, contentType string, source string, externalId string, title string) *model.Content {
	t.Helper()
	content := model.Content{
		Id:         uuid.New().String(),
		Type:       contentType,
		Source:     source,
		ExternalId: externalId,
		Title:      title,
	}
	require.NoError(t, db.Create(&content).Error)
	return &content
}

// TestCreateMovie is TestCreateContent with the common movie defaults.
func TestCreateMovie(t *testing.T, db *gorm.DB, externalId string, title string) *model.Content {
	t.Helper()
	return TestCreateContent(t, db, model.ContentTypeMovie, model.SourceTMDB, externalId, title)
}

// TestCreateList inserts a list owned by the given user.
func TestCreateList(t *testing.T, db *gorm.DB, userId string, name string, isPublic bool) *model.List {
	t.Helper()
	list := model.List{
		Id:       uuid.New().String(),
		UserID:   userId,
		Name:     name,
		IsPublic: isPublic,
	}
	require.NoError(t, db.Create(&list).Error)
	return &list
}

// TestBackdateActivity rewrites an activity's creation time, used to arrange
// deterministic feed ordering in tests.
func TestBackdateActivity(t *testing.T, db *gorm.DB, activityId string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&model.Activity{}).
		Where("id = ?", activityId).
		UpdateColumn("created_at", createdAt).Error)
}
