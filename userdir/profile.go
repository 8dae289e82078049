package userdir

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
)

// ProfileByUsername resolves a public profile, user preloaded.
func (d *Directory) ProfileByUsername(username string) (*model.Profile, error) {
	var user model.User
	if err := d.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown user "+username)
		}
		return nil, err
	}
	return d.ProfileByUserId(user.Id)
}

// ProfileByUserId returns the user's profile, creating an empty one for
// accounts that somehow predate profile auto-creation.
func (d *Directory) ProfileByUserId(userId string) (*model.Profile, error) {
	var profile model.Profile
	err := d.db.Preload("User").Where("user_id = ?", userId).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := d.Me(userId)
	if err != nil {
		return nil, err
	}
	profile = model.Profile{
		Id:     uuid.New().String(),
		UserID: user.Id,
		User:   *user,
	}
	if err := d.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sets the caller's avatar and bio.
func (d *Directory) UpdateProfile(userId string, avatarUrl string, bio string) (*model.Profile, error) {
	profile, err := d.ProfileByUserId(userId)
	if err != nil {
		return nil, err
	}
	if err := d.db.Model(&model.Profile{}).Where("id = ?", profile.Id).
		Updates(map[string]interface{}{
			"avatar_url": avatarUrl,
			"bio":        bio,
		}).Error; err != nil {
		return nil, err
	}
	profile.AvatarUrl = avatarUrl
	profile.Bio = bio
	return profile, nil
}

// ListProfiles returns all profiles, optionally filtered to one username.
func (d *Directory) ListProfiles(username string) ([]model.Profile, error) {
	tx := d.db.Preload("User").Joins("JOIN users ON users.id = profiles.user_id")
	if username != "" {
		tx = tx.Where("LOWER(users.username) = LOWER(?)", username)
	}
	var profiles []model.Profile
	err := tx.Order("profiles.created_at ASC").Find(&profiles).Error
	return profiles, err
}
