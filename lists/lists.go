// Package lists manages user-owned, ordered collections of content.
package lists

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/feed"
	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

type Manager struct {
	db       *gorm.DB
	recorder *feed.Recorder
}

func NewManager(db *gorm.DB, recorder *feed.Recorder) *Manager {
	return &Manager{db: db, recorder: recorder}
}

// CreateList creates a list owned by the user. Creating a list emits no
// activity; only adding items does.
func (m *Manager) CreateList(userId string, name string, description string, isPublic bool) (*model.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(model.ErrValidation, "list name must not be empty")
	}
	list := model.List{
		Id:          uuid.New().String(),
		UserID:      userId,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
	}
	if err := m.db.Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList changes name/description/visibility of the caller's own list.
func (m *Manager) UpdateList(userId string, listId string, name string, description string, isPublic bool) (*model.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(model.ErrValidation, "list name must not be empty")
	}
	list, err := m.ownedList(userId, listId)
	if err != nil {
		return nil, err
	}
	list.Name = name
	list.Description = description
	list.IsPublic = isPublic
	if err := m.db.Model(&model.List{}).Where("id = ?", listId).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"is_public":   isPublic,
		}).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes the caller's own list. Its items cascade away, feed
// activities that referenced the list survive with the link nulled.
func (m *Manager) DeleteList(userId string, listId string) error {
	if _, err := m.ownedList(userId, listId); err != nil {
		return err
	}
	return m.db.Delete(&model.List{}, "id = ?", listId).Error
}

// AddItem places a content in the caller's list and emits a list_add
// activity in the same transaction. A content appears at most once per
// list: a duplicate is a conflict, nothing is persisted. When no order key
// is supplied the item is appended at the end (max existing order + 1, or 0
// for an empty list).
func (m *Manager) AddItem(userId string, listId string, contentId string, order *int) (*model.ListItem, error) {
	if _, err := m.ownedList(userId, listId); err != nil {
		return nil, err
	}
	var count int64
	if err := m.db.Model(&model.Content{}).Where("id = ?", contentId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(model.ErrNotFound, "unknown content "+contentId)
	}

	item := model.ListItem{
		Id:        uuid.New().String(),
		ListID:    listId,
		ContentID: contentId,
	}
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if order != nil {
			item.Order = *order
		} else {
			var next *int
			if err := tx.Model(&model.ListItem{}).
				Select("MAX(item_order) + 1").
				Where("list_id = ?", listId).
				Scan(&next).Error; err != nil {
				return err
			}
			if next != nil {
				item.Order = *next
			}
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		_, err := m.recorder.Record(tx, feed.RecordInput{
			ActorID:      userId,
			ActivityType: model.ActivityTypeListAdd,
			ContentID:    &contentId,
			ListID:       &listId,
		})
		return err
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, errors.Wrap(model.ErrConflict, "content already in list")
		}
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item from the caller's own list.
func (m *Manager) RemoveItem(userId string, itemId string) error {
	item, err := m.ownedItem(userId, itemId)
	if err != nil {
		return err
	}
	return m.db.Delete(&model.ListItem{}, "id = ?", item.Id).Error
}

// ReorderItem assigns a new order key to an item in the caller's own list.
// Order keys are not required to be unique, display order falls back to
// added_at for equal keys.
func (m *Manager) ReorderItem(userId string, itemId string, order int) (*model.ListItem, error) {
	item, err := m.ownedItem(userId, itemId)
	if err != nil {
		return nil, err
	}
	if err := m.db.Model(&model.ListItem{}).Where("id = ?", item.Id).
		Update("item_order", order).Error; err != nil {
		return nil, err
	}
	item.Order = order
	return item, nil
}

// VisibleLists returns the lists of ownerId that viewerId may see: all of
// them when viewer is the owner, public ones otherwise.
func (m *Manager) VisibleLists(viewerId string, ownerId string) ([]model.List, error) {
	tx := m.db.Where("user_id = ?", ownerId)
	if viewerId != ownerId {
		tx = tx.Where("is_public = ?", true)
	}
	var lists []model.List
	err := tx.Order("created_at DESC").Find(&lists).Error
	return lists, err
}

// GetList returns one list with its items in (order, added_at) order,
// content preloaded. Private lists are only visible to their owner.
func (m *Manager) GetList(viewerId string, listId string) (*model.List, error) {
	var list model.List
	err := m.db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("item_order ASC, added_at ASC")
		}).
		Preload("Items.Content").
		Where("id = ?", listId).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown list "+listId)
		}
		return nil, err
	}
	if !list.IsPublic && list.UserID != viewerId {
		// Keep private lists indistinguishable from missing ones.
		return nil, errors.Wrap(model.ErrNotFound, "unknown list "+listId)
	}
	return &list, nil
}

func (m *Manager) ownedList(userId string, listId string) (*model.List, error) {
	var list model.List
	if err := m.db.Where("id = ?", listId).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown list "+listId)
		}
		return nil, err
	}
	if list.UserID != userId {
		return nil, errors.Wrap(model.ErrUnauthorized, "cannot modify another user's list")
	}
	return &list, nil
}

func (m *Manager) ownedItem(userId string, itemId string) (*model.ListItem, error) {
	var item model.ListItem
	if err := m.db.Where("id = ?", itemId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown list item "+itemId)
		}
		return nil, err
	}
	if _, err := m.ownedList(userId, item.ListID); err != nil {
		return nil, err
	}
	return &item, nil
}
