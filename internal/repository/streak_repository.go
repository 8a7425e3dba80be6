package repository

import (
	"errors"
	"time"

	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// GetOrCreateInventoryForUpdate 事务内带行锁读取用户连胜状态，不存在则创建。
// user_id 上的唯一索引保证并发首次创建时只有一个写入者成功，失败方重读。
func GetOrCreateInventoryForUpdate(tx *gorm.DB, userID string) (*model.UserInventory, error) {
	var inventory model.UserInventory
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).
		First(&inventory).Error
	if err == nil {
		return &inventory, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inventory = model.UserInventory{UserID: userID}
	if err := tx.Create(&inventory).Error; err != nil {
		// 并发创建撞唯一索引，改为锁定已有行
		var existing model.UserInventory
		findErr := lockForUpdate(tx).
			Where("user_id = ?", userID).
			First(&existing).Error
		if findErr != nil {
			return nil, err
		}
		return &existing, nil
	}
	return &inventory, nil
}

// RecordEntry 写入当天的日历标记，(user, date) 已存在时静默跳过
func RecordEntry(tx *gorm.DB, userID string, date time.Time) error {
	entry := model.StreakEntry{UserID: userID, Date: date}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// EntriesSince 返回某日期（含）之后的日历标记，用于渲染活动日历
func (r *StreakRepository) EntriesSince(userID string, since time.Time) ([]model.StreakEntry, error) {
	var entries []model.StreakEntry
	err := r.DB.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date").
		Find(&entries).Error
	return entries, err
}
