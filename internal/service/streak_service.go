package service

import (
	"time"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"

	"gorm.io/gorm"
)

// StreakService 维护用户的每日学习连胜。日期判定统一使用 UTC 日历日。
type StreakService struct {
	StreakRepo *repository.StreakRepository
	DB         *gorm.DB
}

func NewStreakService(streakRepo *repository.StreakRepository, db *gorm.DB) *StreakService {
	return &StreakService{
		StreakRepo: streakRepo,
		DB:         db,
	}
}

// StreakStatus Touch 的结果
type StreakStatus struct {
	Updated       bool `json:"updated"`
	DailyStreak   int  `json:"dailyStreak"`
	LongestStreak int  `json:"longestStreak"`
}

// StreakInfo 连胜查询结果
type StreakInfo struct {
	DailyStreak   int         `json:"dailyStreak"`
	LongestStreak int         `json:"longestStreak"`
	ActiveToday   bool        `json:"activeToday"`
	Calendar      []time.Time `json:"calendar"`
}

// TouchStreak 在调用方事务内记录当天的学习活动：
//   - 今天已记录过：不变，Updated=false
//   - 昨天记录过：连胜 +1
//   - 其余情况（中断 ≥2 天或从未记录）：连胜重置为 1
//
// 同时写入当天的日历标记。连胜状态行持锁更新，同一用户的并发完成
// 不会把同一天数成两次。
func TouchStreak(tx *gorm.DB, userID string) (*StreakStatus, error) {
	inventory, err := repository.GetOrCreateInventoryForUpdate(tx, userID)
	if err != nil {
		return nil, err
	}

	today := model.DateUTC(time.Now())

	if inventory.LastStreakRecorded != nil && inventory.LastStreakRecorded.Equal(today) {
		return &StreakStatus{
			Updated:       false,
			DailyStreak:   inventory.DailyStreak,
			LongestStreak: inventory.LongestStreak,
		}, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	if inventory.LastStreakRecorded != nil && inventory.LastStreakRecorded.Equal(yesterday) {
		inventory.DailyStreak++
	} else {
		inventory.DailyStreak = 1
	}

	inventory.LastStreakRecorded = &today
	if inventory.DailyStreak > inventory.LongestStreak {
		inventory.LongestStreak = inventory.DailyStreak
	}

	if err := tx.Save(inventory).Error; err != nil {
		return nil, err
	}

	if err := repository.RecordEntry(tx, userID, today); err != nil {
		return nil, err
	}

	return &StreakStatus{
		Updated:       true,
		DailyStreak:   inventory.DailyStreak,
		LongestStreak: inventory.LongestStreak,
	}, nil
}

// Touch 独立事务版本，供课时完成之外的活动源使用
func (s *StreakService) Touch(userID string) (*StreakStatus, error) {
	var status *StreakStatus
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		status, txErr = TouchStreak(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// QueryStreak 只读查询。最近记录既不是今天也不是昨天时连胜视为中断，
// 对外报 0，但存储值保持原样，等下一次 Touch 覆盖。
func (s *StreakService) QueryStreak(userID string) (*StreakInfo, error) {
	var inventory *model.UserInventory
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		inventory, txErr = repository.GetOrCreateInventoryForUpdate(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	today := model.DateUTC(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	activeToday := inventory.LastStreakRecorded != nil && inventory.LastStreakRecorded.Equal(today)

	dailyStreak := inventory.DailyStreak
	if inventory.LastStreakRecorded != nil &&
		!inventory.LastStreakRecorded.Equal(today) &&
		!inventory.LastStreakRecorded.Equal(yesterday) {
		dailyStreak = 0
	}

	entries, err := s.StreakRepo.EntriesSince(userID, today.AddDate(0, 0, -29))
	if err != nil {
		return nil, err
	}
	calendar := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		calendar = append(calendar, entry.Date)
	}

	return &StreakInfo{
		DailyStreak:   dailyStreak,
		LongestStreak: inventory.LongestStreak,
		ActiveToday:   activeToday,
		Calendar:      calendar,
	}, nil
}
