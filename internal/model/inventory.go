package model

import "time"

// UserInventory 每个用户一条的连胜状态，首次访问时惰性创建。
// LastStreakRecorded 只保存日历日（UTC），为 NULL 表示从未有过学习记录。
// 连胜中断时 DailyStreak 不会被主动清零，读取侧负责折算为 0。
// swagger:model UserInventory
type UserInventory struct {
	UUIDBase
	UserID             string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	DailyStreak        int        `gorm:"not null;default:0" json:"dailyStreak"`
	LongestStreak      int        `gorm:"not null;default:0" json:"longestStreak"`
	LastStreakRecorded *time.Time `gorm:"type:date" json:"lastStreakRecorded"`
}

func (UserInventory) TableName() string {
	return "user_inventories"
}

// StreakEntry 连胜日历标记，每 (user, date) 一条，只追加不修改
// swagger:model StreakEntry
type StreakEntry struct {
	UUIDBase
	UserID string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_streak_date" json:"userId"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_user_streak_date" json:"date"`
}

func (StreakEntry) TableName() string {
	return "streak_entries"
}
