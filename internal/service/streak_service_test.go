package service

import (
	"testing"
	"time"

	"fun2learn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouch_FirstActivityStartsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)

	status, err := svc.Touch(student.ID)
	require.NoError(t, err)
	assert.True(t, status.Updated)
	assert.Equal(t, 1, status.DailyStreak)
	assert.Equal(t, 1, status.LongestStreak)

	var entries []model.StreakEntry
	require.NoError(t, db.Where("user_id = ?", student.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Date.Equal(model.DateUTC(time.Now())))
}

func TestTouch_SameDayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)

	_, err := svc.Touch(student.ID)
	require.NoError(t, err)

	status, err := svc.Touch(student.ID)
	require.NoError(t, err)
	assert.False(t, status.Updated)
	assert.Equal(t, 1, status.DailyStreak)

	var count int64
	require.NoError(t, db.Model(&model.StreakEntry{}).
		Where("user_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTouch_YesterdayIncrements(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)
	seedInventory(t, db, student.ID, 3, 5, daysAgo(1))

	status, err := svc.Touch(student.ID)
	require.NoError(t, err)
	assert.True(t, status.Updated)
	assert.Equal(t, 4, status.DailyStreak)
	assert.Equal(t, 5, status.LongestStreak)
}

func TestTouch_GapResetsToOne(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)
	seedInventory(t, db, student.ID, 7, 7, daysAgo(3))

	status, err := svc.Touch(student.ID)
	require.NoError(t, err)
	assert.True(t, status.Updated)
	assert.Equal(t, 1, status.DailyStreak)
	// 历史最长不受中断影响
	assert.Equal(t, 7, status.LongestStreak)
}

func TestTouch_LongestTracksNewHigh(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)
	seedInventory(t, db, student.ID, 5, 5, daysAgo(1))

	status, err := svc.Touch(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, status.DailyStreak)
	assert.Equal(t, 6, status.LongestStreak)
}

func TestQueryStreak_ReportsZeroAfterGapWithoutRewriting(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)
	seedInventory(t, db, student.ID, 4, 9, daysAgo(5))

	info, err := svc.QueryStreak(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.DailyStreak)
	assert.Equal(t, 9, info.LongestStreak)
	assert.False(t, info.ActiveToday)

	// 存储值保持原样，等下一次 Touch 覆盖
	var inventory model.UserInventory
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&inventory).Error)
	assert.Equal(t, 4, inventory.DailyStreak)
}

func TestQueryStreak_YesterdayStillCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)
	seedInventory(t, db, student.ID, 2, 2, daysAgo(1))

	info, err := svc.QueryStreak(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, info.DailyStreak)
	assert.False(t, info.ActiveToday)
}

func TestQueryStreak_ActiveTodayWithCalendar(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)

	_, err := svc.Touch(student.ID)
	require.NoError(t, err)

	info, err := svc.QueryStreak(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DailyStreak)
	assert.True(t, info.ActiveToday)
	require.Len(t, info.Calendar, 1)
	assert.True(t, info.Calendar[0].Equal(model.DateUTC(time.Now())))
}

func TestQueryStreak_CreatesInventoryLazily(t *testing.T) {
	db := newTestDB(t)
	svc := newStreakService(db)
	student := createTestUser(t, db, model.Student)

	info, err := svc.QueryStreak(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.DailyStreak)
	assert.Equal(t, 0, info.LongestStreak)
	assert.False(t, info.ActiveToday)
	assert.Empty(t, info.Calendar)

	var count int64
	require.NoError(t, db.Model(&model.UserInventory{}).
		Where("user_id = ?", student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
