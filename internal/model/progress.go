package model

// CourseProgress 学生在某课程中的游标，每个 (user, course) 一条。
// 三个 Current 字段同生同灭：要么都指向总顺序中的某个课时，要么都为
// NULL。NULL 表示“当前课时未确定”——课程尚无课时，或原课时已被导师删除，
// 等待下一次进度查询时惰性修复。
// swagger:model CourseProgress
type CourseProgress struct {
	UUIDBase
	UserID           string  `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_course_progress" json:"userId"`
	CourseID         string  `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_course_progress" json:"courseId"`
	CurrentUnitID    *string `gorm:"type:varchar(36)" json:"currentUnitId"`
	CurrentChapterID *string `gorm:"type:varchar(36)" json:"currentChapterId"`
	CurrentLessonID  *string `gorm:"type:varchar(36)" json:"currentLessonId"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
