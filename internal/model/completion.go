package model

// LessonCompletion 课时完成事实表，只追加。(user, lesson) 唯一，
// 重复提交完成由唯一索引兜底，业务层先查后插保持幂等。
// swagger:model LessonCompletion
type LessonCompletion struct {
	UUIDBase
	UserID   string `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_lesson_completion" json:"userId"`
	LessonID string `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_lesson_completion" json:"lessonId"`
	CourseID string `gorm:"type:varchar(36);not null;index" json:"courseId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
