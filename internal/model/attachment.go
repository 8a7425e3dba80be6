package model

// LessonAttachment 课时附件，文件本体存放在对象存储
// swagger:model LessonAttachment
type LessonAttachment struct {
	UUIDBase
	FileName  string `gorm:"size:255;not null" json:"fileName"`
	ObjectKey string `gorm:"size:255;not null" json:"-"`
	URL       string `gorm:"size:512;not null" json:"url"`
	LessonID  string `gorm:"type:varchar(36);not null;index" json:"lessonId"`
}

func (LessonAttachment) TableName() string {
	return "lesson_attachments"
}
