package model

// swagger:model Tag
type Tag struct {
	UUIDBase
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// CourseTag 课程与标签的关联
// swagger:model CourseTag
type CourseTag struct {
	UUIDBase
	CourseID string `gorm:"type:varchar(36);not null;uniqueIndex:uq_course_tag" json:"courseId"`
	TagID    string `gorm:"type:varchar(36);not null;uniqueIndex:uq_course_tag" json:"tagId"`

	Tag Tag `gorm:"foreignKey:TagID" json:"tag"`
}

func (CourseTag) TableName() string {
	return "course_tags"
}
