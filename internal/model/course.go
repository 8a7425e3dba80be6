package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

// Course 导师创作的课程，发布后学生方可报名
// swagger:model Course
type Course struct {
	UUIDBase
	Name        string       `gorm:"size:255;not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      CourseStatus `gorm:"size:40;not null;default:'draft';index" json:"status"`
	TutorID     string       `gorm:"type:varchar(36);not null;index" json:"tutorId"`

	Tutor       User         `gorm:"foreignKey:TutorID" json:"-"`
	Units       []Unit       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
	Badge       *Badge       `gorm:"foreignKey:CourseID" json:"badge,omitempty"`
	CourseTags  []CourseTag  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// Unit 课程单元，UnitIndex 决定同一课程内的先后顺序
// swagger:model Unit
type Unit struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	UnitIndex   int    `gorm:"not null;uniqueIndex:uq_course_unit_index" json:"unitIndex"`
	CourseID    string `gorm:"type:varchar(36);not null;index;uniqueIndex:uq_course_unit_index" json:"courseId"`

	Chapters []Chapter `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}

// Chapter 单元章节
// swagger:model Chapter
type Chapter struct {
	UUIDBase
	Name         string `gorm:"size:255;not null" json:"name"`
	ChapterIndex int    `gorm:"not null;uniqueIndex:uq_unit_chapter_index" json:"chapterIndex"`
	UnitID       string `gorm:"type:varchar(36);not null;index;uniqueIndex:uq_unit_chapter_index" json:"unitId"`

	Lessons []Lesson `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Chapter) TableName() string {
	return "chapters"
}

// Lesson 章节课时，学生实际完成的最小单位
// swagger:model Lesson
type Lesson struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	LessonIndex int    `gorm:"not null;uniqueIndex:uq_chapter_lesson_index" json:"lessonIndex"`
	ChapterID   string `gorm:"type:varchar(36);not null;index;uniqueIndex:uq_chapter_lesson_index" json:"chapterId"`

	Questions   []Question         `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Attachments []LessonAttachment `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
