package model

type QuestionType string

const (
	QuestionMCQ  QuestionType = "mcq"
	QuestionText QuestionType = "text"
)

// Question 课时练习题，mcq 走选项表，text 走文本答案表
// swagger:model Question
type Question struct {
	UUIDBase
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"size:100;not null" json:"questionType"`
	LessonID     string       `gorm:"type:varchar(36);not null;index" json:"lessonId"`

	MCQOptions []MCQOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"mcqOptions,omitempty"`
	TextAnswer *TextAnswer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"textAnswer,omitempty"`
}

func (Question) TableName() string {
	return "lesson_questions"
}

// swagger:model MCQOption
type MCQOption struct {
	UUIDBase
	OptionText string `gorm:"type:text" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	QuestionID string `gorm:"type:varchar(36);index" json:"questionId"`
}

func (MCQOption) TableName() string {
	return "lesson_mcq_options"
}

// swagger:model TextAnswer
type TextAnswer struct {
	UUIDBase
	CorrectAnswer string `gorm:"type:text;not null" json:"-"`
	CasingMatters bool   `gorm:"default:false" json:"casingMatters"`
	QuestionID    string `gorm:"type:varchar(36);index" json:"questionId"`
}

func (TextAnswer) TableName() string {
	return "lesson_text_answers"
}
