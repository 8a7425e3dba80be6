package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment 学生与课程的报名关系，每个 (user, course) 至多一条。
// 状态只会由 active 迁移为 completed，发生在课程最后一个课时完成时。
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID     string           `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_course_enrollment" json:"userId"`
	CourseID   string           `gorm:"type:varchar(36);not null;uniqueIndex:uq_user_course_enrollment" json:"courseId"`
	Status     EnrollmentStatus `gorm:"size:40;not null;default:'active'" json:"status"`
	EnrolledAt time.Time        `gorm:"not null" json:"enrolledAt"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
