package model

type BadgeType string

const (
	BadgeIcon  BadgeType = "icon"
	BadgeImage BadgeType = "image"
)

// Badge 课程完成徽章，icon 类型使用前端内置图标，image 类型使用上传的图片
// swagger:model Badge
type Badge struct {
	UUIDBase
	Name      string    `gorm:"size:255;not null" json:"name"`
	BadgeType BadgeType `gorm:"size:40;not null" json:"badgeType"`
	IconName  string    `gorm:"size:100" json:"iconName"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	CourseID  string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"courseId"`
}

func (Badge) TableName() string {
	return "badges"
}
