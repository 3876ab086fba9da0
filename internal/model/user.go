package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserSettings 用户偏好设置，整体以JSON列存储
type UserSettings struct {
	Notifications bool   `json:"notifications"`
	Sound         bool   `json:"sound"`
	Theme         string `json:"theme"`
}

func DefaultSettings() UserSettings {
	return UserSettings{Notifications: true, Sound: true, Theme: "light"}
}

// DefaultLearningPath 新用户默认加入的学习路径
const DefaultLearningPath = "基礎思考力"

// swagger:model User
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;index" json:"email"`
	Password string `gorm:"size:100" json:"-"`
	Avatar   string `gorm:"size:255" json:"avatar"`
	IsGuest  bool   `gorm:"default:false" json:"isGuest"`
	// XP只增不减，Level始终由XP经等级表重新推导
	XP            int                              `gorm:"default:0" json:"xp"`
	Level         int                              `gorm:"default:0" json:"level"`
	StreakDays    int                              `gorm:"default:0" json:"streakDays"`
	LastActive    time.Time                        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastActive"`
	LastSeen      time.Time                        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
	Settings      datatypes.JSONType[UserSettings] `json:"settings"`
	LearningPaths datatypes.JSONSlice[string]      `json:"learningPaths"`
}

func (User) TableName() string {
	return "users"
}

// UserBadge 已获得的徽章，只追加，绝不回收
type UserBadge struct {
	BaseModel
	UserID   uint      `gorm:"index:idx_user_badge,unique;type:bigint unsigned;not null" json:"userId"`
	BadgeID  string    `gorm:"index:idx_user_badge,unique;size:50;not null" json:"badgeId"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Icon     string    `gorm:"size:50" json:"icon"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
