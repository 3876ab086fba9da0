package model

import (
	"time"
)

// Session 绑定一个用户在某个分类下的做题进度（浏览会话级，临时状态）
// swagger:model Session
type Session struct {
	SessionID    string    `gorm:"primaryKey;type:varchar(36)" json:"sessionId"`
	UserID       uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Category     string    `gorm:"size:64" json:"category"`
	ProblemIndex int       `gorm:"default:0" json:"problemIndex"` // 0起始，受分类题目数约束
	HintStep     int       `gorm:"default:0" json:"hintStep"`     // 0起始，受当前题目提示数约束
}

func (Session) TableName() string {
	return "sessions"
}

// ChatMessage 某（会话，题目）下的对话轮次，按题目整体替换保存
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"type:varchar(36);index:idx_chat_session_problem;not null" json:"sessionId"`
	ProblemID string    `gorm:"size:64;index:idx_chat_session_problem;not null" json:"problemId"`
	Role      string    `gorm:"size:20;not null" json:"role"` // user / assistant
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_history"
}

// ThoughtLog 某（会话，题目）下的思考笔记，换题时清空
type ThoughtLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"type:varchar(36);index:idx_thought_session_problem;not null" json:"sessionId"`
	ProblemID string    `gorm:"size:64;index:idx_thought_session_problem;not null" json:"problemId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (ThoughtLog) TableName() string {
	return "thought_logs"
}
