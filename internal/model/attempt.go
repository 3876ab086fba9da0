package model

import (
	"time"
)

// ProblemAttempt 一次答题记录。只追加的日志，写入后不再修改或删除。
// swagger:model ProblemAttempt
type ProblemAttempt struct {
	AttemptID     string    `gorm:"primaryKey;type:varchar(36)" json:"attemptId"`
	UserID        uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ProblemID     string    `gorm:"size:64;index;not null" json:"problemId"`
	Category      string    `gorm:"size:64;index" json:"category"`
	SubmittedAt   time.Time `gorm:"index;not null" json:"submittedAt"`
	Duration      float64   `gorm:"not null" json:"duration"` // 解答耗时（秒）
	IsCorrect     bool      `gorm:"not null" json:"isCorrect"`
	HintsUsed     int       `gorm:"default:0" json:"hintsUsed"`
	ThoughtLength int       `gorm:"default:0" json:"thoughtLength"` // 思考笔记总字数
	AnswerText    string    `gorm:"type:text" json:"answerText"`
}

func (ProblemAttempt) TableName() string {
	return "problem_attempts"
}
