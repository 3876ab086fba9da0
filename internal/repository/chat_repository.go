package repository

import (
	"thinking_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) FindByProblem(sessionID, problemID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("session_id = ? AND problem_id = ?", sessionID, problemID).
		Order("timestamp ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ReplaceForProblem 整体替换该题目的对话记录（删旧插新，同一事务）
func (r *ChatRepository) ReplaceForProblem(sessionID, problemID string, messages []model.ChatMessage) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ? AND problem_id = ?", sessionID, problemID).
			Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}
		for i := range messages {
			messages[i].ID = 0
			messages[i].SessionID = sessionID
			messages[i].ProblemID = problemID
		}
		return tx.Create(&messages).Error
	})
}
