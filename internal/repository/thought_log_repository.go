package repository

import (
	"thinking_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ThoughtLogRepository struct {
	DB *gorm.DB
}

func NewThoughtLogRepository(db *gorm.DB) *ThoughtLogRepository {
	return &ThoughtLogRepository{DB: db}
}

func (r *ThoughtLogRepository) FindByProblem(sessionID, problemID string) ([]model.ThoughtLog, error) {
	var logs []model.ThoughtLog
	err := r.DB.Where("session_id = ? AND problem_id = ?", sessionID, problemID).
		Order("timestamp ASC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ReplaceForProblem 整体替换该题目的思考笔记
func (r *ThoughtLogRepository) ReplaceForProblem(sessionID, problemID string, logs []model.ThoughtLog) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ? AND problem_id = ?", sessionID, problemID).
			Delete(&model.ThoughtLog{}).Error; err != nil {
			return err
		}
		if len(logs) == 0 {
			return nil
		}
		for i := range logs {
			logs[i].ID = 0
			logs[i].SessionID = sessionID
			logs[i].ProblemID = problemID
		}
		return tx.Create(&logs).Error
	})
}

// TotalLength 该题目全部思考笔记的字符总数（以符文计）
func (r *ThoughtLogRepository) TotalLength(sessionID, problemID string) (int, error) {
	logs, err := r.FindByProblem(sessionID, problemID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range logs {
		total += len([]rune(l.Content))
	}
	return total, nil
}
