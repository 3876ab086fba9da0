package repository

import (
	"thinking_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByID(sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.DB.Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Upsert 会话存在则更新进度，不存在则创建
func (r *SessionRepository) Upsert(session *model.Session) error {
	var existing model.Session
	err := r.DB.Where("session_id = ?", session.SessionID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		session.CreatedAt = time.Now()
		session.UpdatedAt = session.CreatedAt
		return r.DB.Create(session).Error
	}
	if err != nil {
		return err
	}

	return r.DB.Model(&existing).Updates(map[string]interface{}{
		"updated_at":    time.Now(),
		"category":      session.Category,
		"problem_index": session.ProblemIndex,
		"hint_step":     session.HintStep,
	}).Error
}
