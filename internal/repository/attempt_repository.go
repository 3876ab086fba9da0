package repository

import (
	"thinking_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.ProblemAttempt) error {
	return r.DB.Create(attempt).Error
}

// FindByUserID 按提交时间升序返回全部答题记录
func (r *AttemptRepository) FindByUserID(userID uint) ([]model.ProblemAttempt, error) {
	var attempts []model.ProblemAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at ASC").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *AttemptRepository) FindSince(userID uint, since time.Time) ([]model.ProblemAttempt, error) {
	var attempts []model.ProblemAttempt
	err := r.DB.Where("user_id = ? AND submitted_at >= ?", userID, since).
		Order("submitted_at ASC").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *AttemptRepository) CountByUserAndDate(userID uint, dayStart, dayEnd time.Time, correctOnly bool) (int64, error) {
	var count int64
	q := r.DB.Model(&model.ProblemAttempt{}).
		Where("user_id = ? AND submitted_at BETWEEN ? AND ?", userID, dayStart, dayEnd)
	if correctOnly {
		q = q.Where("is_correct = ?", true)
	}
	err := q.Count(&count).Error
	return count, err
}
