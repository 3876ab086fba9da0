package repository

import (
	"thinking_edu_backend/internal/model"

	"gorm.io/gorm"
)

type DailyGoalRepository struct {
	DB *gorm.DB
}

func NewDailyGoalRepository(db *gorm.DB) *DailyGoalRepository {
	return &DailyGoalRepository{DB: db}
}

func (r *DailyGoalRepository) FindByUserAndDate(userID uint, date string) ([]model.DailyGoal, error) {
	var goals []model.DailyGoal
	err := r.DB.Where("user_id = ? AND date = ?", userID, date).Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *DailyGoalRepository) FindByIDAndUserID(goalID, userID uint) (*model.DailyGoal, error) {
	var goal model.DailyGoal
	err := r.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *DailyGoalRepository) Create(goal *model.DailyGoal) error {
	return r.DB.Create(goal).Error
}

func (r *DailyGoalRepository) Update(goal *model.DailyGoal) error {
	return r.DB.Save(goal).Error
}
