package service

import (
	"errors"
	"time"

	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/util"

	"gorm.io/gorm"
)

// GoalStore 每日目标的持久化接口
type GoalStore interface {
	FindByUserAndDate(userID uint, date string) ([]model.DailyGoal, error)
	FindByIDAndUserID(goalID, userID uint) (*model.DailyGoal, error)
	Create(goal *model.DailyGoal) error
	Update(goal *model.DailyGoal) error
}

// GoalAttemptSource 进度重算所需的答题记录查询
type GoalAttemptSource interface {
	CountByUserAndDate(userID uint, dayStart, dayEnd time.Time, correctOnly bool) (int64, error)
	FindSince(userID uint, since time.Time) ([]model.ProblemAttempt, error)
}

// GoalService 处理每日学习目标的业务逻辑
type GoalService struct {
	GoalRepo    GoalStore
	AttemptRepo GoalAttemptSource
}

func NewGoalService(goalRepo GoalStore, attemptRepo GoalAttemptSource) *GoalService {
	return &GoalService{
		GoalRepo:    goalRepo,
		AttemptRepo: attemptRepo,
	}
}

// CreateGoalRequest 创建每日目标的请求结构
type CreateGoalRequest struct {
	GoalType string `json:"goalType" binding:"required,oneof=attempts correct minutes"`
	Target   int    `json:"target" binding:"required,min=1,max=1000"`
}

// UpdateGoalRequest 更新每日目标的请求结构
type UpdateGoalRequest struct {
	Target int `json:"target" binding:"required,min=1,max=1000"`
}

// CreateGoal 创建当日目标，同日同类型已存在时返回已有记录
func (s *GoalService) CreateGoal(userID uint, req CreateGoalRequest, now time.Time) (*model.DailyGoal, error) {
	date := now.Format(util.DateFormat)

	existing, err := s.GoalRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].GoalType == model.GoalType(req.GoalType) {
			return &existing[i], nil
		}
	}

	goal := &model.DailyGoal{
		UserID:   userID,
		Date:     date,
		GoalType: model.GoalType(req.GoalType),
		Target:   req.Target,
	}
	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, err
	}
	if err := s.refreshGoalProgress(goal, userID, now); err != nil {
		return nil, err
	}
	return goal, nil
}

// GetTodayGoals 获取当日目标列表，返回前刷新进度
func (s *GoalService) GetTodayGoals(userID uint, now time.Time) ([]model.DailyGoal, error) {
	goals, err := s.GoalRepo.FindByUserAndDate(userID, now.Format(util.DateFormat))
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if err := s.refreshGoalProgress(&goals[i], userID, now); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

// UpdateGoal 调整目标值并重算完成状态
func (s *GoalService) UpdateGoal(userID, goalID uint, req UpdateGoalRequest, now time.Time) (*model.DailyGoal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}

	goal.Target = req.Target
	if err := s.refreshGoalProgress(goal, userID, now); err != nil {
		return nil, err
	}
	return goal, nil
}

// refreshGoalProgress 根据当日答题记录重算进度并落库。
// 读或写失败都向上返回，调用方不得把旧进度当成功结果。
func (s *GoalService) refreshGoalProgress(goal *model.DailyGoal, userID uint, now time.Time) error {
	dayStart, _ := time.ParseInLocation(util.DateFormat, goal.Date, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch goal.GoalType {
	case model.GoalTypeAttempts:
		count, err := s.AttemptRepo.CountByUserAndDate(userID, dayStart, dayEnd, false)
		if err != nil {
			return err
		}
		goal.Current = int(count)
	case model.GoalTypeCorrect:
		count, err := s.AttemptRepo.CountByUserAndDate(userID, dayStart, dayEnd, true)
		if err != nil {
			return err
		}
		goal.Current = int(count)
	case model.GoalTypeMinutes:
		attempts, err := s.AttemptRepo.FindSince(userID, dayStart)
		if err != nil {
			return err
		}
		var seconds float64
		for _, a := range attempts {
			if !a.SubmittedAt.After(dayEnd) {
				seconds += a.Duration
			}
		}
		goal.Current = int(seconds / 60)
	}

	goal.Completed = goal.Current >= goal.Target
	return s.GoalRepo.Update(goal)
}
