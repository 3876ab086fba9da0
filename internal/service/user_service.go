package service

import (
	"errors"

	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfileRequest 档案编辑请求。零值字段不更新。
type UpdateProfileRequest struct {
	Name          string              `json:"name"`
	Settings      *model.UserSettings `json:"settings"`
	LearningPaths []string            `json:"learningPaths"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Settings != nil {
		user.Settings = datatypes.NewJSONType(*req.Settings)
	}
	if req.LearningPaths != nil {
		// 学习路径不允许清空
		if len(req.LearningPaths) == 0 {
			return nil, util.ErrEmptyLearningPath
		}
		user.LearningPaths = datatypes.NewJSONSlice(req.LearningPaths)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(userID uint, url string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
