package service

import (
	"fmt"
	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/internal/util"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func newUserDefaults(name string) *model.User {
	now := time.Now()
	return &model.User{
		Name:          name,
		LastActive:    now,
		LastSeen:      now,
		Settings:      datatypes.NewJSONType(model.DefaultSettings()),
		LearningPaths: datatypes.NewJSONSlice([]string{model.DefaultLearningPath}),
	}
}

func (s *AuthService) Register(name, email, password string) (*model.User, string, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := newUserDefaults(name)
	user.Email = email
	user.Password = string(hashedPassword)

	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidlogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidlogin
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Guest 匿名账号。初次访问即建档，名字用ID前6位拼出。
func (s *AuthService) Guest() (*model.User, string, error) {
	id := uuid.New().String()
	user := newUserDefaults(fmt.Sprintf("ユーザー%s", id[:6]))
	user.IsGuest = true

	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
