package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrInvalidlogin      = errors.New("邮箱或密码错误")
	ErrProblemNotFound   = errors.New("problem not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrEmptyLearningPath = errors.New("learning paths must not be empty")
	ErrHintLimitReached  = errors.New("hint limit reached")
)
