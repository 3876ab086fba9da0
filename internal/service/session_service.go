package service

import (
	"context"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
	ChatRepo    *repository.ChatRepository
	ThoughtRepo *repository.ThoughtLogRepository
	Problems    *ProblemService
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	chatRepo *repository.ChatRepository,
	thoughtRepo *repository.ThoughtLogRepository,
	problems *ProblemService,
) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		ChatRepo:    chatRepo,
		ThoughtRepo: thoughtRepo,
		Problems:    problems,
	}
}

// GetOrInit 取回会话；不存在或归属不符时返回一份最小默认状态，
// 不视为错误（会话丢失只需重新开始）。
func (s *SessionService) GetOrInit(sessionID string, userID uint) (*model.Session, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err == gorm.ErrRecordNotFound || (err == nil && session.UserID != userID) {
		return &model.Session{
			SessionID: sessionID,
			UserID:    userID,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// UpsertRequest 会话进度的上报
type UpsertRequest struct {
	Category     string `json:"category"`
	ProblemIndex int    `json:"problemIndex"`
	HintStep     int    `json:"hintStep"`
}

// Upsert 保存会话进度。题目下标按分类题目数截断，
// 提示步数按上限截断，越界输入不报错只收敛。
func (s *SessionService) Upsert(ctx context.Context, sessionID string, userID uint, req UpsertRequest) (*model.Session, error) {
	problemIndex := req.ProblemIndex
	if problemIndex < 0 {
		problemIndex = 0
	}
	if req.Category != "" {
		problems, err := s.Problems.ByCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		if len(problems) > 0 && problemIndex >= len(problems) {
			problemIndex = len(problems) - 1
		}
	}

	hintStep := req.HintStep
	if hintStep < 0 {
		hintStep = 0
	}
	if hintStep > util.MaxHints {
		hintStep = util.MaxHints
	}

	session := &model.Session{
		SessionID:    sessionID,
		UserID:       userID,
		Category:     req.Category,
		ProblemIndex: problemIndex,
		HintStep:     hintStep,
	}
	if err := s.SessionRepo.Upsert(session); err != nil {
		return nil, err
	}
	return session, nil
}

// ReplaceThoughtLogs 整体替换某题的思考笔记
func (s *SessionService) ReplaceThoughtLogs(sessionID, problemID string, entries []string) error {
	now := time.Now()
	logs := make([]model.ThoughtLog, 0, len(entries))
	for i, entry := range entries {
		logs = append(logs, model.ThoughtLog{
			Content: entry,
			// 保留条目顺序
			Timestamp: now.Add(time.Duration(i-len(entries)) * time.Second),
		})
	}
	return s.ThoughtRepo.ReplaceForProblem(sessionID, problemID, logs)
}

func (s *SessionService) GetThoughtLogs(sessionID, problemID string) ([]model.ThoughtLog, error) {
	return s.ThoughtRepo.FindByProblem(sessionID, problemID)
}

// ChatTurn 对话轮次的传输模型
type ChatTurn struct {
	Role      string    `json:"role" binding:"required,oneof=user assistant"`
	Text      string    `json:"text" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// ReplaceChatHistory 整体替换某题的对话记录
func (s *SessionService) ReplaceChatHistory(sessionID, problemID string, turns []ChatTurn) error {
	now := time.Now()
	messages := make([]model.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		ts := turn.Timestamp
		if ts.IsZero() {
			ts = now
		}
		messages = append(messages, model.ChatMessage{
			Role:      turn.Role,
			Content:   turn.Text,
			Timestamp: ts,
		})
	}
	return s.ChatRepo.ReplaceForProblem(sessionID, problemID, messages)
}

func (s *SessionService) GetChatHistory(sessionID, problemID string) ([]model.ChatMessage, error) {
	return s.ChatRepo.FindByProblem(sessionID, problemID)
}

// RevealHint 推进一步提示并返回提示文本。超出上限时报错。
func (s *SessionService) RevealHint(ctx context.Context, sessionID string, userID uint, problem *model.Problem, ai *AIService) (string, int, error) {
	session, err := s.GetOrInit(sessionID, userID)
	if err != nil {
		return "", 0, err
	}

	if session.HintStep >= util.MaxHints {
		return "", session.HintStep, util.ErrHintLimitReached
	}

	hint := ai.Hint(ctx, problem, session.HintStep)
	nextStep := session.HintStep + 1

	session.HintStep = nextStep
	if err := s.SessionRepo.Upsert(session); err != nil {
		return "", 0, err
	}
	return hint, nextStep, nil
}
