package service

import (
	"context"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/pkg/logger"
	"thinking_edu_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptService struct {
	AttemptRepo    *repository.AttemptRepository
	UserRepo       *repository.UserRepository
	BadgeRepo      *repository.BadgeRepository
	SessionRepo    *repository.SessionRepository
	ThoughtRepo    *repository.ThoughtLogRepository
	ProblemService *ProblemService
	AIService      *AIService
	DB             *gorm.DB
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	badgeRepo *repository.BadgeRepository,
	sessionRepo *repository.SessionRepository,
	thoughtRepo *repository.ThoughtLogRepository,
	problemService *ProblemService,
	aiService *AIService,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:    attemptRepo,
		UserRepo:       userRepo,
		BadgeRepo:      badgeRepo,
		SessionRepo:    sessionRepo,
		ThoughtRepo:    thoughtRepo,
		ProblemService: problemService,
		AIService:      aiService,
		DB:             db,
	}
}

// AttemptOutcome 一次提交对档案的全部影响。
// 判定、XP、等级、连续天数、徽章在这里一次算完再落库，
// 避免XP存了徽章丢了这类部分更新。
type AttemptOutcome struct {
	Attempt   model.ProblemAttempt
	Profile   model.User // 更新后的副本
	XPDelta   int
	LevelUp   bool
	NewBadges []string
}

// ApplyAttemptResult 纯函数：由（档案，题目，判定结果，计时，历史）推导
// 新档案副本、XP增量和新徽章。不读时钟，不触存储。
// history 为本次提交之前的全部记录，按时间升序。
func ApplyAttemptResult(
	user model.User,
	problem *model.Problem,
	correct bool,
	durationSeconds float64,
	hintsUsed int,
	thoughtLength int,
	answerText string,
	history []model.ProblemAttempt,
	catalog []model.Problem,
	owned map[string]bool,
	now time.Time,
) AttemptOutcome {
	attempt := model.ProblemAttempt{
		AttemptID:     model.GenerateUUID(),
		UserID:        user.ID,
		ProblemID:     problem.ID,
		Category:      problem.Category,
		SubmittedAt:   now,
		Duration:      durationSeconds,
		IsCorrect:     correct,
		HintsUsed:     hintsUsed,
		ThoughtLength: thoughtLength,
		AnswerText:    answerText,
	}

	outcome := AttemptOutcome{Attempt: attempt, Profile: user}

	// 误答只留记录，档案不变
	if !correct {
		return outcome
	}

	xp := CalculateXPReward(problem.Difficulty, durationSeconds, hintsUsed)
	outcome.XPDelta = xp
	outcome.Profile.XP = user.XP + xp

	newLevel := LevelForXP(outcome.Profile.XP)
	outcome.LevelUp = newLevel > user.Level
	outcome.Profile.Level = newLevel

	outcome.Profile.StreakDays = NextStreakDays(user.StreakDays, user.LastActive, now)
	outcome.Profile.LastActive = now

	updated := append(append([]model.ProblemAttempt{}, history...), attempt)
	outcome.NewBadges = EvaluateBadges(owned, updated, catalog)

	return outcome
}

// SubmitAnswerRequest 提交答案的请求体
type SubmitAnswerRequest struct {
	Answer          string  `json:"answer" binding:"required"`
	DurationSeconds float64 `json:"durationSeconds"`
	SessionID       string  `json:"sessionId"`
}

// SubmitAnswerResult 提交答案的响应
type SubmitAnswerResult struct {
	Correct     bool        `json:"correct"`
	XPAwarded   int         `json:"xpAwarded"`
	TotalXP     int         `json:"totalXp"`
	Level       int         `json:"level"`
	LevelUp     bool        `json:"levelUp"`
	Progress    float64     `json:"progress"`
	StreakDays  int         `json:"streakDays"`
	NewBadges   []BadgeInfo `json:"newBadges"`
	Explanation string      `json:"explanation,omitempty"`
	Feedback    string      `json:"feedback"`
	FollowUp    string      `json:"followUp,omitempty"`
}

// SubmitAnswer 判定答案并提交进度。判定和落库先完成，
// 生成式反馈在这之后，它失败时退回固定文案。
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID uint, problemID string, req SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	problem, err := s.ProblemService.ByID(ctx, problemID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.ProblemService.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// 提示使用数与思考笔记长度从会话状态取，没有会话就按零计
	hintsUsed := 0
	thoughtLength := 0
	if req.SessionID != "" {
		if session, err := s.SessionRepo.FindByID(req.SessionID); err == nil {
			hintsUsed = session.HintStep
		}
		if length, err := s.ThoughtRepo.TotalLength(req.SessionID, problemID); err == nil {
			thoughtLength = length
		}
	}

	duration := req.DurationSeconds
	if duration < 0 {
		duration = 0
	}

	history, err := s.AttemptRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	owned, err := s.BadgeRepo.BadgeIDsByUser(userID)
	if err != nil {
		return nil, err
	}

	correct := MatchAnswer(problem, req.Answer)
	now := time.Now()

	outcome := ApplyAttemptResult(*user, problem, correct, duration, hintsUsed, thoughtLength,
		req.Answer, history, catalog, owned, now)

	// 记录、档案、徽章在同一事务内提交
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&outcome.Attempt).Error; err != nil {
			return err
		}
		if correct {
			if err := tx.Save(&outcome.Profile).Error; err != nil {
				return err
			}
			for _, badgeID := range outcome.NewBadges {
				info, _ := BadgeInfoByID(badgeID)
				badge := model.UserBadge{
					UserID:   userID,
					BadgeID:  badgeID,
					Name:     info.Name,
					Icon:     info.Icon,
					EarnedAt: now,
				}
				// (user_id, badge_id) 唯一，并发重复提交时静默跳过
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Error("attempt persistence failed",
			zap.Uint("userId", userID),
			zap.String("problemId", problemID),
			zap.Error(err),
		)
		return nil, err
	}

	monitoring.RecordAttempt(problem.Category, correct)
	for _, badgeID := range outcome.NewBadges {
		monitoring.RecordBadge(badgeID)
	}

	result := &SubmitAnswerResult{
		Correct:    correct,
		XPAwarded:  outcome.XPDelta,
		TotalXP:    outcome.Profile.XP,
		Level:      outcome.Profile.Level,
		LevelUp:    outcome.LevelUp,
		Progress:   LevelProgress(outcome.Profile.XP, outcome.Profile.Level),
		StreakDays: outcome.Profile.StreakDays,
		NewBadges:  badgeInfos(outcome.NewBadges),
	}

	if correct {
		result.Explanation = problem.Explanation
		// 一次提交最多调用一次生成后端（フィードバック）。
		// フォローアップ只取题目自带的，按需生成走独立接口。
		result.Feedback = s.AIService.ProblemFeedback(ctx, problem, req.Answer)
		result.FollowUp = s.AIService.AuthoredFollowUp(problem)
	} else {
		result.Feedback = "惜しいですね。もう一度考えてみましょう。"
	}

	return result, nil
}

func badgeInfos(ids []string) []BadgeInfo {
	infos := make([]BadgeInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := BadgeInfoByID(id); ok {
			infos = append(infos, info)
		}
	}
	return infos
}
