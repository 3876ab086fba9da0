package service

import (
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
)

type AchievementService struct {
	UserRepo  *repository.UserRepository
	BadgeRepo *repository.BadgeRepository
}

func NewAchievementService(userRepo *repository.UserRepository, badgeRepo *repository.BadgeRepository) *AchievementService {
	return &AchievementService{
		UserRepo:  userRepo,
		BadgeRepo: badgeRepo,
	}
}

// UserAchievements 成就页视图：等级、进度、徽章、排行榜
type UserAchievements struct {
	TotalXP         int                `json:"totalXp"`
	Level           LevelInfo          `json:"level"`
	NextLevel       *LevelInfo         `json:"nextLevel,omitempty"`
	Progress        float64            `json:"progress"`
	StreakDays      int                `json:"streakDays"`
	Badges          []model.UserBadge  `json:"badges"`
	RemainingBadges []BadgeInfo        `json:"remainingBadges"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	User string `json:"user"`
	XP   int    `json:"xp"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.BadgeRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(badges))
	for _, b := range badges {
		owned[b.BadgeID] = true
	}
	var remaining []BadgeInfo
	for _, b := range BadgeCatalog {
		if !owned[b.ID] {
			remaining = append(remaining, b)
		}
	}

	achievements := &UserAchievements{
		TotalXP:         user.XP,
		Level:           LevelInfoFor(user.Level),
		Progress:        LevelProgress(user.XP, user.Level),
		StreakDays:      user.StreakDays,
		Badges:          badges,
		RemainingBadges: remaining,
		Leaderboard:     leaderboard,
	}
	if next, ok := NextLevelInfo(user.Level); ok {
		achievements.NextLevel = &next
	}
	return achievements, nil
}

func (s *AchievementService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank: i + 1,
			User: user.Name,
			XP:   user.XP,
		}
	}
	return leaderboard, nil
}
