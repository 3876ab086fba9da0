package service

import (
	"sort"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/internal/util"
	"time"
)

// 统计窗口
const (
	dailyWindowDays = 30
	recentLimit     = 10
)

type OverallStats struct {
	TotalAttempts    int     `json:"totalAttempts"`
	CorrectAnswers   int     `json:"correctAnswers"`
	SuccessRate      float64 `json:"successRate"`    // 百分比
	AvgCorrectTime   float64 `json:"avgCorrectTime"` // 仅正解的平均耗时（秒）
	TotalHints       int     `json:"totalHints"`
	AvgThoughtLength float64 `json:"avgThoughtLength"`
}

type CategoryStats struct {
	Category    string  `json:"category"`
	Attempts    int     `json:"attempts"`
	Correct     int     `json:"correct"`
	SuccessRate float64 `json:"successRate"`
}

type DailyActivity struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// UserStats 统计仪表盘的视图模型
type UserStats struct {
	Overall    OverallStats           `json:"overall"`
	Categories []CategoryStats        `json:"categories"`
	Recent     []model.ProblemAttempt `json:"recent"`
	Daily      []DailyActivity        `json:"daily"`
}

type StatsService struct {
	AttemptRepo *repository.AttemptRepository
}

func NewStatsService(attemptRepo *repository.AttemptRepository) *StatsService {
	return &StatsService{AttemptRepo: attemptRepo}
}

func (s *StatsService) GetUserStats(userID uint, now time.Time) (*UserStats, error) {
	attempts, err := s.AttemptRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return BuildUserStats(attempts, now), nil
}

// BuildUserStats 把答题历史归约成仪表盘视图。纯函数，时刻由调用方传入。
func BuildUserStats(attempts []model.ProblemAttempt, now time.Time) *UserStats {
	return &UserStats{
		Overall:    buildOverall(attempts),
		Categories: buildCategories(attempts),
		Recent:     buildRecent(attempts),
		Daily:      buildDaily(attempts, now),
	}
}

func buildOverall(attempts []model.ProblemAttempt) OverallStats {
	stats := OverallStats{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats
	}

	var correctDuration float64
	var thoughtTotal int
	for _, a := range attempts {
		if a.IsCorrect {
			stats.CorrectAnswers++
			correctDuration += a.Duration
		}
		stats.TotalHints += a.HintsUsed
		thoughtTotal += a.ThoughtLength
	}

	stats.SuccessRate = float64(stats.CorrectAnswers) / float64(stats.TotalAttempts) * 100
	if stats.CorrectAnswers > 0 {
		stats.AvgCorrectTime = correctDuration / float64(stats.CorrectAnswers)
	}
	stats.AvgThoughtLength = float64(thoughtTotal) / float64(stats.TotalAttempts)
	return stats
}

func buildCategories(attempts []model.ProblemAttempt) []CategoryStats {
	byCategory := make(map[string]*CategoryStats)
	for _, a := range attempts {
		cs, ok := byCategory[a.Category]
		if !ok {
			cs = &CategoryStats{Category: a.Category}
			byCategory[a.Category] = cs
		}
		cs.Attempts++
		if a.IsCorrect {
			cs.Correct++
		}
	}

	categories := make([]CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		if cs.Attempts > 0 {
			cs.SuccessRate = float64(cs.Correct) / float64(cs.Attempts) * 100
		}
		categories = append(categories, *cs)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	return categories
}

// buildRecent 最新10条，按提交时间降序
func buildRecent(attempts []model.ProblemAttempt) []model.ProblemAttempt {
	recent := append([]model.ProblemAttempt{}, attempts...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmittedAt.After(recent[j].SubmittedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

// buildDaily 按本地日历日汇总最近30天，没有活动的日期补零，
// 保证下游图表拿到连续的30条序列。
func buildDaily(attempts []model.ProblemAttempt, now time.Time) []DailyActivity {
	type bucket struct {
		attempts int
		correct  int
	}
	byDay := make(map[string]*bucket)
	for _, a := range attempts {
		day := a.SubmittedAt.In(now.Location()).Format(util.DateFormat)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.attempts++
		if a.IsCorrect {
			b.correct++
		}
	}

	daily := make([]DailyActivity, 0, dailyWindowDays)
	for offset := dailyWindowDays - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset).Format(util.DateFormat)
		entry := DailyActivity{Date: day}
		if b, ok := byDay[day]; ok {
			entry.Attempts = b.attempts
			entry.Correct = b.correct
		}
		daily = append(daily, entry)
	}
	return daily
}
