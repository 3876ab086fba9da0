package service

import (
	"testing"
	"time"

	"thinking_edu_backend/internal/model"
)

func statsAttempt(daysAgo int, correct bool, duration float64, hints, thoughtLen int, now time.Time) model.ProblemAttempt {
	return model.ProblemAttempt{
		ProblemID:     "p1",
		Category:      "数で考える力",
		SubmittedAt:   now.AddDate(0, 0, -daysAgo),
		IsCorrect:     correct,
		Duration:      duration,
		HintsUsed:     hints,
		ThoughtLength: thoughtLen,
	}
}

func TestBuildUserStatsEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	stats := BuildUserStats(nil, now)

	if stats.Overall.TotalAttempts != 0 || stats.Overall.SuccessRate != 0 {
		t.Errorf("empty history overall = %+v", stats.Overall)
	}
	if len(stats.Daily) != 30 {
		t.Fatalf("daily series length = %d, want 30", len(stats.Daily))
	}
	for _, d := range stats.Daily {
		if d.Attempts != 0 || d.Correct != 0 {
			t.Errorf("empty history should yield zero day %+v", d)
		}
	}
}

func TestBuildUserStatsOverall(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	attempts := []model.ProblemAttempt{
		statsAttempt(2, true, 30, 1, 100, now),
		statsAttempt(1, true, 50, 0, 200, now),
		statsAttempt(0, false, 90, 2, 0, now),
		statsAttempt(0, false, 10, 0, 60, now),
	}

	stats := BuildUserStats(attempts, now)
	o := stats.Overall
	if o.TotalAttempts != 4 || o.CorrectAnswers != 2 {
		t.Errorf("counts = %d/%d, want 4/2", o.TotalAttempts, o.CorrectAnswers)
	}
	if o.SuccessRate != 50 {
		t.Errorf("success rate = %v, want 50", o.SuccessRate)
	}
	// 平均耗时只算正解
	if o.AvgCorrectTime != 40 {
		t.Errorf("avg correct time = %v, want 40", o.AvgCorrectTime)
	}
	if o.TotalHints != 3 {
		t.Errorf("total hints = %d, want 3", o.TotalHints)
	}
	if o.AvgThoughtLength != 90 {
		t.Errorf("avg thought length = %v, want 90", o.AvgThoughtLength)
	}
}

func TestBuildUserStatsDailyGapFill(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	attempts := []model.ProblemAttempt{
		statsAttempt(5, true, 30, 0, 0, now),
		statsAttempt(5, false, 30, 0, 0, now),
		statsAttempt(0, true, 30, 0, 0, now),
		// 窗口外的记录不进序列
		statsAttempt(45, true, 30, 0, 0, now),
	}

	daily := BuildUserStats(attempts, now).Daily
	if len(daily) != 30 {
		t.Fatalf("daily series length = %d, want 30", len(daily))
	}
	if daily[0].Date != "2026-07-30" || daily[29].Date != "2026-08-28" {
		t.Errorf("window = [%s, %s]", daily[0].Date, daily[29].Date)
	}

	byDate := make(map[string]DailyActivity)
	for _, d := range daily {
		byDate[d.Date] = d
	}
	if d := byDate["2026-08-23"]; d.Attempts != 2 || d.Correct != 1 {
		t.Errorf("5 days ago = %+v, want 2 attempts 1 correct", d)
	}
	if d := byDate["2026-08-28"]; d.Attempts != 1 || d.Correct != 1 {
		t.Errorf("today = %+v, want 1 attempt 1 correct", d)
	}
	if d := byDate["2026-08-20"]; d.Attempts != 0 {
		t.Errorf("inactive day should be zero, got %+v", d)
	}
}

func TestBuildUserStatsRecent(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var attempts []model.ProblemAttempt
	for i := 14; i >= 0; i-- {
		attempts = append(attempts, statsAttempt(i, true, 30, 0, 0, now))
	}

	recent := BuildUserStats(attempts, now).Recent
	if len(recent) != 10 {
		t.Fatalf("recent length = %d, want 10", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].SubmittedAt.After(recent[i-1].SubmittedAt) {
			t.Fatalf("recent not descending at index %d", i)
		}
	}
	if !recent[0].SubmittedAt.Equal(now) {
		t.Errorf("newest first, got %v", recent[0].SubmittedAt)
	}
}

func TestBuildUserStatsCategories(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	attempts := []model.ProblemAttempt{
		{ProblemID: "n1", Category: "数で考える力", SubmittedAt: now, IsCorrect: true},
		{ProblemID: "n1", Category: "数で考える力", SubmittedAt: now, IsCorrect: false},
		{ProblemID: "l1", Category: "論理的思考力", SubmittedAt: now, IsCorrect: true},
	}

	categories := BuildUserStats(attempts, now).Categories
	if len(categories) != 2 {
		t.Fatalf("categories length = %d, want 2", len(categories))
	}
	for _, c := range categories {
		switch c.Category {
		case "数で考える力":
			if c.Attempts != 2 || c.Correct != 1 || c.SuccessRate != 50 {
				t.Errorf("数で考える力 = %+v", c)
			}
		case "論理的思考力":
			if c.Attempts != 1 || c.Correct != 1 || c.SuccessRate != 100 {
				t.Errorf("論理的思考力 = %+v", c)
			}
		default:
			t.Errorf("unexpected category %q", c.Category)
		}
	}
}
