package service

import (
	"testing"
	"time"

	"thinking_edu_backend/internal/model"
)

func testUser(xp, level, streak int, lastActive time.Time) model.User {
	u := model.User{
		Name:       "テスト",
		XP:         xp,
		Level:      level,
		StreakDays: streak,
		LastActive: lastActive,
	}
	u.ID = 1
	return u
}

func TestApplyAttemptResultIncorrect(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	user := testUser(250, 1, 3, now.AddDate(0, 0, -1))
	problem := &model.Problem{ID: "n1", Category: "数で考える力", Difficulty: 3}

	outcome := ApplyAttemptResult(user, problem, false, 45, 1, 0, "13", nil, testCatalog(), nil, now)

	// 误答只留记录，档案原样
	if outcome.Profile.XP != 250 || outcome.Profile.Level != 1 || outcome.Profile.StreakDays != 3 {
		t.Errorf("profile mutated on incorrect answer: %+v", outcome.Profile)
	}
	if !outcome.Profile.LastActive.Equal(user.LastActive) {
		t.Error("last active must not move on incorrect answer")
	}
	if outcome.XPDelta != 0 || outcome.LevelUp || len(outcome.NewBadges) != 0 {
		t.Errorf("incorrect answer outcome = %+v", outcome)
	}
	if !outcome.Attempt.SubmittedAt.Equal(now) || outcome.Attempt.IsCorrect {
		t.Errorf("attempt record = %+v", outcome.Attempt)
	}
	if outcome.Attempt.AnswerText != "13" {
		t.Errorf("answer text = %q", outcome.Attempt.AnswerText)
	}
}

func TestApplyAttemptResultCorrect(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	user := testUser(70, 0, 2, now.AddDate(0, 0, -1))
	problem := &model.Problem{ID: "n1", Category: "数で考える力", Difficulty: 3}

	outcome := ApplyAttemptResult(user, problem, true, 20, 1, 0, "12", nil, testCatalog(), nil, now)

	// 30 - 2 + (90-20)/5 = 42
	if outcome.XPDelta != 42 {
		t.Errorf("xp delta = %d, want 42", outcome.XPDelta)
	}
	if outcome.Profile.XP != 112 {
		t.Errorf("total xp = %d, want 112", outcome.Profile.XP)
	}
	if !outcome.LevelUp || outcome.Profile.Level != 1 {
		t.Errorf("level up = %v level = %d, want level 1", outcome.LevelUp, outcome.Profile.Level)
	}
	if outcome.Profile.StreakDays != 3 {
		t.Errorf("streak = %d, want 3", outcome.Profile.StreakDays)
	}
	if !outcome.Profile.LastActive.Equal(now) {
		t.Error("last active should move to now")
	}
	if !contains(outcome.NewBadges, BadgeFirstCorrect) {
		t.Errorf("first correct badge missing: %v", outcome.NewBadges)
	}
	if !contains(outcome.NewBadges, BadgeFastSolver) {
		t.Errorf("fast solver badge missing: %v", outcome.NewBadges)
	}
}

func TestApplyAttemptResultMinimumReward(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	user := testUser(0, 0, 0, time.Time{})
	problem := &model.Problem{ID: "n1", Category: "数で考える力", Difficulty: 1}

	outcome := ApplyAttemptResult(user, problem, true, 100, 5, 0, "12", nil, testCatalog(), nil, now)
	if outcome.XPDelta != 5 {
		t.Errorf("heavily hinted slow answer = %d xp, want floor 5", outcome.XPDelta)
	}
	if outcome.LevelUp {
		t.Error("5 xp should not level up from 0")
	}
}

func TestApplyAttemptResultOwnedBadgesNotRepeated(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	user := testUser(100, 1, 1, now)
	problem := &model.Problem{ID: "n1", Category: "数で考える力", Difficulty: 1}
	history := []model.ProblemAttempt{attempt("n1", true, 0, 30, 0)}
	owned := map[string]bool{BadgeFirstCorrect: true, BadgeNoHint: true, BadgeFastSolver: true}

	outcome := ApplyAttemptResult(user, problem, true, 30, 0, 0, "12", history, testCatalog(), owned, now)
	for _, id := range outcome.NewBadges {
		if owned[id] {
			t.Errorf("already owned badge %s returned again", id)
		}
	}
}
