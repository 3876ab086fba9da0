package service

import (
	"testing"
	"time"

	"thinking_edu_backend/internal/model"
)

func testCatalog() []model.Problem {
	return []model.Problem{
		{ID: "n1", Category: "数で考える力", Difficulty: 1},
		{ID: "n2", Category: "数で考える力", Difficulty: 2},
		{ID: "l1", Category: "論理的思考力", Difficulty: 3},
	}
}

func attempt(problemID string, correct bool, hints int, duration float64, thoughtLen int) model.ProblemAttempt {
	category := "数で考える力"
	if problemID == "l1" {
		category = "論理的思考力"
	}
	return model.ProblemAttempt{
		ProblemID:     problemID,
		Category:      category,
		SubmittedAt:   time.Now(),
		IsCorrect:     correct,
		HintsUsed:     hints,
		Duration:      duration,
		ThoughtLength: thoughtLen,
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestEvaluateBadgesFirstCorrect(t *testing.T) {
	catalog := testCatalog()

	earned := EvaluateBadges(nil, []model.ProblemAttempt{attempt("n1", true, 1, 120, 0)}, catalog)
	if !contains(earned, BadgeFirstCorrect) {
		t.Errorf("first correct answer should earn %s, got %v", BadgeFirstCorrect, earned)
	}

	earned = EvaluateBadges(nil, []model.ProblemAttempt{attempt("n1", false, 1, 120, 0)}, catalog)
	if contains(earned, BadgeFirstCorrect) {
		t.Error("incorrect answer must not earn first_correct")
	}
}

func TestEvaluateBadgesStreaks(t *testing.T) {
	catalog := testCatalog()

	var attempts []model.ProblemAttempt
	for i := 0; i < 3; i++ {
		attempts = append(attempts, attempt("n1", true, 1, 120, 0))
	}
	earned := EvaluateBadges(nil, attempts, catalog)
	if !contains(earned, BadgeStreak3) {
		t.Errorf("3 consecutive correct should earn streak_3, got %v", earned)
	}
	if contains(earned, BadgeStreak5) {
		t.Error("streak_5 needs 5 attempts")
	}

	// 中间插入误答后，尾部未满3连不授予
	attempts = append(attempts, attempt("n1", false, 0, 120, 0), attempt("n1", true, 0, 120, 0))
	earned = EvaluateBadges(nil, attempts, catalog)
	if contains(earned, BadgeStreak3) {
		t.Error("streak broken by wrong answer should not earn streak_3")
	}
}

func TestEvaluateBadgesQualityBadges(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		attempt model.ProblemAttempt
		badge   string
		want    bool
	}{
		{"no hint", attempt("n1", true, 0, 120, 0), BadgeNoHint, true},
		{"with hint", attempt("n1", true, 1, 120, 0), BadgeNoHint, false},
		{"fast solve", attempt("n1", true, 1, 45, 0), BadgeFastSolver, true},
		{"fast boundary", attempt("n1", true, 1, 60, 0), BadgeFastSolver, true},
		{"slow solve", attempt("n1", true, 1, 61, 0), BadgeFastSolver, false},
		{"deep thought", attempt("n1", true, 1, 120, 300), BadgeDeepThinker, true},
		{"shallow thought", attempt("n1", true, 1, 120, 299), BadgeDeepThinker, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earned := EvaluateBadges(nil, []model.ProblemAttempt{tt.attempt}, catalog)
			if got := contains(earned, tt.badge); got != tt.want {
				t.Errorf("badge %s = %v, want %v (earned %v)", tt.badge, got, tt.want, earned)
			}
		})
	}
}

func TestEvaluateBadgesCategoryCompletion(t *testing.T) {
	catalog := testCatalog()

	attempts := []model.ProblemAttempt{
		attempt("n1", true, 0, 120, 0),
		attempt("n2", true, 0, 120, 0),
	}
	earned := EvaluateBadges(nil, attempts, catalog)
	if !contains(earned, BadgeCompleteCategory) {
		t.Errorf("solving every problem in a category should earn complete_category, got %v", earned)
	}
	if contains(earned, BadgeAllCategories) {
		t.Error("all_categories needs every category complete")
	}

	attempts = append(attempts, attempt("l1", true, 0, 120, 0))
	earned = EvaluateBadges(nil, attempts, catalog)
	if !contains(earned, BadgeAllCategories) {
		t.Errorf("completing every category should earn all_categories, got %v", earned)
	}
}

func TestEvaluateBadgesIdempotent(t *testing.T) {
	catalog := testCatalog()
	attempts := []model.ProblemAttempt{attempt("n1", true, 0, 30, 0)}

	first := EvaluateBadges(nil, attempts, catalog)
	if len(first) == 0 {
		t.Fatal("expected some badges on first evaluation")
	}

	owned := make(map[string]bool)
	for _, id := range first {
		owned[id] = true
	}
	second := EvaluateBadges(owned, attempts, catalog)
	if len(second) != 0 {
		t.Errorf("re-evaluation with owned set must return nothing, got %v", second)
	}
}

func TestEvaluateBadgesEmptyHistory(t *testing.T) {
	if earned := EvaluateBadges(nil, nil, testCatalog()); earned != nil {
		t.Errorf("no attempts should earn nothing, got %v", earned)
	}
}
