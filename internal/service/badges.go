package service

import (
	"thinking_edu_backend/internal/model"
)

// BadgeInfo 徽章定义
type BadgeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Desc string `json:"desc"`
}

const (
	BadgeFirstCorrect     = "first_correct"
	BadgeStreak3          = "streak_3"
	BadgeStreak5          = "streak_5"
	BadgeStreak10         = "streak_10"
	BadgeNoHint           = "no_hint"
	BadgeFastSolver       = "fast_solver"
	BadgeDeepThinker      = "deep_thinker"
	BadgeCompleteCategory = "complete_category"
	BadgeAllCategories    = "all_categories"
)

// fast_solver / deep_thinker 的判定阈值
const (
	fastSolveSeconds    = 60
	deepThoughtMinChars = 300
)

// BadgeCatalog 全部徽章及解锁条件说明
var BadgeCatalog = []BadgeInfo{
	{ID: BadgeFirstCorrect, Name: "ファーストステップ", Icon: "🥇", Desc: "初めての正解"},
	{ID: BadgeStreak3, Name: "3連続正解", Icon: "🔥", Desc: "3問連続で正解"},
	{ID: BadgeStreak5, Name: "5連続正解", Icon: "🔥🔥", Desc: "5問連続で正解"},
	{ID: BadgeStreak10, Name: "10連続正解", Icon: "🔥🔥🔥", Desc: "10問連続で正解"},
	{ID: BadgeNoHint, Name: "独力解決者", Icon: "💪", Desc: "ヒントなしで問題を解決"},
	{ID: BadgeFastSolver, Name: "スピード思考", Icon: "⚡", Desc: "60秒以内に正解"},
	{ID: BadgeDeepThinker, Name: "深い思考", Icon: "🧘", Desc: "300文字以上の思考ログを残す"},
	{ID: BadgeCompleteCategory, Name: "カテゴリマスター", Icon: "🏆", Desc: "カテゴリ内の全問題を解く"},
	{ID: BadgeAllCategories, Name: "全領域マスター", Icon: "👑", Desc: "すべてのカテゴリで問題を解く"},
}

// BadgeInfoByID 按ID查徽章定义
func BadgeInfoByID(id string) (BadgeInfo, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeInfo{}, false
}

// EvaluateBadges 对完整答题历史评估徽章，返回本次新获得的徽章ID
// （按徽章目录顺序）。只增不减：已持有的不再返回，重复评估结果幂等。
// attempts 要求按提交时间升序。
func EvaluateBadges(owned map[string]bool, attempts []model.ProblemAttempt, catalog []model.Problem) []string {
	if len(attempts) == 0 {
		return nil
	}

	satisfied := map[string]bool{
		BadgeFirstCorrect:     hasCorrect(attempts),
		BadgeStreak3:          tailAllCorrect(attempts, 3),
		BadgeStreak5:          tailAllCorrect(attempts, 5),
		BadgeStreak10:         tailAllCorrect(attempts, 10),
		BadgeNoHint:           hasCorrectWhere(attempts, func(a model.ProblemAttempt) bool { return a.HintsUsed == 0 }),
		BadgeFastSolver:       hasCorrectWhere(attempts, func(a model.ProblemAttempt) bool { return a.Duration <= fastSolveSeconds }),
		BadgeDeepThinker:      hasCorrectWhere(attempts, func(a model.ProblemAttempt) bool { return a.ThoughtLength >= deepThoughtMinChars }),
		BadgeCompleteCategory: anyCategoryComplete(attempts, catalog),
		BadgeAllCategories:    allCategoriesComplete(attempts, catalog),
	}

	var earned []string
	for _, b := range BadgeCatalog {
		if satisfied[b.ID] && !owned[b.ID] {
			earned = append(earned, b.ID)
		}
	}
	return earned
}

func hasCorrect(attempts []model.ProblemAttempt) bool {
	for _, a := range attempts {
		if a.IsCorrect {
			return true
		}
	}
	return false
}

func hasCorrectWhere(attempts []model.ProblemAttempt, pred func(model.ProblemAttempt) bool) bool {
	for _, a := range attempts {
		if a.IsCorrect && pred(a) {
			return true
		}
	}
	return false
}

// tailAllCorrect 最近n次提交（按时间序）是否全部正解
func tailAllCorrect(attempts []model.ProblemAttempt, n int) bool {
	if len(attempts) < n {
		return false
	}
	for _, a := range attempts[len(attempts)-n:] {
		if !a.IsCorrect {
			return false
		}
	}
	return true
}

// solvedProblemSet 有过正解的题目ID集合
func solvedProblemSet(attempts []model.ProblemAttempt) map[string]bool {
	solved := make(map[string]bool)
	for _, a := range attempts {
		if a.IsCorrect {
			solved[a.ProblemID] = true
		}
	}
	return solved
}

// categoryComplete 该分类下每道题都有正解
func categoryComplete(category string, solved map[string]bool, catalog []model.Problem) bool {
	found := false
	for _, p := range catalog {
		if p.Category != category {
			continue
		}
		found = true
		if !solved[p.ID] {
			return false
		}
	}
	return found
}

func anyCategoryComplete(attempts []model.ProblemAttempt, catalog []model.Problem) bool {
	solved := solvedProblemSet(attempts)
	for _, cat := range catalogCategories(catalog) {
		if categoryComplete(cat, solved, catalog) {
			return true
		}
	}
	return false
}

func allCategoriesComplete(attempts []model.ProblemAttempt, catalog []model.Problem) bool {
	cats := catalogCategories(catalog)
	if len(cats) == 0 {
		return false
	}
	solved := solvedProblemSet(attempts)
	for _, cat := range cats {
		if !categoryComplete(cat, solved, catalog) {
			return false
		}
	}
	return true
}

func catalogCategories(catalog []model.Problem) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range catalog {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}
