package service

// XP计算参数。基础XP按难度给，提示逐个扣分，比期待时间快则有奖励。
const (
	baseXPPerDifficulty    = 10
	hintPenaltyPerHint     = 2
	expectedSecondsPerDiff = 30
	timeBonusDivisor       = 5
	minXPReward            = 5
)

// CalculateXPReward 由难度、耗时、提示使用数计算XP奖励。
// 慢答不扣分，只是没有时间奖励。下限5保证正解必有奖励。
// 只在正解时调用，误答不产生XP。
func CalculateXPReward(difficulty int, durationSeconds float64, hintsUsed int) int {
	if difficulty < 1 {
		difficulty = 1
	}
	if hintsUsed < 0 {
		hintsUsed = 0
	}

	baseXP := difficulty * baseXPPerDifficulty
	hintPenalty := hintsUsed * hintPenaltyPerHint

	expectedTime := float64(difficulty * expectedSecondsPerDiff)
	timeBonus := 0
	if durationSeconds < expectedTime {
		timeBonus = int((expectedTime - durationSeconds) / timeBonusDivisor)
	}

	finalXP := baseXP - hintPenalty + timeBonus
	if finalXP < minXPReward {
		finalXP = minXPReward
	}
	return finalXP
}
