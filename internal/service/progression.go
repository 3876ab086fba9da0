package service

import (
	"time"
)

// LevelInfo 等级定义。RequiredXP 严格递增，0级门槛为0。
type LevelInfo struct {
	Level      int    `json:"level"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	RequiredXP int    `json:"requiredXp"`
}

// 固定等级表
var levelTable = []LevelInfo{
	{Level: 0, Name: "初心者", Icon: "🌱", RequiredXP: 0},
	{Level: 1, Name: "探究者", Icon: "🔍", RequiredXP: 100},
	{Level: 2, Name: "思考家", Icon: "💭", RequiredXP: 300},
	{Level: 3, Name: "分析者", Icon: "📊", RequiredXP: 600},
	{Level: 4, Name: "論理家", Icon: "⚖️", RequiredXP: 1000},
	{Level: 5, Name: "戦略家", Icon: "♟️", RequiredXP: 1500},
	{Level: 6, Name: "賢者", Icon: "🧠", RequiredXP: 2500},
}

// LevelForXP 返回门槛不超过xp的最大等级
func LevelForXP(xp int) int {
	for i := len(levelTable) - 1; i >= 0; i-- {
		if xp >= levelTable[i].RequiredXP {
			return levelTable[i].Level
		}
	}
	return 0
}

func LevelInfoFor(level int) LevelInfo {
	if level < 0 || level >= len(levelTable) {
		return levelTable[0]
	}
	return levelTable[level]
}

// NextLevelInfo 下一等级定义；已是最高级时返回 false
func NextLevelInfo(level int) (LevelInfo, bool) {
	next := level + 1
	if next >= len(levelTable) {
		return LevelInfo{}, false
	}
	return levelTable[next], true
}

// LevelProgress 当前等级内的进度[0,1]。处于门槛返回0，
// 达到或超过下一级门槛、或已是最高级，返回1.0。
func LevelProgress(xp, level int) float64 {
	current := LevelInfoFor(level)
	next, ok := NextLevelInfo(level)
	if !ok {
		return 1.0
	}

	progress := float64(xp-current.RequiredXP) / float64(next.RequiredXP-current.RequiredXP)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1.0
	}
	return progress
}

// UpdateStreak 按本地日历日判断连续学习。
// 当天已活动：不变化；昨天有活动：连续+1；间隔≥2天或无记录：中断。
func UpdateStreak(lastActive, now time.Time) (changed bool, delta int) {
	lastDay := dateOf(lastActive.In(now.Location()))
	today := dateOf(now)
	yesterday := dateOf(now.AddDate(0, 0, -1))

	switch lastDay {
	case today:
		// 今天已计入
		return false, 0
	case yesterday:
		return true, 1
	default:
		// 连续中断
		return true, 0
	}
}

// NextStreakDays 把"中断归零"和"加天"合并成一次原子赋值，
// 避免同一更新里先清零再加一的竞争。
func NextStreakDays(current int, lastActive, now time.Time) int {
	changed, delta := UpdateStreak(lastActive, now)
	if !changed {
		return current
	}
	if delta == 0 {
		return 0
	}
	return current + delta
}

func dateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
