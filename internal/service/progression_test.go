package service

import (
	"testing"
	"time"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{299, 1},
		{300, 2},
		{600, 3},
		{1000, 4},
		{1500, 5},
		{2500, 6},
		{99999, 6},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 3000; xp += 10 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		name  string
		xp    int
		level int
		want  float64
	}{
		{"at threshold", 100, 1, 0},
		{"midway", 200, 1, 0.5},
		{"at next threshold clamps", 300, 1, 1.0},
		{"max level", 3000, 6, 1.0},
		{"below threshold clamps to zero", 50, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelProgress(tt.xp, tt.level); got != tt.want {
				t.Errorf("LevelProgress(%d, %d) = %v, want %v", tt.xp, tt.level, got, tt.want)
			}
		})
	}
}

func TestNextLevelInfo(t *testing.T) {
	next, ok := NextLevelInfo(0)
	if !ok || next.Level != 1 || next.RequiredXP != 100 {
		t.Errorf("NextLevelInfo(0) = %+v, %v", next, ok)
	}
	if _, ok := NextLevelInfo(6); ok {
		t.Error("max level should have no next level")
	}
}

func TestNextStreakDays(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, loc)

	tests := []struct {
		name       string
		current    int
		lastActive time.Time
		want       int
	}{
		{"same day unchanged", 4, now.Add(-2 * time.Hour), 4},
		{"same day early morning", 4, time.Date(2026, 8, 28, 0, 1, 0, 0, loc), 4},
		{"yesterday continues", 4, now.AddDate(0, 0, -1), 5},
		{"yesterday late night continues", 4, time.Date(2026, 8, 27, 23, 59, 0, 0, loc), 5},
		{"two day gap resets", 4, now.AddDate(0, 0, -2), 0},
		{"long gap resets", 10, now.AddDate(0, -1, 0), 0},
		{"never active resets", 3, time.Time{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreakDays(tt.current, tt.lastActive, now); got != tt.want {
				t.Errorf("NextStreakDays(%d, %v) = %d, want %d", tt.current, tt.lastActive, got, tt.want)
			}
		})
	}
}

func TestNextStreakDaysSameDayIdempotent(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, loc)

	streak := NextStreakDays(2, now.AddDate(0, 0, -1), now)
	if streak != 3 {
		t.Fatalf("first update = %d, want 3", streak)
	}
	// 同日重复提交不再加天
	again := NextStreakDays(streak, now, now.Add(time.Hour))
	if again != 3 {
		t.Errorf("second update same day = %d, want 3", again)
	}
}
