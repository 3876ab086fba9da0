package service

import "testing"

func TestCalculateXPReward(t *testing.T) {
	tests := []struct {
		name     string
		diff     int
		duration float64
		hints    int
		want     int
	}{
		{"slow answer gets base only", 1, 1000, 0, 10},
		{"hint penalty floors at minimum", 1, 100, 5, 5},
		{"time bonus", 3, 20, 1, 42}, // 30 - 2 + (90-20)/5
		{"exact expected time no bonus", 2, 60, 0, 20},
		{"just under expected time", 2, 59, 0, 20}, // (60-59)/5 truncates to 0
		{"max difficulty fast solve", 5, 0, 0, 80}, // 50 + 150/5
		{"invalid difficulty clamped", 0, 1000, 0, 10},
		{"negative hints clamped", 1, 1000, -3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateXPReward(tt.diff, tt.duration, tt.hints); got != tt.want {
				t.Errorf("CalculateXPReward(%d, %v, %d) = %d, want %d",
					tt.diff, tt.duration, tt.hints, got, tt.want)
			}
		})
	}
}

func TestCalculateXPRewardNeverBelowMinimum(t *testing.T) {
	for hints := 0; hints <= 20; hints++ {
		if got := CalculateXPReward(1, 10000, hints); got < 5 {
			t.Fatalf("reward %d below minimum with %d hints", got, hints)
		}
	}
}
