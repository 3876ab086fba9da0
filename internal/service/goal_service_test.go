package service

import (
	"errors"
	"testing"
	"time"

	"thinking_edu_backend/internal/model"
)

type fakeGoalStore struct {
	goals     []model.DailyGoal
	createErr error
	updateErr error
	updated   []model.DailyGoal
}

func (f *fakeGoalStore) FindByUserAndDate(userID uint, date string) ([]model.DailyGoal, error) {
	var out []model.DailyGoal
	for _, g := range f.goals {
		if g.UserID == userID && g.Date == date {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) FindByIDAndUserID(goalID, userID uint) (*model.DailyGoal, error) {
	for i := range f.goals {
		if f.goals[i].ID == goalID && f.goals[i].UserID == userID {
			g := f.goals[i]
			return &g, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeGoalStore) Create(goal *model.DailyGoal) error {
	if f.createErr != nil {
		return f.createErr
	}
	goal.ID = uint(len(f.goals) + 1)
	f.goals = append(f.goals, *goal)
	return nil
}

func (f *fakeGoalStore) Update(goal *model.DailyGoal) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *goal)
	return nil
}

type fakeGoalAttempts struct {
	total    int64
	correct  int64
	attempts []model.ProblemAttempt
	err      error
}

func (f *fakeGoalAttempts) CountByUserAndDate(userID uint, dayStart, dayEnd time.Time, correctOnly bool) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if correctOnly {
		return f.correct, nil
	}
	return f.total, nil
}

func (f *fakeGoalAttempts) FindSince(userID uint, since time.Time) ([]model.ProblemAttempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attempts, nil
}

func TestCreateGoalComputesProgress(t *testing.T) {
	store := &fakeGoalStore{}
	svc := NewGoalService(store, &fakeGoalAttempts{total: 5, correct: 3})
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.FixedZone("JST", 9*3600))

	goal, err := svc.CreateGoal(1, CreateGoalRequest{GoalType: "attempts", Target: 5}, now)
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Current != 5 {
		t.Errorf("Current = %d, want 5", goal.Current)
	}
	if !goal.Completed {
		t.Error("goal should be completed at target")
	}
	if len(store.updated) != 1 {
		t.Fatalf("progress not persisted, updates = %d", len(store.updated))
	}
	if !store.updated[0].Completed {
		t.Error("persisted goal not marked completed")
	}
}

func TestCreateGoalReturnsExistingSameType(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeGoalStore{goals: []model.DailyGoal{{
		BaseModel: model.BaseModel{ID: 7},
		UserID:    1,
		Date:      now.Format("2006-01-02"),
		GoalType:  model.GoalTypeCorrect,
		Target:    3,
	}}}
	svc := NewGoalService(store, &fakeGoalAttempts{})

	goal, err := svc.CreateGoal(1, CreateGoalRequest{GoalType: "correct", Target: 10}, now)
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.ID != 7 {
		t.Errorf("goal.ID = %d, want existing 7", goal.ID)
	}
	if goal.Target != 3 {
		t.Errorf("Target = %d, existing goal must not be overwritten", goal.Target)
	}
}

func TestMinutesGoalSumsDurations(t *testing.T) {
	now := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	store := &fakeGoalStore{}
	attempts := &fakeGoalAttempts{attempts: []model.ProblemAttempt{
		{SubmittedAt: now.Add(-2 * time.Hour), Duration: 300},
		{SubmittedAt: now.Add(-1 * time.Hour), Duration: 330},
	}}
	svc := NewGoalService(store, attempts)

	goal, err := svc.CreateGoal(1, CreateGoalRequest{GoalType: "minutes", Target: 30}, now)
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Current != 10 {
		t.Errorf("Current = %d minutes, want 10", goal.Current)
	}
	if goal.Completed {
		t.Error("10 of 30 minutes should not be completed")
	}
}

func TestGoalProgressReadFailureSurfaces(t *testing.T) {
	readErr := errors.New("attempts unavailable")
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeGoalStore{goals: []model.DailyGoal{{
		BaseModel: model.BaseModel{ID: 1},
		UserID:    1,
		Date:      now.Format("2006-01-02"),
		GoalType:  model.GoalTypeAttempts,
		Target:    5,
		Current:   2,
	}}}
	svc := NewGoalService(store, &fakeGoalAttempts{err: readErr})

	if _, err := svc.GetTodayGoals(1, now); !errors.Is(err, readErr) {
		t.Errorf("GetTodayGoals err = %v, want %v", err, readErr)
	}
	if len(store.updated) != 0 {
		t.Error("stale progress must not be persisted on read failure")
	}
}

func TestGoalProgressWriteFailureSurfaces(t *testing.T) {
	writeErr := errors.New("update failed")
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := &fakeGoalStore{
		updateErr: writeErr,
		goals: []model.DailyGoal{{
			BaseModel: model.BaseModel{ID: 3},
			UserID:    1,
			Date:      now.Format("2006-01-02"),
			GoalType:  model.GoalTypeAttempts,
			Target:    5,
		}},
	}
	svc := NewGoalService(store, &fakeGoalAttempts{total: 4})

	if _, err := svc.UpdateGoal(1, 3, UpdateGoalRequest{Target: 4}, now); !errors.Is(err, writeErr) {
		t.Errorf("UpdateGoal err = %v, want %v", err, writeErr)
	}
}
