package service

import (
	"testing"

	"thinking_edu_backend/internal/model"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace collapse", "  hello   world  ", "hello world"},
		{"newlines and tabs", "a\n\tb", "a b"},
		{"zenkaku space", "１２　＋　３", "１２ + ３"},
		{"zenkaku punctuation", "３．１４，０００", "３.１４,０００"},
		{"lowercase", "ABC", "abc"},
		{"japanese untouched", "地球温暖化", "地球温暖化"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAnswer(tt.input); got != tt.want {
				t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAnswerIdempotent(t *testing.T) {
	inputs := []string{"  Hello　World  ", "３＋４＝７", "考える　ちから"}
	for _, in := range inputs {
		once := NormalizeAnswer(in)
		twice := NormalizeAnswer(once)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestMatchNumeric(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{"exact", "42", "42", true},
		{"within tolerance", "3.141", "3.14", true},
		{"near tolerance boundary", "42.01", "42", true},
		{"outside tolerance", "3.2", "3.14", false},
		{"comma separated", "1,200", "1200", true},
		{"unparsable user input", "およそ42", "42", false},
		{"unparsable correct answer", "42", "about", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchNumeric(tt.user, tt.correct, DefaultNumericTolerance); got != tt.want {
				t.Errorf("MatchNumeric(%q, %q) = %v, want %v", tt.user, tt.correct, got, tt.want)
			}
		})
	}
}

func TestMatchText(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		correct string
		fuzzy   bool
		want    bool
	}{
		{"exact", "温暖化", "温暖化", false, true},
		{"exact mismatch", "温暖", "温暖化", false, false},
		{"fuzzy user shorter", "温暖化", "地球温暖化", true, true},
		{"fuzzy user longer", "地球温暖化の影響", "温暖化", true, true},
		{"fuzzy unrelated", "酸性雨", "温暖化", true, false},
		{"case insensitive", "CO2", "co2", false, true},
		{"empty user", "", "温暖化", true, false},
		{"empty correct", "温暖化", "", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchText(tt.user, tt.correct, tt.fuzzy); got != tt.want {
				t.Errorf("MatchText(%q, %q, %v) = %v, want %v", tt.user, tt.correct, tt.fuzzy, got, tt.want)
			}
		})
	}
}

func TestMatchChoice(t *testing.T) {
	choices := []string{"文鎮", "ドアストッパー", "本立て"}

	if !MatchChoice("文鎮", choices) {
		t.Error("exact member should match")
	}
	if !MatchChoice("  文鎮  ", choices) {
		t.Error("member should match after normalization")
	}
	if MatchChoice("椅子", choices) {
		t.Error("non-member should not match")
	}
	if MatchChoice("", choices) {
		t.Error("empty input should not match")
	}
	if MatchChoice("文鎮", nil) {
		t.Error("empty choice set should not match")
	}
}

func TestMatchAnswer(t *testing.T) {
	numeric := &model.Problem{
		ID:            "p1",
		AnswerType:    model.AnswerTypeNumeric,
		CorrectAnswer: model.AnswerKey{Text: "12"},
	}
	text := &model.Problem{
		ID:            "p2",
		AnswerType:    model.AnswerTypeText,
		CorrectAnswer: model.AnswerKey{Text: "地球温暖化"},
	}
	choice := &model.Problem{
		ID:            "p3",
		AnswerType:    model.AnswerTypeMultiChoice,
		CorrectAnswer: model.AnswerKey{Choices: []string{"A", "a"}},
	}
	noKey := &model.Problem{ID: "p4", AnswerType: model.AnswerTypeText}

	tests := []struct {
		name    string
		problem *model.Problem
		answer  string
		want    bool
	}{
		{"numeric match", numeric, "12.005", true},
		{"numeric mismatch", numeric, "13", false},
		{"text fuzzy match", text, "温暖化", true},
		{"choice match", choice, "A", true},
		{"choice mismatch", choice, "B", false},
		{"empty submission", numeric, "", false},
		{"missing answer key", noKey, "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchAnswer(tt.problem, tt.answer); got != tt.want {
				t.Errorf("MatchAnswer(%s, %q) = %v, want %v", tt.problem.ID, tt.answer, got, tt.want)
			}
		})
	}
}
