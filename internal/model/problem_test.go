package model

import (
	"encoding/json"
	"testing"
)

func TestAnswerKeyFlexibleDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		text    string
		choices int
	}{
		{"string", `"東京"`, "東京", 0},
		{"integer", `42`, "42", 0},
		{"float", `3.5`, "3.5", 0},
		{"list", `["A", "a"]`, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var key AnswerKey
			if err := json.Unmarshal([]byte(tt.payload), &key); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.payload, err)
			}
			if key.Text != tt.text || len(key.Choices) != tt.choices {
				t.Errorf("decoded %s = %+v", tt.payload, key)
			}
		})
	}

	var key AnswerKey
	if err := json.Unmarshal([]byte(`{"bad": true}`), &key); err == nil {
		t.Error("object payload should fail to decode")
	}
}

func TestProblemValidate(t *testing.T) {
	valid := Problem{ID: "p1", Category: "数で考える力", Difficulty: 3}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid problem rejected: %v", err)
	}
	if valid.AnswerType != AnswerTypeText {
		t.Errorf("missing answer_type should default to text, got %q", valid.AnswerType)
	}

	tests := []struct {
		name    string
		problem Problem
	}{
		{"missing id", Problem{Category: "c", Difficulty: 1}},
		{"missing category", Problem{ID: "p", Difficulty: 1}},
		{"difficulty too low", Problem{ID: "p", Category: "c", Difficulty: 0}},
		{"difficulty too high", Problem{ID: "p", Category: "c", Difficulty: 6}},
		{"unknown answer type", Problem{ID: "p", Category: "c", Difficulty: 1, AnswerType: "essay"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.problem.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
