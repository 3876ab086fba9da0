package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/model"
)

func TestCannedResponseIntent(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"hint keyword", "この問題のヒントをください", cannedResponses["hint"]},
		{"feedback keyword", "回答へのフィードバックをお願いします", cannedResponses["feedback"]},
		{"follow keyword", "続きの質問を生成して", cannedResponses["follow_up"]},
		{"english hint", "give me a hint", cannedResponses["hint"]},
		{"fallback", "こんにちは", cannedResponses["default"]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CannedResponse(tt.prompt); got != tt.want {
				t.Errorf("CannedResponse(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestGenerateUnconfiguredFallsBack(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	got := svc.Generate(context.Background(), "ヒントをください")
	if got != cannedResponses["hint"] {
		t.Errorf("unconfigured service should return canned hint, got %q", got)
	}
}

func TestHintPrefersAuthoredHints(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	problem := &model.Problem{
		ID:       "n1",
		Question: "12 ÷ 3 = ?",
		Hints:    []string{"最初のヒント", "次のヒント"},
	}

	if got := svc.Hint(context.Background(), problem, 0); got != "最初のヒント" {
		t.Errorf("hint step 0 = %q", got)
	}
	if got := svc.Hint(context.Background(), problem, 1); got != "次のヒント" {
		t.Errorf("hint step 1 = %q", got)
	}
	// 自带提示用完后退回生成（未配置时为固定文案）
	if got := svc.Hint(context.Background(), problem, 2); got != cannedResponses["hint"] {
		t.Errorf("hint step 2 = %q, want canned fallback", got)
	}
}

func TestFollowUpPrefersAuthored(t *testing.T) {
	svc := NewAIService(config.AIConfig{})
	problem := &model.Problem{
		ID:       "n1",
		Question: "12 ÷ 3 = ?",
		FollowUp: []string{"同じ考え方で24÷6は？"},
	}

	if got := svc.FollowUp(context.Background(), problem, "4"); got != "同じ考え方で24÷6は？" {
		t.Errorf("follow up = %q", got)
	}
}

// 提交结算的フォローアップ必须走AuthoredFollowUp：即使生成后端已配置，
// 也不能多出一次调用。按需生成只在独立接口里发生。
func TestAuthoredFollowUpNeverCallsBackend(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"生成された質問"}}]}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	})

	authored := &model.Problem{
		ID:       "n1",
		Question: "12 ÷ 3 = ?",
		FollowUp: []string{"同じ考え方で24÷6は？"},
	}
	if got := svc.AuthoredFollowUp(authored); got != "同じ考え方で24÷6は？" {
		t.Errorf("authored follow up = %q", got)
	}

	bare := &model.Problem{ID: "n2", Question: "15 - 7 = ?"}
	if got := svc.AuthoredFollowUp(bare); got != "" {
		t.Errorf("follow up without authored entries = %q, want empty", got)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("AuthoredFollowUp hit the backend %d times, want 0", n)
	}

	// 独立接口路径才允许生成
	if got := svc.FollowUp(context.Background(), bare, "8"); got != "生成された質問" {
		t.Errorf("generated follow up = %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("FollowUp hit the backend %d times, want 1", n)
	}
}

func TestCannedResponsesAreJapanese(t *testing.T) {
	for key, text := range cannedResponses {
		if strings.TrimSpace(text) == "" {
			t.Errorf("canned response %q is empty", key)
		}
	}
}
