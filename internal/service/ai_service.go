package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/model"
	"thinking_edu_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// 生成后端不可用时的固定回复。判定和进度更新不依赖生成结果，
// 这里的降级永远不会让请求失败。
var cannedResponses = map[string]string{
	"default":   "追加の深掘りを提案します。この問題の解き方をもう少し考えてみましょう。",
	"hint":      "もう少し別の視点から考えてみましょう。",
	"feedback":  "良い答えですね！さらに発展させるなら、この考え方は他の問題にも応用できます。",
	"follow_up": "この問題と関連して、実生活ではどのような場面でこの考え方が役立つでしょうか？",
}

type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// UpdateConfig 配置热更新入口
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate 调用生成后端，任何失败（未配置、网络错误、超时、异常响应）
// 都降级为固定回复，不向调用方传播错误。
func (s *AIService) Generate(ctx context.Context, prompt string) string {
	s.mu.RLock()
	cfg := s.config
	client := s.client
	s.mu.RUnlock()

	if cfg.APIKey == "" || cfg.BaseURL == "" {
		return CannedResponse(prompt)
	}

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: "あなたは思考力トレーニングの教育アシスタントです。日本語で簡潔に答えてください。"},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return CannedResponse(prompt)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return CannedResponse(prompt)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		logger.Log.Warn("AI backend unreachable, falling back to canned reply", zap.Error(err))
		return CannedResponse(prompt)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Log.Warn("AI backend error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return CannedResponse(prompt)
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return CannedResponse(prompt)
	}
	if completion.Error != nil || len(completion.Choices) == 0 {
		return CannedResponse(prompt)
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return CannedResponse(prompt)
	}
	return content
}

// CannedResponse 按提示词里的关键词粗分类意图，返回对应的固定回复
func CannedResponse(prompt string) string {
	p := strings.ToLower(prompt)

	switch {
	case strings.Contains(p, "hint") || strings.Contains(p, "ヒント"):
		return cannedResponses["hint"]
	case strings.Contains(p, "feedback") || strings.Contains(p, "フィードバック"):
		return cannedResponses["feedback"]
	case strings.Contains(p, "follow") || strings.Contains(p, "続き"):
		return cannedResponses["follow_up"]
	default:
		return cannedResponses["default"]
	}
}

// ProblemFeedback 对回答生成教育性フィードバック
func (s *AIService) ProblemFeedback(ctx context.Context, problem *model.Problem, answer string) string {
	prompt := fmt.Sprintf(`問題: %s
ユーザーの回答: %s
正答: %s

この回答に対する教育的なフィードバックと、さらに深く考えるためのポイントを提案してください。`,
		problem.Question, answer, problem.CorrectAnswer.Text)

	return s.Generate(ctx, prompt)
}

// Hint 返回第hintStep个提示。题目自带的提示优先，用完后才生成。
func (s *AIService) Hint(ctx context.Context, problem *model.Problem, hintStep int) string {
	if hintStep < len(problem.Hints) {
		return problem.Hints[hintStep]
	}

	prompt := fmt.Sprintf(`問題: %s

この問題に対する%dつ目のヒントを生成してください。
直接的な答えは含めず、考え方のポイントを示唆するヒントにしてください。`,
		problem.Question, hintStep+1)

	return s.Generate(ctx, prompt)
}

// AuthoredFollowUp 题目自带フォローアップ里随机挑一个，没有则返回空串。
// 不触发生成后端，提交结算路径只走这里。
func (s *AIService) AuthoredFollowUp(problem *model.Problem) string {
	if len(problem.FollowUp) == 0 {
		return ""
	}
	return problem.FollowUp[rand.Intn(len(problem.FollowUp))]
}

// FollowUp 自带的优先，没有才生成
func (s *AIService) FollowUp(ctx context.Context, problem *model.Problem, answer string) string {
	if authored := s.AuthoredFollowUp(problem); authored != "" {
		return authored
	}

	prompt := fmt.Sprintf(`問題: %s
ユーザーの回答: %s

この問題と回答に関連して、さらに深く考えさせるフォローアップ質問を1つ生成してください。
実生活での応用や、別の視点からの考察を促す質問が望ましいです。`,
		problem.Question, answer)

	return s.Generate(ctx, prompt)
}
