package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type AnswerType string

const (
	AnswerTypeNumeric     AnswerType = "numeric"
	AnswerTypeText        AnswerType = "text"
	AnswerTypeMultiChoice AnswerType = "multi_choice"
)

// AnswerKey 正解。题库JSON中可能是数值、字符串或可接受答案的数组，
// 统一解码为标量文本 + 选项集合两种形态。
type AnswerKey struct {
	Text    string
	Choices []string
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		k.Text = s
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		k.Text = strconv.FormatFloat(n, 'f', -1, 64)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		k.Choices = list
		return nil
	}

	return fmt.Errorf("unsupported correct_answer payload: %s", string(data))
}

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if k.Choices != nil {
		return json.Marshal(k.Choices)
	}
	return json.Marshal(k.Text)
}

// IsEmpty 既无标量正解也无选项集合
func (k AnswerKey) IsEmpty() bool {
	return k.Text == "" && len(k.Choices) == 0
}

// Problem 题库中的一道题。不落库，由题库JSON只读加载。
// swagger:model Problem
type Problem struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	Question        string     `json:"question"`
	Hints           []string   `json:"hints"`
	FollowUp        []string   `json:"follow_up"`
	Tags            []string   `json:"tags"`
	Difficulty      int        `json:"difficulty"` // 1-5
	AnswerType      AnswerType `json:"answer_type"`
	CorrectAnswer   AnswerKey  `json:"correct_answer"`
	Explanation     string     `json:"explanation,omitempty"`
	RelatedProblems []string   `json:"related_problems,omitempty"`
}

// Validate 题目基础校验。难度必须落在[1,5]，提示可以为空。
func (p *Problem) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("problem id is required")
	}
	if p.Category == "" {
		return fmt.Errorf("problem %s: category is required", p.ID)
	}
	if p.Difficulty < 1 || p.Difficulty > 5 {
		return fmt.Errorf("problem %s: difficulty %d out of range [1,5]", p.ID, p.Difficulty)
	}
	switch p.AnswerType {
	case AnswerTypeNumeric, AnswerTypeText, AnswerTypeMultiChoice:
	case "":
		p.AnswerType = AnswerTypeText
	default:
		return fmt.Errorf("problem %s: unknown answer_type %q", p.ID, p.AnswerType)
	}
	return nil
}

// CategoryInfo 分类展示元数据
type CategoryInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryCatalog 固定的分类集合（与题库内容一致）
var CategoryCatalog = []CategoryInfo{
	{Name: "数で考える力", Icon: "🔢"},
	{Name: "ことばで伝える力", Icon: "💬"},
	{Name: "しくみを見つける力", Icon: "🔍"},
	{Name: "論理的思考力", Icon: "🧩"},
	{Name: "分析力", Icon: "📈"},
	{Name: "創造的思考力", Icon: "💡"},
}

func IsKnownCategory(name string) bool {
	for _, c := range CategoryCatalog {
		if c.Name == name {
			return true
		}
	}
	return false
}
