package service

import (
	"math"
	"strconv"
	"strings"
	"thinking_edu_backend/internal/model"
)

// DefaultNumericTolerance 数值答案的默认许容误差
const DefaultNumericTolerance = 0.01

// 全角→半角映射表。日文输入法下用户经常输入全角标点和运算符，
// 判定前统一转成半角。
var zenkakuToHankaku = map[rune]rune{
	'　': ' ',
	'，': ',',
	'．': '.',
	'！': '!',
	'？': '?',
	'：': ':',
	'；': ';',
	'（': '(',
	'）': ')',
	'［': '[',
	'］': ']',
	'｛': '{',
	'｝': '}',
	'＋': '+',
	'－': '-',
	'＊': '*',
	'／': '/',
	'＝': '=',
}

// NormalizeAnswer 答案归一化：連続空白（含换行）压成单个空格并去首尾，
// 全角符号转半角，最后统一小写。幂等，空输入归一化为空串。
func NormalizeAnswer(text string) string {
	if text == "" {
		return ""
	}

	text = strings.Join(strings.Fields(text), " ")

	text = strings.Map(func(r rune) rune {
		if h, ok := zenkakuToHankaku[r]; ok {
			return h
		}
		return r
	}, text)

	return strings.ToLower(text)
}

// MatchNumeric 数值一致判定。双方归一化后去掉千位分隔逗号再解析，
// 任一侧解析失败都判为不正解（不向上抛错），|差| ≤ 许容误差则正解。
func MatchNumeric(userAnswer, correctAnswer string, tolerance float64) bool {
	userVal, err := strconv.ParseFloat(strings.ReplaceAll(NormalizeAnswer(userAnswer), ",", ""), 64)
	if err != nil {
		return false
	}

	correctVal, err := strconv.ParseFloat(strings.ReplaceAll(NormalizeAnswer(correctAnswer), ",", ""), 64)
	if err != nil {
		return false
	}

	return math.Abs(userVal-correctVal) <= tolerance
}

// MatchText 文本一致判定。fuzzy 模式下归一化后互相包含即算正解，
// 对冗长或简短的表述都宽容；非 fuzzy 则要求完全一致。
func MatchText(userAnswer, correctAnswer string, fuzzy bool) bool {
	if userAnswer == "" || correctAnswer == "" {
		return false
	}

	userNorm := NormalizeAnswer(userAnswer)
	correctNorm := NormalizeAnswer(correctAnswer)
	if userNorm == "" || correctNorm == "" {
		return false
	}

	if fuzzy {
		return strings.Contains(correctNorm, userNorm) || strings.Contains(userNorm, correctNorm)
	}
	return userNorm == correctNorm
}

// MatchChoice 选择题判定：归一化后与任一可接受选项完全一致
func MatchChoice(userAnswer string, choices []string) bool {
	if userAnswer == "" || len(choices) == 0 {
		return false
	}

	userNorm := NormalizeAnswer(userAnswer)
	for _, choice := range choices {
		if userNorm == NormalizeAnswer(choice) {
			return true
		}
	}
	return false
}

// MatchAnswer 按题目的答案类型分派判定。空提交一律不正解。
func MatchAnswer(problem *model.Problem, userAnswer string) bool {
	if userAnswer == "" || problem.CorrectAnswer.IsEmpty() {
		return false
	}

	switch problem.AnswerType {
	case model.AnswerTypeNumeric:
		return MatchNumeric(userAnswer, problem.CorrectAnswer.Text, DefaultNumericTolerance)
	case model.AnswerTypeMultiChoice:
		choices := problem.CorrectAnswer.Choices
		if len(choices) == 0 {
			choices = []string{problem.CorrectAnswer.Text}
		}
		return MatchChoice(userAnswer, choices)
	default:
		// 自由文本默认宽容匹配
		return MatchText(userAnswer, problem.CorrectAnswer.Text, true)
	}
}
