// 手动生成题库文件脚本
//
// 题库由对象存储中的 problems.json 提供，应用本身不负责写入。
// 此脚本在本地存储模式下生成一份示例题库，用于首次部署或本地开发。
//
// 用法: go run scripts/seed_problems.go

package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/model"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Storage.Type != "local" {
		log.Fatalf("仅支持本地存储模式，当前: %s", cfg.Storage.Type)
	}

	problems := sampleProblems()
	for i := range problems {
		if err := problems[i].Validate(); err != nil {
			log.Fatalf("示例题目校验失败: %v", err)
		}
	}

	payload, err := json.MarshalIndent(problems, "", "  ")
	if err != nil {
		log.Fatalf("序列化题库失败: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.LocalPath, 0o755); err != nil {
		log.Fatalf("创建存储目录失败: %v", err)
	}

	object := cfg.Catalog.Object
	if object == "" {
		object = "problems.json"
	}
	target := filepath.Join(cfg.Storage.LocalPath, object)
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		log.Fatalf("写入题库失败: %v", err)
	}

	log.Printf("题库已生成: %s (%d 题)", target, len(problems))
}

func sampleProblems() []model.Problem {
	return []model.Problem{
		{
			ID:         "num-001",
			Category:   "数で考える力",
			Question:   "りんごが12個あります。3人で同じ数ずつ分けると、1人何個になりますか？",
			Hints:      []string{"全体の数を人数で分けます", "12 ÷ 3 を計算してみましょう"},
			Tags:       []string{"割り算", "分配"},
			Difficulty: 1,
			AnswerType: model.AnswerTypeNumeric,
			CorrectAnswer: model.AnswerKey{
				Text: "4",
			},
			Explanation: "12個を3人で等しく分けるので、12 ÷ 3 = 4個です。",
		},
		{
			ID:         "num-002",
			Category:   "数で考える力",
			Question:   "ある数を2倍して6を足すと20になります。ある数はいくつですか？",
			Hints:      []string{"逆から考えてみましょう", "20から6を引くと？", "残りを2で割ります"},
			FollowUp:   []string{"同じ考え方で、3倍して9を足すと30になる数を求められますか？"},
			Tags:       []string{"逆算", "方程式"},
			Difficulty: 2,
			AnswerType: model.AnswerTypeNumeric,
			CorrectAnswer: model.AnswerKey{
				Text: "7",
			},
			Explanation: "(20 - 6) ÷ 2 = 7 です。",
		},
		{
			ID:         "logic-001",
			Category:   "論理的思考力",
			Question:   "A、B、Cの3人のうち、1人だけが本当のことを言っています。A「Bがうそつきだ」B「Cがうそつきだ」C「私はうそつきではない」。本当のことを言っているのは誰ですか？",
			Hints:      []string{"1人ずつ正直者だと仮定して矛盾を探しましょう", "Aが正直者なら、BとCの発言はどうなりますか？"},
			Tags:       []string{"うそつきパズル", "場合分け"},
			Difficulty: 3,
			AnswerType: model.AnswerTypeMultiChoice,
			CorrectAnswer: model.AnswerKey{
				Choices: []string{"A", "a"},
			},
			Explanation: "Aを正直者と仮定すると、Bはうそつき、つまりCは正直者ではなく、Cの発言もうそになり矛盾しません。",
		},
		{
			ID:         "lang-001",
			Category:   "ことばで伝える力",
			Question:   "「雨が降ったので遠足は中止になった」という文の原因と結果を、それぞれ一言で答えてください（原因のみ記入）。",
			Hints:      []string{"「ので」の前が原因です"},
			Tags:       []string{"因果関係", "読解"},
			Difficulty: 1,
			AnswerType: model.AnswerTypeText,
			CorrectAnswer: model.AnswerKey{
				Text: "雨",
			},
			Explanation: "「雨が降った」が原因、「遠足の中止」が結果です。",
		},
		{
			ID:         "pattern-001",
			Category:   "しくみを見つける力",
			Question:   "2, 4, 8, 16, ... この数列の次に来る数は何ですか？",
			Hints:      []string{"前の数との関係を見てみましょう", "それぞれ前の数の何倍になっていますか？"},
			Tags:       []string{"数列", "規則性"},
			Difficulty: 2,
			AnswerType: model.AnswerTypeNumeric,
			CorrectAnswer: model.AnswerKey{
				Text: "32",
			},
			Explanation: "各項は前の項の2倍です。16 × 2 = 32。",
		},
		{
			ID:         "analysis-001",
			Category:   "分析力",
			Question:   "あるクラスの平均点は60点、人数は20人です。合計点は何点ですか？",
			Hints:      []string{"平均 × 人数 = 合計"},
			Tags:       []string{"平均", "統計"},
			Difficulty: 2,
			AnswerType: model.AnswerTypeNumeric,
			CorrectAnswer: model.AnswerKey{
				Text: "1200",
			},
			Explanation: "60 × 20 = 1200点です。",
		},
		{
			ID:         "creative-001",
			Category:   "創造的思考力",
			Question:   "レンガの「建物を作る」以外の使い方を1つ考えて、一言で答えてください。",
			Hints:      []string{"形や重さに注目してみましょう"},
			Tags:       []string{"発想", "多用途"},
			Difficulty: 2,
			AnswerType: model.AnswerTypeMultiChoice,
			CorrectAnswer: model.AnswerKey{
				Choices: []string{"文鎮", "ドアストッパー", "本立て", "重し"},
			},
			Explanation: "重さと安定した形を生かした使い方であれば正解です。",
		},
	}
}
