package model

type GoalType string

const (
	GoalTypeAttempts GoalType = "attempts" // 当日答题数
	GoalTypeCorrect  GoalType = "correct"  // 当日正解数
	GoalTypeMinutes  GoalType = "minutes"  // 当日学习分钟数
)

// DailyGoal 每日学习目标，按（用户，日期，类型）唯一
// swagger:model DailyGoal
type DailyGoal struct {
	BaseModel
	UserID    uint     `gorm:"index:idx_user_date_goal,unique;type:bigint unsigned;not null" json:"userId"`
	Date      string   `gorm:"index:idx_user_date_goal,unique;size:10;not null" json:"date"` // YYYY-MM-DD
	GoalType  GoalType `gorm:"index:idx_user_date_goal,unique;size:20;not null" json:"goalType"`
	Target    int      `gorm:"not null" json:"target"`
	Current   int      `gorm:"default:0" json:"current"`
	Completed bool     `gorm:"default:false" json:"completed"`
}

func (DailyGoal) TableName() string {
	return "daily_goals"
}
