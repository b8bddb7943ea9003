package model

import "encoding/json"

// 题目难度
const (
	DifficultyBasic    = "basic"
	DifficultyMedium   = "medium"
	DifficultyAdvanced = "advanced"
)

// MockInterview 一场面试：岗位信息 + 生成时固化的题目序列
// 题目序列创建后不可变，评分与汇总都基于这份固定序列。
// swagger:model MockInterview
type MockInterview struct {
	BaseModel
	MockID        string `gorm:"size:36;uniqueIndex;not null" json:"mockId"`
	JobPosition   string `gorm:"size:255;not null" json:"jobPosition"`
	JobDesc       string `gorm:"type:text" json:"jobDesc"`
	JobExperience string `gorm:"size:50" json:"jobExperience"`
	Questions     string `gorm:"type:text;not null" json:"-"` // JSON: []InterviewQuestion
	CreatedBy     string `gorm:"size:100;index;not null" json:"createdBy"`
	CreatedDate   string `gorm:"size:10;not null" json:"createdDate"` // DD-MM-YYYY，按天粒度
}

func (MockInterview) TableName() string {
	return "mock_interviews"
}

// InterviewQuestion 题目序列中的一项
type InterviewQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"` // 参考答案
	Difficulty string `json:"difficulty"`
}

// QuestionList 解析固化的题目序列
func (m *MockInterview) QuestionList() ([]InterviewQuestion, error) {
	var qs []InterviewQuestion
	if err := json.Unmarshal([]byte(m.Questions), &qs); err != nil {
		return nil, err
	}
	return qs, nil
}
