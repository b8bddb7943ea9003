package model

// RatingNA 未评分哨兵值，仅出现在物化的未作答行中
const RatingNA = "N/A"

// UserAnswer 用户对某场面试某道题的作答记录
// 业务键 (mock_id_ref, question) 唯一：重复提交整体覆盖旧记录，
// 唯一性由 repository 的单一 upsert 写入路径保证。
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	MockIDRef    string `gorm:"size:36;index:idx_answer_mock_question,priority:1;not null" json:"mockIdRef"`
	Question     string `gorm:"type:varchar(500);index:idx_answer_mock_question,priority:2" json:"question"`
	CorrectAns   string `gorm:"type:text" json:"correctAns"`
	UserAns      string `gorm:"type:text" json:"userAns"`
	Feedback     string `gorm:"type:text" json:"feedback"`
	Rating       string `gorm:"size:10" json:"rating"` // 一位小数的字符串，如 "7.0"
	UserEmail    string `gorm:"size:100;index" json:"userEmail"`
	RecordingURL string `gorm:"size:255" json:"recordingUrl,omitempty"`
	CreatedDate  string `gorm:"size:10" json:"createdDate"` // DD-MM-YYYY，更新时整体覆盖
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
