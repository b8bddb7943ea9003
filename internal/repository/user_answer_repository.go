package repository

import (
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"gorm.io/gorm"
)

// UpsertOutcome upsert 的写入结果
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

type UserAnswerRepository struct {
	DB *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) *UserAnswerRepository {
	return &UserAnswerRepository{DB: db}
}

// Upsert 按业务键 (mock_id_ref, question) 幂等写入：
// 无记录则插入，有一条则整体覆盖全部可变字段，多条视为一致性
// 契约被破坏，直接报错不做静默修复。所有写入必须走这一条路径。
func (r *UserAnswerRepository) Upsert(answer *model.UserAnswer) (UpsertOutcome, error) {
	var existing []model.UserAnswer
	err := r.DB.Where("mock_id_ref = ? AND question = ?", answer.MockIDRef, answer.Question).
		Find(&existing).Error
	if err != nil {
		return "", err
	}

	switch len(existing) {
	case 0:
		if err := r.DB.Create(answer).Error; err != nil {
			return "", err
		}
		return OutcomeCreated, nil
	case 1:
		record := existing[0]
		record.UserAns = answer.UserAns
		record.CorrectAns = answer.CorrectAns
		record.Feedback = answer.Feedback
		record.Rating = answer.Rating
		record.UserEmail = answer.UserEmail
		record.RecordingURL = answer.RecordingURL
		record.CreatedDate = answer.CreatedDate
		if err := r.DB.Save(&record).Error; err != nil {
			return "", err
		}
		*answer = record
		return OutcomeUpdated, nil
	default:
		return "", util.ErrDuplicateAnswerRecord
	}
}

func (r *UserAnswerRepository) ListByMockID(mockID string) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("mock_id_ref = ?", mockID).Find(&answers).Error
	return answers, err
}
