package repository

import (
	"mock_interview_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

func (r *InterviewRepository) Create(interview *model.MockInterview) error {
	return r.DB.Create(interview).Error
}

func (r *InterviewRepository) FindByMockID(mockID string) (*model.MockInterview, error) {
	var interview model.MockInterview
	err := r.DB.Where("mock_id = ?", mockID).First(&interview).Error
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListByCreator 按创建者列出面试，保持插入顺序（排序由汇总层按业务日期完成）
func (r *InterviewRepository) ListByCreator(email string) ([]model.MockInterview, error) {
	var interviews []model.MockInterview
	err := r.DB.Where("created_by = ?", email).Order("id asc").Find(&interviews).Error
	return interviews, err
}
