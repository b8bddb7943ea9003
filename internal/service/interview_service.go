package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

// InterviewService 面试的生成与读取。题目序列在创建时由大模型生成，
// 之后固化不再变更。
type InterviewService struct {
	interviews    InterviewStore
	ai            ChatClient
	questionCount int
	now           func() time.Time
}

func NewInterviewService(interviews InterviewStore, ai ChatClient, cfg *config.Config) *InterviewService {
	return &InterviewService{
		interviews:    interviews,
		ai:            ai,
		questionCount: cfg.Grading.QuestionCount,
		now:           time.Now,
	}
}

type CreateInterviewRequest struct {
	JobPosition   string `json:"jobPosition" binding:"required"`
	JobDesc       string `json:"jobDesc" binding:"required"`
	JobExperience string `json:"jobExperience" binding:"required"`
}

const questionGenSystemPrompt = "You are an experienced technical interviewer preparing questions for a mock interview."

func buildQuestionGenPrompt(req CreateInterviewRequest, count int) string {
	return fmt.Sprintf(`Job Position: %s
Job Description / Tech Stack: %s
Years of Experience: %s

Generate %d interview questions with reference answers for this role.
Mix the difficulty across "basic", "medium" and "advanced".

Format your response as a JSON array with exactly these fields per item:
[
  { "question": "...", "answer": "...", "difficulty": "basic|medium|advanced" }
]`, req.JobPosition, req.JobDesc, req.JobExperience, count)
}

// CreateInterview 生成题目序列并落库，createdBy 为调用者身份
func (s *InterviewService) CreateInterview(userEmail string, req CreateInterviewRequest) (*model.MockInterview, error) {
	raw, err := s.ai.Chat(questionGenSystemPrompt, buildQuestionGenPrompt(req, s.questionCount))
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestionList(raw)
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	interview := &model.MockInterview{
		MockID:        model.GenerateUUID(),
		JobPosition:   req.JobPosition,
		JobDesc:       req.JobDesc,
		JobExperience: req.JobExperience,
		Questions:     string(blob),
		CreatedBy:     userEmail,
		CreatedDate:   util.FormatDay(s.now()),
	}

	if err := s.interviews.Create(interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// ParseQuestionList 解析模型生成的题目数组，围栏处理与评分响应一致
func ParseQuestionList(raw string) ([]model.InterviewQuestion, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var questions []model.InterviewQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, util.ErrQuestionGenMalformed
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionGenMalformed
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, util.ErrQuestionGenMalformed
		}
	}
	return questions, nil
}

type InterviewDetail struct {
	MockID        string                    `json:"mockId"`
	JobPosition   string                    `json:"jobPosition"`
	JobDesc       string                    `json:"jobDesc"`
	JobExperience string                    `json:"jobExperience"`
	CreatedBy     string                    `json:"createdBy"`
	CreatedDate   string                    `json:"createdDate"`
	Questions     []model.InterviewQuestion `json:"questions"`
}

// GetInterview 返回一场面试的详情，仅创建者可见
func (s *InterviewService) GetInterview(mockID string, callerEmail string) (*InterviewDetail, error) {
	interview, err := s.interviews.FindByMockID(mockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}

	if interview.CreatedBy != callerEmail {
		return nil, util.ErrPermissionDenied
	}

	questions, err := interview.QuestionList()
	if err != nil {
		return nil, err
	}

	return &InterviewDetail{
		MockID:        interview.MockID,
		JobPosition:   interview.JobPosition,
		JobDesc:       interview.JobDesc,
		JobExperience: interview.JobExperience,
		CreatedBy:     interview.CreatedBy,
		CreatedDate:   interview.CreatedDate,
		Questions:     questions,
	}, nil
}
