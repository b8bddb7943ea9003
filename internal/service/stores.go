package service

import (
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
)

// 服务层依赖以窄接口注入，repository 的具体类型实现它们，
// 测试时可替换为内存实现。

type InterviewStore interface {
	Create(interview *model.MockInterview) error
	FindByMockID(mockID string) (*model.MockInterview, error)
	ListByCreator(email string) ([]model.MockInterview, error)
}

type AnswerStore interface {
	Upsert(answer *model.UserAnswer) (repository.UpsertOutcome, error)
	ListByMockID(mockID string) ([]model.UserAnswer, error)
}

// Grader 把一组 (题目, 答案) 变成规范化的评分结果
type Grader interface {
	Grade(question, answer string) (*GradingResult, error)
}

// ChatClient 对话式大模型客户端
type ChatClient interface {
	Chat(system string, prompt string) (string, error)
}
