package service

import (
	"context"
	"errors"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnswerService 一次作答的完整链路：前置校验 → 评分 → 幂等落库。
// 评分失败绝不落库；落库失败丢弃评分结果，重试时重新评分。
type AnswerService struct {
	interviews   InterviewStore
	answers      AnswerStore
	grader       Grader
	rdb          *redis.Client
	minAnswerLen int
	now          func() time.Time
}

func NewAnswerService(interviews InterviewStore, answers AnswerStore, grader Grader, rdb *redis.Client, cfg *config.Config) *AnswerService {
	return &AnswerService{
		interviews:   interviews,
		answers:      answers,
		grader:       grader,
		rdb:          rdb,
		minAnswerLen: cfg.Grading.MinAnswerLength,
		now:          time.Now,
	}
}

type SubmitAnswerRequest struct {
	MockID        string `json:"mockId" binding:"required"`
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	RecordingURL  string `json:"recordingUrl"`
}

type SubmitAnswerResult struct {
	Outcome repository.UpsertOutcome `json:"outcome"`
	Answer  model.UserAnswer         `json:"answer"`
}

// Submit 提交一道题的最终作答文本
func (s *AnswerService) Submit(ctx context.Context, userEmail string, req SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	answerText := strings.TrimSpace(req.Answer)
	// 最小长度按字符数而非字节数，多字节文字不能绕过校验
	if utf8.RuneCountInString(answerText) < s.minAnswerLen {
		return nil, util.ErrAnswerTooShort
	}

	interview, err := s.interviews.FindByMockID(req.MockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}

	if interview.CreatedBy != userEmail {
		return nil, util.ErrPermissionDenied
	}

	questions, err := interview.QuestionList()
	if err != nil {
		return nil, err
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(questions) {
		return nil, util.ErrQuestionOutOfRange
	}
	question := questions[req.QuestionIndex]

	// 评分必须先于落库完成，失败时不产生任何记录
	grade, err := s.grader.Grade(question.Question, answerText)
	if err != nil {
		return nil, err
	}

	record := model.UserAnswer{
		MockIDRef:    interview.MockID,
		Question:     question.Question,
		CorrectAns:   question.Answer,
		UserAns:      answerText,
		Feedback:     grade.Feedback,
		Rating:       grade.Rating,
		UserEmail:    userEmail,
		RecordingURL: req.RecordingURL,
		CreatedDate:  util.FormatDay(s.now()),
	}

	outcome, err := s.answers.Upsert(&record)
	if err != nil {
		return nil, err
	}

	s.invalidateFeedbackCache(ctx, interview.MockID)

	return &SubmitAnswerResult{Outcome: outcome, Answer: record}, nil
}

func (s *AnswerService) invalidateFeedbackCache(ctx context.Context, mockID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, feedbackCacheKey(mockID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate feedback cache", zap.String("mockId", mockID), zap.Error(err))
	}
}
