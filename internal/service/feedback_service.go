package service

import (
	"context"
	"encoding/json"
	"errors"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const feedbackCachePrefix = "interview_feedback:"

func feedbackCacheKey(mockID string) string {
	return feedbackCachePrefix + mockID
}

// FeedbackService 面试详情汇总：固定题目序列和已有作答记录的连接视图
type FeedbackService struct {
	interviews InterviewStore
	answers    AnswerStore
	rdb        *redis.Client
	cacheTTL   time.Duration
}

func NewFeedbackService(interviews InterviewStore, answers AnswerStore, rdb *redis.Client, cfg *config.Config) *FeedbackService {
	return &FeedbackService{
		interviews: interviews,
		answers:    answers,
		rdb:        rdb,
		cacheTTL:   time.Duration(cfg.Grading.FeedbackCacheMinutes) * time.Minute,
	}
}

// FeedbackRow 详情视图中的一行，与固定题目一一对应
type FeedbackRow struct {
	Question     string `json:"question"`
	Difficulty   string `json:"difficulty"`
	CorrectAns   string `json:"correctAns"`
	UserAns      string `json:"userAns"`
	Feedback     string `json:"feedback"`
	Rating       string `json:"rating"`
	RecordingURL string `json:"recordingUrl,omitempty"`
	Answered     bool   `json:"answered"`
}

type InterviewFeedback struct {
	MockID         string        `json:"mockId"`
	JobPosition    string        `json:"jobPosition"`
	OverallRating  string        `json:"overallRating"` // "N/A" 或一位小数
	TotalQuestions int           `json:"totalQuestions"`
	AnsweredCount  int           `json:"answeredCount"`
	Rows           []FeedbackRow `json:"rows"`
}

// GetInterviewFeedback 汇总一场面试：每道题一行，未作答的题目物化为
// 占位行；整体评分为已作答题目的平均分。仅创建者可见。无写入时重复
// 计算结果一致，结果短期缓存，作答提交时失效。
func (s *FeedbackService) GetInterviewFeedback(ctx context.Context, mockID string, callerEmail string) (*InterviewFeedback, error) {
	interview, err := s.interviews.FindByMockID(mockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}

	// 权限校验在缓存读取之前，缓存不能用来绕过归属检查
	if interview.CreatedBy != callerEmail {
		return nil, util.ErrPermissionDenied
	}

	if cached := s.fromCache(ctx, mockID); cached != nil {
		return cached, nil
	}

	questions, err := interview.QuestionList()
	if err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByMockID(mockID)
	if err != nil {
		return nil, err
	}

	answered := make(map[string]model.UserAnswer, len(answers))
	for _, a := range answers {
		answered[a.Question] = a
	}

	rows := make([]FeedbackRow, len(questions))
	for i, q := range questions {
		row := FeedbackRow{
			Question:   q.Question,
			Difficulty: q.Difficulty,
			CorrectAns: q.Answer,
			UserAns:    "Not Answered",
			Feedback:   "No feedback available",
			Rating:     model.RatingNA,
		}
		if a, ok := answered[q.Question]; ok {
			row.UserAns = a.UserAns
			row.Feedback = a.Feedback
			row.Rating = a.Rating
			row.RecordingURL = a.RecordingURL
			row.Answered = true
		}
		rows[i] = row
	}

	feedback := &InterviewFeedback{
		MockID:         interview.MockID,
		JobPosition:    interview.JobPosition,
		OverallRating:  OverallRating(answers),
		TotalQuestions: len(questions),
		AnsweredCount:  len(answered),
		Rows:           rows,
	}

	s.toCache(ctx, mockID, feedback)
	return feedback, nil
}

// OverallRating 已作答题目评分的平均值，保留一位小数；
// 没有可用评分时返回 "N/A"。详情视图与历史视图共用同一个公式。
func OverallRating(answers []model.UserAnswer) string {
	sum := 0.0
	count := 0
	for _, a := range answers {
		if a.Rating == "" || a.Rating == model.RatingNA {
			continue
		}
		r, err := strconv.ParseFloat(a.Rating, 64)
		if err != nil {
			continue
		}
		sum += r
		count++
	}
	if count == 0 {
		return model.RatingNA
	}
	return strconv.FormatFloat(sum/float64(count), 'f', 1, 64)
}

func (s *FeedbackService) fromCache(ctx context.Context, mockID string) *InterviewFeedback {
	if s.rdb == nil {
		return nil
	}
	val, err := s.rdb.Get(ctx, feedbackCacheKey(mockID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("feedback cache read failed", zap.Error(err))
		}
		return nil
	}
	var feedback InterviewFeedback
	if err := json.Unmarshal([]byte(val), &feedback); err != nil {
		return nil
	}
	return &feedback
}

func (s *FeedbackService) toCache(ctx context.Context, mockID string, feedback *InterviewFeedback) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(feedback)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, feedbackCacheKey(mockID), data, s.cacheTTL).Err(); err != nil {
		logger.Log.Warn("feedback cache write failed", zap.Error(err))
	}
}
