package service

import (
	"encoding/json"
	"fmt"
	"math"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/monitoring"
	"strconv"
	"strings"
	"time"
)

// GradingService 把一道题的作答交给大模型评分，并对返回内容
// 做严格的契约校验：模型输出一律当作不可信输入处理。
type GradingService struct {
	ai ChatClient
}

func NewGradingService(ai ChatClient) *GradingService {
	return &GradingService{ai: ai}
}

// GradingResult 规范化后的评分结果
type GradingResult struct {
	Rating   string `json:"rating"` // 一位小数的字符串，如 "7.0"
	Feedback string `json:"feedback"`
}

const gradingSystemPrompt = "You are an experienced technical interviewer evaluating a candidate's spoken answer in a mock interview."

func buildGradingPrompt(question, answer string) string {
	return fmt.Sprintf(`Question: %s
User Answer: %s

Please evaluate the answer and provide:
1. A rating out of 10 (as a number between 0 and 10)
2. Detailed feedback on the answer (3-5 lines)

Format your response as a JSON object with exactly these fields:
{
  "rating": "number between 0-10",
  "feedback": "your feedback here"
}`, question, answer)
}

// Grade 请求评分并解析校验。调用之间不保留任何状态，失败不重试，
// 重试与否交给调用方（评分按次计费）。
func (s *GradingService) Grade(question, answer string) (*GradingResult, error) {
	start := time.Now()

	raw, err := s.ai.Chat(gradingSystemPrompt, buildGradingPrompt(question, answer))
	if err != nil {
		monitoring.GradingRequests.WithLabelValues("upstream_error").Inc()
		return nil, err
	}

	result, err := ParseGradingReply(raw)
	if err != nil {
		monitoring.GradingRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}

	monitoring.GradingRequests.WithLabelValues("ok").Inc()
	monitoring.GradingDuration.Observe(time.Since(start).Seconds())
	return result, nil
}

type gradingReply struct {
	Rating   json.RawMessage `json:"rating"`
	Feedback string          `json:"feedback"`
}

// ParseGradingReply 从模型原始文本到评分结果的纯函数：
// 去掉可选的代码围栏，解析 JSON，校验 rating 是 [0,10] 内的有限数
// （字符串或数字形式均可），再规范化为一位小数的字符串。
// 任何一步失败都不产生部分结果。
func ParseGradingReply(raw string) (*GradingResult, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var reply gradingReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, util.ErrGradingResponseMalformed
	}

	rating, err := parseRating(reply.Rating)
	if err != nil {
		return nil, err
	}

	return &GradingResult{
		Rating:   strconv.FormatFloat(rating, 'f', 1, 64),
		Feedback: reply.Feedback,
	}, nil
}

func parseRating(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, util.ErrGradingRatingOutOfRange
	}

	text := strings.TrimSpace(string(raw))
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, util.ErrGradingRatingOutOfRange
		}
		text = strings.TrimSpace(s)
	}

	rating, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, util.ErrGradingRatingOutOfRange
	}
	if rating < 0 || rating > 10 {
		return 0, util.ErrGradingRatingOutOfRange
	}
	return rating, nil
}
