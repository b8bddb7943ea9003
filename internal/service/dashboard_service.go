package service

import (
	"mock_interview_backend/internal/util"
	"sort"
	"time"
)

// DashboardService 用户维度的面试历史：按面试聚合平均分，按创建日期倒序
type DashboardService struct {
	interviews InterviewStore
	answers    AnswerStore
	now        func() time.Time
}

func NewDashboardService(interviews InterviewStore, answers AnswerStore) *DashboardService {
	return &DashboardService{
		interviews: interviews,
		answers:    answers,
		now:        time.Now,
	}
}

type InterviewSummary struct {
	MockID        string `json:"mockId"`
	JobPosition   string `json:"jobPosition"`
	JobDesc       string `json:"jobDesc"`
	JobExperience string `json:"jobExperience"`
	CreatedDate   string `json:"createdDate"`
	CreatedLabel  string `json:"createdLabel"` // Today / Yesterday / N days ago ...
	AvgRating     string `json:"avgRating"`    // "N/A" 或一位小数
	AnsweredCount int    `json:"answeredCount"`
}

// GetInterviewHistory 列出一个用户的全部面试及其平均分。
// 排序按创建日期（天粒度）倒序，同一天保持查询顺序（稳定排序）。
func (s *DashboardService) GetInterviewHistory(userEmail string) ([]InterviewSummary, error) {
	interviews, err := s.interviews.ListByCreator(userEmail)
	if err != nil {
		return nil, err
	}

	type entry struct {
		summary InterviewSummary
		day     time.Time
	}

	now := s.now()
	entries := make([]entry, 0, len(interviews))

	for _, interview := range interviews {
		answers, err := s.answers.ListByMockID(interview.MockID)
		if err != nil {
			return nil, err
		}

		day, parseErr := util.ParseDay(interview.CreatedDate)
		if parseErr != nil {
			day = time.Time{} // 无法解析的日期当作最旧处理
		}

		entries = append(entries, entry{
			summary: InterviewSummary{
				MockID:        interview.MockID,
				JobPosition:   interview.JobPosition,
				JobDesc:       interview.JobDesc,
				JobExperience: interview.JobExperience,
				CreatedDate:   interview.CreatedDate,
				CreatedLabel:  util.RecencyLabel(interview.CreatedDate, now),
				AvgRating:     OverallRating(answers),
				AnsweredCount: len(answers),
			},
			day: day,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].day.After(entries[j].day)
	})

	summaries := make([]InterviewSummary, len(entries))
	for i, e := range entries {
		summaries[i] = e.summary
	}

	return summaries, nil
}
