package service

import (
	"testing"
	"time"

	"mock_interview_backend/internal/model"
)

func addInterview(interviews *fakeInterviewStore, mockID, createdBy, createdDate string) {
	interviews.Create(&model.MockInterview{
		MockID:      mockID,
		JobPosition: "Backend Engineer",
		Questions:   "[]",
		CreatedBy:   createdBy,
		CreatedDate: createdDate,
	})
}

func TestGetInterviewHistoryOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-old", "user@example.com", "01-01-2026")
	addInterview(interviews, "mock-new", "user@example.com", "14-03-2026")
	addInterview(interviews, "mock-mid", "user@example.com", "10-02-2026")

	svc := NewDashboardService(interviews, &fakeAnswerStore{})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }

	history, err := svc.GetInterviewHistory("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 interviews, got %d", len(history))
	}
	if history[0].MockID != "mock-new" || history[1].MockID != "mock-mid" || history[2].MockID != "mock-old" {
		t.Fatalf("unexpected order: %s, %s, %s", history[0].MockID, history[1].MockID, history[2].MockID)
	}
}

func TestGetInterviewHistoryFiltersByCreator(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-mine", "me@example.com", "01-03-2026")
	addInterview(interviews, "mock-other", "other@example.com", "02-03-2026")

	svc := NewDashboardService(interviews, &fakeAnswerStore{})

	history, err := svc.GetInterviewHistory("me@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].MockID != "mock-mine" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestGetInterviewHistoryAveragesAnsweredOnly(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-1", "user@example.com", "01-03-2026")

	// 5道题只答了2道，平均只除以已作答数
	answers := &fakeAnswerStore{records: []model.UserAnswer{
		{MockIDRef: "mock-1", Question: "Question 1", Rating: "8.0"},
		{MockIDRef: "mock-1", Question: "Question 2", Rating: "6.0"},
	}}

	svc := NewDashboardService(interviews, answers)

	history, err := svc.GetInterviewHistory("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history[0].AvgRating != "7.0" {
		t.Fatalf("unexpected average: %q", history[0].AvgRating)
	}
	if history[0].AnsweredCount != 2 {
		t.Fatalf("unexpected answered count: %d", history[0].AnsweredCount)
	}
}

func TestGetInterviewHistoryWithoutAnswersShowsNA(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-1", "user@example.com", "01-03-2026")

	svc := NewDashboardService(interviews, &fakeAnswerStore{})

	history, err := svc.GetInterviewHistory("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history[0].AvgRating != model.RatingNA {
		t.Fatalf("unexpected average: %q", history[0].AvgRating)
	}
}

func TestGetInterviewHistoryLabelsRecency(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-today", "user@example.com", "15-03-2026")
	addInterview(interviews, "mock-yesterday", "user@example.com", "14-03-2026")

	svc := NewDashboardService(interviews, &fakeAnswerStore{})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC) }

	history, err := svc.GetInterviewHistory("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history[0].CreatedLabel != "Today" {
		t.Fatalf("unexpected label: %q", history[0].CreatedLabel)
	}
	if history[1].CreatedLabel != "Yesterday" {
		t.Fatalf("unexpected label: %q", history[1].CreatedLabel)
	}
}

func TestGetInterviewHistoryUnparseableDateSortsOldest(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	addInterview(interviews, "mock-bad", "user@example.com", "not-a-date")
	addInterview(interviews, "mock-good", "user@example.com", "01-01-2020")

	svc := NewDashboardService(interviews, &fakeAnswerStore{})

	history, err := svc.GetInterviewHistory("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history[0].MockID != "mock-good" || history[1].MockID != "mock-bad" {
		t.Fatalf("unexpected order: %s, %s", history[0].MockID, history[1].MockID)
	}
	// 无法解析的日期标签原样透传
	if history[1].CreatedLabel != "not-a-date" {
		t.Fatalf("unexpected label: %q", history[1].CreatedLabel)
	}
}
