package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
)

func newFeedbackService(interviews *fakeInterviewStore, answers *fakeAnswerStore) *FeedbackService {
	cfg := &config.Config{}
	cfg.Grading.FeedbackCacheMinutes = 10
	return NewFeedbackService(interviews, answers, nil, cfg)
}

func TestGetInterviewFeedbackMaterializesPlaceholderRows(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{records: []model.UserAnswer{
		{MockIDRef: "mock-1", Question: "Question 2", UserAns: "my answer", Feedback: "decent", Rating: "6.0"},
	}}
	svc := newFeedbackService(interviews, answers)

	feedback, err := svc.GetInterviewFeedback(context.Background(), "mock-1", "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if feedback.TotalQuestions != 3 || feedback.AnsweredCount != 1 {
		t.Fatalf("unexpected counts: total=%d answered=%d", feedback.TotalQuestions, feedback.AnsweredCount)
	}
	if len(feedback.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(feedback.Rows))
	}

	unanswered := feedback.Rows[0]
	if unanswered.Answered {
		t.Fatalf("row 0 should be unanswered")
	}
	if unanswered.UserAns != "Not Answered" || unanswered.Feedback != "No feedback available" || unanswered.Rating != model.RatingNA {
		t.Fatalf("unexpected placeholder row: %+v", unanswered)
	}

	answeredRow := feedback.Rows[1]
	if !answeredRow.Answered || answeredRow.UserAns != "my answer" || answeredRow.Rating != "6.0" {
		t.Fatalf("unexpected answered row: %+v", answeredRow)
	}
}

func TestGetInterviewFeedbackRowsFollowQuestionOrder(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(4)...))
	// 乱序作答不影响行顺序
	answers := &fakeAnswerStore{records: []model.UserAnswer{
		{MockIDRef: "mock-1", Question: "Question 4", UserAns: "d", Rating: "9.0"},
		{MockIDRef: "mock-1", Question: "Question 1", UserAns: "a", Rating: "7.0"},
	}}
	svc := newFeedbackService(interviews, answers)

	feedback, err := svc.GetInterviewFeedback(context.Background(), "mock-1", "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, row := range feedback.Rows {
		got = append(got, row.Question)
	}
	want := []string{"Question 1", "Question 2", "Question 3", "Question 4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("row order %v, want %v", got, want)
	}
}

func TestGetInterviewFeedbackRejectsNonOwner(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	svc := newFeedbackService(interviews, &fakeAnswerStore{})

	_, err := svc.GetInterviewFeedback(context.Background(), "mock-1", "other@example.com")
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestGetInterviewFeedbackUnknownInterview(t *testing.T) {
	t.Parallel()

	svc := newFeedbackService(newFakeInterviewStore(), &fakeAnswerStore{})

	_, err := svc.GetInterviewFeedback(context.Background(), "missing", "user@example.com")
	if !errors.Is(err, util.ErrInterviewNotFound) {
		t.Fatalf("got %v, want ErrInterviewNotFound", err)
	}
}

func TestGetInterviewFeedbackIsIdempotentWithoutWrites(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{records: []model.UserAnswer{
		{MockIDRef: "mock-1", Question: "Question 1", UserAns: "a", Rating: "8.0"},
	}}
	svc := newFeedbackService(interviews, answers)

	first, err := svc.GetInterviewFeedback(context.Background(), "mock-1", "user@example.com")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetInterviewFeedback(context.Background(), "mock-1", "user@example.com")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated aggregation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestOverallRating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		ratings []string
		want    string
	}{
		{"no answers", nil, model.RatingNA},
		{"single", []string{"7.0"}, "7.0"},
		{"average over answered only", []string{"8.0", "6.0"}, "7.0"},
		{"skips sentinel and empty", []string{"8.0", model.RatingNA, "", "6.0"}, "7.0"},
		{"skips unparseable", []string{"good", "9.0"}, "9.0"},
		{"rounds to one decimal", []string{"7.0", "8.0", "9.0", "7.0"}, "7.8"},
		{"all unusable", []string{"", model.RatingNA}, model.RatingNA},
	}
	for _, tc := range cases {
		answers := make([]model.UserAnswer, len(tc.ratings))
		for i, r := range tc.ratings {
			answers[i] = model.UserAnswer{Rating: r}
		}
		if got := OverallRating(answers); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
