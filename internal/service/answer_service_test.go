package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
)

func newAnswerService(interviews *fakeInterviewStore, answers *fakeAnswerStore, grader *fakeGrader) *AnswerService {
	cfg := &config.Config{}
	cfg.Grading.MinAnswerLength = 10
	svc := NewAnswerService(interviews, answers, grader, nil, cfg)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitRejectsShortAnswerWithoutGrading(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	cases := []string{
		"short",
		"   padded  ", // 去空格后不足最小长度
		"",
		"\t\n  \t",
		"这是一个短答案", // 7个字符21字节，长度按字符数算
	}
	for _, answer := range cases {
		_, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
			MockID: "mock-1",
			Answer: answer,
		})
		if !errors.Is(err, util.ErrAnswerTooShort) {
			t.Fatalf("%q: got %v, want ErrAnswerTooShort", answer, err)
		}
	}
	if grader.calls != 0 {
		t.Fatalf("grader called %d times for rejected answers", grader.calls)
	}
	if answers.upserts != 0 {
		t.Fatalf("store written %d times for rejected answers", answers.upserts)
	}
}

func TestSubmitAcceptsAnswerAtThreshold(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	// 正好10个字符，且两侧空白不计入长度
	result, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID: "mock-1",
		Answer: "  abcdefghij  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != repository.OutcomeCreated {
		t.Fatalf("unexpected outcome: %q", result.Outcome)
	}
	if result.Answer.UserAns != "abcdefghij" {
		t.Fatalf("answer not trimmed: %q", result.Answer.UserAns)
	}
}

func TestSubmitCountsMultibyteAnswerByCharacters(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	// 10个汉字，字节数远超阈值但字符数正好达标
	result, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID: "mock-1",
		Answer: "这个回答长度刚好达标",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != repository.OutcomeCreated {
		t.Fatalf("unexpected outcome: %q", result.Outcome)
	}
}

func TestSubmitRejectsNonOwner(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	_, err := svc.Submit(context.Background(), "other@example.com", SubmitAnswerRequest{
		MockID: "mock-1",
		Answer: strings.Repeat("a", 20),
	})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
	if grader.calls != 0 || answers.upserts != 0 {
		t.Fatalf("grader/store touched for foreign interview: %d/%d", grader.calls, answers.upserts)
	}
}

func TestSubmitUnknownInterview(t *testing.T) {
	t.Parallel()

	svc := newAnswerService(newFakeInterviewStore(), &fakeAnswerStore{}, &fakeGrader{})

	_, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID: "missing",
		Answer: strings.Repeat("a", 20),
	})
	if !errors.Is(err, util.ErrInterviewNotFound) {
		t.Fatalf("got %v, want ErrInterviewNotFound", err)
	}
}

func TestSubmitQuestionIndexOutOfRange(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	svc := newAnswerService(interviews, &fakeAnswerStore{}, &fakeGrader{})

	for _, idx := range []int{-1, 3, 100} {
		_, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
			MockID:        "mock-1",
			QuestionIndex: idx,
			Answer:        strings.Repeat("a", 20),
		})
		if !errors.Is(err, util.ErrQuestionOutOfRange) {
			t.Fatalf("index %d: got %v, want ErrQuestionOutOfRange", idx, err)
		}
	}
}

func TestSubmitGradingFailureWritesNothing(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{err: util.ErrGradingResponseMalformed}
	svc := newAnswerService(interviews, answers, grader)

	_, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID: "mock-1",
		Answer: strings.Repeat("a", 20),
	})
	if !errors.Is(err, util.ErrGradingResponseMalformed) {
		t.Fatalf("got %v, want grading error", err)
	}
	if answers.upserts != 0 {
		t.Fatalf("store written %d times after grading failure", answers.upserts)
	}
}

func TestSubmitResubmissionOverwritesInsteadOfDuplicating(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(3)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "5.0", Feedback: "first"}}
	svc := newAnswerService(interviews, answers, grader)

	first, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID:        "mock-1",
		QuestionIndex: 1,
		Answer:        "my first attempt at this question",
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.Outcome != repository.OutcomeCreated {
		t.Fatalf("first outcome: %q", first.Outcome)
	}

	grader.result = &GradingResult{Rating: "8.0", Feedback: "much better"}
	second, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID:        "mock-1",
		QuestionIndex: 1,
		Answer:        "my improved second attempt at this question",
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Outcome != repository.OutcomeUpdated {
		t.Fatalf("second outcome: %q", second.Outcome)
	}

	stored, _ := answers.ListByMockID("mock-1")
	if len(stored) != 1 {
		t.Fatalf("expected 1 record after resubmission, got %d", len(stored))
	}
	if stored[0].Rating != "8.0" || stored[0].Feedback != "much better" {
		t.Fatalf("record not overwritten: %+v", stored[0])
	}
}

func TestSubmitDifferentQuestionsCreateSeparateRecords(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(5)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	for idx := 0; idx < 5; idx++ {
		if _, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
			MockID:        "mock-1",
			QuestionIndex: idx,
			Answer:        strings.Repeat("a", 30),
		}); err != nil {
			t.Fatalf("submit %d: %v", idx, err)
		}
	}

	stored, _ := answers.ListByMockID("mock-1")
	if len(stored) != 5 {
		t.Fatalf("expected 5 records, got %d", len(stored))
	}
}

func TestSubmitStampsDayGranularityDate(t *testing.T) {
	t.Parallel()

	interviews := newFakeInterviewStore()
	interviews.Create(interviewWithQuestions(t, "mock-1", numberedQuestions(1)...))
	answers := &fakeAnswerStore{}
	grader := &fakeGrader{result: &GradingResult{Rating: "7.0", Feedback: "ok"}}
	svc := newAnswerService(interviews, answers, grader)

	result, err := svc.Submit(context.Background(), "user@example.com", SubmitAnswerRequest{
		MockID: "mock-1",
		Answer: strings.Repeat("a", 20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer.CreatedDate != "15-03-2026" {
		t.Fatalf("unexpected created date: %q", result.Answer.CreatedDate)
	}
}
