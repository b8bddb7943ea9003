package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"

	"gorm.io/gorm"
)

// 内存实现的窄接口，测试用

type fakeInterviewStore struct {
	interviews map[string]*model.MockInterview
	created    []*model.MockInterview
}

func newFakeInterviewStore() *fakeInterviewStore {
	return &fakeInterviewStore{interviews: make(map[string]*model.MockInterview)}
}

func (f *fakeInterviewStore) Create(interview *model.MockInterview) error {
	f.interviews[interview.MockID] = interview
	f.created = append(f.created, interview)
	return nil
}

func (f *fakeInterviewStore) FindByMockID(mockID string) (*model.MockInterview, error) {
	interview, ok := f.interviews[mockID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return interview, nil
}

func (f *fakeInterviewStore) ListByCreator(email string) ([]model.MockInterview, error) {
	var out []model.MockInterview
	for _, m := range f.created {
		if m.CreatedBy == email {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeAnswerStore struct {
	records []model.UserAnswer
	upserts int
}

func answerKey(mockID, question string) string {
	return mockID + "|" + question
}

func (f *fakeAnswerStore) Upsert(answer *model.UserAnswer) (repository.UpsertOutcome, error) {
	f.upserts++
	for i, r := range f.records {
		if answerKey(r.MockIDRef, r.Question) == answerKey(answer.MockIDRef, answer.Question) {
			f.records[i] = *answer
			return repository.OutcomeUpdated, nil
		}
	}
	f.records = append(f.records, *answer)
	return repository.OutcomeCreated, nil
}

func (f *fakeAnswerStore) ListByMockID(mockID string) ([]model.UserAnswer, error) {
	var out []model.UserAnswer
	for _, r := range f.records {
		if r.MockIDRef == mockID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGrader struct {
	result *GradingResult
	err    error
	calls  int
}

func (f *fakeGrader) Grade(question, answer string) (*GradingResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Chat(system, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func interviewWithQuestions(t *testing.T, mockID string, questions ...model.InterviewQuestion) *model.MockInterview {
	t.Helper()
	blob, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	return &model.MockInterview{
		MockID:      mockID,
		JobPosition: "Backend Engineer",
		Questions:   string(blob),
		CreatedBy:   "user@example.com",
		CreatedDate: "01-01-2026",
	}
}

func numberedQuestions(n int) []model.InterviewQuestion {
	qs := make([]model.InterviewQuestion, n)
	for i := range qs {
		qs[i] = model.InterviewQuestion{
			Question:   fmt.Sprintf("Question %d", i+1),
			Answer:     fmt.Sprintf("Reference answer %d", i+1),
			Difficulty: model.DifficultyMedium,
		}
	}
	return qs
}
