package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInterviewNotFound = errors.New("interview not found")
	ErrPermissionDenied  = errors.New("permission denied")

	// 提交前置校验
	ErrAnswerTooShort     = errors.New("answer too short, please provide a longer answer")
	ErrQuestionOutOfRange = errors.New("question index out of range")

	// 大模型响应契约
	ErrGradingResponseMalformed = errors.New("grading response is not valid JSON")
	ErrGradingRatingOutOfRange  = errors.New("grading rating is not a number between 0 and 10")
	ErrQuestionGenMalformed     = errors.New("question generation response is not a valid question list")

	// 存储一致性契约：同一 (mockIdRef, question) 出现多条记录
	ErrDuplicateAnswerRecord = errors.New("duplicate answer records for one question")

	ErrRecordingTooLong = errors.New("recording exceeds the allowed duration")
)
