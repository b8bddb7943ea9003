package service

import (
	"strings"
	"sync"
	"time"
)

// PartialResult 一条识别器的部分结果
type PartialResult struct {
	Transcript string `json:"transcript"`
}

type transcriptSession struct {
	fragments []string
	lastSeen  time.Time
}

// TranscriptService 录音期间的实时转写累积器，按会话隔离。
// 当前文本定义为本次会话所有片段按序空格拼接，不做去重，
// 片段顺序由上游识别器保证。仅存内存，对持久层无影响。
type TranscriptService struct {
	mu       sync.Mutex
	sessions map[string]*transcriptSession
	now      func() time.Time
}

func NewTranscriptService() *TranscriptService {
	return &TranscriptService{
		sessions: make(map[string]*transcriptSession),
		now:      time.Now,
	}
}

// Reset 清空会话已累积的文本。开始新的录音前必须调用，
// 避免上一段录音的残留片段混进新的作答。
func (s *TranscriptService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &transcriptSession{lastSeen: s.now()}
}

// Append 追加一批部分结果，返回追加后的当前文本
func (s *TranscriptService) Append(sessionID string, results []PartialResult) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &transcriptSession{}
		s.sessions[sessionID] = sess
	}
	for _, r := range results {
		sess.fragments = append(sess.fragments, r.Transcript)
	}
	sess.lastSeen = s.now()
	return strings.Join(sess.fragments, " ")
}

// Current 当前会话的实时文本
func (s *TranscriptService) Current(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ""
	}
	return strings.Join(sess.fragments, " ")
}

// PruneStale 清理长时间无活动的会话，由后台定时任务调用
func (s *TranscriptService) PruneStale(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	cutoff := s.now().Add(-maxAge)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}
