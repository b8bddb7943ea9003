package service

import (
	"context"
	"fmt"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"path/filepath"
)

// RecordingService 作答录音的存档：探测时长、校验上限、转存到对象存储。
// 录音只作为附件保存，转写由客户端完成。
type RecordingService struct {
	storage    *StorageService
	maxSeconds int
}

func NewRecordingService(storage *StorageService, cfg *config.Config) *RecordingService {
	return &RecordingService{
		storage:    storage,
		maxSeconds: cfg.Grading.RecordingMaxSeconds,
	}
}

type RecordingInfo struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"` // 秒
	Size     int64   `json:"size"`
}

// Save 把已写入临时路径的录音文件存档，返回可引用的URL
func (s *RecordingService) Save(ctx context.Context, mockID string, originalName string, tmpPath string) (*RecordingInfo, error) {
	info, err := util.GetAudioInfo(tmpPath)
	if err != nil {
		return nil, err
	}
	if info.Duration > float64(s.maxSeconds) {
		return nil, util.ErrRecordingTooLong
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".webm"
	}
	filename := fmt.Sprintf("recordings/%s/%s%s", mockID, model.GenerateUUID(), ext)

	url, err := s.storage.UploadFile(ctx, filename, tmpPath, "audio/"+ext[1:])
	if err != nil {
		return nil, err
	}

	return &RecordingInfo{
		URL:      url,
		Duration: info.Duration,
		Size:     info.Size,
	}, nil
}
