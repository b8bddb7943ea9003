package controller

import (
	"errors"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type RecordingController struct {
	Service *service.RecordingService
}

func NewRecordingController(svc *service.RecordingService) *RecordingController {
	return &RecordingController{Service: svc}
}

// UploadRecording godoc
// @Summary 上传作答录音
// @Description 保存一次作答的录音文件，返回的URL可随作答一起提交
// @Tags 作答
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   mockId path string true "面试ID"
// @Param   file formData file true "录音文件"
// @Success 200 {object} util.Response{data=service.RecordingInfo}
// @Failure 400 {object} util.Response "文件缺失或录音超长"
// @Router /api/interviews/{mockId}/recordings [post]
func (c *RecordingController) UploadRecording(ctx *gin.Context) {
	mockID := ctx.Param("mockId")

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "recording file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), "recording-"+filepath.Base(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	info, err := c.Service.Save(ctx.Request.Context(), mockID, file.Filename, tmpPath)
	if err != nil {
		if errors.Is(err, util.ErrRecordingTooLong) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, info)
}
