package controller

import (
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranscriptController struct {
	Service *service.TranscriptService
}

func NewTranscriptController(svc *service.TranscriptService) *TranscriptController {
	return &TranscriptController{Service: svc}
}

// ResetTranscript godoc
// @Summary 重置转写会话
// @Description 开始新的录音前清空会话的累积文本
// @Tags 转写
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/transcripts/{sessionId}/reset [post]
func (c *TranscriptController) ResetTranscript(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	c.Service.Reset(sessionID)
	util.Success(ctx, gin.H{"transcript": ""})
}

type AppendTranscriptRequest struct {
	Results []service.PartialResult `json:"results" binding:"required"`
}

// AppendTranscript godoc
// @Summary 追加部分转写结果
// @Description 追加识别器的部分结果，返回当前实时文本
// @Tags 转写
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path string true "会话ID"
// @Param   body body AppendTranscriptRequest true "部分结果"
// @Success 200 {object} util.Response{data=object}
// @Router /api/transcripts/{sessionId}/append [post]
func (c *TranscriptController) AppendTranscript(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	var req AppendTranscriptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	current := c.Service.Append(sessionID, req.Results)
	util.Success(ctx, gin.H{"transcript": current})
}

// GetTranscript godoc
// @Summary 当前转写文本
// @Tags 转写
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/transcripts/{sessionId} [get]
func (c *TranscriptController) GetTranscript(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	util.Success(ctx, gin.H{"transcript": c.Service.Current(sessionID)})
}
