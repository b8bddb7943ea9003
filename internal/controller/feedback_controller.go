package controller

import (
	"errors"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Service *service.FeedbackService
}

func NewFeedbackController(svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{Service: svc}
}

// GetInterviewFeedback godoc
// @Summary 面试反馈详情
// @Description 每道题一行的反馈视图，未作答题目物化为占位行，附整体评分
// @Tags 反馈
// @Produce  json
// @Security ApiKeyAuth
// @Param   mockId path string true "面试ID"
// @Success 200 {object} util.Response{data=service.InterviewFeedback}
// @Failure 403 {object} util.Response "非创建者"
// @Failure 404 {object} util.Response "面试不存在"
// @Router /api/interviews/{mockId}/feedback [get]
func (c *FeedbackController) GetInterviewFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	mockID := ctx.Param("mockId")

	feedback, err := c.Service.GetInterviewFeedback(ctx.Request.Context(), mockID, claims.Email)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInterviewNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, feedback)
}
