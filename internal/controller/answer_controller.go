package controller

import (
	"errors"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	Service *service.AnswerService
}

func NewAnswerController(svc *service.AnswerService) *AnswerController {
	return &AnswerController{Service: svc}
}

// SubmitAnswer godoc
// @Summary 提交作答
// @Description 提交一道题的最终作答文本，评分通过后幂等写入作答记录
// @Tags 作答
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitAnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 400 {object} util.Response "答案过短或题目索引无效"
// @Failure 403 {object} util.Response "非创建者"
// @Failure 404 {object} util.Response "面试不存在"
// @Failure 409 {object} util.Response "存储一致性被破坏"
// @Failure 502 {object} util.Response "评分响应不合法"
// @Router /api/answers [post]
func (c *AnswerController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), claims.Email, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAnswerTooShort):
			util.BadRequest(ctx, "Please provide a longer answer before submitting")
		case errors.Is(err, util.ErrQuestionOutOfRange):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrInterviewNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrGradingResponseMalformed), errors.Is(err, util.ErrGradingRatingOutOfRange):
			util.Error(ctx, 502, "Error processing feedback. Please try again.")
		case errors.Is(err, util.ErrDuplicateAnswerRecord):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
