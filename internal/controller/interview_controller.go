package controller

import (
	"errors"
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	Service *service.InterviewService
}

func NewInterviewController(svc *service.InterviewService) *InterviewController {
	return &InterviewController{Service: svc}
}

// CreateInterview godoc
// @Summary 创建面试
// @Description 按岗位信息生成固定的题目序列并创建一场面试
// @Tags 面试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateInterviewRequest true "岗位信息"
// @Success 201 {object} util.Response{data=model.MockInterview}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "题目生成失败"
// @Router /api/interviews [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	interview, err := c.Service.CreateInterview(claims.Email, req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionGenMalformed) {
			util.Error(ctx, 502, "题目生成失败，请重试")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, interview)
}

// GetInterview godoc
// @Summary 获取面试详情
// @Description 返回一场面试的岗位信息与固定题目序列
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Param   mockId path string true "面试ID"
// @Success 200 {object} util.Response{data=service.InterviewDetail}
// @Failure 403 {object} util.Response "非创建者"
// @Failure 404 {object} util.Response "面试不存在"
// @Router /api/interviews/{mockId} [get]
func (c *InterviewController) GetInterview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	mockID := ctx.Param("mockId")

	detail, err := c.Service.GetInterview(mockID, claims.Email)
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

	util.Success(ctx, detail)
}
