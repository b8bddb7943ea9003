package controller

import (
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GetInterviewHistory godoc
// @Summary 面试历史
// @Description 当前用户的历次面试，按创建日期倒序，附平均分与时间标签
// @Tags 面试
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.InterviewSummary}
// @Router /api/dashboard/interviews [get]
func (c *DashboardController) GetInterviewHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summaries, err := c.Service.GetInterviewHistory(claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summaries)
}
