package app

import (
	"mock_interview_backend/docs"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 面试
		authGroup.POST("/interviews", c.interview.CreateInterview)
		authGroup.GET("/interviews/:mockId", c.interview.GetInterview)
		authGroup.GET("/interviews/:mockId/feedback", c.feedback.GetInterviewFeedback)
		authGroup.POST("/interviews/:mockId/recordings", c.recording.UploadRecording)
		authGroup.GET("/dashboard/interviews", c.dashboard.GetInterviewHistory)

		// 作答
		authGroup.POST("/answers", c.answer.SubmitAnswer)

		// 实时转写
		authGroup.POST("/transcripts/:sessionId/reset", c.transcript.ResetTranscript)
		authGroup.POST("/transcripts/:sessionId/append", c.transcript.AppendTranscript)
		authGroup.GET("/transcripts/:sessionId", c.transcript.GetTranscript)
	}
}
