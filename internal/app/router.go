package app

import (
	"thinking_edu_backend/docs"
	"thinking_edu_backend/internal/middleware"
	"thinking_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/guest", c.auth.Guest)
		public.GET("/categories", c.problem.Categories)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		// 题库
		authGroup.GET("/problems", c.problem.List)
		authGroup.GET("/problems/:id", c.problem.Get)

		// 答题
		authGroup.POST("/problems/:id/attempts", c.attempt.SubmitAnswer)
		authGroup.POST("/problems/:id/hints", c.attempt.RevealHint)
		authGroup.POST("/problems/:id/followup", c.attempt.GenerateFollowUp)

		// 学习会话
		authGroup.GET("/sessions/:id", c.session.Get)
		authGroup.PUT("/sessions/:id", c.session.Upsert)
		authGroup.GET("/sessions/:id/problems/:pid/thoughts", c.session.GetThoughts)
		authGroup.PUT("/sessions/:id/problems/:pid/thoughts", c.session.ReplaceThoughts)
		authGroup.GET("/sessions/:id/problems/:pid/chat", c.session.GetChat)
		authGroup.PUT("/sessions/:id/problems/:pid/chat", c.session.ReplaceChat)

		// 用户档案
		authGroup.GET("/users/me", c.user.Me)
		authGroup.PUT("/users/me", c.user.UpdateMe)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)

		// 成就/统计
		authGroup.GET("/achievements", c.achievement.GetUserAchievements)
		authGroup.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)
		authGroup.GET("/stats", c.stats.GetUserStats)

		// 每日目标
		authGroup.GET("/goals", c.goal.List)
		authGroup.POST("/goals", c.goal.Create)
		authGroup.PUT("/goals/:id/progress", c.goal.UpdateProgress)
	}
}
