package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vaibhav992/backend/config"
	"github.com/Vaibhav992/backend/internal/api/handler"
	"github.com/Vaibhav992/backend/internal/api/middleware"
	"github.com/Vaibhav992/backend/pkg/jwt"
	"github.com/Vaibhav992/backend/pkg/redis"
)

// 请求体上限 1MB，提交内容仅为 JSON 元数据（文件走对象存储 URL）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录/注册受速率限制保护）
		auth := v1.Group("/auth")
		authLimit := middleware.RateLimit(rdb, 10, time.Minute)
		{
			auth.POST("/signup", authLimit, h.Auth.Signup)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 作业模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", middleware.RoleAuth("admin", "student"), h.Assignment.ListAssignments)
				assignments.GET("/:id", middleware.RoleAuth("admin", "student"), h.Assignment.GetAssignment)
				assignments.POST("", middleware.RoleAuth("admin"), h.Assignment.CreateAssignment)
				assignments.PUT("/:id", middleware.RoleAuth("admin"), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", middleware.RoleAuth("admin"), h.Assignment.DeleteAssignment)
			}

			// 提交模块
			authorized.POST("/submit/:assignmentId", middleware.RoleAuth("student"), h.Submission.Submit)
			authorized.GET("/my-submissions", middleware.RoleAuth("student"), h.Submission.ListMine)
			authorized.GET("/submissions/:assignmentId", middleware.RoleAuth("admin"), h.Submission.ListByAssignment)
			authorized.PATCH("/grade/:submissionId", middleware.RoleAuth("admin"), h.Submission.Grade)

			// 统计模块
			authorized.GET("/stats/overview", middleware.RoleAuth("admin"), h.Stats.Overview)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/submissions", middleware.RoleAuth("admin"), h.Export.ExportSubmissions)
				export.GET("/deadlines.ics", middleware.RoleAuth("admin", "student"), h.Export.DeadlineCalendar)
			}
		}
	}

	return r
}
