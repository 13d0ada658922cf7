package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assignhub/backend/config"
	"assignhub/backend/internal/api/handler"
	"assignhub/backend/internal/api/middleware"
	"assignhub/backend/internal/model"
	"assignhub/backend/pkg/jwt"
	"assignhub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Storage.MaxUpload))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 提交文件静态访问 ──
	r.Static(cfg.Storage.MediaURL, cfg.Storage.MediaRoot)

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证；登录注册加限速）
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/token/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.POST("", middleware.RoleAuth(model.RoleProfessor), h.Course.CreateCourse)
				courses.POST("/join", h.Course.JoinCourse)
				courses.GET("/:id", h.Course.GetCourse)
				courses.PUT("/:id", middleware.RoleAuth(model.RoleProfessor), h.Course.UpdateCourse)
				courses.PATCH("/:id", middleware.RoleAuth(model.RoleProfessor), h.Course.UpdateCourse)
				courses.DELETE("/:id", middleware.RoleAuth(model.RoleProfessor), h.Course.DeleteCourse)
				courses.POST("/:id/students", middleware.RoleAuth(model.RoleProfessor), h.Course.SetStudents)
			}

			// 作业模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.POST("", middleware.RoleAuth(model.RoleProfessor), h.Assignment.CreateAssignment)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.PUT("/:id", middleware.RoleAuth(model.RoleProfessor), h.Assignment.UpdateAssignment)
				assignments.PATCH("/:id", middleware.RoleAuth(model.RoleProfessor), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", middleware.RoleAuth(model.RoleProfessor), h.Assignment.DeleteAssignment)
				assignments.POST("/:id/submit", middleware.RoleAuth(model.RoleStudent), h.Submission.Submit)
				assignments.GET("/:id/submissions", middleware.RoleAuth(model.RoleProfessor), h.Submission.ListByAssignment)
				assignments.GET("/:id/submissions/export", middleware.RoleAuth(model.RoleProfessor), h.Export.ExportSubmissions)
			}
			authorized.GET("/my-assignments/calendar", h.Assignment.CalendarFeed)

			// 提交模块
			submissions := authorized.Group("/submissions")
			{
				submissions.GET("/:id", h.Submission.GetSubmission)
				submissions.PATCH("/:id", middleware.RoleAuth(model.RoleStudent), h.Submission.UpdateSubmission)
				submissions.PATCH("/:id/grade", middleware.RoleAuth(model.RoleProfessor), h.Submission.GradeSubmission)
			}
			authorized.GET("/my-submissions", middleware.RoleAuth(model.RoleStudent), h.Submission.ListMine)

			// 公告模块
			notices := authorized.Group("/notices")
			{
				notices.GET("", h.Notice.ListNotices)
				notices.GET("/:id", h.Notice.GetNotice)
				notices.POST("", middleware.RoleAuth(model.RoleProfessor, model.RoleAdmin), h.Notice.CreateNotice)
				notices.PUT("/:id", middleware.RoleAuth(model.RoleProfessor, model.RoleAdmin), h.Notice.UpdateNotice)
				notices.PATCH("/:id", middleware.RoleAuth(model.RoleProfessor, model.RoleAdmin), h.Notice.UpdateNotice)
				notices.DELETE("/:id", middleware.RoleAuth(model.RoleProfessor, model.RoleAdmin), h.Notice.DeleteNotice)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}

			// 管理模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/stats", h.Admin.Stats)
				admin.GET("/users", h.Admin.ListUsers)
				admin.PATCH("/users/:id", h.Admin.UpdateUserRole)
				admin.GET("/logs", h.Admin.ListLogs)
			}
		}
	}

	return r
}
