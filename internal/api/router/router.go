package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raalc/backend/config"
	"raalc/backend/internal/api/handler"
	"raalc/backend/internal/api/middleware"
	"raalc/backend/internal/model"
	"raalc/backend/pkg/jwt"
	"raalc/backend/pkg/redis"
)

// 全局请求体上限
const maxBodyBytes = 1 << 20 // 1MB

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
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Attendance.LoginRateLimit, cfg.Attendance.LoginRateWindow),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentAgent)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 考勤模块：打卡与休息（坐席本人）
			attendance := authorized.Group("/attendance")
			{
				checkinLimit := middleware.RateLimit(rdb,
					cfg.Attendance.CheckinRateLimit, cfg.Attendance.CheckinRateWindow)

				attendance.POST("/check-in", checkinLimit, h.Attendance.CheckIn)
				attendance.POST("/check-out", checkinLimit, h.Attendance.CheckOut)
				attendance.GET("/today", h.Attendance.GetToday)
				attendance.POST("/breaks", h.Attendance.RequestBreak)
				attendance.POST("/breaks/end", h.Attendance.EndBreak)
				attendance.POST("/breaks/cancel", h.Attendance.CancelBreak)

				// 审批与监督（主管/管理员）
				supervisor := middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor)
				attendance.GET("/sessions", supervisor, h.Attendance.ListSessions)
				attendance.GET("/breaks/pending", supervisor, h.Attendance.ListPendingBreaks)
				attendance.PUT("/breaks/:id/approve", supervisor, h.Attendance.ApproveBreak)
				attendance.PUT("/breaks/:id/reject", supervisor, h.Attendance.RejectBreak)
				attendance.POST("/reconcile", middleware.RoleAuth(model.RoleAdmin), h.Attendance.Reconcile)
			}

			// 坐席模块
			agents := authorized.Group("/agents")
			{
				agents.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor), h.Agent.ListAgents)
				agents.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor), h.Agent.GetAgent)
				agents.POST("", middleware.RoleAuth(model.RoleAdmin), h.Agent.CreateAgent)
				agents.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Agent.UpdateAgent)
				agents.PUT("/:id/shift", middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor), h.Agent.AssignShift)
				agents.POST("/:id/reset-password", middleware.RoleAuth(model.RoleAdmin), h.Agent.ResetPassword)
				agents.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Agent.DeleteAgent)
			}

			// 部门模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", middleware.RoleAuth(model.RoleAdmin), h.Department.CreateDepartment)
				departments.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Department.UpdateDepartment)
				departments.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Department.DeleteDepartment)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.GET("/my", h.Shift.MyShift)
				shifts.GET("/my/calendar.ics", h.Shift.MyCalendar)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.POST("", middleware.RoleAuth(model.RoleAdmin), h.Shift.CreateShift)
				shifts.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Shift.UpdateShift)
				shifts.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Shift.DeleteShift)
			}

			// 休息策略模块
			breakPolicies := authorized.Group("/break-policies")
			{
				breakPolicies.GET("", h.BreakPolicy.ListBreakPolicies)
				breakPolicies.GET("/:id", h.BreakPolicy.GetBreakPolicy)
				breakPolicies.POST("", middleware.RoleAuth(model.RoleAdmin), h.BreakPolicy.CreateBreakPolicy)
				breakPolicies.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.BreakPolicy.UpdateBreakPolicy)
				breakPolicies.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.BreakPolicy.DeleteBreakPolicy)
			}

			// 活动日志与导出模块
			authorized.GET("/activity-logs",
				middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor), h.Activity.ListActivityLogs)
			authorized.GET("/export/sessions",
				middleware.RoleAuth(model.RoleAdmin, model.RoleSupervisor), h.Activity.ExportSessions)

			// 系统设置模块
			settings := authorized.Group("/settings")
			{
				settings.GET("", middleware.RoleAuth(model.RoleAdmin), h.Settings.GetSettings)
				settings.PUT("", middleware.RoleAuth(model.RoleAdmin), h.Settings.UpdateSettings)
			}
		}
	}

	return r
}
