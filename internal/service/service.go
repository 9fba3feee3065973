package service

import (
	"go.uber.org/zap"

	"raalc/backend/config"
	"raalc/backend/internal/repository"
	"raalc/backend/pkg/clock"
	"raalc/backend/pkg/jwt"
	"raalc/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Agent       AgentService
	Department  DepartmentService
	Shift       ShiftService
	BreakPolicy BreakPolicyService
	Attendance  AttendanceService
	Activity    ActivityService
	Export      ExportService
	Settings    SettingsService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 不可用时黑名单与计数功能降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Agent:       NewAgentService(repo, logger),
		Department:  NewDepartmentService(repo, logger),
		Shift:       NewShiftService(repo, clk, logger),
		BreakPolicy: NewBreakPolicyService(repo, logger),
		Attendance:  NewAttendanceService(cfg, repo, rdb, clk, logger),
		Activity:    NewActivityService(repo, logger),
		Export:      NewExportService(repo, logger),
		Settings:    NewSettingsService(repo, logger),
	}
}
