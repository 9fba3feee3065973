package handler

import "raalc/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Agent       *AgentHandler
	Department  *DepartmentHandler
	Shift       *ShiftHandler
	BreakPolicy *BreakPolicyHandler
	Attendance  *AttendanceHandler
	Activity    *ActivityHandler
	Settings    *SettingsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Agent:       NewAgentHandler(svc.Agent),
		Department:  NewDepartmentHandler(svc.Department),
		Shift:       NewShiftHandler(svc.Shift),
		BreakPolicy: NewBreakPolicyHandler(svc.BreakPolicy),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Activity:    NewActivityHandler(svc.Activity, svc.Export),
		Settings:    NewSettingsHandler(svc.Settings),
	}
}
