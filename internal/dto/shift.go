package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
type CreateShiftRequest struct {
	Name                     string  `json:"name"                       binding:"required,min=2,max=100"`
	StartTime                string  `json:"start_time"                 binding:"required,datetime=15:04"`
	EndTime                  string  `json:"end_time"                   binding:"required,datetime=15:04"`
	GracePeriodMinutes       int     `json:"grace_period_minutes"       binding:"omitempty,min=0,max=120"`
	OvertimeAllowed          bool    `json:"overtime_allowed"`
	OvertimeRequiresApproval bool    `json:"overtime_requires_approval"`
	BreakPolicyID            *string `json:"break_policy_id"            binding:"omitempty,uuid"`
}

// UpdateShiftRequest 更新班次请求（按需更新）
type UpdateShiftRequest struct {
	Name                     *string `json:"name"                       binding:"omitempty,min=2,max=100"`
	StartTime                *string `json:"start_time"                 binding:"omitempty,datetime=15:04"`
	EndTime                  *string `json:"end_time"                   binding:"omitempty,datetime=15:04"`
	GracePeriodMinutes       *int    `json:"grace_period_minutes"       binding:"omitempty,min=0,max=120"`
	OvertimeAllowed          *bool   `json:"overtime_allowed"`
	OvertimeRequiresApproval *bool   `json:"overtime_requires_approval"`
	BreakPolicyID            *string `json:"break_policy_id"            binding:"omitempty,uuid"`
	IsActive                 *bool   `json:"is_active"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID                       string               `json:"id"`
	Name                     string               `json:"name"`
	StartTime                string               `json:"start_time"`
	EndTime                  string               `json:"end_time"`
	GracePeriodMinutes       int                  `json:"grace_period_minutes"`
	OvertimeAllowed          bool                 `json:"overtime_allowed"`
	OvertimeRequiresApproval bool                 `json:"overtime_requires_approval"`
	BreakPolicy              *BreakPolicyResponse `json:"break_policy,omitempty"`
	IsActive                 bool                 `json:"is_active"`
	CreatedAt                string               `json:"created_at"`
	UpdatedAt                string               `json:"updated_at"`
}

// ShiftBrief 班次简要信息
type ShiftBrief struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
}
