package dto

// ── 坐席模块请求 ──

// CreateAgentRequest 创建坐席请求（管理员）
type CreateAgentRequest struct {
	Name         string  `json:"name"          binding:"required,min=2,max=100"`
	EmployeeNo   string  `json:"employee_no"   binding:"required,min=2,max=20"`
	Email        string  `json:"email"         binding:"required,email,max=255"`
	Password     string  `json:"password"      binding:"required,min=8,max=72"`
	Role         string  `json:"role"          binding:"required,oneof=admin supervisor agent"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	ShiftID      *string `json:"shift_id"      binding:"omitempty,uuid"`
}

// UpdateAgentRequest 更新坐席请求（按需更新）
type UpdateAgentRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email,max=255"`
	Role         *string `json:"role"          binding:"omitempty,oneof=admin supervisor agent"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active"`
}

// AssignShiftRequest 指派班次请求
type AssignShiftRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

// ResetPasswordRequest 重置密码请求（管理员）
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// AgentListRequest 坐席列表查询参数
type AgentListRequest struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Role         string `form:"role"          binding:"omitempty,oneof=admin supervisor agent"`
	PaginationRequest
}
