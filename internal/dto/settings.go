package dto

// ── 系统设置模块 DTO ──

// UpdateSystemConfigRequest 更新系统设置请求
type UpdateSystemConfigRequest struct {
	AllowRecheckin *bool `json:"allow_recheckin" binding:"required"`
}

// SystemConfigResponse 系统设置响应
type SystemConfigResponse struct {
	AllowRecheckin bool   `json:"allow_recheckin"`
	UpdatedAt      string `json:"updated_at"`
}
