package dto

// ── 活动日志模块 DTO ──

// ActivityLogListRequest 活动日志查询参数
type ActivityLogListRequest struct {
	AgentID   string `form:"agent_id"   binding:"omitempty,uuid"`
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
	Action    string `form:"action"     binding:"omitempty,max=50"`
	DateFrom  string `form:"date_from"  binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to"    binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// ActivityLogResponse 活动日志响应
type ActivityLogResponse struct {
	ID        string  `json:"id"`
	AgentID   string  `json:"agent_id"`
	SessionID *string `json:"session_id,omitempty"`
	Action    string  `json:"action"`
	Details   string  `json:"details,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ExportSessionsRequest 考勤报表导出查询参数
type ExportSessionsRequest struct {
	AgentID  string `form:"agent_id"  binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"required,datetime=2006-01-02"`
}
