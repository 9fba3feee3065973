package dto

// ── 考勤模块请求 ──

// CheckInRequest 签到请求
type CheckInRequest struct {
	Location *string `json:"location" binding:"omitempty,max=255"`
}

// RequestBreakRequest 申请休息请求
type RequestBreakRequest struct {
	BreakType       string `json:"break_type"       binding:"required,oneof=short lunch emergency"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	Reason          string `json:"reason"           binding:"omitempty,max=500"`
}

// ApproveBreakRequest 批准休息申请请求
type ApproveBreakRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=500"`
}

// RejectBreakRequest 驳回休息申请请求
type RejectBreakRequest struct {
	Reason string `json:"reason" binding:"required,min=2,max=500"`
}

// SessionListRequest 考勤会话列表查询参数
type SessionListRequest struct {
	AgentID  string `form:"agent_id"  binding:"omitempty,uuid"`
	Status   string `form:"status"    binding:"omitempty,oneof=not_started active on_break completed incomplete"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// ── 考勤模块响应 ──

// BreakRequestResponse 休息申请响应
type BreakRequestResponse struct {
	ID               string      `json:"id"`
	SessionID        string      `json:"session_id"`
	Agent            *AgentBrief `json:"agent,omitempty"`
	BreakType        string      `json:"break_type"`
	RequestedMinutes int         `json:"requested_minutes"`
	ActualMinutes    *int        `json:"actual_minutes,omitempty"`
	Status           string      `json:"status"`
	Reason           string      `json:"reason,omitempty"`
	RequestedAt      string      `json:"requested_at"`
	StartedAt        *string     `json:"started_at,omitempty"`
	EndedAt          *string     `json:"ended_at,omitempty"`
	DecidedAt        *string     `json:"decided_at,omitempty"`
	DecidedBy        *string     `json:"decided_by,omitempty"`
	DecisionNotes    string      `json:"decision_notes,omitempty"`
}

// SessionResponse 考勤会话响应
type SessionResponse struct {
	ID              string                 `json:"id"`
	Agent           *AgentBrief            `json:"agent,omitempty"`
	SessionDate     string                 `json:"session_date"`
	Shift           *ShiftBrief            `json:"shift,omitempty"`
	Status          string                 `json:"status"`
	CheckInAt       *string                `json:"check_in_at,omitempty"`
	CheckOutAt      *string                `json:"check_out_at,omitempty"`
	CheckInIP       string                 `json:"check_in_ip,omitempty"`
	CheckInLocation string                 `json:"check_in_location,omitempty"`
	LateMinutes     int                    `json:"late_minutes"`
	BreakMinutes    int                    `json:"break_minutes"`
	Breaks          []BreakRequestResponse `json:"breaks,omitempty"`
}

// CheckInResponse 签到响应
type CheckInResponse struct {
	Session     SessionResponse `json:"session"`
	Punctuality string          `json:"punctuality"` // on_time | late
	LateMinutes int             `json:"late_minutes"`
}

// WorkSummary 签退工时汇总
type WorkSummary struct {
	TotalMinutes int `json:"total_minutes"` // 签到至签退的总分钟数
	BreakMinutes int `json:"break_minutes"` // 累计休息分钟数
	WorkMinutes  int `json:"work_minutes"`  // 净工作分钟数
}

// CheckOutResponse 签退响应
type CheckOutResponse struct {
	Session SessionResponse `json:"session"`
	Summary WorkSummary     `json:"summary"`
}

// RequestBreakResponse 申请休息响应
type RequestBreakResponse struct {
	Request          BreakRequestResponse `json:"request"`
	RequiresApproval bool                 `json:"requires_approval"`
}

// EndBreakResponse 结束休息响应
type EndBreakResponse struct {
	Request       BreakRequestResponse `json:"request"`
	ActualMinutes int                  `json:"actual_minutes"`
}

// TodayResponse 当日考勤状态响应
type TodayResponse struct {
	SessionDate string           `json:"session_date"`
	Session     *SessionResponse `json:"session"` // 未签到时为 null
}

// ReconcileResponse 异常会话清理结果响应
type ReconcileResponse struct {
	ReconciledCount int      `json:"reconciled_count"`
	SessionIDs      []string `json:"session_ids"`
}
