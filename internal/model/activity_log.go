package model

import "time"

// 活动日志动作
const (
	ActionCheckIn           = "check_in"
	ActionReCheckIn         = "re_check_in"
	ActionCheckOut          = "check_out"
	ActionBreakRequested    = "break_requested"
	ActionBreakStarted      = "break_started"
	ActionBreakEnded        = "break_ended"
	ActionBreakCancelled    = "break_cancelled"
	ActionBreakApproved     = "break_approved"
	ActionBreakRejected     = "break_rejected"
	ActionSessionReconciled = "session_reconciled"
)

// ActivityLog 活动日志表 — 对应 activity_logs（仅追加审计日志）
// 核心状态机每次流转恰好写入一条；核心永不修改或删除
type ActivityLog struct {
	ActivityLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	AgentID       string    `gorm:"type:uuid;not null"                             json:"agent_id"`
	SessionID     *string   `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	Action        string    `gorm:"type:varchar(30);not null"                      json:"action"`
	Details       string    `gorm:"type:text"                                      json:"details,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
