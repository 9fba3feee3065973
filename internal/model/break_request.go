package model

import "time"

// 休息申请状态
const (
	BreakStatusPending   = "pending"
	BreakStatusApproved  = "approved" // 预留：批准即开始，当前不作为驻留状态
	BreakStatusActive    = "active"
	BreakStatusRejected  = "rejected"
	BreakStatusCancelled = "cancelled" // 坐席在审批前主动撤回
	BreakStatusEnded     = "ended"
)

// BreakRequest 休息申请表 — 对应 break_requests
// 终态为 rejected、cancelled 与 ended
type BreakRequest struct {
	BreakRequestID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"break_request_id"`
	SessionID        string     `gorm:"type:uuid;not null"                             json:"session_id"`
	AgentID          string     `gorm:"type:uuid;not null"                             json:"agent_id"`
	BreakType        string     `gorm:"type:varchar(20);not null"                      json:"break_type"` // short | lunch | emergency
	RequestedMinutes int        `gorm:"not null"                                       json:"requested_minutes"`
	ActualMinutes    *int       `json:"actual_minutes,omitempty"` // 休息结束时写入
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | active | rejected | cancelled | ended
	Reason           string     `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	RequestedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	DecidedBy        *string    `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	DecisionNotes    string     `gorm:"type:varchar(500)"                              json:"decision_notes,omitempty"`
	VersionedModel

	// 关联
	Session *AgentSession `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	Agent   *Agent        `gorm:"foreignKey:AgentID;references:AgentID"     json:"agent,omitempty"`
}

// TableName 指定表名
func (BreakRequest) TableName() string { return "break_requests" }
