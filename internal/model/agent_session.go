package model

import "time"

// 会话状态
const (
	SessionNotStarted = "not_started"
	SessionActive     = "active"
	SessionOnBreak    = "on_break"
	SessionCompleted  = "completed"
	SessionIncomplete = "incomplete" // 跨日未签退，由核对任务标记
)

// AgentSession 考勤会话表 — 对应 agent_sessions
// 一名坐席一个自然日一条记录（库级唯一约束兜底并发）
type AgentSession struct {
	SessionID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	AgentID         string     `gorm:"type:uuid;not null"                             json:"agent_id"`
	SessionDate     time.Time  `gorm:"type:date;not null"                             json:"session_date"`
	ShiftID         string     `gorm:"type:uuid;not null"                             json:"shift_id"` // 签到时的班次快照引用
	Status          string     `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`  // not_started | active | on_break | completed | incomplete
	CheckInAt       *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt      *time.Time `json:"check_out_at,omitempty"` // 一经写入不再清空
	CheckInIP       string     `gorm:"type:varchar(45)"                               json:"check_in_ip,omitempty"`
	CheckOutIP      string     `gorm:"type:varchar(45)"                               json:"check_out_ip,omitempty"`
	CheckInLocation *string    `gorm:"type:varchar(255)"                              json:"check_in_location,omitempty"`
	LateMinutes     int        `gorm:"not null;default:0"                             json:"late_minutes"`
	BreakMinutes    int        `gorm:"not null;default:0"                             json:"break_minutes"` // 等于本会话所有 ended 休息的实际时长之和
	VersionedModel

	// 关联
	Agent  *Agent         `gorm:"foreignKey:AgentID;references:AgentID" json:"agent,omitempty"`
	Shift  *Shift         `gorm:"foreignKey:ShiftID;references:ShiftID" json:"shift,omitempty"`
	Breaks []BreakRequest `gorm:"foreignKey:SessionID"                  json:"breaks,omitempty"`
}

// TableName 指定表名
func (AgentSession) TableName() string { return "agent_sessions" }

// IsOpen 会话是否仍在进行（可签退/可休息）
func (s *AgentSession) IsOpen() bool {
	return s.Status == SessionActive || s.Status == SessionOnBreak
}
