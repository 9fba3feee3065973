package model

// Shift 班次定义表 — 对应 shifts
// 会话一经签到即以班次当时的参数计算，后续修改只影响未来会话
type Shift struct {
	ShiftID                  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Name                     string  `gorm:"type:varchar(100);not null"                     json:"name"`
	StartTime                string  `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime                  string  `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	GracePeriodMinutes       int     `gorm:"not null;default:0"                             json:"grace_period_minutes"`
	OvertimeAllowed          bool    `gorm:"not null;default:false"                         json:"overtime_allowed"`
	OvertimeRequiresApproval bool    `gorm:"not null;default:true"                          json:"overtime_requires_approval"`
	BreakPolicyID            *string `gorm:"type:uuid"                                      json:"break_policy_id,omitempty"`
	IsActive                 bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	BreakPolicy *BreakPolicy `gorm:"foreignKey:BreakPolicyID;references:BreakPolicyID" json:"break_policy,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }
