package model

// 休息类型
const (
	BreakTypeShort     = "short"
	BreakTypeLunch     = "lunch"
	BreakTypeEmergency = "emergency"
)

// BreakPolicy 休息策略表 — 对应 break_policies
// 被零或多个班次引用；会话视角下只读
type BreakPolicy struct {
	BreakPolicyID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"break_policy_id"`
	Name             string      `gorm:"type:varchar(100);not null"                     json:"name"`
	AllowedTypes     StringArray `gorm:"type:text[];not null;default:'{}'"              json:"allowed_types"` // short | lunch | emergency
	MaxBreaksPerDay  int         `gorm:"not null;default:2"                             json:"max_breaks_per_day"`
	CooldownMinutes  int         `gorm:"not null;default:0"                             json:"cooldown_minutes"`
	RequiresApproval bool        `gorm:"not null;default:false"                         json:"requires_approval"`
	WindowStart      *string     `gorm:"type:varchar(5)"                                json:"window_start,omitempty"` // HH:MM，可选偏好时间窗
	WindowEnd        *string     `gorm:"type:varchar(5)"                                json:"window_end,omitempty"`
	IsActive         bool        `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Rules []BreakPolicyRule `gorm:"foreignKey:BreakPolicyID" json:"rules,omitempty"`
}

// TableName 指定表名
func (BreakPolicy) TableName() string { return "break_policies" }

// RuleFor 返回指定休息类型的时长规则，未配置时返回 nil
func (p *BreakPolicy) RuleFor(breakType string) *BreakPolicyRule {
	for i := range p.Rules {
		if p.Rules[i].BreakType == breakType {
			return &p.Rules[i]
		}
	}
	return nil
}

// BreakPolicyRule 休息类型时长规则 — 对应 break_policy_rules
// 每策略每类型一条，给出允许的申请时长区间
type BreakPolicyRule struct {
	RuleID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	BreakPolicyID string `gorm:"type:uuid;not null"                             json:"break_policy_id"`
	BreakType     string `gorm:"type:varchar(20);not null"                      json:"break_type"`
	MinMinutes    int    `gorm:"not null;default:5"                             json:"min_minutes"`
	MaxMinutes    int    `gorm:"not null;default:60"                            json:"max_minutes"`
}

// TableName 指定表名
func (BreakPolicyRule) TableName() string { return "break_policy_rules" }
