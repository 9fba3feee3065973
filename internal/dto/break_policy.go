package dto

// ── 休息策略模块 DTO ──

// BreakRuleInput 单一休息类型时长规则
type BreakRuleInput struct {
	BreakType  string `json:"break_type"  binding:"required,oneof=short lunch emergency"`
	MinMinutes int    `json:"min_minutes" binding:"required,min=1,max=480"`
	MaxMinutes int    `json:"max_minutes" binding:"required,min=1,max=480"`
}

// CreateBreakPolicyRequest 创建休息策略请求
type CreateBreakPolicyRequest struct {
	Name             string           `json:"name"              binding:"required,min=2,max=100"`
	AllowedTypes     []string         `json:"allowed_types"     binding:"required,min=1,dive,oneof=short lunch emergency"`
	MaxBreaksPerDay  int              `json:"max_breaks_per_day" binding:"required,min=1,max=20"`
	CooldownMinutes  int              `json:"cooldown_minutes"  binding:"omitempty,min=0,max=480"`
	RequiresApproval bool             `json:"requires_approval"`
	WindowStart      *string          `json:"window_start"      binding:"omitempty,datetime=15:04"`
	WindowEnd        *string          `json:"window_end"        binding:"omitempty,datetime=15:04"`
	Rules            []BreakRuleInput `json:"rules"             binding:"omitempty,dive"`
}

// UpdateBreakPolicyRequest 更新休息策略请求（按需更新；Rules 传入时整组替换）
type UpdateBreakPolicyRequest struct {
	Name             *string          `json:"name"              binding:"omitempty,min=2,max=100"`
	AllowedTypes     []string         `json:"allowed_types"     binding:"omitempty,min=1,dive,oneof=short lunch emergency"`
	MaxBreaksPerDay  *int             `json:"max_breaks_per_day" binding:"omitempty,min=1,max=20"`
	CooldownMinutes  *int             `json:"cooldown_minutes"  binding:"omitempty,min=0,max=480"`
	RequiresApproval *bool            `json:"requires_approval"`
	WindowStart      *string          `json:"window_start"      binding:"omitempty,datetime=15:04"`
	WindowEnd        *string          `json:"window_end"        binding:"omitempty,datetime=15:04"`
	Rules            []BreakRuleInput `json:"rules"             binding:"omitempty,dive"`
}

// BreakRuleResponse 休息类型规则响应
type BreakRuleResponse struct {
	BreakType  string `json:"break_type"`
	MinMinutes int    `json:"min_minutes"`
	MaxMinutes int    `json:"max_minutes"`
}

// BreakPolicyResponse 休息策略响应
type BreakPolicyResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	AllowedTypes     []string            `json:"allowed_types"`
	MaxBreaksPerDay  int                 `json:"max_breaks_per_day"`
	CooldownMinutes  int                 `json:"cooldown_minutes"`
	RequiresApproval bool                `json:"requires_approval"`
	WindowStart      *string             `json:"window_start,omitempty"`
	WindowEnd        *string             `json:"window_end,omitempty"`
	Rules            []BreakRuleResponse `json:"rules,omitempty"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}
