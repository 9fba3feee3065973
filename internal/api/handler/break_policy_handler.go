package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	"raalc/backend/pkg/response"
)

// BreakPolicyHandler 休息策略模块 HTTP 处理器
type BreakPolicyHandler struct {
	policySvc service.BreakPolicyService
}

// NewBreakPolicyHandler 创建 BreakPolicyHandler
func NewBreakPolicyHandler(policySvc service.BreakPolicyService) *BreakPolicyHandler {
	return &BreakPolicyHandler{policySvc: policySvc}
}

// ListBreakPolicies 获取休息策略列表
// GET /api/v1/break-policies?include_inactive=true
func (h *BreakPolicyHandler) ListBreakPolicies(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	policies, err := h.policySvc.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleBreakPolicyError(c, err)
		return
	}

	response.OK(c, gin.H{"list": policies})
}

// GetBreakPolicy 获取休息策略详情
// GET /api/v1/break-policies/:id
func (h *BreakPolicyHandler) GetBreakPolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "策略ID不能为空")
		return
	}

	policy, err := h.policySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBreakPolicyError(c, err)
		return
	}

	response.OK(c, policy)
}

// CreateBreakPolicy 创建休息策略
// POST /api/v1/break-policies
func (h *BreakPolicyHandler) CreateBreakPolicy(c *gin.Context) {
	var req dto.CreateBreakPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	policy, err := h.policySvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleBreakPolicyError(c, err)
		return
	}

	response.Created(c, policy)
}

// UpdateBreakPolicy 更新休息策略
// PUT /api/v1/break-policies/:id
func (h *BreakPolicyHandler) UpdateBreakPolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "策略ID不能为空")
		return
	}

	var req dto.UpdateBreakPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	policy, err := h.policySvc.Update(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleBreakPolicyError(c, err)
		return
	}

	response.OK(c, policy)
}

// DeleteBreakPolicy 删除休息策略
// DELETE /api/v1/break-policies/:id
func (h *BreakPolicyHandler) DeleteBreakPolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "策略ID不能为空")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	if err := h.policySvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleBreakPolicyError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleBreakPolicyError 统一处理休息策略模块业务错误
func (h *BreakPolicyHandler) handleBreakPolicyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBreakPolicyNotFound):
		response.NotFound(c, 15001, "休息策略不存在")
	case errors.Is(err, service.ErrBreakPolicyInUse):
		response.Conflict(c, 15002, "休息策略已被班次引用，无法删除")
	case errors.Is(err, service.ErrRuleTypeNotAllowed):
		response.BadRequest(c, 15003, "时长规则包含策略未允许的休息类型")
	case errors.Is(err, service.ErrRuleRangeInvalid):
		response.BadRequest(c, 15004, "时长规则最小值不能大于最大值")
	default:
		response.InternalError(c)
	}
}
