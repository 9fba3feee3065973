package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	"raalc/backend/pkg/response"
)

// AgentHandler 坐席模块 HTTP 处理器
type AgentHandler struct {
	agentSvc service.AgentService
}

// NewAgentHandler 创建 AgentHandler
func NewAgentHandler(agentSvc service.AgentService) *AgentHandler {
	return &AgentHandler{agentSvc: agentSvc}
}

// ListAgents 获取坐席列表
// GET /api/v1/agents
func (h *AgentHandler) ListAgents(c *gin.Context) {
	var req dto.AgentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	agents, total, err := h.agentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OKPage(c, agents, total, req.GetPage(), req.GetPageSize())
}

// GetAgent 获取坐席详情
// GET /api/v1/agents/:id
func (h *AgentHandler) GetAgent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "坐席ID不能为空")
		return
	}

	agent, err := h.agentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OK(c, agent)
}

// CreateAgent 创建坐席
// POST /api/v1/agents
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	agent, err := h.agentSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.Created(c, agent)
}

// UpdateAgent 更新坐席
// PUT /api/v1/agents/:id
func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "坐席ID不能为空")
		return
	}

	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	agent, err := h.agentSvc.Update(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OK(c, agent)
}

// AssignShift 指派班次
// PUT /api/v1/agents/:id/shift
func (h *AgentHandler) AssignShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "坐席ID不能为空")
		return
	}

	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	agent, err := h.agentSvc.AssignShift(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OK(c, agent)
}

// ResetPassword 重置坐席密码
// POST /api/v1/agents/:id/reset-password
func (h *AgentHandler) ResetPassword(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "坐席ID不能为空")
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	if err := h.agentSvc.ResetPassword(c.Request.Context(), id, callerID, &req); err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteAgent 删除坐席
// DELETE /api/v1/agents/:id
func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "坐席ID不能为空")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	if err := h.agentSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleAgentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAgentError 统一处理坐席模块业务错误
func (h *AgentHandler) handleAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAgentNotFound):
		response.NotFound(c, 12001, "坐席不存在")
	case errors.Is(err, service.ErrEmployeeNoTaken):
		response.Conflict(c, 12002, "工号已被使用")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12003, "邮箱已被使用")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "部门不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14001, "班次不存在")
	case errors.Is(err, service.ErrShiftInactive):
		response.BadRequest(c, 14003, "班次已停用")
	default:
		response.InternalError(c)
	}
}
