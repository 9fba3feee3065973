package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	"raalc/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListShifts 获取班次列表
// GET /api/v1/shifts?include_inactive=true
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	shifts, err := h.shiftSvc.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, gin.H{"list": shifts})
}

// GetShift 获取班次详情
// GET /api/v1/shifts/:id
func (h *ShiftHandler) GetShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	shift, err := h.shiftSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// CreateShift 创建班次
// POST /api/v1/shifts
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// UpdateShift 更新班次
// PUT /api/v1/shifts/:id
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Update(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// DeleteShift 删除班次
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// MyShift 查询当前坐席的班次
// GET /api/v1/shifts/my
func (h *ShiftHandler) MyShift(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.MyShift(c.Request.Context(), agentID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// MyCalendar 导出当前坐席班次日历
// GET /api/v1/shifts/my/calendar.ics
func (h *ShiftHandler) MyCalendar(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	ics, err := h.shiftSvc.Calendar(c.Request.Context(), agentID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shifts.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14001, "班次不存在")
	case errors.Is(err, service.ErrShiftInUse):
		response.Conflict(c, 14002, "班次已指派给坐席，无法删除")
	case errors.Is(err, service.ErrShiftInactive):
		response.BadRequest(c, 14003, "班次已停用")
	case errors.Is(err, service.ErrBreakPolicyNotFound):
		response.NotFound(c, 15001, "休息策略不存在")
	case errors.Is(err, service.ErrAgentNotFound):
		response.NotFound(c, 12001, "坐席不存在")
	case errors.Is(err, service.ErrNoShiftAssigned):
		response.BadRequest(c, 14004, "坐席未指派班次")
	default:
		response.InternalError(c)
	}
}
