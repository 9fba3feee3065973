package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	pkgerrors "raalc/backend/pkg/errors"
	"raalc/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn 签到
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	// 请求体可省略（location 为可选字段）
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), agentID, c.ClientIP(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// CheckOut 签退
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CheckOut(c.Request.Context(), agentID, c.ClientIP())
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// RequestBreak 申请休息
// POST /api/v1/attendance/breaks
func (h *AttendanceHandler) RequestBreak(c *gin.Context) {
	var req dto.RequestBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.RequestBreak(c.Request.Context(), agentID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// EndBreak 结束休息
// POST /api/v1/attendance/breaks/end
func (h *AttendanceHandler) EndBreak(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.EndBreak(c.Request.Context(), agentID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// CancelBreak 撤回待审批的休息申请
// POST /api/v1/attendance/breaks/cancel
func (h *AttendanceHandler) CancelBreak(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CancelBreak(c.Request.Context(), agentID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetToday 获取当日考勤状态
// GET /api/v1/attendance/today
func (h *AttendanceHandler) GetToday(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GetToday(c.Request.Context(), agentID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSessions 查询考勤会话列表（主管/管理员）
// GET /api/v1/attendance/sessions
func (h *AttendanceHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessions, total, err := h.attendanceSvc.ListSessions(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKPage(c, sessions, total, req.GetPage(), req.GetPageSize())
}

// ListPendingBreaks 查询待审批休息申请（审批队列）
// GET /api/v1/attendance/breaks/pending
func (h *AttendanceHandler) ListPendingBreaks(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reqs, total, err := h.attendanceSvc.ListPendingBreaks(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKPage(c, reqs, total, req.GetPage(), req.GetPageSize())
}

// ApproveBreak 批准休息申请
// PUT /api/v1/attendance/breaks/:id/approve
func (h *AttendanceHandler) ApproveBreak(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	// 请求体可省略（notes 为可选字段）
	var req dto.ApproveBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.ApproveBreak(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// RejectBreak 驳回休息申请
// PUT /api/v1/attendance/breaks/:id/reject
func (h *AttendanceHandler) RejectBreak(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.RejectBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.RejectBreak(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// Reconcile 核对并关闭超时未签退的会话
// POST /api/v1/attendance/reconcile
func (h *AttendanceHandler) Reconcile(c *gin.Context) {
	callerID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.ReconcileAbandoned(c.Request.Context(), callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAgentNotFound):
		response.NotFound(c, 12001, "坐席不存在")
	case errors.Is(err, service.ErrAgentInactive):
		response.Forbidden(c, 11003, "坐席账号已停用")
	case errors.Is(err, service.ErrNoShiftAssigned):
		response.BadRequest(c, 16001, "坐席未指派班次")
	case errors.Is(err, service.ErrShiftInactive):
		response.BadRequest(c, 16002, "班次已停用")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.Conflict(c, 16003, "今日已签到")
	case errors.Is(err, service.ErrRecheckinDisabled):
		response.Conflict(c, 16004, "今日会话已结束，系统未开启重复签到")
	case errors.Is(err, service.ErrTooLateToCheckIn):
		response.Conflict(c, 16005, "已超过班次结束时间，无法签到")
	case errors.Is(err, service.ErrNotCheckedIn):
		response.Conflict(c, 16006, "当前没有进行中的考勤会话")
	case errors.Is(err, service.ErrCannotCheckOutOnBreak):
		response.Conflict(c, 16007, "休息中无法签退，请先结束休息")
	case errors.Is(err, service.ErrSessionNotOpen):
		response.Conflict(c, 16008, "考勤会话已结束")
	case errors.Is(err, service.ErrNoBreakPolicy):
		response.BadRequest(c, 16009, "班次未配置休息策略")
	case errors.Is(err, service.ErrBreakTypeNotAllowed):
		response.BadRequest(c, 16010, "休息策略不允许该休息类型")
	case errors.Is(err, service.ErrBreakTooShort):
		response.BadRequest(c, 16011, "申请时长低于该类型的最小时长")
	case errors.Is(err, service.ErrBreakTooLong):
		response.BadRequest(c, 16012, "申请时长超过该类型的最大时长")
	case errors.Is(err, service.ErrMaxBreaksReached):
		response.Conflict(c, 16013, "今日休息次数已达上限")
	case errors.Is(err, service.ErrBreakCooldownActive):
		response.Conflict(c, 16014, "距离上次休息结束的冷却时间未满")
	case errors.Is(err, service.ErrBreakAlreadyActive):
		response.Conflict(c, 16015, "当前已有进行中的休息")
	case errors.Is(err, service.ErrBreakPendingExists):
		response.Conflict(c, 16016, "已有待审批的休息申请")
	case errors.Is(err, service.ErrNoActiveBreak):
		response.Conflict(c, 16017, "当前没有进行中的休息")
	case errors.Is(err, service.ErrBreakNotApproved):
		response.Conflict(c, 16018, "休息申请尚未批准")
	case errors.Is(err, service.ErrBreakRequestNotFound):
		response.NotFound(c, 16019, "休息申请不存在")
	case errors.Is(err, service.ErrBreakNotPending):
		response.Conflict(c, 16020, "休息申请已被处理")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10006, "数据已被其他操作修改，请重试")
	default:
		response.InternalError(c)
	}
}
