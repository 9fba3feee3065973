package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	"raalc/backend/pkg/response"
)

// ActivityHandler 活动日志与导出模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
	exportSvc   service.ExportService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService, exportSvc service.ExportService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc, exportSvc: exportSvc}
}

// ListActivityLogs 查询活动日志
// GET /api/v1/activity-logs
func (h *ActivityHandler) ListActivityLogs(c *gin.Context) {
	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	logs, total, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

// ExportSessions 导出考勤报表
// GET /api/v1/export/sessions
func (h *ActivityHandler) ExportSessions(c *gin.Context) {
	var req dto.ExportSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportSessions(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ActivityHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSessions):
		response.NotFound(c, 17001, "该时间范围内无考勤记录")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 17002, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
