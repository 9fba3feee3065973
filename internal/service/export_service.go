package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("该时间范围内无考勤记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 单次导出的最大行数，防止全量拉取拖垮进程
const exportMaxRows = 10000

// ExportService 导出业务接口
//
// 设计说明：
//   - 考勤报表导出为 Excel (.xlsx)，一行一条会话
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSessions 导出时间范围内的考勤会话报表
	ExportSessions(ctx context.Context, req *dto.ExportSessionsRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportSessions(ctx context.Context, req *dto.ExportSessionsRequest) (*bytes.Buffer, string, error) {
	// 1. 查询会话
	filter := repository.SessionFilter{
		AgentID:  req.AgentID,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}
	sessions, _, err := s.repo.Session.List(ctx, filter, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤报表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := []float64{14, 12, 12, 12, 10, 20, 20, 10, 10, 10}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"日期", "姓名", "工号", "部门", "状态", "签到时间", "签退时间", "迟到(分)", "休息(分)", "工作(分)"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	// 数据行
	row := 2
	for i := range sessions {
		session := &sessions[i]
		summary := workSummary(session)

		name, employeeNo, deptName := "", "", ""
		if session.Agent != nil {
			name = session.Agent.Name
			employeeNo = session.Agent.EmployeeNo
			if session.Agent.Department != nil {
				deptName = session.Agent.Department.Name
			}
		}

		values := []interface{}{
			session.SessionDate.Format("2006-01-02"),
			name,
			employeeNo,
			deptName,
			statusLabel(session.Status),
			formatExportTime(session.CheckInAt),
			formatExportTime(session.CheckOutAt),
			session.LateMinutes,
			session.BreakMinutes,
			summary.WorkMinutes,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, cell(col, row), v)
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考勤报表_%s_%s.xlsx", req.DateFrom, req.DateTo)
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func statusLabel(status string) string {
	switch status {
	case model.SessionActive:
		return "在岗"
	case model.SessionOnBreak:
		return "休息中"
	case model.SessionCompleted:
		return "已签退"
	case model.SessionIncomplete:
		return "未签退"
	default:
		return status
	}
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04:05")
}
