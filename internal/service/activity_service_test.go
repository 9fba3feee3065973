package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

func TestActivityList(t *testing.T) {
	logs := newMockActivityLogRepo()
	repo := &repository.Repository{ActivityLog: logs}
	svc := NewActivityService(repo, zap.NewNop())
	ctx := context.Background()

	sessionID := "sess-1"
	_ = logs.Create(ctx, &model.ActivityLog{AgentID: "agent-1", SessionID: &sessionID, Action: model.ActionCheckIn})
	_ = logs.Create(ctx, &model.ActivityLog{AgentID: "agent-1", SessionID: &sessionID, Action: model.ActionBreakStarted})
	_ = logs.Create(ctx, &model.ActivityLog{AgentID: "agent-2", Action: model.ActionCheckIn})

	items, total, err := svc.List(ctx, &dto.ActivityLogListRequest{AgentID: "agent-1"})
	if err != nil {
		t.Fatalf("查询日志应成功: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("按坐席过滤应返回 2 条, got total=%d len=%d", total, len(items))
	}

	items, total, err = svc.List(ctx, &dto.ActivityLogListRequest{Action: model.ActionCheckIn})
	if err != nil {
		t.Fatalf("查询日志应成功: %v", err)
	}
	if total != 2 {
		t.Errorf("按动作过滤应返回 2 条, got %d", total)
	}
	for _, item := range items {
		if item.Action != model.ActionCheckIn {
			t.Errorf("过滤结果包含其他动作: %s", item.Action)
		}
	}
}

func TestExportSessions(t *testing.T) {
	policies := newMockBreakPolicyRepo()
	shifts := newMockShiftRepo(policies)
	sessions := newMockSessionRepo(shifts)
	repo := &repository.Repository{Session: sessions}
	svc := NewExportService(repo, zap.NewNop())
	ctx := context.Background()

	checkIn := dayAt(9, 0)
	checkOut := dayAt(17, 0)
	_ = sessions.Create(ctx, &model.AgentSession{
		AgentID:      "agent-1",
		SessionDate:  dayAt(0, 0),
		ShiftID:      "shift-1",
		Status:       model.SessionCompleted,
		CheckInAt:    &checkIn,
		CheckOutAt:   &checkOut,
		LateMinutes:  5,
		BreakMinutes: 30,
	})

	buf, filename, err := svc.ExportSessions(ctx, &dto.ExportSessionsRequest{
		DateFrom: "2025-03-01", DateTo: "2025-03-31",
	})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应为 xlsx: %s", filename)
	}
	if !strings.Contains(filename, "2025-03-01") || !strings.Contains(filename, "2025-03-31") {
		t.Errorf("文件名应包含时间范围: %s", filename)
	}

	// 范围内无记录
	_, _, err = svc.ExportSessions(ctx, &dto.ExportSessionsRequest{
		DateFrom: "2024-01-01", DateTo: "2024-01-31",
	})
	if !errors.Is(err, ErrExportNoSessions) {
		t.Errorf("无记录导出应返回 ErrExportNoSessions, got %v", err)
	}
}

// 导出与签退走同一份工时计算
func TestWorkSummaryMath(t *testing.T) {
	checkIn := dayAt(9, 0)
	checkOut := dayAt(17, 30)
	session := &model.AgentSession{
		CheckInAt:    &checkIn,
		CheckOutAt:   &checkOut,
		BreakMinutes: 45,
	}
	summary := workSummary(session)
	if summary.TotalMinutes != 510 {
		t.Errorf("总时长应为 510, got %d", summary.TotalMinutes)
	}
	if summary.WorkMinutes != 465 {
		t.Errorf("净工作时长应为 465, got %d", summary.WorkMinutes)
	}

	// 未签退会话不计总时长
	open := &model.AgentSession{CheckInAt: &checkIn, BreakMinutes: 10}
	if s := workSummary(open); s.TotalMinutes != 0 || s.WorkMinutes != 0 {
		t.Errorf("未签退会话工时应为 0, got %+v", s)
	}
}
