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

func setupTestShiftService() (ShiftService, *attendanceMocks, *fixedClock) {
	policies := newMockBreakPolicyRepo()
	shifts := newMockShiftRepo(policies)
	m := &attendanceMocks{
		agents:   newMockAgentRepo(),
		depts:    newMockDeptRepo(),
		policies: policies,
		shifts:   shifts,
		sessions: newMockSessionRepo(shifts),
		breaks:   newMockBreakRequestRepo(),
		logs:     newMockActivityLogRepo(),
		sysCfg:   newMockSystemConfigRepo(),
	}
	repo := &repository.Repository{
		Agent:        m.agents,
		Department:   m.depts,
		Shift:        m.shifts,
		BreakPolicy:  m.policies,
		Session:      m.sessions,
		BreakRequest: m.breaks,
		ActivityLog:  m.logs,
		SystemConfig: m.sysCfg,
	}
	clk := &fixedClock{now: dayAt(8, 0)}
	return NewShiftService(repo, clk, zap.NewNop()), m, clk
}

func TestShiftCreate(t *testing.T) {
	svc, _, _ := setupTestShiftService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, "admin-1", &dto.CreateShiftRequest{
		Name: "早班", StartTime: "09:00", EndTime: "17:00", GracePeriodMinutes: 10,
	})
	if err != nil {
		t.Fatalf("创建班次应成功: %v", err)
	}
	if !resp.IsActive {
		t.Error("新建班次应为启用状态")
	}
	if resp.StartTime != "09:00" || resp.EndTime != "17:00" {
		t.Errorf("班次时间不正确: %s-%s", resp.StartTime, resp.EndTime)
	}

	// 引用不存在的休息策略
	noPolicy := "no-such-policy"
	if _, err := svc.Create(ctx, "admin-1", &dto.CreateShiftRequest{
		Name: "晚班", StartTime: "17:00", EndTime: "01:00", BreakPolicyID: &noPolicy,
	}); !errors.Is(err, ErrBreakPolicyNotFound) {
		t.Errorf("策略不存在应返回 ErrBreakPolicyNotFound, got %v", err)
	}
}

func TestShiftUpdate(t *testing.T) {
	svc, _, _ := setupTestShiftService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateShiftRequest{
		Name: "早班", StartTime: "09:00", EndTime: "17:00", GracePeriodMinutes: 10,
	})
	if err != nil {
		t.Fatalf("创建班次应成功: %v", err)
	}

	grace := 15
	updated, err := svc.Update(ctx, created.ID, "admin-1", &dto.UpdateShiftRequest{
		GracePeriodMinutes: &grace,
	})
	if err != nil {
		t.Fatalf("更新班次应成功: %v", err)
	}
	if updated.GracePeriodMinutes != 15 {
		t.Errorf("宽限期应更新为 15, got %d", updated.GracePeriodMinutes)
	}
	if updated.StartTime != "09:00" {
		t.Errorf("未更新字段不应变化: %s", updated.StartTime)
	}

	if _, err := svc.Update(ctx, "no-such-shift", "admin-1", &dto.UpdateShiftRequest{GracePeriodMinutes: &grace}); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("班次不存在应返回 ErrShiftNotFound, got %v", err)
	}
}

func TestShiftDelete(t *testing.T) {
	svc, m, _ := setupTestShiftService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateShiftRequest{
		Name: "早班", StartTime: "09:00", EndTime: "17:00",
	})
	if err != nil {
		t.Fatalf("创建班次应成功: %v", err)
	}

	// 已指派的班次不可删除
	m.shifts.assignedCounts[created.ID] = 5
	if err := svc.Delete(ctx, created.ID, "admin-1"); !errors.Is(err, ErrShiftInUse) {
		t.Errorf("已指派班次删除应返回 ErrShiftInUse, got %v", err)
	}

	m.shifts.assignedCounts[created.ID] = 0
	if err := svc.Delete(ctx, created.ID, "admin-1"); err != nil {
		t.Fatalf("删除未指派班次应成功: %v", err)
	}
}

func TestMyShift(t *testing.T) {
	svc, m, _ := setupTestShiftService()
	ctx := context.Background()

	shift := &model.Shift{Name: "晚班", StartTime: "17:00", EndTime: "01:00", IsActive: true}
	_ = m.shifts.Create(ctx, shift)
	agent := &model.Agent{
		Name: "王五", EmployeeNo: "E010", Email: "e010@example.com",
		ShiftID: &shift.ShiftID, Shift: shift, IsActive: true,
	}
	_ = m.agents.Create(ctx, agent)

	resp, err := svc.MyShift(ctx, agent.AgentID)
	if err != nil {
		t.Fatalf("查询本人班次应成功: %v", err)
	}
	if resp.Name != "晚班" || resp.StartTime != "17:00" {
		t.Errorf("返回班次不正确: %+v", resp)
	}

	bare := &model.Agent{Name: "赵六", EmployeeNo: "E011", Email: "e011@example.com", IsActive: true}
	_ = m.agents.Create(ctx, bare)
	if _, err := svc.MyShift(ctx, bare.AgentID); !errors.Is(err, ErrNoShiftAssigned) {
		t.Errorf("未指派班次应返回 ErrNoShiftAssigned, got %v", err)
	}
	if _, err := svc.MyShift(ctx, "no-such-agent"); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("坐席不存在应返回 ErrAgentNotFound, got %v", err)
	}
}

func TestShiftCalendar(t *testing.T) {
	svc, m, _ := setupTestShiftService()
	ctx := context.Background()

	shift := &model.Shift{Name: "早班", StartTime: "09:00", EndTime: "17:00", GracePeriodMinutes: 10, IsActive: true}
	_ = m.shifts.Create(ctx, shift)
	agent := &model.Agent{
		Name: "张三", EmployeeNo: "E001", Email: "e001@example.com",
		ShiftID: &shift.ShiftID, Shift: shift, IsActive: true,
	}
	_ = m.agents.Create(ctx, agent)

	ical, err := svc.Calendar(ctx, agent.AgentID)
	if err != nil {
		t.Fatalf("导出日历应成功: %v", err)
	}
	if !strings.Contains(ical, "BEGIN:VCALENDAR") {
		t.Error("导出内容应为 iCalendar 格式")
	}
	if got := strings.Count(ical, "BEGIN:VEVENT"); got != calendarDays {
		t.Errorf("日历应包含 %d 个排班事件, got %d", calendarDays, got)
	}
	if !strings.Contains(ical, "早班") {
		t.Error("事件摘要应包含班次名称")
	}

	// 未指派班次
	bare := &model.Agent{Name: "李四", EmployeeNo: "E002", Email: "e002@example.com", IsActive: true}
	_ = m.agents.Create(ctx, bare)
	if _, err := svc.Calendar(ctx, bare.AgentID); !errors.Is(err, ErrNoShiftAssigned) {
		t.Errorf("未指派班次应返回 ErrNoShiftAssigned, got %v", err)
	}
}
