package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

func setupTestAgentService() (AgentService, *attendanceMocks) {
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
	m.agents.shifts = shifts
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
	return NewAgentService(repo, zap.NewNop()), m
}

func TestAgentCreate(t *testing.T) {
	svc, m := setupTestAgentService()
	ctx := context.Background()

	dept := &model.Department{Name: "客服一部"}
	_ = m.depts.Create(ctx, dept)

	req := &dto.CreateAgentRequest{
		Name:         "赵六",
		EmployeeNo:   "E200",
		Email:        "zhaoliu@example.com",
		Password:     "initial-pass",
		Role:         model.RoleAgent,
		DepartmentID: dept.DepartmentID,
	}
	resp, err := svc.Create(ctx, "admin-1", req)
	if err != nil {
		t.Fatalf("创建坐席应成功: %v", err)
	}
	if !resp.IsActive {
		t.Error("新建坐席应为在职状态")
	}
	if !resp.MustChangePassword {
		t.Error("新建坐席首次登录应强制改密")
	}

	// 工号冲突
	req2 := *req
	req2.Email = "other@example.com"
	if _, err := svc.Create(ctx, "admin-1", &req2); !errors.Is(err, ErrEmployeeNoTaken) {
		t.Errorf("工号冲突应返回 ErrEmployeeNoTaken, got %v", err)
	}

	// 部门不存在
	req3 := *req
	req3.EmployeeNo = "E201"
	req3.DepartmentID = "no-such-dept"
	if _, err := svc.Create(ctx, "admin-1", &req3); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("部门不存在应返回 ErrDepartmentNotFound, got %v", err)
	}

	// 班次不存在
	noShift := "no-such-shift"
	req4 := *req
	req4.EmployeeNo = "E202"
	req4.ShiftID = &noShift
	if _, err := svc.Create(ctx, "admin-1", &req4); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("班次不存在应返回 ErrShiftNotFound, got %v", err)
	}
}

func TestAgentUpdate(t *testing.T) {
	svc, m := setupTestAgentService()
	ctx := context.Background()

	dept := &model.Department{Name: "客服一部"}
	_ = m.depts.Create(ctx, dept)
	agent := &model.Agent{
		Name: "赵六", EmployeeNo: "E200", Email: "zhaoliu@example.com",
		Role: model.RoleAgent, DepartmentID: dept.DepartmentID, IsActive: true,
	}
	_ = m.agents.Create(ctx, agent)

	newName := "赵小六"
	newRole := model.RoleSupervisor
	resp, err := svc.Update(ctx, agent.AgentID, "admin-1", &dto.UpdateAgentRequest{
		Name: &newName, Role: &newRole,
	})
	if err != nil {
		t.Fatalf("更新坐席应成功: %v", err)
	}
	if resp.Name != "赵小六" || resp.Role != model.RoleSupervisor {
		t.Errorf("部分更新未生效: name=%s role=%s", resp.Name, resp.Role)
	}
	// 未传入的字段保持不变
	if resp.Email != "zhaoliu@example.com" {
		t.Errorf("未更新字段不应变化: %s", resp.Email)
	}

	if _, err := svc.Update(ctx, "no-such-agent", "admin-1", &dto.UpdateAgentRequest{Name: &newName}); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("坐席不存在应返回 ErrAgentNotFound, got %v", err)
	}
}

func TestAssignShift(t *testing.T) {
	svc, m := setupTestAgentService()
	ctx := context.Background()

	agent := &model.Agent{Name: "赵六", EmployeeNo: "E200", Email: "zhaoliu@example.com", IsActive: true}
	_ = m.agents.Create(ctx, agent)
	active := &model.Shift{Name: "早班", StartTime: "09:00", EndTime: "17:00", IsActive: true}
	inactive := &model.Shift{Name: "旧夜班", StartTime: "21:00", EndTime: "05:00", IsActive: false}
	_ = m.shifts.Create(ctx, active)
	_ = m.shifts.Create(ctx, inactive)

	// 停用班次不可指派
	if _, err := svc.AssignShift(ctx, agent.AgentID, "admin-1", &dto.AssignShiftRequest{ShiftID: inactive.ShiftID}); !errors.Is(err, ErrShiftInactive) {
		t.Errorf("停用班次指派应返回 ErrShiftInactive, got %v", err)
	}

	resp, err := svc.AssignShift(ctx, agent.AgentID, "admin-1", &dto.AssignShiftRequest{ShiftID: active.ShiftID})
	if err != nil {
		t.Fatalf("指派班次应成功: %v", err)
	}
	if resp.Shift == nil || resp.Shift.ID != active.ShiftID {
		t.Error("指派后应返回新班次")
	}
}

func TestResetPassword(t *testing.T) {
	svc, m := setupTestAgentService()
	ctx := context.Background()

	agent := &model.Agent{Name: "赵六", EmployeeNo: "E200", Email: "zhaoliu@example.com", IsActive: true}
	_ = m.agents.Create(ctx, agent)

	if err := svc.ResetPassword(ctx, agent.AgentID, "admin-1", &dto.ResetPasswordRequest{NewPassword: "reset-pass-1"}); err != nil {
		t.Fatalf("重置密码应成功: %v", err)
	}
	if !agent.MustChangePassword {
		t.Error("重置密码后应标记强制改密")
	}
	if agent.PasswordHash == "" {
		t.Error("重置密码应写入新哈希")
	}

	if err := svc.ResetPassword(ctx, "no-such-agent", "admin-1", &dto.ResetPasswordRequest{NewPassword: "reset-pass-1"}); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("坐席不存在应返回 ErrAgentNotFound, got %v", err)
	}
}

func TestAgentList(t *testing.T) {
	svc, m := setupTestAgentService()
	ctx := context.Background()

	_ = m.agents.Create(ctx, &model.Agent{Name: "A", EmployeeNo: "E1", Email: "a@example.com", Role: model.RoleAgent, DepartmentID: "dept-1"})
	_ = m.agents.Create(ctx, &model.Agent{Name: "B", EmployeeNo: "E2", Email: "b@example.com", Role: model.RoleSupervisor, DepartmentID: "dept-1"})
	_ = m.agents.Create(ctx, &model.Agent{Name: "C", EmployeeNo: "E3", Email: "c@example.com", Role: model.RoleAgent, DepartmentID: "dept-2"})

	items, total, err := svc.List(ctx, &dto.AgentListRequest{Role: model.RoleAgent})
	if err != nil {
		t.Fatalf("查询列表应成功: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("按角色过滤应返回 2 条, got total=%d len=%d", total, len(items))
	}
}
