package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
	"raalc/backend/pkg/clock"
)

// ── 固定时钟 ──

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// ── Mock AgentRepository ──

type mockAgentRepo struct {
	agents map[string]*model.Agent
	shifts *mockShiftRepo
	seq    int
}

func newMockAgentRepo() *mockAgentRepo {
	return &mockAgentRepo{agents: make(map[string]*model.Agent)}
}

// preload 模拟生产实现的 Shift / BreakPolicy 预加载
func (m *mockAgentRepo) preload(agent *model.Agent) *model.Agent {
	if agent.ShiftID != nil && m.shifts != nil {
		if s, ok := m.shifts.shifts[*agent.ShiftID]; ok {
			agent.Shift = m.shifts.preload(s)
		}
	}
	return agent
}

func (m *mockAgentRepo) Create(_ context.Context, agent *model.Agent) error {
	if agent.AgentID == "" {
		m.seq++
		agent.AgentID = fmt.Sprintf("agent-%d", m.seq)
	}
	for _, a := range m.agents {
		if a.Email == agent.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.agents[agent.AgentID] = agent
	return nil
}

func (m *mockAgentRepo) GetByID(_ context.Context, id string) (*model.Agent, error) {
	if a, ok := m.agents[id]; ok {
		return m.preload(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAgentRepo) GetByEmployeeNo(_ context.Context, employeeNo string) (*model.Agent, error) {
	for _, a := range m.agents {
		if a.EmployeeNo == employeeNo {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAgentRepo) List(_ context.Context, departmentID, role string, _, _ int) ([]model.Agent, int64, error) {
	var result []model.Agent
	for _, a := range m.agents {
		if departmentID != "" && a.DepartmentID != departmentID {
			continue
		}
		if role != "" && a.Role != role {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (m *mockAgentRepo) Update(_ context.Context, agent *model.Agent) error {
	m.agents[agent.AgentID] = agent
	agent.Version++
	return nil
}

func (m *mockAgentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.agents, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts       map[string]*model.Department
	agentCounts map[string]int64
	seq         int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{
		depts:       make(map[string]*model.Department),
		agentCounts: make(map[string]int64),
	}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.seq++
		dept.DepartmentID = fmt.Sprintf("dept-%d", m.seq)
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.DepartmentID] = dept
	dept.Version++
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.depts, id)
	return nil
}

func (m *mockDeptRepo) CountAgents(_ context.Context, id string) (int64, error) {
	return m.agentCounts[id], nil
}

// ── Mock BreakPolicyRepository ──

type mockBreakPolicyRepo struct {
	policies     map[string]*model.BreakPolicy
	linkedCounts map[string]int64
	seq          int
}

func newMockBreakPolicyRepo() *mockBreakPolicyRepo {
	return &mockBreakPolicyRepo{
		policies:     make(map[string]*model.BreakPolicy),
		linkedCounts: make(map[string]int64),
	}
}

func (m *mockBreakPolicyRepo) Create(_ context.Context, policy *model.BreakPolicy) error {
	if policy.BreakPolicyID == "" {
		m.seq++
		policy.BreakPolicyID = fmt.Sprintf("policy-%d", m.seq)
	}
	m.policies[policy.BreakPolicyID] = policy
	return nil
}

func (m *mockBreakPolicyRepo) GetByID(_ context.Context, id string) (*model.BreakPolicy, error) {
	if p, ok := m.policies[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBreakPolicyRepo) List(_ context.Context, includeInactive bool) ([]model.BreakPolicy, error) {
	var result []model.BreakPolicy
	for _, p := range m.policies {
		if !includeInactive && !p.IsActive {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockBreakPolicyRepo) Update(_ context.Context, policy *model.BreakPolicy) error {
	m.policies[policy.BreakPolicyID] = policy
	policy.Version++
	return nil
}

func (m *mockBreakPolicyRepo) ReplaceRules(_ context.Context, policyID string, rules []model.BreakPolicyRule) error {
	p, ok := m.policies[policyID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range rules {
		rules[i].BreakPolicyID = policyID
	}
	p.Rules = rules
	return nil
}

func (m *mockBreakPolicyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.policies, id)
	return nil
}

func (m *mockBreakPolicyRepo) CountLinkedShifts(_ context.Context, id string) (int64, error) {
	return m.linkedCounts[id], nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts         map[string]*model.Shift
	policies       *mockBreakPolicyRepo
	assignedCounts map[string]int64
	seq            int
}

func newMockShiftRepo(policies *mockBreakPolicyRepo) *mockShiftRepo {
	return &mockShiftRepo{
		shifts:         make(map[string]*model.Shift),
		policies:       policies,
		assignedCounts: make(map[string]int64),
	}
}

// preload 模拟生产实现的 BreakPolicy 预加载
func (m *mockShiftRepo) preload(shift *model.Shift) *model.Shift {
	if shift.BreakPolicyID != nil && m.policies != nil {
		if p, ok := m.policies.policies[*shift.BreakPolicyID]; ok {
			shift.BreakPolicy = p
		}
	}
	return shift
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.seq++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.seq)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return m.preload(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, includeInactive bool) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if !includeInactive && !s.IsActive {
			continue
		}
		result = append(result, *m.preload(s))
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	m.shifts[shift.ShiftID] = shift
	shift.Version++
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) CountAssignedAgents(_ context.Context, id string) (int64, error) {
	return m.assignedCounts[id], nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.AgentSession
	shifts   *mockShiftRepo
	seq      int
}

func newMockSessionRepo(shifts *mockShiftRepo) *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*model.AgentSession),
		shifts:   shifts,
	}
}

// preload 模拟生产实现的 Shift / BreakPolicy 预加载
func (m *mockSessionRepo) preload(session *model.AgentSession) *model.AgentSession {
	if m.shifts != nil {
		if s, ok := m.shifts.shifts[session.ShiftID]; ok {
			session.Shift = m.shifts.preload(s)
		}
	}
	return session
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.AgentSession) error {
	for _, s := range m.sessions {
		if s.AgentID == session.AgentID && clock.DateOf(s.SessionDate) == clock.DateOf(session.SessionDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("sess-%d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.AgentSession, error) {
	if s, ok := m.sessions[id]; ok {
		return m.preload(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetByAgentAndDate(_ context.Context, agentID, date string) (*model.AgentSession, error) {
	for _, s := range m.sessions {
		if s.AgentID == agentID && clock.DateOf(s.SessionDate) == date {
			return m.preload(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetOpenByAgent(_ context.Context, agentID string) (*model.AgentSession, error) {
	for _, s := range m.sessions {
		if s.AgentID == agentID && s.IsOpen() {
			return m.preload(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, filter repository.SessionFilter, _, _ int) ([]model.AgentSession, int64, error) {
	var result []model.AgentSession
	for _, s := range m.sessions {
		if filter.AgentID != "" && s.AgentID != filter.AgentID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.DateFrom != "" && clock.DateOf(s.SessionDate) < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && clock.DateOf(s.SessionDate) > filter.DateTo {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SessionID < result[j].SessionID
	})
	return result, int64(len(result)), nil
}

func (m *mockSessionRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]model.AgentSession, error) {
	var result []model.AgentSession
	for _, s := range m.sessions {
		if s.IsOpen() && s.CheckInAt != nil && s.CheckInAt.Before(cutoff) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.AgentSession) error {
	m.sessions[session.SessionID] = session
	session.Version++
	return nil
}

// ── Mock BreakRequestRepository ──

type mockBreakRequestRepo struct {
	requests map[string]*model.BreakRequest
	seq      int
}

func newMockBreakRequestRepo() *mockBreakRequestRepo {
	return &mockBreakRequestRepo{requests: make(map[string]*model.BreakRequest)}
}

func (m *mockBreakRequestRepo) Create(_ context.Context, req *model.BreakRequest) error {
	if req.BreakRequestID == "" {
		m.seq++
		req.BreakRequestID = fmt.Sprintf("break-%d", m.seq)
	}
	m.requests[req.BreakRequestID] = req
	return nil
}

func (m *mockBreakRequestRepo) GetByID(_ context.Context, id string) (*model.BreakRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBreakRequestRepo) GetActiveBySession(_ context.Context, sessionID string) (*model.BreakRequest, error) {
	for _, r := range m.requests {
		if r.SessionID == sessionID && r.Status == model.BreakStatusActive {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBreakRequestRepo) GetLatestPendingBySession(_ context.Context, sessionID string) (*model.BreakRequest, error) {
	var latest *model.BreakRequest
	for _, r := range m.requests {
		if r.SessionID == sessionID && r.Status == model.BreakStatusPending {
			if latest == nil || r.RequestedAt.After(latest.RequestedAt) {
				latest = r
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockBreakRequestRepo) GetLastEndedBySession(_ context.Context, sessionID string) (*model.BreakRequest, error) {
	var last *model.BreakRequest
	for _, r := range m.requests {
		if r.SessionID == sessionID && r.Status == model.BreakStatusEnded && r.EndedAt != nil {
			if last == nil || r.EndedAt.After(*last.EndedAt) {
				last = r
			}
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return last, nil
}

func (m *mockBreakRequestRepo) ListBySession(_ context.Context, sessionID string) ([]model.BreakRequest, error) {
	var result []model.BreakRequest
	for _, r := range m.requests {
		if r.SessionID == sessionID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockBreakRequestRepo) CountUsedBySession(_ context.Context, sessionID string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.SessionID == sessionID &&
			(r.Status == model.BreakStatusActive || r.Status == model.BreakStatusEnded) {
			count++
		}
	}
	return count, nil
}

func (m *mockBreakRequestRepo) ListPending(_ context.Context, _, _ int) ([]model.BreakRequest, int64, error) {
	var result []model.BreakRequest
	for _, r := range m.requests {
		if r.Status == model.BreakStatusPending {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt.Before(result[j].RequestedAt)
	})
	return result, int64(len(result)), nil
}

func (m *mockBreakRequestRepo) Update(_ context.Context, req *model.BreakRequest) error {
	m.requests[req.BreakRequestID] = req
	req.Version++
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	entries []model.ActivityLog
	seq     int
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	if entry.ActivityLogID == "" {
		m.seq++
		entry.ActivityLogID = fmt.Sprintf("log-%d", m.seq)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, filter repository.ActivityLogFilter, _, _ int) ([]model.ActivityLog, int64, error) {
	var result []model.ActivityLog
	for _, e := range m.entries {
		if filter.AgentID != "" && e.AgentID != filter.AgentID {
			continue
		}
		if filter.SessionID != "" && (e.SessionID == nil || *e.SessionID != filter.SessionID) {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

// actionsFor 返回某会话按写入顺序排列的动作列表（测试断言用）
func (m *mockActivityLogRepo) actionsFor(sessionID string) []string {
	var actions []string
	for _, e := range m.entries {
		if e.SessionID != nil && *e.SessionID == sessionID {
			actions = append(actions, e.Action)
		}
	}
	return actions
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	cfg *model.SystemConfig
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{cfg: &model.SystemConfig{Singleton: true}}
}

func (m *mockSystemConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	return m.cfg, nil
}

func (m *mockSystemConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	m.cfg = cfg
	return nil
}
