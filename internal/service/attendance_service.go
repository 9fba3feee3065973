package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raalc/backend/config"
	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
	"raalc/backend/pkg/clock"
	"raalc/backend/pkg/redis"
)

// ── 考勤业务错误 ──

var (
	ErrAgentInactive         = errors.New("坐席账号已停用")
	ErrNoShiftAssigned       = errors.New("坐席未指派班次")
	ErrShiftInactive         = errors.New("班次已停用")
	ErrAlreadyCheckedIn      = errors.New("今日已签到")
	ErrRecheckinDisabled     = errors.New("今日会话已结束，系统未开启重复签到")
	ErrTooLateToCheckIn      = errors.New("已超过班次结束时间，无法签到")
	ErrNotCheckedIn          = errors.New("当前没有进行中的考勤会话")
	ErrCannotCheckOutOnBreak = errors.New("休息中无法签退，请先结束休息")
	ErrSessionNotOpen        = errors.New("考勤会话已结束")
	ErrNoBreakPolicy         = errors.New("班次未配置休息策略")
	ErrBreakTypeNotAllowed   = errors.New("休息策略不允许该休息类型")
	ErrBreakTooShort         = errors.New("申请时长低于该类型的最小时长")
	ErrBreakTooLong          = errors.New("申请时长超过该类型的最大时长")
	ErrMaxBreaksReached      = errors.New("今日休息次数已达上限")
	ErrBreakCooldownActive   = errors.New("距离上次休息结束的冷却时间未满")
	ErrBreakAlreadyActive    = errors.New("当前已有进行中的休息")
	ErrBreakPendingExists    = errors.New("已有待审批的休息申请")
	ErrNoActiveBreak         = errors.New("当前没有进行中的休息")
	ErrBreakNotApproved      = errors.New("休息申请尚未批准")
	ErrBreakRequestNotFound  = errors.New("休息申请不存在")
	ErrBreakNotPending       = errors.New("休息申请已被处理")
)

// AttendanceService 考勤状态机业务接口
// 每次状态流转在单个事务内完成：会话/申请变更 + 恰好一条活动日志
type AttendanceService interface {
	CheckIn(ctx context.Context, agentID, ip string, req *dto.CheckInRequest) (*dto.CheckInResponse, error)
	CheckOut(ctx context.Context, agentID, ip string) (*dto.CheckOutResponse, error)
	RequestBreak(ctx context.Context, agentID string, req *dto.RequestBreakRequest) (*dto.RequestBreakResponse, error)
	EndBreak(ctx context.Context, agentID string) (*dto.EndBreakResponse, error)
	CancelBreak(ctx context.Context, agentID string) (*dto.BreakRequestResponse, error)
	ApproveBreak(ctx context.Context, requestID, deciderID string, req *dto.ApproveBreakRequest) (*dto.BreakRequestResponse, error)
	RejectBreak(ctx context.Context, requestID, deciderID string, req *dto.RejectBreakRequest) (*dto.BreakRequestResponse, error)
	GetToday(ctx context.Context, agentID string) (*dto.TodayResponse, error)
	ListSessions(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error)
	ListPendingBreaks(ctx context.Context, req *dto.PaginationRequest) ([]dto.BreakRequestResponse, int64, error)
	ReconcileAbandoned(ctx context.Context, operatorID string) (*dto.ReconcileResponse, error)
}

type attendanceService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	clk    clock.Clock
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
// rdb 允许为 nil（Redis 不可用时签到计数降级为不记录）
func NewAttendanceService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	clk clock.Clock,
	logger *zap.Logger,
) AttendanceService {
	return &attendanceService{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		clk:    clk,
		logger: logger,
	}
}

// ═══════════════════════════════════════════
//  签到 / 签退
// ═══════════════════════════════════════════

func (s *attendanceService) CheckIn(ctx context.Context, agentID, ip string, req *dto.CheckInRequest) (*dto.CheckInResponse, error) {
	now := s.clk.Now()
	today := clock.DateOf(now)

	// 1. 校验坐席与班次
	agent, err := s.repo.Agent.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		s.logger.Error("查询坐席失败", zap.Error(err))
		return nil, err
	}
	if !agent.IsActive {
		return nil, ErrAgentInactive
	}
	if agent.Shift == nil {
		return nil, ErrNoShiftAssigned
	}
	if !agent.Shift.IsActive {
		return nil, ErrShiftInactive
	}

	shiftStart, shiftEnd := shiftWindow(now, agent.Shift)
	if now.After(shiftEnd) && !agent.Shift.OvertimeAllowed {
		return nil, ErrTooLateToCheckIn
	}
	lateMinutes := lateBy(now, shiftStart, agent.Shift.GracePeriodMinutes)

	// 2. 事务内创建或恢复会话，并追加活动日志
	var session *model.AgentSession
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 2a. 前一日遗留的 open 会话（核对任务尚未处理）就地关闭，
		// 保证任一时刻至多一个 open 会话
		open, err := tx.Session.GetOpenByAgent(ctx, agentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if open != nil && clock.DateOf(open.SessionDate) != today {
			if err := s.closeAbandoned(ctx, tx, open, now, agentID,
				"签到时发现前日会话未签退，标记为 incomplete"); err != nil {
				return err
			}
		}

		existing, err := tx.Session.GetByAgentAndDate(ctx, agentID, today)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 2b. 当日已有会话：进行中直接拒绝；已结束按系统开关决定是否恢复
		if existing != nil {
			if existing.IsOpen() {
				return ErrAlreadyCheckedIn
			}
			sysCfg, err := tx.SystemConfig.Get(ctx)
			if err != nil {
				return err
			}
			if !sysCfg.AllowRecheckin {
				return ErrRecheckinDisabled
			}
			existing.Status = model.SessionActive
			if err := tx.Session.Update(ctx, existing); err != nil {
				return err
			}
			session = existing
			return tx.ActivityLog.Create(ctx, &model.ActivityLog{
				AgentID:   agentID,
				SessionID: &existing.SessionID,
				Action:    model.ActionReCheckIn,
				Details:   fmt.Sprintf("恢复当日会话，班次 %s", agent.Shift.Name),
			})
		}

		// 2c. 首次签到：库级唯一约束兜底并发重复
		created := &model.AgentSession{
			AgentID:         agentID,
			SessionDate:     clock.DayStart(now),
			ShiftID:         agent.Shift.ShiftID,
			Status:          model.SessionActive,
			CheckInAt:       &now,
			CheckInIP:       ip,
			CheckInLocation: req.Location,
			LateMinutes:     lateMinutes,
		}
		if err := tx.Session.Create(ctx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCheckedIn
			}
			return err
		}
		session = created
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   agentID,
			SessionID: &created.SessionID,
			Action:    model.ActionCheckIn,
			Details:   fmt.Sprintf("班次 %s，迟到 %d 分钟", agent.Shift.Name, lateMinutes),
		})
	})
	if err != nil {
		return nil, err
	}

	// 3. 运营看板计数（尽力而为，失败不影响签到）
	if s.rdb != nil {
		if err := s.rdb.IncrCheckinCounter(ctx, today); err != nil {
			s.logger.Warn("签到计数写入失败", zap.Error(err))
		}
	}

	punctuality := "on_time"
	if session.LateMinutes > 0 {
		punctuality = "late"
	}
	session.Shift = agent.Shift
	return &dto.CheckInResponse{
		Session:     toSessionResponse(session),
		Punctuality: punctuality,
		LateMinutes: session.LateMinutes,
	}, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, agentID, ip string) (*dto.CheckOutResponse, error) {
	now := s.clk.Now()

	var session *model.AgentSession
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		open, err := tx.Session.GetOpenByAgent(ctx, agentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCheckedIn
			}
			return err
		}
		if open.Status == model.SessionOnBreak {
			return ErrCannotCheckOutOnBreak
		}

		open.Status = model.SessionCompleted
		open.CheckOutAt = &now
		open.CheckOutIP = ip
		if err := tx.Session.Update(ctx, open); err != nil {
			return err
		}
		session = open
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   agentID,
			SessionID: &open.SessionID,
			Action:    model.ActionCheckOut,
			Details:   fmt.Sprintf("累计休息 %d 分钟", open.BreakMinutes),
		})
	})
	if err != nil {
		return nil, err
	}

	summary := workSummary(session)
	return &dto.CheckOutResponse{
		Session: toSessionResponse(session),
		Summary: summary,
	}, nil
}

// ═══════════════════════════════════════════
//  休息申请 / 开始 / 结束
// ═══════════════════════════════════════════

func (s *attendanceService) RequestBreak(ctx context.Context, agentID string, req *dto.RequestBreakRequest) (*dto.RequestBreakResponse, error) {
	now := s.clk.Now()

	var (
		created          *model.BreakRequest
		requiresApproval bool
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		session, err := tx.Session.GetOpenByAgent(ctx, agentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCheckedIn
			}
			return err
		}
		if session.Status == model.SessionOnBreak {
			return ErrBreakAlreadyActive
		}
		if session.Shift == nil || session.Shift.BreakPolicy == nil {
			return ErrNoBreakPolicy
		}
		policy := session.Shift.BreakPolicy

		// 策略校验：类型、时长区间、次数配额、冷却期、单一未决申请
		if !policy.AllowedTypes.Contains(req.BreakType) {
			return ErrBreakTypeNotAllowed
		}
		if rule := policy.RuleFor(req.BreakType); rule != nil {
			if req.DurationMinutes < rule.MinMinutes {
				return ErrBreakTooShort
			}
			if req.DurationMinutes > rule.MaxMinutes {
				return ErrBreakTooLong
			}
		}
		used, err := tx.BreakRequest.CountUsedBySession(ctx, session.SessionID)
		if err != nil {
			return err
		}
		if used >= int64(policy.MaxBreaksPerDay) {
			return ErrMaxBreaksReached
		}
		if _, err := tx.BreakRequest.GetLatestPendingBySession(ctx, session.SessionID); err == nil {
			return ErrBreakPendingExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if policy.CooldownMinutes > 0 {
			last, err := tx.BreakRequest.GetLastEndedBySession(ctx, session.SessionID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if last != nil && last.EndedAt != nil &&
				now.Sub(*last.EndedAt) < time.Duration(policy.CooldownMinutes)*time.Minute {
				return ErrBreakCooldownActive
			}
		}

		// 紧急休息绕过审批，立即生效
		requiresApproval = policy.RequiresApproval && req.BreakType != model.BreakTypeEmergency

		br := &model.BreakRequest{
			SessionID:        session.SessionID,
			AgentID:          agentID,
			BreakType:        req.BreakType,
			RequestedMinutes: req.DurationMinutes,
			Reason:           req.Reason,
			RequestedAt:      now,
		}
		if requiresApproval {
			br.Status = model.BreakStatusPending
			if err := tx.BreakRequest.Create(ctx, br); err != nil {
				return err
			}
			created = br
			return tx.ActivityLog.Create(ctx, &model.ActivityLog{
				AgentID:   agentID,
				SessionID: &session.SessionID,
				Action:    model.ActionBreakRequested,
				Details:   fmt.Sprintf("%s 休息 %d 分钟，待审批", req.BreakType, req.DurationMinutes),
			})
		}

		br.Status = model.BreakStatusActive
		br.StartedAt = &now
		if err := tx.BreakRequest.Create(ctx, br); err != nil {
			return err
		}
		session.Status = model.SessionOnBreak
		if err := tx.Session.Update(ctx, session); err != nil {
			return err
		}
		created = br
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   agentID,
			SessionID: &session.SessionID,
			Action:    model.ActionBreakStarted,
			Details:   fmt.Sprintf("%s 休息 %d 分钟，免审批开始", req.BreakType, req.DurationMinutes),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.RequestBreakResponse{
		Request:          toBreakResponse(created),
		RequiresApproval: requiresApproval,
	}, nil
}

func (s *attendanceService) EndBreak(ctx context.Context, agentID string) (*dto.EndBreakResponse, error) {
	now := s.clk.Now()

	var ended *model.BreakRequest
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		session, err := tx.Session.GetOpenByAgent(ctx, agentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCheckedIn
			}
			return err
		}

		active, err := tx.BreakRequest.GetActiveBySession(ctx, session.SessionID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// 没有进行中的休息：待审批申请给出更准确的提示
			if _, perr := tx.BreakRequest.GetLatestPendingBySession(ctx, session.SessionID); perr == nil {
				return ErrBreakNotApproved
			}
			return ErrNoActiveBreak
		}

		actual := int(now.Sub(*active.StartedAt) / time.Minute)
		active.Status = model.BreakStatusEnded
		active.EndedAt = &now
		active.ActualMinutes = &actual
		if err := tx.BreakRequest.Update(ctx, active); err != nil {
			return err
		}

		session.Status = model.SessionActive
		session.BreakMinutes += actual
		if err := tx.Session.Update(ctx, session); err != nil {
			return err
		}
		ended = active
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   agentID,
			SessionID: &session.SessionID,
			Action:    model.ActionBreakEnded,
			Details:   fmt.Sprintf("%s 休息实际 %d 分钟（申请 %d 分钟）", active.BreakType, actual, active.RequestedMinutes),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.EndBreakResponse{
		Request:       toBreakResponse(ended),
		ActualMinutes: *ended.ActualMinutes,
	}, nil
}

func (s *attendanceService) CancelBreak(ctx context.Context, agentID string) (*dto.BreakRequestResponse, error) {
	var cancelled *model.BreakRequest
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		session, err := tx.Session.GetOpenByAgent(ctx, agentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCheckedIn
			}
			return err
		}

		pending, err := tx.BreakRequest.GetLatestPendingBySession(ctx, session.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBreakRequestNotFound
			}
			return err
		}

		pending.Status = model.BreakStatusCancelled
		if err := tx.BreakRequest.Update(ctx, pending); err != nil {
			return err
		}
		cancelled = pending
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   agentID,
			SessionID: &session.SessionID,
			Action:    model.ActionBreakCancelled,
			Details:   fmt.Sprintf("撤回 %s 休息申请", pending.BreakType),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toBreakResponse(cancelled)
	return &resp, nil
}

// ═══════════════════════════════════════════
//  审批
// ═══════════════════════════════════════════

func (s *attendanceService) ApproveBreak(ctx context.Context, requestID, deciderID string, req *dto.ApproveBreakRequest) (*dto.BreakRequestResponse, error) {
	now := s.clk.Now()

	var approved *model.BreakRequest
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		br, err := tx.BreakRequest.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBreakRequestNotFound
			}
			return err
		}
		if br.Status != model.BreakStatusPending {
			return ErrBreakNotPending
		}

		session, err := tx.Session.GetByID(ctx, br.SessionID)
		if err != nil {
			return err
		}
		// 坐席已签退或会话被核对关闭，批准无从生效
		if !session.IsOpen() {
			return ErrSessionNotOpen
		}
		if session.Status == model.SessionOnBreak {
			return ErrBreakAlreadyActive
		}

		// 批准即开始：approved 不作为驻留状态
		br.Status = model.BreakStatusActive
		br.StartedAt = &now
		br.DecidedAt = &now
		br.DecidedBy = &deciderID
		br.DecisionNotes = req.Notes
		if err := tx.BreakRequest.Update(ctx, br); err != nil {
			return err
		}

		session.Status = model.SessionOnBreak
		if err := tx.Session.Update(ctx, session); err != nil {
			return err
		}
		approved = br
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   br.AgentID,
			SessionID: &br.SessionID,
			Action:    model.ActionBreakApproved,
			Details:   fmt.Sprintf("%s 休息申请获批并开始", br.BreakType),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toBreakResponse(approved)
	return &resp, nil
}

func (s *attendanceService) RejectBreak(ctx context.Context, requestID, deciderID string, req *dto.RejectBreakRequest) (*dto.BreakRequestResponse, error) {
	now := s.clk.Now()

	var rejected *model.BreakRequest
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		br, err := tx.BreakRequest.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBreakRequestNotFound
			}
			return err
		}
		if br.Status != model.BreakStatusPending {
			return ErrBreakNotPending
		}

		br.Status = model.BreakStatusRejected
		br.DecidedAt = &now
		br.DecidedBy = &deciderID
		br.DecisionNotes = req.Reason
		if err := tx.BreakRequest.Update(ctx, br); err != nil {
			return err
		}
		rejected = br
		return tx.ActivityLog.Create(ctx, &model.ActivityLog{
			AgentID:   br.AgentID,
			SessionID: &br.SessionID,
			Action:    model.ActionBreakRejected,
			Details:   fmt.Sprintf("%s 休息申请被驳回：%s", br.BreakType, req.Reason),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toBreakResponse(rejected)
	return &resp, nil
}

// ═══════════════════════════════════════════
//  查询
// ═══════════════════════════════════════════

func (s *attendanceService) GetToday(ctx context.Context, agentID string) (*dto.TodayResponse, error) {
	today := clock.DateOf(s.clk.Now())

	session, err := s.repo.Session.GetByAgentAndDate(ctx, agentID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TodayResponse{SessionDate: today}, nil
		}
		s.logger.Error("查询当日会话失败", zap.Error(err))
		return nil, err
	}

	resp := toSessionResponse(session)
	return &dto.TodayResponse{SessionDate: today, Session: &resp}, nil
}

func (s *attendanceService) ListSessions(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error) {
	filter := repository.SessionFilter{
		AgentID:  req.AgentID,
		Status:   req.Status,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}
	sessions, total, err := s.repo.Session.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询会话列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, toSessionResponse(&sessions[i]))
	}
	return items, total, nil
}

func (s *attendanceService) ListPendingBreaks(ctx context.Context, req *dto.PaginationRequest) ([]dto.BreakRequestResponse, int64, error) {
	reqs, total, err := s.repo.BreakRequest.ListPending(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.BreakRequestResponse, 0, len(reqs))
	for i := range reqs {
		items = append(items, toBreakResponse(&reqs[i]))
	}
	return items, total, nil
}

// ═══════════════════════════════════════════
//  异常会话核对
// ═══════════════════════════════════════════

// ReconcileAbandoned 将超时未签退的会话标记为 incomplete
// 进行中的休息一并结束；incomplete 会话不写 check_out_at
func (s *attendanceService) ReconcileAbandoned(ctx context.Context, operatorID string) (*dto.ReconcileResponse, error) {
	now := s.clk.Now()
	cutoff := now.Add(-time.Duration(s.cfg.Attendance.ReconcileMaxShiftHours) * time.Hour)

	stale, err := s.repo.Session.ListOpenBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("查询超时会话失败", zap.Error(err))
		return nil, err
	}

	reconciled := make([]string, 0, len(stale))
	for i := range stale {
		session := &stale[i]
		err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			return s.closeAbandoned(ctx, tx, session, now, operatorID,
				fmt.Sprintf("签到超过 %d 小时未签退，标记为 incomplete", s.cfg.Attendance.ReconcileMaxShiftHours))
		})
		if err != nil {
			// 单条失败不阻断整批核对
			s.logger.Error("核对会话失败",
				zap.String("session_id", session.SessionID), zap.Error(err))
			continue
		}
		reconciled = append(reconciled, session.SessionID)
	}

	return &dto.ReconcileResponse{
		ReconciledCount: len(reconciled),
		SessionIDs:      reconciled,
	}, nil
}

// closeAbandoned 关闭遗留会话：结束进行中的休息并标记 incomplete
// incomplete 会话不写 check_out_at
func (s *attendanceService) closeAbandoned(ctx context.Context, tx *repository.Repository, session *model.AgentSession, now time.Time, operatorID, details string) error {
	if session.Status == model.SessionOnBreak {
		active, err := tx.BreakRequest.GetActiveBySession(ctx, session.SessionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if active != nil {
			actual := int(now.Sub(*active.StartedAt) / time.Minute)
			active.Status = model.BreakStatusEnded
			active.EndedAt = &now
			active.ActualMinutes = &actual
			if err := tx.BreakRequest.Update(ctx, active); err != nil {
				return err
			}
			session.BreakMinutes += actual
		}
	}

	session.Status = model.SessionIncomplete
	session.UpdatedBy = &operatorID
	if err := tx.Session.Update(ctx, session); err != nil {
		return err
	}
	return tx.ActivityLog.Create(ctx, &model.ActivityLog{
		AgentID:   session.AgentID,
		SessionID: &session.SessionID,
		Action:    model.ActionSessionReconciled,
		Details:   details,
	})
}

// ═══════════════════════════════════════════
//  内部工具
// ═══════════════════════════════════════════

// shiftWindow 计算班次在某自然日的起止时刻；结束不晚于开始视为跨日班次
func shiftWindow(day time.Time, shift *model.Shift) (time.Time, time.Time) {
	start := timeOn(day, shift.StartTime)
	end := timeOn(day, shift.EndTime)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}

// timeOn 将 HH:MM 落到某自然日的具体时刻（沿用 day 的时区）
func timeOn(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return clock.DayStart(day)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

// lateBy 计算迟到分钟数：超出（班次开始 + 宽限期）的部分，宽限期内视为准点
func lateBy(now, shiftStart time.Time, graceMinutes int) int {
	deadline := shiftStart.Add(time.Duration(graceMinutes) * time.Minute)
	if !now.After(deadline) {
		return 0
	}
	return int(now.Sub(deadline) / time.Minute)
}

// workSummary 计算签退工时汇总
func workSummary(session *model.AgentSession) dto.WorkSummary {
	total := 0
	if session.CheckInAt != nil && session.CheckOutAt != nil {
		total = int(session.CheckOutAt.Sub(*session.CheckInAt) / time.Minute)
	}
	work := total - session.BreakMinutes
	if work < 0 {
		work = 0
	}
	return dto.WorkSummary{
		TotalMinutes: total,
		BreakMinutes: session.BreakMinutes,
		WorkMinutes:  work,
	}
}

// ── DTO 映射 ──

func toAgentBrief(agent *model.Agent) *dto.AgentBrief {
	if agent == nil {
		return nil
	}
	brief := &dto.AgentBrief{
		ID:         agent.AgentID,
		Name:       agent.Name,
		EmployeeNo: agent.EmployeeNo,
	}
	if agent.Department != nil {
		brief.Department = &dto.DepartmentResponse{
			ID:   agent.Department.DepartmentID,
			Name: agent.Department.Name,
		}
	}
	return brief
}

func toShiftBrief(shift *model.Shift) *dto.ShiftBrief {
	if shift == nil {
		return nil
	}
	return &dto.ShiftBrief{
		ID:                 shift.ShiftID,
		Name:               shift.Name,
		StartTime:          shift.StartTime,
		EndTime:            shift.EndTime,
		GracePeriodMinutes: shift.GracePeriodMinutes,
	}
}

func toSessionResponse(session *model.AgentSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:           session.SessionID,
		Agent:        toAgentBrief(session.Agent),
		SessionDate:  clock.DateOf(session.SessionDate),
		Shift:        toShiftBrief(session.Shift),
		Status:       session.Status,
		CheckInAt:    formatTimePtr(session.CheckInAt),
		CheckOutAt:   formatTimePtr(session.CheckOutAt),
		CheckInIP:    session.CheckInIP,
		LateMinutes:  session.LateMinutes,
		BreakMinutes: session.BreakMinutes,
	}
	if session.CheckInLocation != nil {
		resp.CheckInLocation = *session.CheckInLocation
	}
	for i := range session.Breaks {
		resp.Breaks = append(resp.Breaks, toBreakResponse(&session.Breaks[i]))
	}
	return resp
}

func toBreakResponse(br *model.BreakRequest) dto.BreakRequestResponse {
	return dto.BreakRequestResponse{
		ID:               br.BreakRequestID,
		SessionID:        br.SessionID,
		Agent:            toAgentBrief(br.Agent),
		BreakType:        br.BreakType,
		RequestedMinutes: br.RequestedMinutes,
		ActualMinutes:    br.ActualMinutes,
		Status:           br.Status,
		Reason:           br.Reason,
		RequestedAt:      br.RequestedAt.Format(time.RFC3339),
		StartedAt:        formatTimePtr(br.StartedAt),
		EndedAt:          formatTimePtr(br.EndedAt),
		DecidedAt:        formatTimePtr(br.DecidedAt),
		DecidedBy:        br.DecidedBy,
		DecisionNotes:    br.DecisionNotes,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
