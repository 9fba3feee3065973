package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
	"raalc/backend/pkg/clock"
)

var (
	ErrShiftNotFound = errors.New("班次不存在")
	ErrShiftInUse    = errors.New("班次已指派给坐席，无法删除")
)

// 日历导出覆盖的天数
const calendarDays = 14

// ShiftService 班次管理业务接口
type ShiftService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ShiftResponse, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id, operatorID string) error
	// MyShift 查询坐席当前指派的班次
	MyShift(ctx context.Context, agentID string) (*dto.ShiftResponse, error)
	// Calendar 导出坐席当前班次未来两周的 iCalendar 排班
	Calendar(ctx context.Context, agentID string) (string, error)
}

type shiftService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, clk: clk, logger: logger}
}

func (s *shiftService) Create(ctx context.Context, operatorID string, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if req.BreakPolicyID != nil {
		if _, err := s.repo.BreakPolicy.GetByID(ctx, *req.BreakPolicyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBreakPolicyNotFound
			}
			return nil, err
		}
	}

	shift := &model.Shift{
		Name:                     req.Name,
		StartTime:                req.StartTime,
		EndTime:                  req.EndTime,
		GracePeriodMinutes:       req.GracePeriodMinutes,
		OvertimeAllowed:          req.OvertimeAllowed,
		OvertimeRequiresApproval: req.OvertimeRequiresApproval,
		BreakPolicyID:            req.BreakPolicyID,
		IsActive:                 true,
	}
	shift.CreatedBy = &operatorID
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, shift.ShiftID)
}

func (s *shiftService) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	resp := toShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) List(ctx context.Context, includeInactive bool) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, toShiftResponse(&shifts[i]))
	}
	return items, nil
}

// Update 修改班次参数
// 已签到的会话沿用签到时的快照，修改只影响未来会话
func (s *shiftService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.GracePeriodMinutes != nil {
		shift.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.OvertimeAllowed != nil {
		shift.OvertimeAllowed = *req.OvertimeAllowed
	}
	if req.OvertimeRequiresApproval != nil {
		shift.OvertimeRequiresApproval = *req.OvertimeRequiresApproval
	}
	if req.BreakPolicyID != nil {
		if _, err := s.repo.BreakPolicy.GetByID(ctx, *req.BreakPolicyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBreakPolicyNotFound
			}
			return nil, err
		}
		shift.BreakPolicyID = req.BreakPolicyID
	}
	if req.IsActive != nil {
		shift.IsActive = *req.IsActive
	}
	shift.UpdatedBy = &operatorID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("更新班次失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *shiftService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Shift.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}

	count, err := s.repo.Shift.CountAssignedAgents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrShiftInUse
	}

	if err := s.repo.Shift.Delete(ctx, id, operatorID); err != nil {
		s.logger.Error("删除班次失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *shiftService) MyShift(ctx context.Context, agentID string) (*dto.ShiftResponse, error) {
	agent, err := s.repo.Agent.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		s.logger.Error("查询坐席失败", zap.Error(err))
		return nil, err
	}
	if agent.Shift == nil {
		return nil, ErrNoShiftAssigned
	}
	resp := toShiftResponse(agent.Shift)
	return &resp, nil
}

func (s *shiftService) Calendar(ctx context.Context, agentID string) (string, error) {
	agent, err := s.repo.Agent.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAgentNotFound
		}
		s.logger.Error("查询坐席失败", zap.Error(err))
		return "", err
	}
	if agent.Shift == nil {
		return "", ErrNoShiftAssigned
	}

	now := s.clk.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//RAALC//Backoffice//CN")

	for d := 0; d < calendarDays; d++ {
		day := clock.DayStart(now.AddDate(0, 0, d))
		start, end := shiftWindow(day, agent.Shift)

		event := cal.AddEvent(fmt.Sprintf("%s-%s@raalc", agent.AgentID, clock.DateOf(day)))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s（%s）", agent.Shift.Name, agent.Name))
		event.SetDescription(fmt.Sprintf("班次 %s - %s，宽限 %d 分钟",
			agent.Shift.StartTime, agent.Shift.EndTime, agent.Shift.GracePeriodMinutes))
	}

	return cal.Serialize(), nil
}

func toShiftResponse(shift *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:                       shift.ShiftID,
		Name:                     shift.Name,
		StartTime:                shift.StartTime,
		EndTime:                  shift.EndTime,
		GracePeriodMinutes:       shift.GracePeriodMinutes,
		OvertimeAllowed:          shift.OvertimeAllowed,
		OvertimeRequiresApproval: shift.OvertimeRequiresApproval,
		IsActive:                 shift.IsActive,
		CreatedAt:                shift.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                shift.UpdatedAt.Format(time.RFC3339),
	}
	if shift.BreakPolicy != nil {
		policy := toBreakPolicyResponse(shift.BreakPolicy)
		resp.BreakPolicy = &policy
	}
	return resp
}
