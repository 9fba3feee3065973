package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

var (
	ErrAgentNotFound    = errors.New("坐席不存在")
	ErrEmployeeNoTaken  = errors.New("工号已被使用")
	ErrEmailTaken       = errors.New("邮箱已被使用")
	ErrAgentHasSessions = errors.New("坐席存在考勤记录，无法删除")
)

// AgentService 坐席管理业务接口
type AgentService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateAgentRequest) (*dto.AgentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AgentResponse, error)
	List(ctx context.Context, req *dto.AgentListRequest) ([]dto.AgentResponse, int64, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error)
	AssignShift(ctx context.Context, id, operatorID string, req *dto.AssignShiftRequest) (*dto.AgentResponse, error)
	// ResetPassword 管理员重置密码，坐席下次登录需改密
	ResetPassword(ctx context.Context, id, operatorID string, req *dto.ResetPasswordRequest) error
	Delete(ctx context.Context, id, operatorID string) error
}

type agentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAgentService 创建 AgentService 实例
func NewAgentService(repo *repository.Repository, logger *zap.Logger) AgentService {
	return &agentService{repo: repo, logger: logger}
}

func (s *agentService) Create(ctx context.Context, operatorID string, req *dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	// 工号唯一性预检（库级部分唯一索引兜底并发）
	if _, err := s.repo.Agent.GetByEmployeeNo(ctx, req.EmployeeNo); err == nil {
		return nil, ErrEmployeeNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询坐席失败", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	if req.ShiftID != nil {
		if _, err := s.repo.Shift.GetByID(ctx, *req.ShiftID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShiftNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	agent := &model.Agent{
		Name:               req.Name,
		EmployeeNo:         req.EmployeeNo,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               req.Role,
		DepartmentID:       req.DepartmentID,
		ShiftID:            req.ShiftID,
		IsActive:           true,
		MustChangePassword: true, // 初始密码由管理员设定，首次登录需改密
	}
	agent.CreatedBy = &operatorID
	if err := s.repo.Agent.Create(ctx, agent); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建坐席失败", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, agent.AgentID)
}

func (s *agentService) GetByID(ctx context.Context, id string) (*dto.AgentResponse, error) {
	agent, err := s.repo.Agent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		s.logger.Error("查询坐席失败", zap.Error(err))
		return nil, err
	}
	resp := toAgentResponse(agent)
	return &resp, nil
}

func (s *agentService) List(ctx context.Context, req *dto.AgentListRequest) ([]dto.AgentResponse, int64, error) {
	agents, total, err := s.repo.Agent.List(ctx, req.DepartmentID, req.Role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询坐席列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		items = append(items, toAgentResponse(&agents[i]))
	}
	return items, total, nil
}

func (s *agentService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	agent, err := s.repo.Agent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Email != nil {
		agent.Email = *req.Email
	}
	if req.Role != nil {
		agent.Role = *req.Role
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		agent.DepartmentID = *req.DepartmentID
	}
	if req.IsActive != nil {
		agent.IsActive = *req.IsActive
	}
	agent.UpdatedBy = &operatorID

	if err := s.repo.Agent.Update(ctx, agent); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新坐席失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *agentService) AssignShift(ctx context.Context, id, operatorID string, req *dto.AssignShiftRequest) (*dto.AgentResponse, error) {
	agent, err := s.repo.Agent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if !shift.IsActive {
		return nil, ErrShiftInactive
	}

	// 指派只影响未来会话；进行中的会话沿用签到时的班次快照
	agent.ShiftID = &shift.ShiftID
	agent.UpdatedBy = &operatorID
	if err := s.repo.Agent.Update(ctx, agent); err != nil {
		s.logger.Error("指派班次失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *agentService) ResetPassword(ctx context.Context, id, operatorID string, req *dto.ResetPasswordRequest) error {
	agent, err := s.repo.Agent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	agent.PasswordHash = string(hash)
	agent.MustChangePassword = true
	agent.UpdatedBy = &operatorID
	if err := s.repo.Agent.Update(ctx, agent); err != nil {
		s.logger.Error("重置密码失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *agentService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Agent.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	if err := s.repo.Agent.Delete(ctx, id, operatorID); err != nil {
		s.logger.Error("删除坐席失败", zap.Error(err))
		return err
	}
	return nil
}

// toAgentResponse 组装坐席响应（含部门与班次简要信息）
func toAgentResponse(agent *model.Agent) dto.AgentResponse {
	resp := dto.AgentResponse{
		ID:                 agent.AgentID,
		Name:               agent.Name,
		EmployeeNo:         agent.EmployeeNo,
		Email:              agent.Email,
		Role:               agent.Role,
		Shift:              toShiftBrief(agent.Shift),
		IsActive:           agent.IsActive,
		MustChangePassword: agent.MustChangePassword,
	}
	if agent.Department != nil {
		resp.Department = &dto.DepartmentResponse{
			ID:   agent.Department.DepartmentID,
			Name: agent.Department.Name,
		}
	}
	return resp
}
