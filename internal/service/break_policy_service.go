package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

var (
	ErrBreakPolicyNotFound = errors.New("休息策略不存在")
	ErrBreakPolicyInUse    = errors.New("休息策略已被班次引用，无法删除")
	ErrRuleTypeNotAllowed  = errors.New("时长规则包含策略未允许的休息类型")
	ErrRuleRangeInvalid    = errors.New("时长规则最小值不能大于最大值")
)

// BreakPolicyService 休息策略管理业务接口
type BreakPolicyService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateBreakPolicyRequest) (*dto.BreakPolicyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BreakPolicyResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.BreakPolicyResponse, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateBreakPolicyRequest) (*dto.BreakPolicyResponse, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type breakPolicyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBreakPolicyService 创建 BreakPolicyService 实例
func NewBreakPolicyService(repo *repository.Repository, logger *zap.Logger) BreakPolicyService {
	return &breakPolicyService{repo: repo, logger: logger}
}

func (s *breakPolicyService) Create(ctx context.Context, operatorID string, req *dto.CreateBreakPolicyRequest) (*dto.BreakPolicyResponse, error) {
	if err := validateRules(req.AllowedTypes, req.Rules); err != nil {
		return nil, err
	}

	policy := &model.BreakPolicy{
		Name:             req.Name,
		AllowedTypes:     model.StringArray(req.AllowedTypes),
		MaxBreaksPerDay:  req.MaxBreaksPerDay,
		CooldownMinutes:  req.CooldownMinutes,
		RequiresApproval: req.RequiresApproval,
		WindowStart:      req.WindowStart,
		WindowEnd:        req.WindowEnd,
		IsActive:         true,
	}
	policy.CreatedBy = &operatorID
	if err := s.repo.BreakPolicy.Create(ctx, policy); err != nil {
		s.logger.Error("创建休息策略失败", zap.Error(err))
		return nil, err
	}

	if len(req.Rules) > 0 {
		rules := toRuleModels(req.Rules)
		if err := s.repo.BreakPolicy.ReplaceRules(ctx, policy.BreakPolicyID, rules); err != nil {
			s.logger.Error("写入时长规则失败", zap.Error(err))
			return nil, err
		}
	}
	return s.GetByID(ctx, policy.BreakPolicyID)
}

func (s *breakPolicyService) GetByID(ctx context.Context, id string) (*dto.BreakPolicyResponse, error) {
	policy, err := s.repo.BreakPolicy.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBreakPolicyNotFound
		}
		s.logger.Error("查询休息策略失败", zap.Error(err))
		return nil, err
	}
	resp := toBreakPolicyResponse(policy)
	return &resp, nil
}

func (s *breakPolicyService) List(ctx context.Context, includeInactive bool) ([]dto.BreakPolicyResponse, error) {
	policies, err := s.repo.BreakPolicy.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("查询休息策略列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.BreakPolicyResponse, 0, len(policies))
	for i := range policies {
		items = append(items, toBreakPolicyResponse(&policies[i]))
	}
	return items, nil
}

// Update 修改策略参数
// 进行中的会话在下一次申请时读到新参数；已批准/进行中的休息不受影响
func (s *breakPolicyService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateBreakPolicyRequest) (*dto.BreakPolicyResponse, error) {
	policy, err := s.repo.BreakPolicy.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBreakPolicyNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		policy.Name = *req.Name
	}
	if req.AllowedTypes != nil {
		policy.AllowedTypes = model.StringArray(req.AllowedTypes)
	}
	if req.MaxBreaksPerDay != nil {
		policy.MaxBreaksPerDay = *req.MaxBreaksPerDay
	}
	if req.CooldownMinutes != nil {
		policy.CooldownMinutes = *req.CooldownMinutes
	}
	if req.RequiresApproval != nil {
		policy.RequiresApproval = *req.RequiresApproval
	}
	if req.WindowStart != nil {
		policy.WindowStart = req.WindowStart
	}
	if req.WindowEnd != nil {
		policy.WindowEnd = req.WindowEnd
	}
	if req.Rules != nil {
		if err := validateRules(policy.AllowedTypes, req.Rules); err != nil {
			return nil, err
		}
	}
	policy.UpdatedBy = &operatorID

	if err := s.repo.BreakPolicy.Update(ctx, policy); err != nil {
		s.logger.Error("更新休息策略失败", zap.Error(err))
		return nil, err
	}
	if req.Rules != nil {
		if err := s.repo.BreakPolicy.ReplaceRules(ctx, id, toRuleModels(req.Rules)); err != nil {
			s.logger.Error("替换时长规则失败", zap.Error(err))
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *breakPolicyService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.BreakPolicy.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBreakPolicyNotFound
		}
		return err
	}

	count, err := s.repo.BreakPolicy.CountLinkedShifts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBreakPolicyInUse
	}

	if err := s.repo.BreakPolicy.Delete(ctx, id, operatorID); err != nil {
		s.logger.Error("删除休息策略失败", zap.Error(err))
		return err
	}
	return nil
}

func validateRules(allowedTypes []string, rules []dto.BreakRuleInput) error {
	allowed := model.StringArray(allowedTypes)
	for _, rule := range rules {
		if !allowed.Contains(rule.BreakType) {
			return ErrRuleTypeNotAllowed
		}
		if rule.MinMinutes > rule.MaxMinutes {
			return ErrRuleRangeInvalid
		}
	}
	return nil
}

func toRuleModels(inputs []dto.BreakRuleInput) []model.BreakPolicyRule {
	rules := make([]model.BreakPolicyRule, 0, len(inputs))
	for _, in := range inputs {
		rules = append(rules, model.BreakPolicyRule{
			BreakType:  in.BreakType,
			MinMinutes: in.MinMinutes,
			MaxMinutes: in.MaxMinutes,
		})
	}
	return rules
}

func toBreakPolicyResponse(policy *model.BreakPolicy) dto.BreakPolicyResponse {
	resp := dto.BreakPolicyResponse{
		ID:               policy.BreakPolicyID,
		Name:             policy.Name,
		AllowedTypes:     policy.AllowedTypes,
		MaxBreaksPerDay:  policy.MaxBreaksPerDay,
		CooldownMinutes:  policy.CooldownMinutes,
		RequiresApproval: policy.RequiresApproval,
		WindowStart:      policy.WindowStart,
		WindowEnd:        policy.WindowEnd,
		CreatedAt:        policy.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        policy.UpdatedAt.Format(time.RFC3339),
	}
	for _, rule := range policy.Rules {
		resp.Rules = append(resp.Rules, dto.BreakRuleResponse{
			BreakType:  rule.BreakType,
			MinMinutes: rule.MinMinutes,
			MaxMinutes: rule.MaxMinutes,
		})
	}
	return resp
}
