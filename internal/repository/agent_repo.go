package repository

import (
	"context"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
	pkgerrors "raalc/backend/pkg/errors"
)

// AgentRepository 坐席数据访问接口
type AgentRepository interface {
	Create(ctx context.Context, agent *model.Agent) error
	GetByID(ctx context.Context, id string) (*model.Agent, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.Agent, error)
	List(ctx context.Context, departmentID, role string, offset, limit int) ([]model.Agent, int64, error)
	Update(ctx context.Context, agent *model.Agent) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type agentRepo struct {
	db *gorm.DB
}

// NewAgentRepo 创建 AgentRepository 实现
func NewAgentRepo(db *gorm.DB) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, agent *model.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *agentRepo) GetByID(ctx context.Context, id string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Shift").Preload("Shift.BreakPolicy").Preload("Shift.BreakPolicy.Rules").
		Where("agent_id = ?", id).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepo) GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("employee_no = ?", employeeNo).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepo) List(ctx context.Context, departmentID, role string, offset, limit int) ([]model.Agent, int64, error) {
	var agents []model.Agent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Agent{})
	if departmentID != "" {
		db = db.Where("department_id = ?", departmentID)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Department").Preload("Shift").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&agents).Error
	return agents, total, err
}

func (r *agentRepo) Update(ctx context.Context, agent *model.Agent) error {
	oldVersion := agent.Version
	result := r.db.WithContext(ctx).
		Model(agent).
		Where("agent_id = ? AND version = ?", agent.AgentID, oldVersion).
		Updates(map[string]interface{}{
			"name":                 agent.Name,
			"email":                agent.Email,
			"password_hash":        agent.PasswordHash,
			"role":                 agent.Role,
			"department_id":        agent.DepartmentID,
			"shift_id":             agent.ShiftID,
			"is_active":            agent.IsActive,
			"must_change_password": agent.MustChangePassword,
			"updated_by":           agent.UpdatedBy,
			"version":              oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	agent.Version = oldVersion + 1
	return nil
}

func (r *agentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Agent{}).
		Where("agent_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
