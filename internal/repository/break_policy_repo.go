package repository

import (
	"context"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
	pkgerrors "raalc/backend/pkg/errors"
)

// BreakPolicyRepository 休息策略数据访问接口
type BreakPolicyRepository interface {
	Create(ctx context.Context, policy *model.BreakPolicy) error
	GetByID(ctx context.Context, id string) (*model.BreakPolicy, error)
	List(ctx context.Context, includeInactive bool) ([]model.BreakPolicy, error)
	Update(ctx context.Context, policy *model.BreakPolicy) error
	ReplaceRules(ctx context.Context, policyID string, rules []model.BreakPolicyRule) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountLinkedShifts(ctx context.Context, id string) (int64, error)
}

type breakPolicyRepo struct {
	db *gorm.DB
}

// NewBreakPolicyRepo 创建 BreakPolicyRepository 实例
func NewBreakPolicyRepo(db *gorm.DB) BreakPolicyRepository {
	return &breakPolicyRepo{db: db}
}

func (r *breakPolicyRepo) Create(ctx context.Context, policy *model.BreakPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *breakPolicyRepo) GetByID(ctx context.Context, id string) (*model.BreakPolicy, error) {
	var policy model.BreakPolicy
	err := r.db.WithContext(ctx).
		Preload("Rules").
		Where("break_policy_id = ?", id).
		First(&policy).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *breakPolicyRepo) List(ctx context.Context, includeInactive bool) ([]model.BreakPolicy, error) {
	var policies []model.BreakPolicy
	db := r.db.WithContext(ctx).Preload("Rules")
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("created_at ASC").Find(&policies).Error
	return policies, err
}

func (r *breakPolicyRepo) Update(ctx context.Context, policy *model.BreakPolicy) error {
	oldVersion := policy.Version
	result := r.db.WithContext(ctx).
		Model(policy).
		Where("break_policy_id = ? AND version = ?", policy.BreakPolicyID, oldVersion).
		Updates(map[string]interface{}{
			"name":               policy.Name,
			"allowed_types":      policy.AllowedTypes,
			"max_breaks_per_day": policy.MaxBreaksPerDay,
			"cooldown_minutes":   policy.CooldownMinutes,
			"requires_approval":  policy.RequiresApproval,
			"window_start":       policy.WindowStart,
			"window_end":         policy.WindowEnd,
			"is_active":          policy.IsActive,
			"updated_by":         policy.UpdatedBy,
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	policy.Version = oldVersion + 1
	return nil
}

// ReplaceRules 整体替换策略的时长规则
func (r *breakPolicyRepo) ReplaceRules(ctx context.Context, policyID string, rules []model.BreakPolicyRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("break_policy_id = ?", policyID).
			Delete(&model.BreakPolicyRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		for i := range rules {
			rules[i].BreakPolicyID = policyID
		}
		return tx.Create(&rules).Error
	})
}

func (r *breakPolicyRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.BreakPolicy{}).
		Where("break_policy_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *breakPolicyRepo) CountLinkedShifts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("break_policy_id = ?", id).
		Count(&count).Error
	return count, err
}
