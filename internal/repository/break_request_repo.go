package repository

import (
	"context"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
	pkgerrors "raalc/backend/pkg/errors"
)

// BreakRequestRepository 休息申请数据访问接口
type BreakRequestRepository interface {
	Create(ctx context.Context, req *model.BreakRequest) error
	GetByID(ctx context.Context, id string) (*model.BreakRequest, error)
	// GetActiveBySession 查询会话当前进行中的休息（不存在时返回 gorm.ErrRecordNotFound）
	GetActiveBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error)
	// GetLatestPendingBySession 查询会话最近一条待审批申请
	GetLatestPendingBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error)
	// GetLastEndedBySession 查询会话最近一条已结束休息（冷却期计算用）
	GetLastEndedBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.BreakRequest, error)
	// CountUsedBySession 统计会话内已占用次数配额的申请（active + ended）
	CountUsedBySession(ctx context.Context, sessionID string) (int64, error)
	// ListPending 分页查询待审批申请（审批队列）
	ListPending(ctx context.Context, offset, limit int) ([]model.BreakRequest, int64, error)
	Update(ctx context.Context, req *model.BreakRequest) error
}

type breakRequestRepo struct {
	db *gorm.DB
}

// NewBreakRequestRepo 创建 BreakRequestRepository 实例
func NewBreakRequestRepo(db *gorm.DB) BreakRequestRepository {
	return &breakRequestRepo{db: db}
}

func (r *breakRequestRepo) Create(ctx context.Context, req *model.BreakRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *breakRequestRepo) GetByID(ctx context.Context, id string) (*model.BreakRequest, error) {
	var req model.BreakRequest
	err := r.db.WithContext(ctx).
		Preload("Session").
		Where("break_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *breakRequestRepo) GetActiveBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error) {
	var req model.BreakRequest
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.BreakStatusActive).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *breakRequestRepo) GetLatestPendingBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error) {
	var req model.BreakRequest
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.BreakStatusPending).
		Order("requested_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *breakRequestRepo) GetLastEndedBySession(ctx context.Context, sessionID string) (*model.BreakRequest, error) {
	var req model.BreakRequest
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.BreakStatusEnded).
		Order("ended_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *breakRequestRepo) ListBySession(ctx context.Context, sessionID string) ([]model.BreakRequest, error) {
	var reqs []model.BreakRequest
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *breakRequestRepo) CountUsedBySession(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BreakRequest{}).
		Where("session_id = ? AND status IN ?", sessionID,
			[]string{model.BreakStatusActive, model.BreakStatusEnded}).
		Count(&count).Error
	return count, err
}

func (r *breakRequestRepo) ListPending(ctx context.Context, offset, limit int) ([]model.BreakRequest, int64, error) {
	var reqs []model.BreakRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.BreakRequest{}).
		Where("status = ?", model.BreakStatusPending)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Agent").Preload("Session").
		Offset(offset).Limit(limit).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, total, err
}

func (r *breakRequestRepo) Update(ctx context.Context, req *model.BreakRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("break_request_id = ? AND version = ?", req.BreakRequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":         req.Status,
			"actual_minutes": req.ActualMinutes,
			"started_at":     req.StartedAt,
			"ended_at":       req.EndedAt,
			"decided_at":     req.DecidedAt,
			"decided_by":     req.DecidedBy,
			"decision_notes": req.DecisionNotes,
			"updated_by":     req.UpdatedBy,
			"version":        oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}
