package repository

import (
	"context"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
)

// ActivityLogFilter 活动日志查询过滤条件
type ActivityLogFilter struct {
	AgentID   string
	SessionID string
	Action    string
	DateFrom  string // YYYY-MM-DD，含
	DateTo    string // YYYY-MM-DD，含
}

// ActivityLogRepository 活动日志数据访问接口（仅追加，无更新/删除）
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) List(ctx context.Context, filter ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if filter.AgentID != "" {
		db = db.Where("agent_id = ?", filter.AgentID)
	}
	if filter.SessionID != "" {
		db = db.Where("session_id = ?", filter.SessionID)
	}
	if filter.Action != "" {
		db = db.Where("action = ?", filter.Action)
	}
	if filter.DateFrom != "" {
		db = db.Where("created_at >= ?::date", filter.DateFrom)
	}
	if filter.DateTo != "" {
		db = db.Where("created_at < (?::date + INTERVAL '1 day')", filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}
