package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"raalc/backend/internal/model"
	pkgerrors "raalc/backend/pkg/errors"
)

// SessionFilter 考勤会话列表过滤条件
type SessionFilter struct {
	AgentID  string
	Status   string
	DateFrom string // YYYY-MM-DD，含
	DateTo   string // YYYY-MM-DD，含
}

// SessionRepository 考勤会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.AgentSession) error
	GetByID(ctx context.Context, id string) (*model.AgentSession, error)
	// GetByAgentAndDate 查询坐席某自然日的会话（date 格式 YYYY-MM-DD）
	GetByAgentAndDate(ctx context.Context, agentID, date string) (*model.AgentSession, error)
	// GetOpenByAgent 查询坐席当前进行中的会话（active 或 on_break）
	GetOpenByAgent(ctx context.Context, agentID string) (*model.AgentSession, error)
	List(ctx context.Context, filter SessionFilter, offset, limit int) ([]model.AgentSession, int64, error)
	// ListOpenBefore 查询在 cutoff 之前签到且仍未关闭的会话（核对任务用）
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]model.AgentSession, error)
	Update(ctx context.Context, session *model.AgentSession) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.AgentSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.AgentSession, error) {
	var session model.AgentSession
	err := r.db.WithContext(ctx).
		Preload("Shift").Preload("Shift.BreakPolicy").Preload("Shift.BreakPolicy.Rules").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByAgentAndDate(ctx context.Context, agentID, date string) (*model.AgentSession, error) {
	var session model.AgentSession
	err := r.db.WithContext(ctx).
		Preload("Shift").Preload("Shift.BreakPolicy").Preload("Shift.BreakPolicy.Rules").
		Preload("Breaks", func(db *gorm.DB) *gorm.DB { return db.Order("requested_at ASC") }).
		Where("agent_id = ? AND session_date = ?", agentID, date).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetOpenByAgent(ctx context.Context, agentID string) (*model.AgentSession, error) {
	var session model.AgentSession
	err := r.db.WithContext(ctx).
		Preload("Shift").Preload("Shift.BreakPolicy").Preload("Shift.BreakPolicy.Rules").
		Where("agent_id = ? AND status IN ?", agentID, []string{model.SessionActive, model.SessionOnBreak}).
		Order("session_date DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, filter SessionFilter, offset, limit int) ([]model.AgentSession, int64, error) {
	var sessions []model.AgentSession
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AgentSession{})
	if filter.AgentID != "" {
		db = db.Where("agent_id = ?", filter.AgentID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		db = db.Where("session_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		db = db.Where("session_date <= ?", filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Agent").Preload("Agent.Department").Preload("Shift").
		Offset(offset).Limit(limit).
		Order("session_date DESC, created_at DESC").
		Find(&sessions).Error
	return sessions, total, err
}

func (r *sessionRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]model.AgentSession, error) {
	var sessions []model.AgentSession
	err := r.db.WithContext(ctx).
		Where("status IN ? AND check_in_at < ?", []string{model.SessionActive, model.SessionOnBreak}, cutoff).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.AgentSession) error {
	oldVersion := session.Version
	result := r.db.WithContext(ctx).
		Model(session).
		Where("session_id = ? AND version = ?", session.SessionID, oldVersion).
		Updates(map[string]interface{}{
			"status":            session.Status,
			"check_in_at":       session.CheckInAt,
			"check_out_at":      session.CheckOutAt,
			"check_in_ip":       session.CheckInIP,
			"check_out_ip":      session.CheckOutIP,
			"check_in_location": session.CheckInLocation,
			"late_minutes":      session.LateMinutes,
			"break_minutes":     session.BreakMinutes,
			"updated_by":        session.UpdatedBy,
			"version":           oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	session.Version = oldVersion + 1
	return nil
}
