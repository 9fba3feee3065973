package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Agent        AgentRepository
	Department   DepartmentRepository
	Shift        ShiftRepository
	BreakPolicy  BreakPolicyRepository
	Session      SessionRepository
	BreakRequest BreakRequestRepository
	ActivityLog  ActivityLogRepository
	SystemConfig SystemConfigRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		Agent:        NewAgentRepo(db),
		Department:   NewDepartmentRepo(db),
		Shift:        NewShiftRepo(db),
		BreakPolicy:  NewBreakPolicyRepo(db),
		Session:      NewSessionRepo(db),
		BreakRequest: NewBreakRequestRepo(db),
		ActivityLog:  NewActivityLogRepo(db),
		SystemConfig: NewSystemConfigRepo(db),
	}
}

// Transaction 在单个数据库事务中执行 fn
// fn 收到绑定事务连接的 Repository，事务内任一错误触发整体回滚；
// 考勤状态机的每次动作（会话更新 + 休息申请写入 + 活动日志追加）都要求整体成功或整体失败
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 测试场景：mock 聚合无底层连接，直接串行执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
