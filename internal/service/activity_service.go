package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/model"
	"raalc/backend/internal/repository"
)

// ActivityService 活动日志查询业务接口
// 日志由考勤状态机在事务内追加，本服务只读
type ActivityService interface {
	List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error) {
	filter := repository.ActivityLogFilter{
		AgentID:   req.AgentID,
		SessionID: req.SessionID,
		Action:    req.Action,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
	}
	logs, total, err := s.repo.ActivityLog.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询活动日志失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, toActivityLogResponse(&logs[i]))
	}
	return items, total, nil
}

func toActivityLogResponse(entry *model.ActivityLog) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		ID:        entry.ActivityLogID,
		AgentID:   entry.AgentID,
		SessionID: entry.SessionID,
		Action:    entry.Action,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
