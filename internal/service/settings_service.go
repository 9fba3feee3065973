package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/repository"
)

// SettingsService 系统设置业务接口（单行配置）
type SettingsService interface {
	Get(ctx context.Context) (*dto.SystemConfigResponse, error)
	Update(ctx context.Context, operatorID string, req *dto.UpdateSystemConfigRequest) (*dto.SystemConfigResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SystemConfigResponse, error) {
	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return nil, err
	}
	return &dto.SystemConfigResponse{
		AllowRecheckin: cfg.AllowRecheckin,
		UpdatedAt:      cfg.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *settingsService) Update(ctx context.Context, operatorID string, req *dto.UpdateSystemConfigRequest) (*dto.SystemConfigResponse, error) {
	cfg, err := s.repo.SystemConfig.Get(ctx)
	if err != nil {
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return nil, err
	}

	cfg.AllowRecheckin = *req.AllowRecheckin
	cfg.UpdatedBy = &operatorID
	if err := s.repo.SystemConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("更新系统设置失败", zap.Error(err))
		return nil, err
	}
	return s.Get(ctx)
}
