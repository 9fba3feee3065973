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
	ErrDepartmentNotFound = errors.New("部门不存在")
	ErrDepartmentInUse    = errors.New("部门下存在坐席，无法删除")
)

// DepartmentService 部门管理业务接口
type DepartmentService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateDepartmentRequest) (*dto.DepartmentDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error)
	List(ctx context.Context) ([]dto.DepartmentDetailResponse, error)
	Update(ctx context.Context, id, operatorID string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentDetailResponse, error)
	Delete(ctx context.Context, id, operatorID string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, operatorID string, req *dto.CreateDepartmentRequest) (*dto.DepartmentDetailResponse, error) {
	dept := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	dept.CreatedBy = &operatorID
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}
	return s.toDetail(ctx, dept)
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.Error(err))
		return nil, err
	}
	return s.toDetail(ctx, dept)
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentDetailResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.DepartmentDetailResponse, 0, len(depts))
	for i := range depts {
		detail, err := s.toDetail(ctx, &depts[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *detail)
	}
	return items, nil
}

func (s *departmentService) Update(ctx context.Context, id, operatorID string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	dept.UpdatedBy = &operatorID
	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新部门失败", zap.Error(err))
		return nil, err
	}
	return s.toDetail(ctx, dept)
}

func (s *departmentService) Delete(ctx context.Context, id, operatorID string) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	count, err := s.repo.Department.CountAgents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentInUse
	}

	if err := s.repo.Department.Delete(ctx, id, operatorID); err != nil {
		s.logger.Error("删除部门失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *departmentService) toDetail(ctx context.Context, dept *model.Department) (*dto.DepartmentDetailResponse, error) {
	count, err := s.repo.Department.CountAgents(ctx, dept.DepartmentID)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentDetailResponse{
		ID:          dept.DepartmentID,
		Name:        dept.Name,
		Description: dept.Description,
		AgentCount:  count,
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}, nil
}
