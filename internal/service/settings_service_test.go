package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/repository"
)

func TestSettings(t *testing.T) {
	sysCfg := newMockSystemConfigRepo()
	repo := &repository.Repository{SystemConfig: sysCfg}
	svc := NewSettingsService(repo, zap.NewNop())
	ctx := context.Background()

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("查询设置应成功: %v", err)
	}
	if got.AllowRecheckin {
		t.Error("重复签到开关默认应为关闭")
	}

	on := true
	updated, err := svc.Update(ctx, "admin-1", &dto.UpdateSystemConfigRequest{AllowRecheckin: &on})
	if err != nil {
		t.Fatalf("更新设置应成功: %v", err)
	}
	if !updated.AllowRecheckin {
		t.Error("更新后开关应为开启")
	}

	got, _ = svc.Get(ctx)
	if !got.AllowRecheckin {
		t.Error("更新应持久化")
	}
}
