package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/repository"
)

func setupTestBreakPolicyService() (BreakPolicyService, *mockBreakPolicyRepo) {
	policies := newMockBreakPolicyRepo()
	repo := &repository.Repository{BreakPolicy: policies}
	return NewBreakPolicyService(repo, zap.NewNop()), policies
}

func TestBreakPolicyCreate(t *testing.T) {
	svc, _ := setupTestBreakPolicyService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, "admin-1", &dto.CreateBreakPolicyRequest{
		Name:            "标准策略",
		AllowedTypes:    []string{"short", "lunch"},
		MaxBreaksPerDay: 3,
		CooldownMinutes: 30,
		Rules: []dto.BreakRuleInput{
			{BreakType: "short", MinMinutes: 5, MaxMinutes: 30},
			{BreakType: "lunch", MinMinutes: 30, MaxMinutes: 90},
		},
	})
	if err != nil {
		t.Fatalf("创建策略应成功: %v", err)
	}
	if len(resp.Rules) != 2 {
		t.Errorf("策略应包含 2 条时长规则, got %d", len(resp.Rules))
	}
	if resp.MaxBreaksPerDay != 3 || resp.CooldownMinutes != 30 {
		t.Errorf("策略参数不正确: %+v", resp)
	}
}

func TestBreakPolicyCreate_RuleValidation(t *testing.T) {
	svc, _ := setupTestBreakPolicyService()
	ctx := context.Background()

	// 规则引用策略未允许的类型
	_, err := svc.Create(ctx, "admin-1", &dto.CreateBreakPolicyRequest{
		Name:            "窄策略",
		AllowedTypes:    []string{"short"},
		MaxBreaksPerDay: 2,
		Rules:           []dto.BreakRuleInput{{BreakType: "lunch", MinMinutes: 30, MaxMinutes: 60}},
	})
	if !errors.Is(err, ErrRuleTypeNotAllowed) {
		t.Errorf("类型越界规则应返回 ErrRuleTypeNotAllowed, got %v", err)
	}

	// 最小值大于最大值
	_, err = svc.Create(ctx, "admin-1", &dto.CreateBreakPolicyRequest{
		Name:            "坏区间",
		AllowedTypes:    []string{"short"},
		MaxBreaksPerDay: 2,
		Rules:           []dto.BreakRuleInput{{BreakType: "short", MinMinutes: 40, MaxMinutes: 10}},
	})
	if !errors.Is(err, ErrRuleRangeInvalid) {
		t.Errorf("区间倒置规则应返回 ErrRuleRangeInvalid, got %v", err)
	}
}

func TestBreakPolicyUpdate_ReplacesRules(t *testing.T) {
	svc, _ := setupTestBreakPolicyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateBreakPolicyRequest{
		Name:            "标准策略",
		AllowedTypes:    []string{"short", "lunch"},
		MaxBreaksPerDay: 3,
		Rules: []dto.BreakRuleInput{
			{BreakType: "short", MinMinutes: 5, MaxMinutes: 30},
			{BreakType: "lunch", MinMinutes: 30, MaxMinutes: 90},
		},
	})
	if err != nil {
		t.Fatalf("创建策略应成功: %v", err)
	}

	// Rules 传入时整组替换
	updated, err := svc.Update(ctx, created.ID, "admin-1", &dto.UpdateBreakPolicyRequest{
		Rules: []dto.BreakRuleInput{{BreakType: "short", MinMinutes: 10, MaxMinutes: 20}},
	})
	if err != nil {
		t.Fatalf("更新策略应成功: %v", err)
	}
	if len(updated.Rules) != 1 {
		t.Fatalf("规则应被整组替换为 1 条, got %d", len(updated.Rules))
	}
	if updated.Rules[0].MinMinutes != 10 || updated.Rules[0].MaxMinutes != 20 {
		t.Errorf("替换后规则区间不正确: %+v", updated.Rules[0])
	}

	if _, err := svc.Update(ctx, "no-such-policy", "admin-1", &dto.UpdateBreakPolicyRequest{}); !errors.Is(err, ErrBreakPolicyNotFound) {
		t.Errorf("策略不存在应返回 ErrBreakPolicyNotFound, got %v", err)
	}
}

func TestBreakPolicyDelete(t *testing.T) {
	svc, policies := setupTestBreakPolicyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-1", &dto.CreateBreakPolicyRequest{
		Name: "标准策略", AllowedTypes: []string{"short"}, MaxBreaksPerDay: 2,
	})
	if err != nil {
		t.Fatalf("创建策略应成功: %v", err)
	}

	// 被班次引用的策略不可删除
	policies.linkedCounts[created.ID] = 1
	if err := svc.Delete(ctx, created.ID, "admin-1"); !errors.Is(err, ErrBreakPolicyInUse) {
		t.Errorf("被引用策略删除应返回 ErrBreakPolicyInUse, got %v", err)
	}

	policies.linkedCounts[created.ID] = 0
	if err := svc.Delete(ctx, created.ID, "admin-1"); err != nil {
		t.Fatalf("删除未引用策略应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrBreakPolicyNotFound) {
		t.Error("删除后查询应返回 ErrBreakPolicyNotFound")
	}
}
