package model

import "testing"

func TestStringArrayScan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want []string
	}{
		{"普通数组", "{short,lunch,emergency}", []string{"short", "lunch", "emergency"}},
		{"带引号元素", `{"short","lunch"}`, []string{"short", "lunch"}},
		{"空数组", "{}", []string{}},
		{"字节切片", []byte("{short}"), []string{"short"}},
	}
	for _, tc := range cases {
		var arr StringArray
		if err := arr.Scan(tc.src); err != nil {
			t.Fatalf("%s: Scan 应成功: %v", tc.name, err)
		}
		if len(arr) != len(tc.want) {
			t.Fatalf("%s: 长度不一致 got %v want %v", tc.name, arr, tc.want)
		}
		for i := range tc.want {
			if arr[i] != tc.want[i] {
				t.Errorf("%s: 元素 %d 不一致 got %q want %q", tc.name, i, arr[i], tc.want[i])
			}
		}
	}

	var arr StringArray
	if err := arr.Scan(nil); err != nil || arr != nil {
		t.Errorf("Scan(nil) 应得到 nil 数组, got %v err=%v", arr, err)
	}
	if err := arr.Scan(42); err == nil {
		t.Error("不支持的类型应返回错误")
	}
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"short", "lunch"}.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v != "{short,lunch}" {
		t.Errorf("序列化结果不正确: %v", v)
	}

	v, err = StringArray(nil).Value()
	if err != nil || v != nil {
		t.Errorf("nil 数组应序列化为 NULL, got %v err=%v", v, err)
	}
}

func TestStringArrayContains(t *testing.T) {
	arr := StringArray{"short", "lunch"}
	if !arr.Contains("short") {
		t.Error("应包含 short")
	}
	if arr.Contains("emergency") {
		t.Error("不应包含 emergency")
	}
}

func TestSessionIsOpen(t *testing.T) {
	cases := map[string]bool{
		SessionNotStarted: false,
		SessionActive:     true,
		SessionOnBreak:    true,
		SessionCompleted:  false,
		SessionIncomplete: false,
	}
	for status, want := range cases {
		s := &AgentSession{Status: status}
		if s.IsOpen() != want {
			t.Errorf("IsOpen(%s) 应为 %v", status, want)
		}
	}
}

func TestBreakPolicyRuleFor(t *testing.T) {
	policy := &BreakPolicy{
		Rules: []BreakPolicyRule{
			{BreakType: BreakTypeShort, MinMinutes: 5, MaxMinutes: 30},
		},
	}
	if rule := policy.RuleFor(BreakTypeShort); rule == nil || rule.MaxMinutes != 30 {
		t.Error("应返回 short 类型的规则")
	}
	if rule := policy.RuleFor(BreakTypeLunch); rule != nil {
		t.Error("未配置类型应返回 nil")
	}
}
