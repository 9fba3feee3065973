package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
// 考勤状态流转（签到/签退/休息）并发提交时由此拒绝后到的请求
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
