package clock

import "time"

// Clock 墙钟抽象
// 考勤日界、迟到计算全部经由注入的 Clock 取得当前时间，保证测试可复现
type Clock interface {
	Now() time.Time
}

// SystemClock 按指定时区返回系统时间
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock 创建系统时钟
// tz 为 IANA 时区名（如 Asia/Dubai）；解析失败时回退到 UTC
func NewSystemClock(tz string) *SystemClock {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// Now 返回当前时区时间
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DateOf 返回某时刻所属自然日（YYYY-MM-DD）
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayStart 返回某时刻所属自然日的零点
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
