package model

// SystemConfig 系统配置表 — 对应 system_config（单行强类型）
type SystemConfig struct {
	Singleton bool `gorm:"primaryKey;default:true" json:"-"`
	// AllowRecheckin 当日会话已完成后是否允许再次签到（双班场景）
	AllowRecheckin bool `gorm:"not null;default:false" json:"allow_recheckin"`
	BaseModel
}

// TableName 指定表名
func (SystemConfig) TableName() string { return "system_config" }
