package model

// 坐席角色
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleAgent      = "agent"
)

// Agent 坐席表 — 对应 agents
type Agent struct {
	AgentID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"agent_id"`
	Name               string  `gorm:"type:varchar(100);not null"                     json:"name"`
	EmployeeNo         string  `gorm:"type:varchar(20);not null"                      json:"employee_no"`
	Email              string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string  `gorm:"type:varchar(20);not null;default:'agent'"      json:"role"` // admin | supervisor | agent
	DepartmentID       string  `gorm:"type:uuid;not null"                             json:"department_id"`
	ShiftID            *string `gorm:"type:uuid"                                      json:"shift_id,omitempty"` // 当前指派班次
	IsActive           bool    `gorm:"not null;default:true"                          json:"is_active"`
	MustChangePassword bool    `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Shift      *Shift      `gorm:"foreignKey:ShiftID;references:ShiftID"           json:"shift,omitempty"`
}

// TableName 指定表名
func (Agent) TableName() string { return "agents" }
