package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	ExpiresIn    int           `json:"expires_in"` // Access Token 有效期（秒）
	Agent        AgentResponse `json:"agent"`
}

// ── 坐席模块响应 ──

// AgentResponse 坐席信息响应（脱敏）
type AgentResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	EmployeeNo         string              `json:"employee_no"`
	Email              string              `json:"email"`
	Role               string              `json:"role"`
	Department         *DepartmentResponse `json:"department,omitempty"`
	Shift              *ShiftBrief         `json:"shift,omitempty"`
	IsActive           bool                `json:"is_active"`
	MustChangePassword bool                `json:"must_change_password"`
}

// AgentDetailResponse 坐席详细信息（GET /auth/me）
type AgentDetailResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	EmployeeNo         string              `json:"employee_no"`
	Email              string              `json:"email"`
	Role               string              `json:"role"`
	Department         *DepartmentResponse `json:"department,omitempty"`
	Shift              *ShiftBrief         `json:"shift,omitempty"`
	IsActive           bool                `json:"is_active"`
	MustChangePassword bool                `json:"must_change_password"`
	CreatedAt          string              `json:"created_at"`
}

// AgentBrief 坐席简要信息
type AgentBrief struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	EmployeeNo string              `json:"employee_no"`
	Department *DepartmentResponse `json:"department,omitempty"`
}

// DepartmentResponse 部门简要信息
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
