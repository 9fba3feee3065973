package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raalc/backend/internal/dto"
	"raalc/backend/internal/service"
	"raalc/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 坐席登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 坐席登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentAgent 获取当前坐席信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentAgent(c *gin.Context) {
	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	agent, err := h.authSvc.GetCurrentAgent(c.Request.Context(), agentID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, agent)
}

// ChangePassword 修改当前坐席密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	agentID, ok := MustGetAgentID(c)
	if !ok {
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), agentID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "工号或密码错误")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Error(c, http.StatusUnauthorized, 11002, "刷新凭证无效")
	case errors.Is(err, service.ErrAgentInactive):
		response.Forbidden(c, 11003, "坐席账号已停用")
	case errors.Is(err, service.ErrOldPasswordMismatch):
		response.BadRequest(c, 11004, "原密码错误")
	case errors.Is(err, service.ErrAgentNotFound):
		response.NotFound(c, 12001, "坐席不存在")
	default:
		response.InternalError(c)
	}
}
