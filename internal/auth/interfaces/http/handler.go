package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/marketledger/internal/auth/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// AuthHandler 认证 HTTP 处理器
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// 注册路由
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/v1/auth/login", h.Login)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验凭证并返回角色身份。凭证错误统一回 401，不泄露具体原因。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	identity, err := h.service.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		logging.Error(c.Request.Context(), "authentication backend failure", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "authentication unavailable", "")
		return
	}
	if identity == nil {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	response.Success(c, identity)
}
