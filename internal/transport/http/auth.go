package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"upaay/backend/internal/auth"
	"upaay/backend/internal/auth/jwt"
	"upaay/backend/internal/domain"
	"upaay/backend/internal/monitoring"
)

// AuthHandler 注册/登录/受保护资源的 HTTP 处理器
type AuthHandler struct {
	authService *auth.Service
	jwtManager  *jwt.Manager
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *auth.Service, jwtManager *jwt.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService: authService,
		jwtManager:  jwtManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Signup 处理用户注册
//
// POST /signup
// 成功: 201 {message}，邮箱已注册: 409 {error}，参数非法: 400 {error}
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Create(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			respondError(c, http.StatusConflict, "User already exists")
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrInvalidPassword):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("signup failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.RecordUserRegistered()
	h.logger.Info("user registered", zap.String("user_id", user.ID))
	respondMessage(c, http.StatusCreated, "User created successfully")
}

// Login 处理用户登录，成功时签发 JWT
//
// POST /login
// 成功: 200 {message, token, email}，凭证无效: 401 {error}
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Verify(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"email":   user.Email,
	})
}

// Protected 受保护资源示例，验证中间件已写入 email
//
// GET /protected
func (h *AuthHandler) Protected(c *gin.Context) {
	email := c.GetString("email")
	c.JSON(http.StatusOK, gin.H{
		"message": "Access granted",
		"email":   email,
	})
}
