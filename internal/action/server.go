package action

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server 动作服务器 HTTP 端点
type Server struct {
	actions *Actions
	logger  *zap.Logger
}

// NewServer 创建动作服务器
func NewServer(actions *Actions, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{actions: actions, logger: logger}
}

// Register 挂载动作服务器路由
func (s *Server) Register(r gin.IRouter) {
	r.POST("/webhook", s.handleWebhook)
	r.GET("/health", s.handleHealth)
	r.GET("/actions", s.handleActions)
}

// handleWebhook 执行对话引擎请求的自定义动作
//
// 业务失败由动作自身转为用户消息，此处只有请求体损坏
// 和未注册动作两种错误响应。
func (s *Server) handleWebhook(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	handler, ok := s.actions.Lookup(req.NextAction)
	if !ok {
		s.logger.Warn("unknown action requested", zap.String("action", req.NextAction))
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("no registered action found for name '%s'", req.NextAction),
		})
		return
	}

	s.logger.Info("running action",
		zap.String("action", req.NextAction),
		zap.String("sender", req.Tracker.SenderID))
	c.JSON(http.StatusOK, handler(c.Request.Context(), &req))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleActions(c *gin.Context) {
	names := s.actions.Names()
	sort.Strings(names)
	c.JSON(http.StatusOK, names)
}
