package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"upaay/backend/internal/domain"
)

// RasaRelay 把认证后的聊天消息转发给对话引擎的 REST webhook
//
// 转发体为 {sender: 用户邮箱, message: 原文}，sender 用邮箱
// 使动作服务器能通过 sender_id 回填 email 槽位。
type RasaRelay struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewRasaRelay 创建转发器
func NewRasaRelay(webhookURL string, logger *zap.Logger) *RasaRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RasaRelay{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Relay 转发消息并把对话引擎的 JSON 响应原样返回
//
// POST /rasa-webhook
func (r *RasaRelay) Relay(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	email := c.GetString("email")
	payload, err := json.Marshal(map[string]string{
		"sender":  email,
		"message": req.Message,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	upstream, err := http.NewRequestWithContext(c.Request.Context(),
		http.MethodPost, r.webhookURL, bytes.NewReader(payload))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(upstream)
	if err != nil {
		r.logger.Error("rasa webhook unreachable",
			zap.String("url", r.webhookURL),
			zap.Error(err))
		respondError(c, http.StatusBadGateway, "chat service unavailable")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Error("rasa webhook read failed", zap.Error(err))
		respondError(c, http.StatusBadGateway, "chat service unavailable")
		return
	}

	c.Data(resp.StatusCode, "application/json", body)
}
