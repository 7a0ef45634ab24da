package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"upaay/backend/internal/middleware"
	"upaay/backend/internal/monitoring"
)

const maxBodyBytes = 1 << 20 // 1MB

// NewRouter 构建门户认证 API 的路由
func NewRouter(
	allowedOrigins []string,
	authHandler *AuthHandler,
	relay *RasaRelay,
	jwtAuth *middleware.JWTAuth,
	metrics *monitoring.Metrics,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodyLimit(maxBodyBytes))
	if metrics != nil {
		router.Use(middleware.HTTPMetrics(metrics))
	}

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Backend is running")
	})

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/", jwtAuth.RequireAuth())
	protected.GET("/protected", authHandler.Protected)
	protected.POST("/rasa-webhook", relay.Relay)

	return router
}
