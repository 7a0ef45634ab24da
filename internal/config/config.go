package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig 定义动作服务器（Rasa action server）的监听配置
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 5055（Rasa SDK 约定端口）
}

// AuthConfig 定义认证/门户 HTTP 服务的监听配置
type AuthConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 5000
}

// SMTPConfig 定义外发邮件（投诉派送）的 SMTP 客户端配置
type SMTPConfig struct {
	Host     string // SMTP 服务器地址，默认 "smtp.gmail.com"
	Port     int    // SMTP 端口，默认 587（STARTTLS）
	Username string // SMTP 登录用户名，必须通过环境变量提供
	Password string // SMTP 登录密码/应用密码，必须通过环境变量提供
	From     string // 发件人地址，留空时使用 Username
}

// AddressBookConfig 定义州/部门→收件邮箱映射表的加载配置
type AddressBookConfig struct {
	Path               string // 地址簿 YAML 文件路径
	FallbackState      string // 兜底州键，默认 "default"
	FallbackDepartment string // 兜底部门键，默认 "default"
}

// TranslateConfig 定义翻译服务配置
type TranslateConfig struct {
	APIKey          string        // Google Translate API Key，留空时禁用翻译（优雅降级）
	DefaultLanguage string        // 默认语言，默认 "en"，目标语言等于默认语言时不发起调用
	ProviderQPS     float64       // 翻译提供方限流 QPS，默认 5
	CacheTTL        time.Duration // Redis 二级缓存过期时间，默认 24h（进程内缓存不过期）
}

// RasaConfig 定义对话引擎 REST webhook 的转发配置
type RasaConfig struct {
	WebhookURL string // Rasa REST webhook 地址，默认 "http://localhost:5005/webhooks/rest/webhook"
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 启用彩色输出和详细堆栈信息
}

// DatabaseConfig 定义用户库连接配置（支持 MySQL 和 PostgreSQL）
type DatabaseConfig struct {
	Type            string        // 数据库类型: "mysql" 或 "postgres"，留空使用内存存储
	DSN             string        // 数据库连接字符串
	MaxOpenConns    int           // 最大打开连接数，默认 25
	MaxIdleConns    int           // 最大空闲连接数，默认 5
	ConnMaxLifetime time.Duration // 连接最大生命周期，默认 5 分钟
}

// RedisConfig 定义 Redis 翻译缓存配置（可选，Address 留空时禁用）
type RedisConfig struct {
	Address  string // Redis 服务地址，格式 "host:port"，留空禁用二级缓存
	Password string // Redis 认证密码，留空表示无密码
	DB       int    // Redis 数据库编号，默认 0
}

// JWTConfig 定义 JWT 认证相关配置
type JWTConfig struct {
	Secret      string        // JWT 签名密钥，必须至少 32 字符
	Issuer      string        // JWT 签发者标识，默认 "upaay"
	TokenExpiry time.Duration // 令牌有效期，默认 24 小时
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server      ServerConfig      // 动作服务器配置
	Auth        AuthConfig        // 认证服务配置
	SMTP        SMTPConfig        // SMTP 派送配置
	AddressBook AddressBookConfig // 地址簿配置
	Translate   TranslateConfig   // 翻译服务配置
	Rasa        RasaConfig        // 对话引擎转发配置
	CORS        CORSConfig        // 跨域配置
	Log         LogConfig         // 日志配置
	Database    DatabaseConfig    // 数据库配置
	Redis       RedisConfig       // Redis 配置
	JWT         JWTConfig         // JWT 认证配置
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量（最高优先级）
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: UPAAY_
// 例如: UPAAY_SMTP_USERNAME, UPAAY_JWT_SECRET
//
// 返回值:
//   - *Config: 加载成功的配置对象
//   - error: 配置验证失败时返回错误
func Load() (*Config, error) {
	// 尝试加载 .env 文件（静默失败，因为 .env 文件是可选的）
	loadEnvFile()

	viper.SetEnvPrefix("upaay")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5055)
	viper.SetDefault("auth.host", "0.0.0.0")
	viper.SetDefault("auth.port", 5000)
	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.username", "")
	viper.SetDefault("smtp.password", "")
	viper.SetDefault("smtp.from", "")
	viper.SetDefault("addressbook.path", "configs/dept_emails.yml")
	viper.SetDefault("addressbook.fallback_state", "default")
	viper.SetDefault("addressbook.fallback_department", "default")
	viper.SetDefault("translate.api_key", "")
	viper.SetDefault("translate.default_language", "en")
	viper.SetDefault("translate.provider_qps", 5.0)
	viper.SetDefault("translate.cache_ttl", "24h")
	viper.SetDefault("rasa.webhook_url", "http://localhost:5005/webhooks/rest/webhook")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("database.type", "") // 默认为空，使用内存存储
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.issuer", "upaay")
	viper.SetDefault("jwt.token_expiry", "24h")

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("database.conn_max_lifetime"))
	if err != nil {
		connMaxLifetime = 5 * time.Minute
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("translate.cache_ttl"))
	if err != nil {
		cacheTTL = 24 * time.Hour
	}

	tokenExpiry, err := time.ParseDuration(viper.GetString("jwt.token_expiry"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.token_expiry: %w", err)
	}

	jwtSecret := viper.GetString("jwt.secret")

	// 安全检查：禁止使用默认的 JWT secret
	if jwtSecret == "change-me-in-production" {
		return nil, fmt.Errorf("SECURITY ERROR: JWT secret cannot be the default value. Please set UPAAY_JWT_SECRET environment variable")
	}

	// JWT secret 必须至少 32 字符
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("SECURITY ERROR: JWT secret must be at least 32 characters long")
	}

	smtpFrom := viper.GetString("smtp.from")
	if smtpFrom == "" {
		smtpFrom = viper.GetString("smtp.username")
	}

	defaultLang := strings.ToLower(strings.TrimSpace(viper.GetString("translate.default_language")))
	if defaultLang == "" {
		defaultLang = "en"
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Auth: AuthConfig{
			Host: viper.GetString("auth.host"),
			Port: viper.GetInt("auth.port"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Username: viper.GetString("smtp.username"),
			Password: viper.GetString("smtp.password"),
			From:     smtpFrom,
		},
		AddressBook: AddressBookConfig{
			Path:               viper.GetString("addressbook.path"),
			FallbackState:      viper.GetString("addressbook.fallback_state"),
			FallbackDepartment: viper.GetString("addressbook.fallback_department"),
		},
		Translate: TranslateConfig{
			APIKey:          viper.GetString("translate.api_key"),
			DefaultLanguage: defaultLang,
			ProviderQPS:     viper.GetFloat64("translate.provider_qps"),
			CacheTTL:        cacheTTL,
		},
		Rasa: RasaConfig{
			WebhookURL: viper.GetString("rasa.webhook_url"),
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
		},
		Database: DatabaseConfig{
			Type:            viper.GetString("database.type"),
			DSN:             viper.GetString("database.dsn"),
			MaxOpenConns:    viper.GetInt("database.max_open_conns"),
			MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:      jwtSecret,
			Issuer:      viper.GetString("jwt.issuer"),
			TokenExpiry: tokenExpiry,
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
//
// 参数:
//   - value: 逗号分隔的字符串，如 "item1,item2,item3"
//
// 返回值:
//   - []string: 解析后的字符串切片，已去除空白字符
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 加载顺序：
//  1. 当前目录的 .env
//  2. 父目录的 .env（用于从 backend/ 子目录运行的情况）
//
// 注意：
//   - 如果文件不存在，静默失败（.env 是可选的）
//   - 环境变量不会被覆盖（已存在的环境变量优先级更高）
func loadEnvFile() {
	// 尝试当前目录的 .env
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	// 尝试父目录的 .env
	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
