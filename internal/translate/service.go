package translate

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"upaay/backend/internal/domain"
	"upaay/backend/internal/monitoring"
)

// SlotContext 携带对话槽位值，翻译前替换文本里的占位符
type SlotContext struct {
	State      string
	Area       string
	Department string
	Language   string
}

// Service 翻译服务：占位符替换、两级缓存、提供方失败直通
//
// 进程内缓存不限容量也不过期，键为 "目标语言:原文"（替换占位符之前），
// 同一话术模板在不同槽位值下共享缓存条目。
type Service struct {
	provider    Provider
	l2          CacheStore // 可选的共享缓存，nil 时只用进程内缓存
	defaultLang string
	metrics     *monitoring.Metrics
	logger      *zap.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewService 创建翻译服务，provider 和 l2 都允许为 nil
func NewService(provider Provider, l2 CacheStore, defaultLang string, metrics *monitoring.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &Service{
		provider:    provider,
		l2:          l2,
		defaultLang: defaultLang,
		metrics:     metrics,
		logger:      logger,
		cache:       make(map[string]string),
	}
}

// Translate 将文本翻译到目标语言
//
// 目标语言等于默认语言或文本为空时原样返回，不发起调用。
// 提供方未配置或调用失败时返回原文，翻译失败从不中断对话。
func (s *Service) Translate(ctx context.Context, text, targetLang string, slots *SlotContext) string {
	if targetLang == "" || targetLang == s.defaultLang || text == "" {
		return text
	}

	key := targetLang + ":" + text

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		s.metrics.RecordTranslationCacheHit()
		return cached
	}

	if s.l2 != nil {
		if cached, ok := s.l2.Get(ctx, key); ok {
			s.metrics.RecordTranslationCacheHit()
			s.mu.Lock()
			s.cache[key] = cached
			s.mu.Unlock()
			return cached
		}
	}
	s.metrics.RecordTranslationCacheMiss()

	// 占位符在调用提供方之前替换，缓存键保持模板原文
	rendered := substitute(text, slots)

	if s.provider == nil {
		return rendered
	}

	result, err := s.provider.Translate(ctx, rendered, targetLang)
	if err != nil {
		s.metrics.RecordTranslationError()
		s.logger.Error("translation failed",
			zap.String("target_lang", targetLang),
			zap.Error(err))
		return rendered
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()
	if s.l2 != nil {
		s.l2.Set(ctx, key, result)
	}
	return result
}

// Detect 识别文本语言，失败或不受支持时回退默认语言
func (s *Service) Detect(ctx context.Context, text string) string {
	if s.provider == nil || text == "" {
		return s.defaultLang
	}

	lang, err := s.provider.Detect(ctx, text)
	if err != nil {
		s.metrics.RecordTranslationError()
		s.logger.Error("language detection failed", zap.Error(err))
		return s.defaultLang
	}
	if !domain.IsSupportedLanguage(lang) {
		return s.defaultLang
	}
	return lang
}

// substitute 替换文本里的槽位占位符
func substitute(text string, slots *SlotContext) string {
	if slots == nil || !strings.Contains(text, "{") {
		return text
	}
	lang := slots.Language
	if lang == "" {
		lang = "en"
	}
	replacer := strings.NewReplacer(
		"{state}", slots.State,
		"{area}", slots.Area,
		"{department}", slots.Department,
		"{language}", lang,
	)
	return replacer.Replace(text)
}
