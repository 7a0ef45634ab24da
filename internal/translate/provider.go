package translate

import "context"

// Provider 定义底层翻译提供方操作
type Provider interface {
	// Translate 将文本翻译到目标语言（ISO 639-1 语言码）
	Translate(ctx context.Context, text, targetLang string) (string, error)
	// Detect 识别文本语言，返回 ISO 639-1 语言码
	Detect(ctx context.Context, text string) (string, error)
}

// CacheStore 定义跨进程共享的二级翻译缓存
type CacheStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}
