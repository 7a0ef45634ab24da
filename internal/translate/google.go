package translate

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// GoogleProvider 基于 Google Cloud Translation v2 API 的翻译提供方
type GoogleProvider struct {
	client  *translate.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewGoogleProvider 创建 Google 翻译提供方
//
// apiKey 为空时返回 (nil, nil)，翻译功能整体降级为直通。
func NewGoogleProvider(ctx context.Context, apiKey string, qps float64, logger *zap.Logger) (*GoogleProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiKey == "" {
		logger.Warn("translate API key not set, translation disabled")
		return nil, nil
	}

	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}

	if qps <= 0 {
		qps = 5
	}

	return &GoogleProvider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
		logger:  logger,
	}, nil
}

// Translate 调用翻译 API，受 QPS 限流
func (p *GoogleProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	target, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("parse target language %q: %w", targetLang, err)
	}

	results, err := p.client.Translate(ctx, []string{text}, target, &translate.Options{
		Format: translate.Text,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("empty translation response")
	}
	return results[0].Text, nil
}

// Detect 识别文本语言
func (p *GoogleProvider) Detect(ctx context.Context, text string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	detections, err := p.client.DetectLanguage(ctx, []string{text})
	if err != nil {
		return "", err
	}
	if len(detections) == 0 || len(detections[0]) == 0 {
		return "", errors.New("empty detection response")
	}
	return detections[0][0].Language.String(), nil
}

// Close 释放底层客户端连接
func (p *GoogleProvider) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}
