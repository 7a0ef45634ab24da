package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProvider 记录调用并返回预置结果
type fakeProvider struct {
	translateCalls []string
	translated     string
	translateErr   error
	detected       string
	detectErr      error
}

func (f *fakeProvider) Translate(_ context.Context, text, _ string) (string, error) {
	f.translateCalls = append(f.translateCalls, text)
	if f.translateErr != nil {
		return "", f.translateErr
	}
	return f.translated, nil
}

func (f *fakeProvider) Detect(_ context.Context, _ string) (string, error) {
	if f.detectErr != nil {
		return "", f.detectErr
	}
	return f.detected, nil
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	t.Run("default language passthrough without provider call", func(t *testing.T) {
		provider := &fakeProvider{translated: "should not be used"}
		svc := NewService(provider, nil, "en", nil, nil)

		assert.Equal(t, "hello", svc.Translate(ctx, "hello", "en", nil))
		assert.Equal(t, "hello", svc.Translate(ctx, "hello", "", nil))
		assert.Empty(t, provider.translateCalls)
	})

	t.Run("empty text passthrough", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := NewService(provider, nil, "en", nil, nil)

		assert.Equal(t, "", svc.Translate(ctx, "", "hi", nil))
		assert.Empty(t, provider.translateCalls)
	})

	t.Run("provider called once then cached", func(t *testing.T) {
		provider := &fakeProvider{translated: "नमस्ते"}
		svc := NewService(provider, nil, "en", nil, nil)

		first := svc.Translate(ctx, "hello", "hi", nil)
		second := svc.Translate(ctx, "hello", "hi", nil)

		assert.Equal(t, "नमस्ते", first)
		assert.Equal(t, "नमस्ते", second)
		assert.Len(t, provider.translateCalls, 1)
	})

	t.Run("cache keyed per language", func(t *testing.T) {
		provider := &fakeProvider{translated: "x"}
		svc := NewService(provider, nil, "en", nil, nil)

		svc.Translate(ctx, "hello", "hi", nil)
		svc.Translate(ctx, "hello", "mr", nil)

		assert.Len(t, provider.translateCalls, 2)
	})

	t.Run("placeholders substituted before provider call", func(t *testing.T) {
		provider := &fakeProvider{translated: "translated"}
		svc := NewService(provider, nil, "en", nil, nil)

		slots := &SlotContext{State: "delhi", Area: "Karol Bagh", Department: "water"}
		svc.Translate(ctx, "Issue in {area}, {state} for {department}", "hi", slots)

		assert.Equal(t, []string{"Issue in Karol Bagh, delhi for water"}, provider.translateCalls)
	})

	t.Run("language placeholder defaults to en", func(t *testing.T) {
		provider := &fakeProvider{translated: "translated"}
		svc := NewService(provider, nil, "en", nil, nil)

		svc.Translate(ctx, "lang is {language}", "hi", &SlotContext{})
		assert.Equal(t, []string{"lang is en"}, provider.translateCalls)
	})

	t.Run("provider failure returns source text", func(t *testing.T) {
		provider := &fakeProvider{translateErr: errors.New("quota exceeded")}
		svc := NewService(provider, nil, "en", nil, nil)

		got := svc.Translate(ctx, "hello", "hi", nil)
		assert.Equal(t, "hello", got)
	})

	t.Run("failure is not cached", func(t *testing.T) {
		provider := &fakeProvider{translateErr: errors.New("quota exceeded")}
		svc := NewService(provider, nil, "en", nil, nil)

		svc.Translate(ctx, "hello", "hi", nil)
		provider.translateErr = nil
		provider.translated = "नमस्ते"

		assert.Equal(t, "नमस्ते", svc.Translate(ctx, "hello", "hi", nil))
		assert.Len(t, provider.translateCalls, 2)
	})

	t.Run("nil provider degrades to passthrough", func(t *testing.T) {
		svc := NewService(nil, nil, "en", nil, nil)

		slots := &SlotContext{State: "delhi"}
		got := svc.Translate(ctx, "Issue in {state}", "hi", slots)
		assert.Equal(t, "Issue in delhi", got)
	})
}

// fakeL2 内存版共享缓存
type fakeL2 struct {
	data map[string]string
	gets int
	sets int
}

func (f *fakeL2) Get(_ context.Context, key string) (string, bool) {
	f.gets++
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeL2) Set(_ context.Context, key, value string) {
	f.sets++
	f.data[key] = value
}

func TestTranslateL2Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("l2 hit skips provider and warms l1", func(t *testing.T) {
		provider := &fakeProvider{translated: "should not be used"}
		l2 := &fakeL2{data: map[string]string{"hi:hello": "नमस्ते"}}
		svc := NewService(provider, l2, "en", nil, nil)

		assert.Equal(t, "नमस्ते", svc.Translate(ctx, "hello", "hi", nil))
		assert.Empty(t, provider.translateCalls)

		// 第二次命中进程内缓存，不再查 L2
		assert.Equal(t, "नमस्ते", svc.Translate(ctx, "hello", "hi", nil))
		assert.Equal(t, 1, l2.gets)
	})

	t.Run("successful translation written to l2", func(t *testing.T) {
		provider := &fakeProvider{translated: "नमस्ते"}
		l2 := &fakeL2{data: map[string]string{}}
		svc := NewService(provider, l2, "en", nil, nil)

		svc.Translate(ctx, "hello", "hi", nil)
		assert.Equal(t, "नमस्ते", l2.data["hi:hello"])
	})
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("supported language returned", func(t *testing.T) {
		svc := NewService(&fakeProvider{detected: "hi"}, nil, "en", nil, nil)
		assert.Equal(t, "hi", svc.Detect(ctx, "नमस्ते"))
	})

	t.Run("unsupported language falls back to default", func(t *testing.T) {
		svc := NewService(&fakeProvider{detected: "fr"}, nil, "en", nil, nil)
		assert.Equal(t, "en", svc.Detect(ctx, "bonjour"))
	})

	t.Run("detection failure falls back to default", func(t *testing.T) {
		svc := NewService(&fakeProvider{detectErr: errors.New("boom")}, nil, "en", nil, nil)
		assert.Equal(t, "en", svc.Detect(ctx, "hello"))
	})

	t.Run("nil provider falls back to default", func(t *testing.T) {
		svc := NewService(nil, nil, "en", nil, nil)
		assert.Equal(t, "en", svc.Detect(ctx, "hello"))
	})

	t.Run("empty text falls back to default", func(t *testing.T) {
		svc := NewService(&fakeProvider{detected: "hi"}, nil, "en", nil, nil)
		assert.Equal(t, "en", svc.Detect(ctx, ""))
	})
}
