package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
//
// 所有 Record* 方法都允许 nil 接收者，方便测试中传 nil 关闭指标。
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 投诉指标
	ComplaintsSubmitted prometheus.Counter
	ComplaintFailures   *prometheus.CounterVec
	DispatchLegs        *prometheus.CounterVec

	// 翻译指标
	TranslationCacheHits   prometheus.Counter
	TranslationCacheMisses prometheus.Counter
	TranslationErrors      prometheus.Counter

	// 用户指标
	UsersRegistered prometheus.Counter
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upaay_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upaay_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ComplaintsSubmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upaay_complaints_submitted_total",
				Help: "Total number of complaints dispatched successfully",
			},
		),

		ComplaintFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upaay_complaint_failures_total",
				Help: "Total number of failed complaint submissions by reason",
			},
			[]string{"reason"},
		),

		DispatchLegs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upaay_dispatch_legs_total",
				Help: "Total number of email dispatch legs by outcome",
			},
			[]string{"leg", "outcome"},
		),

		TranslationCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upaay_translation_cache_hits_total",
				Help: "Total number of translation cache hits",
			},
		),

		TranslationCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upaay_translation_cache_misses_total",
				Help: "Total number of translation cache misses",
			},
		),

		TranslationErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upaay_translation_errors_total",
				Help: "Total number of translation provider errors",
			},
		),

		UsersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upaay_users_registered_total",
				Help: "Total number of users registered",
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordComplaintSubmitted 记录投诉派送成功
func (m *Metrics) RecordComplaintSubmitted() {
	if m == nil {
		return
	}
	m.ComplaintsSubmitted.Inc()
}

// RecordComplaintFailure 记录投诉失败及原因
func (m *Metrics) RecordComplaintFailure(reason string) {
	if m == nil {
		return
	}
	m.ComplaintFailures.WithLabelValues(reason).Inc()
}

// RecordDispatchLeg 记录单条邮件派送结果
func (m *Metrics) RecordDispatchLeg(leg string, ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.DispatchLegs.WithLabelValues(leg, outcome).Inc()
}

// RecordTranslationCacheHit 记录翻译缓存命中
func (m *Metrics) RecordTranslationCacheHit() {
	if m == nil {
		return
	}
	m.TranslationCacheHits.Inc()
}

// RecordTranslationCacheMiss 记录翻译缓存未命中
func (m *Metrics) RecordTranslationCacheMiss() {
	if m == nil {
		return
	}
	m.TranslationCacheMisses.Inc()
}

// RecordTranslationError 记录翻译提供方错误
func (m *Metrics) RecordTranslationError() {
	if m == nil {
		return
	}
	m.TranslationErrors.Inc()
}

// RecordUserRegistered 记录用户注册
func (m *Metrics) RecordUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

// HTTPHandler 返回 Prometheus HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
