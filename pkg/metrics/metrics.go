// Package metrics 提供 Prometheus helper，包含 HTTP 模板指标与发行平台业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/creatorlaunch/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数（按方法/路径/状态码）
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 业务指标
	ApplicationsSubmittedTotal prometheus.Counter
	ApplicationsApprovedTotal  prometheus.Counter
	OfferingsLaunchedTotal     prometheus.Counter
	OfferingsLive              prometheus.Gauge
	InvestmentsTotal           prometheus.Counter
	TokensClaimedTotal         prometheus.Counter
	OutboxPendingMessages      prometheus.Gauge
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ApplicationsSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "applications_submitted_total",
			Help:      "Total creator applications submitted",
		}),
		ApplicationsApprovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "applications_approved_total",
			Help:      "Total creator applications approved",
		}),
		OfferingsLaunchedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "offerings_launched_total",
			Help:      "Total offerings launched",
		}),
		OfferingsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "offerings_live",
			Help:      "Number of offerings currently live",
		}),
		InvestmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "investments_total",
			Help:      "Total investments recorded",
		}),
		TokensClaimedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "tokens_claimed_total",
			Help:      "Total tokens released to investors",
		}),
		OutboxPendingMessages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "creatorlaunch",
			Subsystem: serviceName,
			Name:      "outbox_pending_messages",
			Help:      "Number of unsent outbox messages",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.ApplicationsSubmittedTotal,
		m.ApplicationsApprovedTotal,
		m.OfferingsLaunchedTotal,
		m.OfferingsLive,
		m.InvestmentsTotal,
		m.TokensClaimedTotal,
		m.OutboxPendingMessages,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "failed to register metric", "error", err)
			return err
		}
	}
	return nil
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", statusCode)).Inc()
	m.HTTPRequestDuration.Observe(duration)
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "starting prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(context.Background(), "failed to start prometheus HTTP server", "error", err)
		}
	}()
}
