package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя, чтобы метрики можно было отключить конфигом
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBQueryDuration   *prometheus.HistogramVec

	AvailabilityVerdicts *prometheus.CounterVec
	AdmissionDecisions   *prometheus.CounterVec
	VolumeQueryDuration  *prometheus.HistogramVec
	VolumeQueryErrors    *prometheus.CounterVec
	FailPolicyApplied    *prometheus.CounterVec
	ScheduleCache        *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),

		DBOpenConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established database connections",
			},
			[]string{"service"},
		),
		DBInUse: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of database connections currently in use",
			},
			[]string{"service"},
		),
		DBIdle: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_idle_connections",
				Help: "Number of idle database connections",
			},
			[]string{"service"},
		),
		DBWaitCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_count",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2},
			},
			[]string{"service", "operation"},
		),

		AvailabilityVerdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_verdicts_total",
				Help: "Availability verdicts by service type and reason",
			},
			[]string{"service", "service_type", "reason"},
		),
		AdmissionDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_decisions_total",
				Help: "Admission-control decisions by scope and outcome",
			},
			[]string{"service", "scope", "outcome"},
		),
		VolumeQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "order_volume_query_duration_seconds",
				Help:    "Order volume source query duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1},
			},
			[]string{"service"},
		),
		VolumeQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_volume_query_errors_total",
				Help: "Order volume source failures by kind",
			},
			[]string{"service", "kind"},
		),
		FailPolicyApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_fail_policy_applied_total",
				Help: "Number of times the admission fail policy replaced a real decision",
			},
			[]string{"service", "policy"},
		),
		ScheduleCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedule_cache_requests_total",
				Help: "Schedule snapshot cache lookups by result",
			},
			[]string{"service", "result"},
		),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(seconds)
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.DBInUse.WithLabelValues(m.service).Set(float64(inUse))
	m.DBIdle.WithLabelValues(m.service).Set(float64(idle))
	m.DBWaitCount.WithLabelValues(m.service).Set(float64(waitCount))
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(seconds)
}

// IncVerdict увеличивает счетчик вердиктов доступности
func (m *Metrics) IncVerdict(serviceType, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "available"
	}
	m.AvailabilityVerdicts.WithLabelValues(m.service, serviceType, reason).Inc()
}

// IncAdmission увеличивает счетчик решений admission control
func (m *Metrics) IncAdmission(scope, outcome string) {
	if m == nil {
		return
	}
	m.AdmissionDecisions.WithLabelValues(m.service, scope, outcome).Inc()
}

// ObserveVolumeQuery фиксирует длительность запроса к источнику объема заказов
func (m *Metrics) ObserveVolumeQuery(seconds float64) {
	if m == nil {
		return
	}
	m.VolumeQueryDuration.WithLabelValues(m.service).Observe(seconds)
}

// IncVolumeError увеличивает счетчик ошибок источника объема заказов (timeout, error)
func (m *Metrics) IncVolumeError(kind string) {
	if m == nil {
		return
	}
	m.VolumeQueryErrors.WithLabelValues(m.service, kind).Inc()
}

// IncFailPolicy увеличивает счетчик применений fail-политики
func (m *Metrics) IncFailPolicy(policy string) {
	if m == nil {
		return
	}
	m.FailPolicyApplied.WithLabelValues(m.service, policy).Inc()
}

// IncScheduleCache увеличивает счетчик обращений к кэшу расписаний (hit, miss, error)
func (m *Metrics) IncScheduleCache(result string) {
	if m == nil {
		return
	}
	m.ScheduleCache.WithLabelValues(m.service, result).Inc()
}
