package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the study module.
type Metrics struct {
	StudiesCreated       prometheus.Counter
	StudiesOpened        prometheus.Counter
	MemberLookupMisses   prometheus.Counter
	OperationDuration    *prometheus.HistogramVec
	CacheLookups         *prometheus.CounterVec
	NotificationFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StudiesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "studylab_studies_created_total",
			Help: "Total number of studies created with an owner",
		}),
		StudiesOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "studylab_studies_opened_total",
			Help: "Total number of studies opened",
		}),
		MemberLookupMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "studylab_study_member_lookup_misses_total",
			Help: "CreateNewStudy calls rejected because the member does not exist",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studylab_study_operation_duration_seconds",
			Help:    "Duration of study service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studylab_study_cache_lookups_total",
			Help: "Study cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "studylab_study_notification_failures_total",
			Help: "Notifications the member collaborator failed to deliver",
		}),
	}
}

func (m *Metrics) IncrementCreated()             { m.StudiesCreated.Inc() }
func (m *Metrics) IncrementOpened()              { m.StudiesOpened.Inc() }
func (m *Metrics) IncrementMemberLookupMiss()    { m.MemberLookupMisses.Inc() }
func (m *Metrics) IncrementNotificationFailure() { m.NotificationFailures.Inc() }

// ObserveOperation records the duration of op. Call with time.Now() taken at the start.
func (m *Metrics) ObserveOperation(op string, start time.Time) {
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordCacheHit()   { m.CacheLookups.WithLabelValues("hit").Inc() }
func (m *Metrics) RecordCacheMiss()  { m.CacheLookups.WithLabelValues("miss").Inc() }
func (m *Metrics) RecordCacheError() { m.CacheLookups.WithLabelValues("error").Inc() }
