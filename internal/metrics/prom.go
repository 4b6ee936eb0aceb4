package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder собирает метрики диспетчеризации и доставки событий в Prometheus.
// Реализует service.MetricsRecorder и fanout.Metrics.
type Recorder struct {
	transitions   *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	locations     *prometheus.CounterVec
	assignLatency prometheus.Histogram
	deliveries    *prometheus.CounterVec
	droppedEvents prometheus.Counter
}

// NewRecorder регистрирует коллекторы в reg (по умолчанию prometheus.DefaultRegisterer).
// Уже зарегистрированные коллекторы переиспользуются.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_task_transitions_total",
		Help: "Committed task transitions by target status",
	}, []string{"status"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_rejected_operations_total",
		Help: "Rejected dispatch operations by operation and reason",
	}, []string{"operation", "reason"})
	locations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_location_updates_total",
		Help: "Officer location updates by outcome",
	}, []string{"applied"})
	assignLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_assign_duration_seconds",
		Help:    "Time spent inside Assign",
		Buckets: prometheus.DefBuckets,
	})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fanout_deliveries_total",
		Help: "Event deliveries by audience and outcome",
	}, []string{"audience", "delivered"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fanout_dropped_events_total",
		Help: "Events dropped because the fanout queue was full",
	})

	var err error
	if transitions, err = register(reg, transitions); err != nil {
		return nil, err
	}
	if rejected, err = register(reg, rejected); err != nil {
		return nil, err
	}
	if locations, err = register(reg, locations); err != nil {
		return nil, err
	}
	if assignLatency, err = register(reg, assignLatency); err != nil {
		return nil, err
	}
	if deliveries, err = register(reg, deliveries); err != nil {
		return nil, err
	}
	if dropped, err = register(reg, dropped); err != nil {
		return nil, err
	}

	return &Recorder{
		transitions:   transitions,
		rejected:      rejected,
		locations:     locations,
		assignLatency: assignLatency,
		deliveries:    deliveries,
		droppedEvents: dropped,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *Recorder) RecordTransition(status string) {
	r.transitions.WithLabelValues(status).Inc()
}

func (r *Recorder) RecordRejected(operation, reason string) {
	r.rejected.WithLabelValues(operation, reason).Inc()
}

func (r *Recorder) RecordLocationUpdate(applied bool) {
	r.locations.WithLabelValues(strconv.FormatBool(applied)).Inc()
}

func (r *Recorder) RecordAssignLatency(d time.Duration) {
	r.assignLatency.Observe(d.Seconds())
}

func (r *Recorder) RecordDelivery(audience string, delivered bool) {
	r.deliveries.WithLabelValues(audience, strconv.FormatBool(delivered)).Inc()
}

func (r *Recorder) RecordDropped() {
	r.droppedEvents.Inc()
}
