package processmq

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace prefixes every metric name.
	Namespace = "processmq"

	// Status label values for success/error metrics
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics counts published messages and created resources. A nil *Metrics
// records nothing.
type Metrics struct {
	messagesPublished *prometheus.CounterVec
	bytesPublished    prometheus.Counter
	resourcesCreated  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		messagesPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messages_published_total",
				Help:      "Number of messages sent to an exchange, by status",
			},
			[]string{"exchange", "status"},
		),
		bytesPublished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "published_bytes_total",
				Help:      "Bytes of message bodies published successfully",
			},
		),
		resourcesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "resources_created_total",
				Help:      "Number of channels, exchanges and queues created",
			},
			[]string{"kind"},
		),
	}

	collectors := []prometheus.Collector{
		m.messagesPublished,
		m.bytesPublished,
		m.resourcesCreated,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) published(exchange string, size int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.messagesPublished.WithLabelValues(exchange, StatusError).Inc()
		return
	}
	m.messagesPublished.WithLabelValues(exchange, StatusSuccess).Inc()
	m.bytesPublished.Add(float64(size))
}

func (m *Metrics) resourceCreated(kind string) {
	if m == nil {
		return
	}
	m.resourcesCreated.WithLabelValues(kind).Inc()
}
