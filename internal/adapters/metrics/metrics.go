package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"eventticketing/internal/domain"
)

const namespace = "eventticketing"

// PaymentMetrics records payment verification outcomes and issued tickets.
type PaymentMetrics struct {
	verifications *prometheus.CounterVec
	issued        prometheus.Counter
	issuances     prometheus.Counter
}

var _ domain.PaymentRecorder = (*PaymentMetrics)(nil)

// NewPaymentMetrics creates the payment collectors and registers them with reg.
// An already registered collector is reused so tests can share a registry.
func NewPaymentMetrics(reg prometheus.Registerer) (*PaymentMetrics, error) {
	m := &PaymentMetrics{
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Payment verifications by outcome.",
		}, []string{"outcome"}),
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_issued_total",
			Help:      "Tickets created by successful payment verification.",
		}),
		issuances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_issuances_total",
			Help:      "Payment references that produced tickets.",
		}),
	}
	var err error
	if m.verifications, err = register(reg, m.verifications); err != nil {
		return nil, err
	}
	if m.issued, err = register(reg, m.issued); err != nil {
		return nil, err
	}
	if m.issuances, err = register(reg, m.issuances); err != nil {
		return nil, err
	}
	// Pre-create every outcome so dashboards see zeros instead of gaps.
	for _, s := range []domain.VerificationStatus{
		domain.VerificationSucceeded, domain.VerificationFailed,
		domain.VerificationUnavailable, domain.VerificationSkipped,
	} {
		m.verifications.WithLabelValues(string(s))
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return c, err
		}
		existing, ok := are.ExistingCollector.(C)
		if !ok {
			return c, err
		}
		return existing, nil
	}
	return c, nil
}

func (m *PaymentMetrics) ObserveVerification(status domain.VerificationStatus) {
	m.verifications.WithLabelValues(string(status)).Inc()
}

func (m *PaymentMetrics) ObserveIssued(tickets int) {
	m.issuances.Inc()
	m.issued.Add(float64(tickets))
}
