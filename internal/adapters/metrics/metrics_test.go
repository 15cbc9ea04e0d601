package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestPaymentMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPaymentMetrics(reg)
	require.NoError(t, err)

	m.ObserveVerification(domain.VerificationSucceeded)
	m.ObserveVerification(domain.VerificationSucceeded)
	m.ObserveVerification(domain.VerificationFailed)
	m.ObserveIssued(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.verifications.WithLabelValues("unavailable")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.issued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issuances))
}

func TestNewPaymentMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPaymentMetrics(reg)
	require.NoError(t, err)
	second, err := NewPaymentMetrics(reg)
	require.NoError(t, err)

	second.ObserveIssued(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(first.issued))
}
