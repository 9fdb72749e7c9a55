package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveValidation(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveValidation("rejected", "overlap")
	m.ObserveValidation("rejected", "overlap")
	m.ObserveValidation("accepted", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationTotal.WithLabelValues("rejected", "overlap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationTotal.WithLabelValues("accepted", "")))
}

func TestObserveValidation_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveValidation("rejected", "overlap") })
}
