package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	m := New()
	m.AssistantIntents.WithLabelValues("status").Inc()
	m.AssistantIntents.WithLabelValues("status").Inc()
	m.Classifications.WithLabelValues("none").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AssistantIntents.WithLabelValues("status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Classifications.WithLabelValues("none")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["spotsolve_assistant_replies_total"])
	assert.True(t, names["go_goroutines"])
}

func TestNewIsIndependent(t *testing.T) {
	a, b := New(), New()
	a.IssuesCreated.WithLabelValues("parks").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.IssuesCreated.WithLabelValues("parks")))
}
