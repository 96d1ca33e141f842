// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"testing"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/procmem/xmetrics"
)

func TestMetrics(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	m := Metrics()
	require.Len(m, 1)
	assert.Equal(ReadCounter, m[0].Name)
	assert.Equal(xmetrics.CounterType, m[0].Type)
	assert.Equal([]string{SourceLabel, OutcomeLabel}, m[0].LabelNames)

	r, err := xmetrics.NewRegistry(nil, Metrics)
	require.NoError(err)
	require.NotNil(r)
}

func TestNewMeasures(t *testing.T) {
	t.Run("Discard", func(t *testing.T) {
		m := NewMeasures(provider.NewDiscardProvider())
		assert.NotNil(t, m.Reads)
		assert.NotPanics(t, func() { m.read(memcgSource, successOutcome) })
	})

	t.Run("Registry", func(t *testing.T) {
		var (
			assert = assert.New(t)
			r      = xmetrics.MustNewRegistry(&xmetrics.Options{DisableGoCollector: true, DisableProcessCollector: true}, Metrics)
			m      = NewMeasures(r)
		)

		m.read(procStatSource, successOutcome)
		m.read(procStatSource, successOutcome)
		m.read(cmdlineSource, missingOutcome)

		assert.Equal(2.0, testutil.ToFloat64(r.NewCounterVec(ReadCounter).WithLabelValues(procStatSource, successOutcome)))
		assert.Equal(1.0, testutil.ToFloat64(r.NewCounterVec(ReadCounter).WithLabelValues(cmdlineSource, missingOutcome)))
		assert.Zero(testutil.ToFloat64(r.NewCounterVec(ReadCounter).WithLabelValues(memcgSource, errorOutcome)))
	})
}
