// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNewCollectorMissingName(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Type: CounterType}, "", "")
	assert.Nil(c)
	assert.Error(err)
}

func testNewCollectorUnsupportedType(t *testing.T) {
	assert := assert.New(t)
	c, err := NewCollector(Metric{Name: "test", Type: "summary"}, "", "")
	assert.Nil(c)
	assert.Error(err)
}

func testNewCollectorCounter(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: CounterType, LabelNames: []string{"outcome"}}, "ns", "sub")
	)

	require.NoError(err)
	require.NotNil(c)

	counterVec, ok := c.(*prometheus.CounterVec)
	require.True(ok)
	assert.Contains(counterVec.WithLabelValues("success").Desc().String(), `fqName: "ns_sub_test"`)
}

func testNewCollectorGauge(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: GaugeType, Namespace: "own"}, "ns", "sub")
	)

	require.NoError(err)
	require.NotNil(c)

	gaugeVec, ok := c.(*prometheus.GaugeVec)
	require.True(ok)
	assert.Contains(gaugeVec.WithLabelValues().Desc().String(), `fqName: "own_sub_test"`)
}

func testNewCollectorHistogram(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = NewCollector(Metric{Name: "test", Type: HistogramType, Buckets: []float64{1, 2}}, "ns", "sub")
	)

	require.NoError(err)
	require.NotNil(c)

	_, ok := c.(*prometheus.HistogramVec)
	assert.True(ok)
}

func TestNewCollector(t *testing.T) {
	t.Run("MissingName", testNewCollectorMissingName)
	t.Run("UnsupportedType", testNewCollectorUnsupportedType)
	t.Run("Counter", testNewCollectorCounter)
	t.Run("Gauge", testNewCollectorGauge)
	t.Run("Histogram", testNewCollectorHistogram)
}

func TestMetricFQN(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ns_sub_reads", Metric{Name: "reads"}.fqn("ns", "sub"))
	assert.Equal("own_sub_reads", Metric{Name: "reads", Namespace: "own"}.fqn("ns", "sub"))
	assert.Equal("ns_own_reads", Metric{Name: "reads", Subsystem: "own"}.fqn("ns", "sub"))
}
