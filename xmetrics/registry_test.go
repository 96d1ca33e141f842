// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule() []Metric {
	return []Metric{
		{
			Name:       "counter",
			Type:       CounterType,
			Help:       "a test counter",
			LabelNames: []string{"code"},
		},
		{
			Name: "gauge",
			Type: GaugeType,
			Help: "a test gauge",
		},
		{
			Name:    "histogram",
			Type:    HistogramType,
			Buckets: []float64{0.5, 1.0, 1.5},
		},
	}
}

func testRegistryAsGoKitProvider(t *testing.T) {
	var (
		require = require.New(t)
		o       = &Options{
			Namespace:               "test",
			Subsystem:               "basic",
			DisableGoCollector:      true,
			DisableProcessCollector: true,
		}
	)

	r, err := NewRegistry(o, testModule)
	require.NoError(err)
	require.NotNil(r)

	t.Run("NewCounter", func(t *testing.T) {
		assert := assert.New(t)
		preregistered := r.NewCounter("counter")
		assert.NotNil(preregistered)
		assert.Equal(preregistered, r.NewCounter("counter"))

		preregistered.With("code", "200").Add(2.0)
		assert.Equal(2.0, testutil.ToFloat64(r.NewCounterVec("counter").WithLabelValues("200")))

		adHoc := r.NewCounter("new_counter")
		assert.NotNil(adHoc)
		assert.NotEqual(preregistered, adHoc)
		assert.Equal(adHoc, r.NewCounter("new_counter"))

		assert.Panics(func() { r.NewCounter("gauge") })
		assert.Panics(func() { r.NewCounter("histogram") })
	})

	t.Run("NewGauge", func(t *testing.T) {
		assert := assert.New(t)
		preregistered := r.NewGauge("gauge")
		assert.NotNil(preregistered)
		assert.Equal(preregistered, r.NewGauge("gauge"))

		preregistered.Set(17.0)
		assert.Equal(17.0, testutil.ToFloat64(r.NewGaugeVec("gauge")))

		adHoc := r.NewGauge("new_gauge")
		assert.NotNil(adHoc)
		assert.NotEqual(preregistered, adHoc)

		assert.Panics(func() { r.NewGauge("counter") })
		assert.Panics(func() { r.NewGauge("histogram") })
	})

	t.Run("NewHistogram", func(t *testing.T) {
		assert := assert.New(t)
		preregistered := r.NewHistogram("histogram", 12)
		assert.NotNil(preregistered)
		assert.Equal(preregistered, r.NewHistogram("histogram", 34))

		adHoc := r.NewHistogram("new_histogram", 93)
		assert.NotNil(adHoc)
		assert.NotEqual(preregistered, adHoc)

		assert.Panics(func() { r.NewHistogram("counter", 12) })
		assert.Panics(func() { r.NewHistogram("gauge", 65344) })
	})

	t.Run("Gather", func(t *testing.T) {
		assert := assert.New(t)
		families, err := r.Gather()
		assert.NoError(err)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}

		assert.Contains(names, "test_basic_counter")
		assert.Contains(names, "test_basic_gauge")
	})
}

func testRegistryEmptyMetricName(t *testing.T) {
	var (
		assert = assert.New(t)
		r, err = NewRegistry(&Options{
			Metrics: []Metric{
				{Type: CounterType},
			},
		})
	)

	assert.Nil(r)
	assert.Error(err)
}

func testRegistryInvalidType(t *testing.T) {
	var (
		assert = assert.New(t)
		r, err = NewRegistry(&Options{
			Metrics: []Metric{
				{Name: "bad", Type: "huh?"},
			},
		})
	)

	assert.Nil(r)
	assert.Error(err)
}

func testRegistryDuplicateModules(t *testing.T) {
	var (
		assert = assert.New(t)
		r, err = NewRegistry(nil, testModule, testModule)
	)

	assert.Nil(r)
	assert.Error(err)
}

func testRegistryDuplicateNamesAcrossNamespaces(t *testing.T) {
	var (
		assert = assert.New(t)

		first = func() []Metric {
			return []Metric{{Name: "x", Namespace: "a", Type: CounterType}}
		}

		second = func() []Metric {
			return []Metric{{Name: "x", Namespace: "b", Type: CounterType}}
		}
	)

	r, err := NewRegistry(&Options{DisableGoCollector: true, DisableProcessCollector: true}, first, second)
	assert.Nil(r)
	assert.ErrorContains(err, "duplicate metric with name: x")

	r, err = NewRegistry(
		&Options{
			DisableGoCollector:      true,
			DisableProcessCollector: true,
			Metrics:                 []Metric{{Name: "x", Namespace: "b", Subsystem: "c", Type: CounterType}},
		},
		first,
	)

	assert.NoError(err)
	if assert.NotNil(r) {
		r.NewCounter("x").Add(1.0)
		assert.Equal(1.0, testutil.ToFloat64(r.NewCounterVec("x")))
		n, err := testutil.GatherAndCount(r, "b_c_x")
		assert.NoError(err)
		assert.Equal(1, n)
		n, err = testutil.GatherAndCount(r, "a_memstat_x")
		assert.NoError(err)
		assert.Zero(n)
	}
}

func testRegistryOverride(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(
		&Options{
			DisableGoCollector:      true,
			DisableProcessCollector: true,
			Metrics: []Metric{
				{Name: "gauge", Type: GaugeType, Help: "overridden"},
			},
		},
		testModule,
	)

	require.NoError(err)
	assert.NotNil(r.NewGauge("gauge"))

	r, err = NewRegistry(
		&Options{
			Metrics: []Metric{
				{Name: "gauge", Type: CounterType},
			},
		},
		testModule,
	)

	assert.Nil(r)
	assert.Error(err)
}

func testMustNewRegistry(t *testing.T) {
	assert := assert.New(t)

	assert.NotPanics(func() {
		assert.NotNil(MustNewRegistry(nil, testModule))
	})

	assert.Panics(func() {
		MustNewRegistry(nil, testModule, testModule)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("AsGoKitProvider", testRegistryAsGoKitProvider)
	t.Run("EmptyMetricName", testRegistryEmptyMetricName)
	t.Run("InvalidType", testRegistryInvalidType)
	t.Run("DuplicateNamesAcrossNamespaces", testRegistryDuplicateNamesAcrossNamespaces)
	t.Run("DuplicateModules", testRegistryDuplicateModules)
	t.Run("Override", testRegistryOverride)
	t.Run("MustNewRegistry", testMustNewRegistry)
}
