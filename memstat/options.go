// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/spf13/viper"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// DefaultMemcgRoot is the directory holding one memory cgroup per application,
	// laid out as uid_<uid>/pid_<pid>.
	DefaultMemcgRoot = "/dev/memcg/apps"

	// DefaultProcRoot is the mount point of procfs.
	DefaultProcRoot = "/proc"

	// DefaultPageSize is the page size used to convert resident pages into bytes.
	DefaultPageSize uint64 = 4096

	// DefaultClockTicks is the USER_HZ value assumed when it cannot be queried.
	DefaultClockTicks int64 = 100

	// PerAppMemcgEnv is the environment variable consulted when Options.PerAppMemcg is unset.
	PerAppMemcgEnv = "PROCMEM_PER_APP_MEMCG"

	nanosPerSecond = 1_000_000_000
)

// Options represent the available configuration options for a Reader.
// A nil *Options is valid and yields all defaults.
type Options struct {
	// Logger is the sink for diagnostics.  If unset, sallust.Default() is used.
	Logger *zap.Logger `mapstructure:"-"`

	// MetricsProvider is the go-kit factory for the metrics declared by Metrics.
	// If unset, metrics are discarded.
	MetricsProvider provider.Provider `mapstructure:"-"`

	// MemcgRoot is the per-application memory cgroup directory.  If unset, DefaultMemcgRoot is used.
	MemcgRoot string

	// ProcRoot is the procfs mount point.  If unset, DefaultProcRoot is used.
	ProcRoot string

	// PerAppMemcg declares whether the platform keeps a memory cgroup per application.
	// If unset, the PerAppMemcgEnv environment variable decides, and failing that
	// procfs is used.
	PerAppMemcg *bool

	// PageSize converts resident pages into bytes.  If unset, DefaultPageSize is used.
	PageSize uint64

	// ClockTicks is the number of scheduler ticks per second used to convert process
	// start times.  If unset, or not in (0, 1e9], the value is queried from the system
	// once per process.
	ClockTicks int64
}

// NewOptions unmarshals Options from a (possibly nil) Viper instance.
func NewOptions(logger *zap.Logger, v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := v.Unmarshal(o); err != nil {
			return nil, fmt.Errorf("unable to unmarshal memstat options: %w", err)
		}
	}

	o.Logger = logger
	return o, nil
}

func (o *Options) logger() *zap.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return sallust.Default()
}

func (o *Options) metricsProvider() provider.Provider {
	if o != nil && o.MetricsProvider != nil {
		return o.MetricsProvider
	}

	return provider.NewDiscardProvider()
}

func (o *Options) memcgRoot() string {
	if o != nil && len(o.MemcgRoot) > 0 {
		return o.MemcgRoot
	}

	return DefaultMemcgRoot
}

func (o *Options) procRoot() string {
	if o != nil && len(o.ProcRoot) > 0 {
		return o.ProcRoot
	}

	return DefaultProcRoot
}

func (o *Options) pageSize() uint64 {
	if o != nil && o.PageSize > 0 {
		return o.PageSize
	}

	return DefaultPageSize
}

// jiffyNanos is the number of nanoseconds in one scheduler tick.
func (o *Options) jiffyNanos() uint64 {
	var ticks int64
	if o != nil && o.ClockTicks > 0 && o.ClockTicks <= nanosPerSecond {
		ticks = o.ClockTicks
	} else {
		ticks = systemClockTicks()
	}

	return uint64(nanosPerSecond / ticks)
}

// perAppMemcg decides whether memory cgroups are read.  It is evaluated once per Reader.
func (o *Options) perAppMemcg() bool {
	if o != nil && o.PerAppMemcg != nil {
		return *o.PerAppMemcg
	}

	if value, err := strconv.ParseBool(os.Getenv(PerAppMemcgEnv)); err == nil {
		return value
	}

	return false
}
