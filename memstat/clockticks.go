// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"sync"

	"github.com/tklauser/go-sysconf"
)

// systemClockTicks returns _SC_CLK_TCK, queried once per process.
var systemClockTicks = sync.OnceValue(func() int64 {
	ticks, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || ticks <= 0 || ticks > nanosPerSecond {
		return DefaultClockTicks
	}

	return ticks
})
