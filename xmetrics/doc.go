// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides configurability for Prometheus-based metrics.  The more general go-kit interfaces
are used where possible, so that packages can declare their metrics as a Module and consume them through
a go-kit provider.Provider without depending on Prometheus directly.
*/
package xmetrics
