// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package memstat reads memory accounting for a single process from the kernel.

When the platform keeps a memory cgroup per application, the snapshot comes from that
cgroup's memory.stat file.  Otherwise it falls back to the process' procfs stat file.  The
peak resident set size and the command line are read separately from procfs.

Every read is best effort.  A process may exit between the moment a caller learns about it
and the moment its files are read, so a missing file, an unreadable file or garbled content
all produce an absent result rather than an error.  Failures are logged and counted, never
returned.
*/
package memstat
