// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// readFailed logs and counts a failed read of path.  A missing file is the common case of a
// process that has already exited, so it is only traced.
func (r *Reader) readFailed(source, path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("file not found", zap.String("path", path))
		r.measures.read(source, missingOutcome)
		return
	}

	r.logger.Error("failed to read file", zap.String("path", path), zap.Error(err))
	r.measures.read(source, errorOutcome)
}

// readFile returns the contents of path.  It makes exactly one attempt, and reports false
// if the file is missing or cannot be read.
func (r *Reader) readFile(source, path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.readFailed(source, path, err)
		return "", false
	}

	return string(data), true
}
