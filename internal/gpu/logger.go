// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"
)

// discardLogger is used until hqx.SetLogger hands the accelerator a logger.
var discardLogger = slog.New(slog.DiscardHandler)

var acceleratorLogger atomic.Pointer[slog.Logger]

// slogger returns the logger for accelerator events. Records carry the
// accelerator name so they can be told apart from the CPU backend's.
func slogger() *slog.Logger {
	if l := acceleratorLogger.Load(); l != nil {
		return l
	}
	return discardLogger
}

// setLogger installs l, or restores the silent default when l is nil.
func setLogger(l *slog.Logger) {
	if l == nil {
		acceleratorLogger.Store(nil)
		return
	}
	acceleratorLogger.Store(l.With("accelerator", acceleratorName))
}
