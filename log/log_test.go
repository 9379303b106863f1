// log/log_test.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import "testing"

func TestNilLoggerDoesNotPanic(t *testing.T) {
	var l *Logger
	l.Debug("should be a no-op")
	l.Info("should be a no-op")
	l.Warn("goes to the default slog logger")
	l.Error("goes to the default slog logger")
}

func TestNewWritesToGivenDir(t *testing.T) {
	dir := t.TempDir()
	l := New("debug", dir)
	if l.LogDir != dir {
		t.Errorf("got LogDir %q, want %q", l.LogDir, dir)
	}
	l.Debugf("iteration %d complete", 1)
}
