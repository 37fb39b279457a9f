// Package testutil holds small test-only helpers shared across this
// module's packages. Adapted from hashicorp/serf's testutil/testlog.go,
// which built an hclog.Logger over a testing.TB-backed io.Writer; this
// version hands back a *slog.Logger instead, since every log call site in
// this module (coordinate, node) is already log/slog-based.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// Logger returns a *slog.Logger that writes each record as a line through
// t.Log, so log output shows up attributed to the test that produced it.
func Logger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(&testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}
