// Package obslog supplies the zero-configuration logger every exported
// constructor in this module falls back to when a caller doesn't wire one
// in through Config.Logger.
package obslog

import (
	"io"
	"log/slog"
)

// Discard returns a *slog.Logger that throws every record away. It is the
// default held by coordinate.Config and node.Config so logging stays
// opt-in and free when unused.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
