// Package node implements the hybrid network-coordinate node of Lee et
// al., "On Suitability of Euclidean Embedding for Host-Based Network
// Coordinate Systems" (2010): a coordinate.Coordinate augmented with a
// sliding-window, non-Euclidean adjustment term that captures systematic
// error the Euclidean embedding alone can't model.
package node

import (
	"log/slog"

	"github.com/bitbckt/vivaldi/coordinate"
	"github.com/bitbckt/vivaldi/internal/obslog"
	"github.com/bitbckt/vivaldi/internal/obsmetrics"
)

// Config configures a Node. Coordinate is passed straight through to
// coordinate.New. Window is the size of the residual sample ring; 0
// disables the hybrid adjustment entirely and Node.Distance/Update reduce
// to the embedded Coordinate's behavior.
type Config struct {
	Coordinate *coordinate.Config
	Window     int

	Logger  *slog.Logger
	Metrics obsmetrics.Sink
}

func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Logger == nil {
		cfg.Logger = obslog.Discard()
	}
	return &cfg
}
