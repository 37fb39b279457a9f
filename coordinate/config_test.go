package coordinate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.validate())
}

func TestConfig_ValidateAggregatesViolations(t *testing.T) {
	cfg := &Config{
		Dimensionality: 0,
		CE:             1.0,
		CC:             -0.1,
		Rho:            0,
		MaxError:       -1,
		MinHeight:      -1,
	}
	err := cfg.validate()
	if assert.Error(t, err) {
		msg := err.Error()
		for _, want := range []string{"Dimensionality", "CE", "CC", "Rho", "MaxError", "MinHeight"} {
			assert.Contains(t, msg, want)
		}
	}
}

func TestConfig_WithDefaultsFillsLogger(t *testing.T) {
	cfg := DefaultConfig()
	resolved := cfg.withDefaults()
	assert.NotNil(t, resolved.Logger)
	// withDefaults must not mutate the original.
	assert.Nil(t, cfg.Logger)
}
