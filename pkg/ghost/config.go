package ghost

import (
	"fmt"
	"math"
)

// Defaults and ceilings for generation parameters. MaxTokens bounds newly
// generated tokens only; prompt tokens are not counted against it.
const (
	DefaultMaxTokens   uint32  = 2048
	DefaultTemperature float32 = 0.7
	MaxTokensCeiling   uint32  = 32768
	TemperatureMax     float32 = 2.0
)

// Config holds the validated generation parameters owned by a Context.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	MaxTokens   uint32
	Temperature float32
}

// DefaultConfig returns the engine-defined defaults applied at Load.
func DefaultConfig() Config {
	return Config{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// Validate checks the whole value set; a Config is accepted or rejected in
// full so a Context never holds a partially applied update.
func (c Config) Validate() error {
	if err := validateMaxTokens(c.MaxTokens); err != nil {
		return err
	}
	return validateTemperature(c.Temperature)
}

func validateMaxTokens(v uint32) error {
	if v == 0 {
		return genErr(KindInvalidInput, "max_tokens must be positive", nil)
	}
	if v > MaxTokensCeiling {
		return genErr(KindInvalidInput, fmt.Sprintf("max_tokens %d exceeds ceiling %d", v, MaxTokensCeiling), nil)
	}
	return nil
}

func validateTemperature(t float32) error {
	f := float64(t)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return genErr(KindInvalidInput, "temperature must be finite", nil)
	}
	if t < 0 || t > TemperatureMax {
		return genErr(KindInvalidInput, fmt.Sprintf("temperature %g outside [0, %g]", t, TemperatureMax), nil)
	}
	return nil
}

// genParams converts the config into the per-call backend parameters.
func (c Config) genParams() GenParams {
	return GenParams{MaxTokens: int(c.MaxTokens), Temperature: c.Temperature}
}
