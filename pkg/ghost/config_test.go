package ghost

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxTokens != DefaultMaxTokens || cfg.Temperature != DefaultTemperature {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"min tokens", Config{MaxTokens: 1, Temperature: 0}, true},
		{"at ceiling", Config{MaxTokens: MaxTokensCeiling, Temperature: TemperatureMax}, true},
		{"zero tokens", Config{MaxTokens: 0, Temperature: 0.5}, false},
		{"over ceiling", Config{MaxTokens: MaxTokensCeiling + 1, Temperature: 0.5}, false},
		{"negative temp", Config{MaxTokens: 10, Temperature: -0.5}, false},
		{"over max temp", Config{MaxTokens: 10, Temperature: TemperatureMax + 0.5}, false},
		{"nan temp", Config{MaxTokens: 10, Temperature: nan}, false},
		{"inf temp", Config{MaxTokens: 10, Temperature: inf}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected rejection")
				}
				if !IsInvalidInput(err) {
					t.Fatalf("expected invalid input kind, got %v", err)
				}
			}
		})
	}
}

func TestGenParamsConversion(t *testing.T) {
	cfg := Config{MaxTokens: 77, Temperature: 1.25}
	p := cfg.genParams()
	if p.MaxTokens != 77 || p.Temperature != 1.25 {
		t.Fatalf("unexpected params: %+v", p)
	}
}
