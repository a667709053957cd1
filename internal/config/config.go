// Package config loads selector and harness settings from JSON files.
// Fields are pointers so a partial config overrides only what it
// names; nil fields keep the engine defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/mnsig"
)

// MaxConfigFileSize bounds how much of a config file is read.
const MaxConfigFileSize = 1 << 20

// Config is the root configuration document.
type Config struct {
	Selector *SelectorConfig `json:"selector,omitempty"`
	Harness  *HarnessConfig  `json:"harness,omitempty"`
}

// SelectorConfig overrides the family-selection defaults.
type SelectorConfig struct {
	// GridK is the per-axis grid resolution (default 4).
	GridK *int `json:"grid_k,omitempty"`
	// NegTauTolerance is the boundary-policy threshold for families
	// limited to positive dependence (default -0.05).
	NegTauTolerance *float64 `json:"neg_tau_tolerance,omitempty"`
	// Families are the candidate family names, searched in order.
	Families []string `json:"families,omitempty"`
}

// HarnessConfig overrides the Monte-Carlo harness defaults.
type HarnessConfig struct {
	Trials     *int     `json:"trials,omitempty"`
	SampleSize *int     `json:"sample_size,omitempty"`
	Dims       *int     `json:"dims,omitempty"`
	TauStep    *float64 `json:"tau_step,omitempty"`
}

// Load reads a Config from a JSON file. The path must carry a .json
// extension and stay under MaxConfigFileSize; omitted fields retain
// their defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > MaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// BuildSelector materialises a selector from the config, starting from
// the engine defaults.
func (c *Config) BuildSelector() (*mnsig.Selector, error) {
	sel := mnsig.NewSelector()
	if c == nil || c.Selector == nil {
		return sel, nil
	}

	sc := c.Selector
	if sc.GridK != nil {
		if *sc.GridK < 1 {
			return nil, fmt.Errorf("config: grid_k %d below 1", *sc.GridK)
		}
		sel.K = *sc.GridK
	}
	if sc.NegTauTolerance != nil {
		if *sc.NegTauTolerance > 0 {
			return nil, fmt.Errorf("config: neg_tau_tolerance %v is positive", *sc.NegTauTolerance)
		}
		sel.NegTauTolerance = *sc.NegTauTolerance
	}
	if len(sc.Families) > 0 {
		families := make([]copula.Family, 0, len(sc.Families))
		for _, name := range sc.Families {
			f, err := copula.ParseFamily(name)
			if err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			families = append(families, f)
		}
		sel.Families = families
	}
	return sel, nil
}

// Harness defaults.
const (
	DefaultTrials     = 100
	DefaultSampleSize = 1000
	DefaultDims       = 2
	DefaultTauStep    = 0.05
)

// HarnessValues resolves the harness settings against the defaults.
func (c *Config) HarnessValues() (trials, sampleSize, dims int, tauStep float64) {
	trials, sampleSize, dims, tauStep = DefaultTrials, DefaultSampleSize, DefaultDims, DefaultTauStep
	if c == nil || c.Harness == nil {
		return
	}
	h := c.Harness
	if h.Trials != nil {
		trials = *h.Trials
	}
	if h.SampleSize != nil {
		sampleSize = *h.SampleSize
	}
	if h.Dims != nil {
		dims = *h.Dims
	}
	if h.TauStep != nil {
		tauStep = *h.TauStep
	}
	return
}
