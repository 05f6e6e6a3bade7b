// Package config loads tournament settings and the prisoner roster from HCL.
//
//	tournament {
//	  matches_per_round = 100
//	  seed              = 42
//	  workers           = 1
//	}
//
//	prisoner "Jesus" {
//	  strategy = "always-cooperate"
//	}
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/dilemma/internal/participant"
	"github.com/lox/dilemma/internal/randutil"
	"github.com/lox/dilemma/internal/strategy"
)

// DefaultMatchesPerRound is used when the configuration does not set one
const DefaultMatchesPerRound = 100

// Config represents the complete tournament configuration
type Config struct {
	Tournament *TournamentSettings `hcl:"tournament,block"`
	Prisoners  []PrisonerConfig    `hcl:"prisoner,block"`
}

// TournamentSettings contains run-level configuration
type TournamentSettings struct {
	MatchesPerRound int   `hcl:"matches_per_round,optional"`
	Seed            int64 `hcl:"seed,optional"` // 0 picks a seed at start-up
	Workers         int   `hcl:"workers,optional"`
}

// PrisonerConfig defines one roster entry
type PrisonerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// defaultRoster mirrors the classic line-up, one prisoner per strategy
var defaultRoster = []PrisonerConfig{
	{Name: "Jesus", Strategy: strategy.AlwaysCooperateName},
	{Name: "Lucifer", Strategy: strategy.AlwaysDefectName},
	{Name: "Insane", Strategy: strategy.RandomChoiceName},
	{Name: "Armageddon", Strategy: strategy.GrudgeHolderName},
	{Name: "TitForTat", Strategy: strategy.EchoName},
	{Name: "TitForTatForgive", Strategy: strategy.EchoWithForgivenessName},
}

// Default returns the default tournament configuration
func Default() *Config {
	return &Config{
		Tournament: &TournamentSettings{
			MatchesPerRound: DefaultMatchesPerRound,
			Workers:         1,
		},
		Prisoners: append([]PrisonerConfig(nil), defaultRoster...),
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for anything left unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Tournament == nil {
		config.Tournament = &TournamentSettings{}
	}
	if config.Tournament.MatchesPerRound == 0 {
		config.Tournament.MatchesPerRound = DefaultMatchesPerRound
	}
	if config.Tournament.Workers == 0 {
		config.Tournament.Workers = 1
	}
	if len(config.Prisoners) == 0 {
		config.Prisoners = append([]PrisonerConfig(nil), defaultRoster...)
	}

	return &config, nil
}

// Validate validates the tournament configuration
func (c *Config) Validate() error {
	if c.Tournament == nil {
		return fmt.Errorf("tournament settings are missing")
	}
	if c.Tournament.MatchesPerRound < 1 {
		return fmt.Errorf("matches_per_round must be at least 1, got %d", c.Tournament.MatchesPerRound)
	}
	if c.Tournament.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Tournament.Workers)
	}
	if len(c.Prisoners) < 2 {
		return fmt.Errorf("at least two prisoners must be configured, got %d", len(c.Prisoners))
	}

	seen := make(map[string]bool, len(c.Prisoners))
	for _, p := range c.Prisoners {
		if p.Name == "" {
			return fmt.Errorf("prisoner name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("prisoner %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if _, ok := strategy.Lookup(p.Strategy); !ok {
			return fmt.Errorf("prisoner %s: %w: %q", p.Name, strategy.ErrUnknownStrategy, p.Strategy)
		}
	}

	return nil
}

// BuildRoster creates one participant per configured prisoner. Each roster
// slot draws from its own random stream of seed.
func (c *Config) BuildRoster(seed int64, logger *log.Logger) ([]*participant.Participant, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	roster := make([]*participant.Participant, 0, len(c.Prisoners))
	for i, p := range c.Prisoners {
		s, err := strategy.New(p.Strategy, randutil.Stream(seed, i), logger.With("prisoner", p.Name))
		if err != nil {
			return nil, fmt.Errorf("prisoner %s: %w", p.Name, err)
		}
		roster = append(roster, participant.New(s).WithLabel(p.Name))
	}
	return roster, nil
}
