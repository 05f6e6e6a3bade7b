package strategy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Canonical strategy names
const (
	AlwaysCooperateName     = "always-cooperate"
	AlwaysDefectName        = "always-defect"
	RandomChoiceName        = "random"
	GrudgeHolderName        = "grudge"
	EchoName                = "echo"
	EchoWithForgivenessName = "echo-forgive"
)

// ErrUnknownStrategy is returned by New for a name that is not registered
var ErrUnknownStrategy = errors.New("unknown strategy")

// Info describes a registered strategy
type Info struct {
	Name        string
	Alias       string
	Description string
	Random      bool
}

type entry struct {
	Info
	build func(rng RandSource, logger *log.Logger) Strategy
}

// registry lists strategies in the order of the default roster
var registry = []entry{
	{
		Info: Info{Name: AlwaysCooperateName, Alias: "jesus", Description: "always stays silent"},
		build: func(RandSource, *log.Logger) Strategy {
			return NewAlwaysCooperate()
		},
	},
	{
		Info: Info{Name: AlwaysDefectName, Alias: "lucifer", Description: "always confesses"},
		build: func(RandSource, *log.Logger) Strategy {
			return NewAlwaysDefect()
		},
	},
	{
		Info: Info{Name: RandomChoiceName, Alias: "insane", Description: "confesses on a coin flip", Random: true},
		build: func(rng RandSource, logger *log.Logger) Strategy {
			return NewRandomChoice(rng, logger)
		},
	},
	{
		Info: Info{Name: GrudgeHolderName, Alias: "armageddon", Description: "confesses for the rest of the round once betrayed"},
		build: func(_ RandSource, logger *log.Logger) Strategy {
			return NewGrudgeHolder(logger)
		},
	},
	{
		Info: Info{Name: EchoName, Alias: "titfortat", Description: "repeats the opponent's last decision, silent first"},
		build: func(RandSource, *log.Logger) Strategy {
			return NewEcho()
		},
	},
	{
		Info: Info{Name: EchoWithForgivenessName, Alias: "titfortatforgive", Description: "echo, but forgives a defection one time in ten", Random: true},
		build: func(rng RandSource, logger *log.Logger) Strategy {
			return NewEchoWithForgiveness(rng, logger)
		},
	},
}

// New builds a fresh strategy by canonical name or alias. Names are case
// insensitive. rng is only consulted by random strategies and may be nil for
// the others.
func New(name string, rng RandSource, logger *log.Logger) (Strategy, error) {
	e, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	if e.Random && rng == nil {
		return nil, fmt.Errorf("strategy %s requires a random source", e.Name)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return e.build(rng, logger.WithPrefix(e.Name)), nil
}

// Lookup returns the registered strategy for a name or alias
func Lookup(name string) (Info, bool) {
	e, ok := lookup(name)
	return e.Info, ok
}

// Names returns the canonical names in default roster order
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// All returns every registered strategy in default roster order
func All() []Info {
	infos := make([]Info, len(registry))
	for i, e := range registry {
		infos[i] = e.Info
	}
	return infos
}

func lookup(name string) (entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.Name == name || e.Alias == name {
			return e, true
		}
	}
	return entry{}, false
}
