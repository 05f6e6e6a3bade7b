package main

import (
	"fmt"
	"os"

	"github.com/lox/dilemma/internal/strategy"
)

// StrategiesCmd lists the registered strategies
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run() error {
	for _, info := range strategy.All() {
		if _, err := fmt.Fprintf(os.Stdout, "%-18s %-18s %s\n", info.Name, info.Alias, info.Description); err != nil {
			return err
		}
	}
	return nil
}
