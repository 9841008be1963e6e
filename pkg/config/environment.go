package config

import (
	"fmt"
	"strings"
)

type AmadeusEnvironment int

const (
	AmadeusEnvironmentTest AmadeusEnvironment = iota
	AmadeusEnvironmentProduction
)

func (e AmadeusEnvironment) String() string {
	switch e {
	case AmadeusEnvironmentTest:
		return "test"
	case AmadeusEnvironmentProduction:
		return "production"
	}
	return "Unknown"
}

func (e AmadeusEnvironment) BaseURL() string {
	if e == AmadeusEnvironmentProduction {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

// SetValue lets cleanenv read the environment from its name.
func (e *AmadeusEnvironment) SetValue(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "test":
		*e = AmadeusEnvironmentTest
	case "production", "prod":
		*e = AmadeusEnvironmentProduction
	default:
		return fmt.Errorf("unknown amadeus environment %q", s)
	}
	return nil
}
