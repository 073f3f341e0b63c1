package event

import "fmt"

// EconomicSignal is the macro market condition revealed at the start of an event
type EconomicSignal string

const (
	SignalHot    EconomicSignal = "HOT"
	SignalNormal EconomicSignal = "NORMAL"
	SignalLow    EconomicSignal = "LOW"
)

// Multiplier returns the demand multiplier of the signal
func (s EconomicSignal) Multiplier() float64 {
	switch s {
	case SignalHot:
		return 1.2
	case SignalLow:
		return 0.8
	default:
		return 1.0
	}
}

func (s EconomicSignal) IsValid() bool {
	switch s {
	case SignalHot, SignalNormal, SignalLow:
		return true
	default:
		return false
	}
}

func (s EconomicSignal) String() string {
	return string(s)
}

// ParseEconomicSignal parses a signal name
func ParseEconomicSignal(s string) (EconomicSignal, error) {
	signal := EconomicSignal(s)
	if !signal.IsValid() {
		return "", fmt.Errorf("invalid economic signal: %s", s)
	}
	return signal, nil
}
