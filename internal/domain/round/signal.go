package round

// Signal is a round lifecycle signal exposed to the presentation layer
type Signal string

const (
	SignalRegionSelectionRequired Signal = "REGION_SELECTION_REQUIRED"
	SignalStockingRequired        Signal = "STOCKING_REQUIRED"
	SignalEventInProgress         Signal = "EVENT_IN_PROGRESS"
	SignalRoundComplete           Signal = "ROUND_COMPLETE"
)

func (s Signal) String() string {
	return string(s)
}

// Description returns a short human-readable explanation of the signal
func (s Signal) Description() string {
	switch s {
	case SignalRegionSelectionRequired:
		return "choose a region and district for this round"
	case SignalStockingRequired:
		return "purchase inventory before the first event"
	case SignalEventInProgress:
		return "an event is in progress"
	case SignalRoundComplete:
		return "round complete, report ready"
	default:
		return string(s)
	}
}
