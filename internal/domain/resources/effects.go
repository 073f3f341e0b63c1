package resources

// Effects are the direct (non-sales) deltas an event option applies
type Effects struct {
	Currency     int `json:"currency"`
	Satisfaction int `json:"satisfaction,omitempty"`
	Reputation   int `json:"reputation,omitempty"`
}

// Half returns the effects at half magnitude, truncated toward zero.
// Opponents that pick a wrong option feel only half of it.
func (e Effects) Half() Effects {
	return Effects{
		Currency:     e.Currency / 2,
		Satisfaction: e.Satisfaction / 2,
		Reputation:   e.Reputation / 2,
	}
}

// IsZero reports whether the effects change nothing
func (e Effects) IsZero() bool {
	return e.Currency == 0 && e.Satisfaction == 0 && e.Reputation == 0
}
