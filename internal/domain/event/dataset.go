package event

import "fmt"

// Dataset holds the ordered event list of every region type.
//
// When a round needs more events than a region has authored, selection
// wraps around: index i maps to events[i % len(events)].
type Dataset struct {
	byRegion map[string][]Event
}

// NewDataset validates every event and builds an immutable Dataset
func NewDataset(byRegion map[string][]Event) (*Dataset, error) {
	if len(byRegion) == 0 {
		return nil, fmt.Errorf("%w: dataset is empty", ErrInvalidEvent)
	}
	d := &Dataset{byRegion: make(map[string][]Event, len(byRegion))}
	for regionType, events := range byRegion {
		if len(events) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoEvents, regionType)
		}
		ids := make(map[string]bool, len(events))
		list := make([]Event, len(events))
		for i, e := range events {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("region %s: %w", regionType, err)
			}
			if ids[e.ID] {
				return nil, fmt.Errorf("%w: duplicate event id %s in region %s", ErrInvalidEvent, e.ID, regionType)
			}
			ids[e.ID] = true
			list[i] = e
		}
		d.byRegion[regionType] = list
	}
	return d, nil
}

// Regions returns the number of region types covered
func (d *Dataset) Regions() int {
	return len(d.byRegion)
}

// Count returns how many events a region type has authored
func (d *Dataset) Count(regionType string) int {
	return len(d.byRegion[regionType])
}

// HasRegion reports whether the region type has any events
func (d *Dataset) HasRegion(regionType string) bool {
	return len(d.byRegion[regionType]) > 0
}

// EventAt returns the event to play at the given index of a round
func (d *Dataset) EventAt(regionType string, index int) (Event, error) {
	events := d.byRegion[regionType]
	if len(events) == 0 {
		return Event{}, fmt.Errorf("%w: %s", ErrNoEvents, regionType)
	}
	if index < 0 {
		index = 0
	}
	return events[index%len(events)], nil
}
