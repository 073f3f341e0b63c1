package game

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
)

// Content is the immutable game data every session plays with
type Content struct {
	Regions *region.Table
	Catalog *catalog.Catalog
	Events  *event.Dataset
}

// Validate checks that content is complete and every region type has events
func (c Content) Validate() error {
	if c.Regions == nil || c.Catalog == nil || c.Events == nil {
		return fmt.Errorf("content is incomplete")
	}
	for _, rt := range c.Regions.Types() {
		if !c.Events.HasRegion(rt) {
			return fmt.Errorf("%w: %s", event.ErrNoEvents, rt)
		}
	}
	return nil
}
