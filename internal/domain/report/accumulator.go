package report

import "time"

// Accumulator collects per-event deltas of the current round.
// Stocking purchases add to cost but do not count toward the event threshold.
type Accumulator struct {
	RoundNumber        int        `json:"round_number"`
	RegionType         string     `json:"region_type,omitempty"`
	District           string     `json:"district,omitempty"`
	RentPaid           int        `json:"rent_paid"`
	Events             []LineItem `json:"events"`
	StockingItems      []LineItem `json:"stocking_items"`
	TotalRevenue       int        `json:"total_revenue"`
	TotalCost          int        `json:"total_cost"`
	TotalSalesVolume   int        `json:"total_sales_volume"`
	SatisfactionChange int        `json:"satisfaction_change"`
	ReputationChange   int        `json:"reputation_change"`
}

// HasRegionInfo reports whether SetRegionInfo ran for the current round
func (a *Accumulator) HasRegionInfo() bool {
	return a.RoundNumber > 0 && a.RegionType != ""
}

// SetRegionInfo starts a round's accumulation and attributes the rent line.
// Any leftover accumulation from an earlier round is discarded.
func (a *Accumulator) SetRegionInfo(roundNumber int, regionType, district string, rentPaid int) {
	a.reset()
	a.RoundNumber = roundNumber
	a.RegionType = regionType
	a.District = district
	a.RentPaid = rentPaid
}

// RecordEvent accumulates a line item.
// Positive currency effects count as revenue, negative ones as cost.
func (a *Accumulator) RecordEvent(item LineItem, isStockingEvent bool) error {
	if !a.HasRegionInfo() {
		return ErrRegionInfoMissing
	}

	a.TotalRevenue += item.Revenue
	a.TotalCost += item.Cost
	if item.CurrencyEffect > 0 {
		a.TotalRevenue += item.CurrencyEffect
	} else {
		a.TotalCost -= item.CurrencyEffect
	}
	a.TotalSalesVolume += item.SalesVolume
	a.SatisfactionChange += item.SatisfactionChange
	a.ReputationChange += item.ReputationChange

	if isStockingEvent {
		a.StockingItems = append(a.StockingItems, item)
	} else {
		a.Events = append(a.Events, item)
	}
	return nil
}

// QualifyingEvents is the number of non-stocking events recorded
func (a *Accumulator) QualifyingEvents() int {
	return len(a.Events)
}

// Generate snapshots the accumulator into history and resets it.
// It is idempotent per round number: when history already holds the round,
// nothing is appended and the existing report is returned with created=false.
func (a *Accumulator) Generate(h *History, now time.Time) (RoundReport, bool) {
	if existing, ok := h.Find(a.RoundNumber); ok {
		a.reset()
		return existing, false
	}

	stockingCost := 0
	for _, s := range a.StockingItems {
		stockingCost += s.Cost
	}
	events := make([]LineItem, len(a.Events))
	copy(events, a.Events)

	r := RoundReport{
		RoundNumber:        a.RoundNumber,
		RegionType:         a.RegionType,
		District:           a.District,
		RentPaid:           a.RentPaid,
		Events:             events,
		StockingCost:       stockingCost,
		TotalRevenue:       a.TotalRevenue,
		TotalCost:          a.TotalCost,
		TotalSalesVolume:   a.TotalSalesVolume,
		SatisfactionChange: a.SatisfactionChange,
		ReputationChange:   a.ReputationChange,
		GeneratedAt:        now,
	}
	h.append(r)
	a.reset()
	return r, true
}

// NeedsRepair reports the drift condition: the threshold was reached but no
// report exists for the accumulator's round.
func (a *Accumulator) NeedsRepair(h *History, threshold int) bool {
	return a.RoundNumber > 0 && a.QualifyingEvents() >= threshold && !h.Has(a.RoundNumber)
}

// Repair forces generation when NeedsRepair holds
func (a *Accumulator) Repair(h *History, threshold int, now time.Time) (RoundReport, bool) {
	if !a.NeedsRepair(h, threshold) {
		return RoundReport{}, false
	}
	return a.Generate(h, now)
}

func (a *Accumulator) reset() {
	*a = Accumulator{}
}
