package report

import (
	"errors"
	"time"
)

// ErrRegionInfoMissing is returned when recording before SetRegionInfo for the round
var ErrRegionInfoMissing = errors.New("region info must be set before recording events")

// LineItem is one recorded event (or stocking purchase) of a round
type LineItem struct {
	EventID            string    `json:"event_id,omitempty"`
	Title              string    `json:"title"`
	OptionID           string    `json:"option_id,omitempty"`
	Revenue            int       `json:"revenue"`
	Cost               int       `json:"cost"`
	CurrencyEffect     int       `json:"currency_effect"`
	SalesVolume        int       `json:"sales_volume"`
	SatisfactionChange int       `json:"satisfaction_change"`
	ReputationChange   int       `json:"reputation_change"`
	RecordedAt         time.Time `json:"recorded_at"`
}

// RoundReport is the immutable snapshot of one completed round
type RoundReport struct {
	RoundNumber        int        `json:"round_number"`
	RegionType         string     `json:"region_type"`
	District           string     `json:"district"`
	RentPaid           int        `json:"rent_paid"`
	Events             []LineItem `json:"events"`
	StockingCost       int        `json:"stocking_cost"`
	TotalRevenue       int        `json:"total_revenue"`
	TotalCost          int        `json:"total_cost"`
	TotalSalesVolume   int        `json:"total_sales_volume"`
	SatisfactionChange int        `json:"satisfaction_change"`
	ReputationChange   int        `json:"reputation_change"`
	GeneratedAt        time.Time  `json:"generated_at"`
}

// NetProfit is revenue minus cost minus rent
func (r RoundReport) NetProfit() int {
	return r.TotalRevenue - r.TotalCost - r.RentPaid
}

// History is the ordered list of round reports, at most one per round number
type History struct {
	Reports []RoundReport `json:"reports"`
}

// Has reports whether a report exists for the round
func (h *History) Has(roundNumber int) bool {
	_, ok := h.Find(roundNumber)
	return ok
}

// Find looks up the report of a round
func (h *History) Find(roundNumber int) (RoundReport, bool) {
	for _, r := range h.Reports {
		if r.RoundNumber == roundNumber {
			return r, true
		}
	}
	return RoundReport{}, false
}

// Latest returns the most recently appended report
func (h *History) Latest() (RoundReport, bool) {
	if len(h.Reports) == 0 {
		return RoundReport{}, false
	}
	return h.Reports[len(h.Reports)-1], true
}

// Len returns the number of reports
func (h *History) Len() int {
	return len(h.Reports)
}

func (h *History) append(r RoundReport) {
	h.Reports = append(h.Reports, r)
}
