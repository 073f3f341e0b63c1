package game

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// RegionSelection is the result of SelectRegion
type RegionSelection struct {
	RegionType  string
	District    string
	Coefficient float64
	Rent        int
	Currency    int
	Opponents   map[string]opponent.RegionDecision
}

// StockPurchase is the result of PurchaseStock
type StockPurchase struct {
	Quantities map[string]int
	Cost       int
	Currency   int
	Opponents  map[string]opponent.StockDecision
}

// SelectRegion opens the round in a region and district and pays the base rent.
// Insufficient funds decline the action without changing any state.
func (s *Session) SelectRegion(regionType, district string) (RegionSelection, error) {
	s.EnsureReportConsistency()

	if s.Round.HasRegion() {
		return RegionSelection{}, round.ErrRegionAlreadySelected
	}
	coefficient, err := s.content.Regions.Coefficient(regionType, district)
	if err != nil {
		return RegionSelection{}, err
	}
	rent, err := s.content.Regions.BaseRent(regionType)
	if err != nil {
		return RegionSelection{}, err
	}

	before := s.Resources.Currency
	if err := s.Resources.Debit(shared.FundsPurposeRent, rent); err != nil {
		return RegionSelection{}, err
	}
	if err := s.Round.SelectRegion(regionType, district, coefficient); err != nil {
		s.Resources.Currency = before
		return RegionSelection{}, err
	}

	s.Inventory.Reset()
	s.Flow = nil
	s.LastFinalized = nil
	s.Report.SetRegionInfo(s.Round.CurrentRound, regionType, district, rent)
	s.post(Posting{
		Round:             s.Round.CurrentRound,
		Type:              ledger.TransactionTypeRentPayment,
		Amount:            -rent,
		BalanceBefore:     before,
		BalanceAfter:      s.Resources.Currency,
		Description:       fmt.Sprintf("Rent for %s / %s", regionType, district),
		RelatedEntityType: "region",
		RelatedEntityID:   regionType,
	})

	result := RegionSelection{
		RegionType:  regionType,
		District:    district,
		Coefficient: coefficient,
		Rent:        rent,
		Currency:    s.Resources.Currency,
		Opponents:   make(map[string]opponent.RegionDecision, len(s.Opponents)),
	}
	for _, o := range s.Opponents {
		decision, err := s.simulator.SelectRegion(o)
		if err != nil {
			s.note(logging.LevelWarning, "opponent region selection failed", map[string]interface{}{
				"opponent": o.ID,
				"error":    err.Error(),
			})
			continue
		}
		if decision.SatOut {
			s.note(logging.LevelInfo, "opponent cannot afford any region and sits out the round", map[string]interface{}{
				"opponent": o.ID,
				"currency": o.Resources.Currency,
			})
		}
		result.Opponents[o.ID] = decision
	}
	return result, nil
}

// PurchaseStock buys the round's inventory (product ID → units) and passes the stock gate
func (s *Session) PurchaseStock(order map[string]int) (StockPurchase, error) {
	if err := s.Round.CanStock(); err != nil {
		return StockPurchase{}, err
	}

	units := 0
	for _, qty := range order {
		if qty < 0 {
			return StockPurchase{}, shared.NewValidationError("quantity", "cannot be negative")
		}
		units += qty
	}
	if units == 0 {
		return StockPurchase{}, ErrEmptyOrder
	}
	cost, err := s.content.Catalog.OrderCost(order)
	if err != nil {
		return StockPurchase{}, err
	}

	before := s.Resources.Currency
	if err := s.Resources.Debit(shared.FundsPurposeStock, cost); err != nil {
		return StockPurchase{}, err
	}
	for id, qty := range order {
		if err := s.Inventory.Restock(id, qty); err != nil {
			return StockPurchase{}, err
		}
	}
	if err := s.Round.MarkStocked(); err != nil {
		return StockPurchase{}, err
	}

	if !s.Report.HasRegionInfo() {
		s.restoreRegionInfo()
	}
	if err := s.Report.RecordEvent(report.LineItem{
		Title:      "Stocking",
		Cost:       cost,
		RecordedAt: s.clock.Now(),
	}, true); err != nil {
		return StockPurchase{}, err
	}
	s.post(Posting{
		Round:             s.Round.CurrentRound,
		Type:              ledger.TransactionTypeStockPurchase,
		Amount:            -cost,
		BalanceBefore:     before,
		BalanceAfter:      s.Resources.Currency,
		Description:       fmt.Sprintf("Stock purchase of %d units", units),
		RelatedEntityType: "stock",
		RelatedEntityID:   fmt.Sprintf("round-%d", s.Round.CurrentRound),
	})

	result := StockPurchase{
		Quantities: s.Inventory.Snapshot(),
		Cost:       cost,
		Currency:   s.Resources.Currency,
		Opponents:  make(map[string]opponent.StockDecision, len(s.Opponents)),
	}
	for _, o := range s.Opponents {
		if !o.Round.HasRegion() {
			continue
		}
		decision, err := s.simulator.Stock(o)
		if err != nil {
			s.note(logging.LevelWarning, "opponent stocking failed", map[string]interface{}{
				"opponent": o.ID,
				"error":    err.Error(),
			})
			continue
		}
		result.Opponents[o.ID] = decision
	}
	return result, nil
}

// AcknowledgeReport dismisses the round-complete signal and returns the report
func (s *Session) AcknowledgeReport() (report.RoundReport, error) {
	s.EnsureReportConsistency()

	if !s.Round.ReportPending {
		return report.RoundReport{}, ErrNoReportPending
	}
	s.Round.AcknowledgeReport()
	latest, _ := s.History.Latest()
	return latest, nil
}

// EnsureReportConsistency repairs drift between the round counters and the
// report aggregator. A round whose event count reached the threshold without
// a report gets exactly one report and is closed.
func (s *Session) EnsureReportConsistency() {
	threshold := s.settings.EventsPerRound
	stuck := s.Round.HasRegion() && s.Round.EventsCompleted >= threshold
	if !stuck && !s.Report.NeedsRepair(&s.History, threshold) {
		return
	}

	if stuck && s.Report.RoundNumber != s.Round.CurrentRound {
		s.restoreRegionInfo()
	}
	roundNumber := s.Report.RoundNumber
	s.note(logging.LevelWarning, "round report drift detected; forcing report generation", map[string]interface{}{
		"round":             roundNumber,
		"qualifying_events": s.Report.QualifyingEvents(),
		"events_completed":  s.Round.EventsCompleted,
	})

	s.Report.Generate(&s.History, s.clock.Now())
	if s.Round.CurrentRound == roundNumber {
		s.closeRound()
	}
	s.recovered = true
}

// restoreRegionInfo re-attributes the accumulator after it was lost; rent is unknown
func (s *Session) restoreRegionInfo() {
	s.Report.SetRegionInfo(s.Round.CurrentRound, s.Round.RegionType, s.Round.District, 0)
}

// closeRound moves every actor to the next round. The player's inventory is
// emptied; opponents keep theirs.
func (s *Session) closeRound() {
	s.Round.Advance()
	s.Inventory.Reset()
	s.Flow = nil
	for _, o := range s.Opponents {
		s.simulator.CompleteRound(o)
	}
}
