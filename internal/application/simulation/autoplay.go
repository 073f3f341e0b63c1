package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Strategy decides how the automated player answers decisions
type Strategy string

const (
	// StrategyCorrect always picks the option marked correct
	StrategyCorrect Strategy = "correct"
	// StrategyRandom picks uniformly among the options
	StrategyRandom Strategy = "random"
)

// ParseStrategy parses a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCorrect, StrategyRandom:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want correct or random)", s)
	}
}

// DefaultStockShare is the share of post-rent currency spent on stock
const DefaultStockShare = 0.4

// maxStepsPerRound bounds the command loop of one round
const maxStepsPerRound = 200

// AutoplayCommand plays whole rounds for the human player
type AutoplayCommand struct {
	SessionID  string   `validate:"required"`
	Rounds     int      `validate:"min=1,max=1000"`
	Strategy   Strategy `validate:"required,oneof=correct random"`
	StockShare float64  `validate:"gte=0,lte=1"`
}

// AutoplayResponse summarizes an automated run
type AutoplayResponse struct {
	RoundsPlayed   int
	Reports        []report.RoundReport
	TotalNetProfit int
	Final          game.Status
	StoppedReason  string
	Status         shared.LifecycleStatus
	Runtime        time.Duration
}

// AutoplayHandler drives a session through the same commands a player issues:
//
// For each round:
//  1. Acknowledge a pending report
//  2. Select the best affordable district (or a random one)
//  3. Stock an even mix of products with a share of the remaining currency
//  4. Walk every event through reveal, narrative, decision and feedback
type AutoplayHandler struct {
	mediator mediator.Mediator
	content  game.Content
	rng      shared.Random
	clock    shared.Clock
}

// NewAutoplayHandler creates a new autoplay handler
func NewAutoplayHandler(m mediator.Mediator, content game.Content, rng shared.Random, clock shared.Clock) *AutoplayHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AutoplayHandler{mediator: m, content: content, rng: rng, clock: clock}
}

// Handle executes the autoplay command
func (h *AutoplayHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AutoplayCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AutoplayCommand")
	}
	share := cmd.StockShare
	if share == 0 {
		share = DefaultStockShare
	}

	logger := logging.LoggerFromContext(ctx)
	result := &AutoplayResponse{Reports: []report.RoundReport{}}
	lifecycle := shared.NewLifecycle(h.clock)
	if err := lifecycle.Start(); err != nil {
		return nil, err
	}

	for result.RoundsPlayed < cmd.Rounds && !lifecycle.IsFinished() {
		roundReport, stopped, err := h.playRound(ctx, cmd, share)
		if err != nil {
			_ = lifecycle.Fail(err)
			logger.Log(logging.LevelError, "Autoplay failed", map[string]interface{}{
				"session_id": cmd.SessionID,
				"rounds":     result.RoundsPlayed,
				"error":      err.Error(),
			})
			return nil, fmt.Errorf("round %d: %w", result.RoundsPlayed+1, err)
		}
		if stopped != "" {
			_ = lifecycle.Stop(stopped)
			logger.Log(logging.LevelWarning, "Autoplay stopped early", map[string]interface{}{
				"session_id": cmd.SessionID,
				"reason":     stopped,
				"rounds":     result.RoundsPlayed,
			})
			break
		}
		result.RoundsPlayed++
		result.Reports = append(result.Reports, roundReport)
		result.TotalNetProfit += roundReport.NetProfit()
	}
	if !lifecycle.IsFinished() {
		_ = lifecycle.Complete()
	}

	status, err := h.status(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	result.Final = status
	result.StoppedReason = lifecycle.Reason()
	result.Status = lifecycle.Status()
	result.Runtime = lifecycle.Runtime()

	logger.Log(logging.LevelInfo, "Autoplay finished", map[string]interface{}{
		"session_id": cmd.SessionID,
		"status":     string(result.Status),
		"rounds":     result.RoundsPlayed,
		"net_profit": result.TotalNetProfit,
	})
	return result, nil
}

// playRound runs one round to completion. A non-empty reason means the
// player cannot continue (typically bankrupt).
func (h *AutoplayHandler) playRound(ctx context.Context, cmd *AutoplayCommand, share float64) (report.RoundReport, string, error) {
	for step := 0; step < maxStepsPerRound; step++ {
		status, err := h.status(ctx, cmd.SessionID)
		if err != nil {
			return report.RoundReport{}, "", err
		}

		switch status.Signal {
		case round.SignalRoundComplete:
			if _, err := h.mediator.Send(ctx, &commands.AcknowledgeReportCommand{SessionID: cmd.SessionID}); err != nil {
				return report.RoundReport{}, "", fmt.Errorf("failed to acknowledge report: %w", err)
			}

		case round.SignalRegionSelectionRequired:
			r, d, ok := h.pickDistrict(cmd.Strategy, status.Resources.Currency)
			if !ok {
				return report.RoundReport{}, "no affordable region", nil
			}
			if _, err := h.mediator.Send(ctx, &commands.SelectRegionCommand{
				SessionID:  cmd.SessionID,
				RegionType: r.Type,
				District:   d.Name,
			}); err != nil {
				return report.RoundReport{}, "", fmt.Errorf("failed to select region: %w", err)
			}

		case round.SignalStockingRequired:
			order := StockOrder(h.content.Catalog, status.Resources.Currency, share)
			if order == nil {
				return report.RoundReport{}, "cannot afford any stock", nil
			}
			if _, err := h.mediator.Send(ctx, &commands.PurchaseStockCommand{
				SessionID: cmd.SessionID,
				Order:     order,
			}); err != nil {
				return report.RoundReport{}, "", fmt.Errorf("failed to purchase stock: %w", err)
			}

		case round.SignalEventInProgress:
			done, roundReport, err := h.stepEvent(ctx, cmd)
			if err != nil {
				return report.RoundReport{}, "", err
			}
			if done {
				return roundReport, "", nil
			}

		default:
			return report.RoundReport{}, "", fmt.Errorf("unexpected round signal %s", status.Signal)
		}
	}
	return report.RoundReport{}, "", fmt.Errorf("round did not complete within %d steps", maxStepsPerRound)
}

// stepEvent moves the current event one stage forward
func (h *AutoplayHandler) stepEvent(ctx context.Context, cmd *AutoplayCommand) (bool, report.RoundReport, error) {
	resp, err := h.mediator.Send(ctx, &queries.GetCurrentEventQuery{SessionID: cmd.SessionID})
	if err != nil {
		return false, report.RoundReport{}, fmt.Errorf("failed to get current event: %w", err)
	}
	view := resp.(*queries.GetCurrentEventResponse).View

	switch view.Flow.Stage {
	case event.StageEconomicSignalReveal, event.StageNarrative:
		_, err = h.mediator.Send(ctx, &commands.AdvanceDialogueCommand{SessionID: cmd.SessionID})
		return false, report.RoundReport{}, err

	case event.StageDecision:
		_, err = h.mediator.Send(ctx, &commands.SelectOptionCommand{
			SessionID: cmd.SessionID,
			OptionID:  h.pickOption(cmd.Strategy, view.Event),
		})
		return false, report.RoundReport{}, err

	default:
		resp, err := h.mediator.Send(ctx, &commands.ConfirmFeedbackCommand{SessionID: cmd.SessionID})
		if err != nil {
			return false, report.RoundReport{}, fmt.Errorf("failed to confirm feedback: %w", err)
		}
		result := resp.(*commands.ConfirmFeedbackResponse).Result
		if result.RoundComplete && result.Report != nil {
			return true, *result.Report, nil
		}
		return false, report.RoundReport{}, nil
	}
}

func (h *AutoplayHandler) status(ctx context.Context, sessionID string) (game.Status, error) {
	resp, err := h.mediator.Send(ctx, &queries.GetRoundStatusQuery{SessionID: sessionID})
	if err != nil {
		return game.Status{}, fmt.Errorf("failed to get status: %w", err)
	}
	return resp.(*queries.GetRoundStatusResponse).Status, nil
}

// pickDistrict returns the highest-coefficient district among affordable
// regions, or a random affordable one for the random strategy
func (h *AutoplayHandler) pickDistrict(strategy Strategy, currency int) (region.Region, region.District, bool) {
	type candidate struct {
		region   region.Region
		district region.District
	}
	var candidates []candidate
	for _, r := range h.content.Regions.Regions() {
		if r.BaseRent > currency {
			continue
		}
		for _, d := range r.Districts {
			candidates = append(candidates, candidate{region: r, district: d})
		}
	}
	if len(candidates) == 0 {
		return region.Region{}, region.District{}, false
	}

	if strategy == StrategyRandom {
		c := candidates[h.rng.Intn(len(candidates))]
		return c.region, c.district, true
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.district.Coefficient > best.district.Coefficient {
			best = c
		}
	}
	return best.region, best.district, true
}

func (h *AutoplayHandler) pickOption(strategy Strategy, e event.Event) string {
	if strategy == StrategyCorrect {
		if o, ok := e.CorrectOption(); ok {
			return o.ID
		}
	}
	return e.Options[h.rng.Intn(len(e.Options))].ID
}

// StockOrder spreads share × currency evenly across the catalog: every
// product gets the same unit count. Returns nil when not even one unit of
// each product is affordable.
func StockOrder(c *catalog.Catalog, currency int, share float64) map[string]int {
	budget := int(float64(currency) * share)
	unitCost := 0
	for _, p := range c.Products() {
		unitCost += p.Cost
	}
	if unitCost == 0 || budget < unitCost {
		return nil
	}
	units := budget / unitCost
	order := make(map[string]int, c.Len())
	for _, p := range c.Products() {
		order[p.ID] = units
	}
	return order
}
