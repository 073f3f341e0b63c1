package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/bakerysim-go/internal/application/ledger/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/application/setup"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

// roundContext plays a session through the mediator against the shared database
type roundContext struct {
	mediator  mediator.Mediator
	repos     *helpers.TestRepositories
	clock     *shared.MockClock
	sessionID string
	err       error
	feedback  *game.FeedbackResult
}

func (rc *roundContext) reset() error {
	rc.mediator = nil
	rc.repos = nil
	rc.clock = shared.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	rc.sessionID = ""
	rc.err = nil
	rc.feedback = nil
	return helpers.TruncateAllTables()
}

// send dispatches a request, advancing the clock so ledger entries keep their order
func (rc *roundContext) send(request mediator.Request) (mediator.Response, error) {
	rc.clock.Advance(time.Second)
	return rc.mediator.Send(context.Background(), request)
}

func (rc *roundContext) aNewGame(sessionID, player string, eventsPerRound int) error {
	content, err := helpers.BuildTestContent(eventsPerRound)
	if err != nil {
		return err
	}
	settings := game.DefaultSettings()
	settings.EventsPerRound = eventsPerRound
	settings.OpponentCount = 0

	rc.repos = helpers.NewTestRepositories(helpers.SharedTestDB, content, settings, rc.clock)
	rc.mediator, err = setup.NewHandlerRegistry(rc.repos.Service, rc.repos.TransactionRepo, content, nil, rc.clock).
		CreateConfiguredMediator(mediator.ValidationMiddleware())
	if err != nil {
		return err
	}
	rc.sessionID = sessionID
	_, err = rc.send(&commands.StartGameCommand{SessionID: sessionID, PlayerName: player})
	return err
}

func (rc *roundContext) thePlayersCurrencyIsSetTo(amount int) error {
	_, err := rc.repos.Service.Mutate(context.Background(), rc.sessionID, func(s *game.Session) error {
		s.Resources.Currency = amount
		return nil
	})
	return err
}

func (rc *roundContext) thePlayerSelectsDistrict(district, regionType string) error {
	_, rc.err = rc.send(&commands.SelectRegionCommand{SessionID: rc.sessionID, RegionType: regionType, District: district})
	return nil
}

func (rc *roundContext) thePlayerStocks(qty int, productID string) error {
	_, rc.err = rc.send(&commands.PurchaseStockCommand{SessionID: rc.sessionID, Order: map[string]int{productID: qty}})
	return nil
}

// thePlayerPlaysTheCurrentEvent walks one event from its reveal to the confirmed feedback
func (rc *roundContext) thePlayerPlaysTheCurrentEvent(optionID string) error {
	if rc.err != nil {
		return fmt.Errorf("previous command failed: %w", rc.err)
	}
	for i := 0; i < 2; i++ {
		if _, err := rc.send(&commands.AdvanceDialogueCommand{SessionID: rc.sessionID}); err != nil {
			return err
		}
	}
	if _, err := rc.send(&commands.SelectOptionCommand{SessionID: rc.sessionID, OptionID: optionID}); err != nil {
		return err
	}
	return rc.thePlayerConfirmsTheFeedback()
}

func (rc *roundContext) thePlayerConfirmsTheFeedback() error {
	resp, err := rc.send(&commands.ConfirmFeedbackCommand{SessionID: rc.sessionID})
	if err != nil {
		return err
	}
	result := resp.(*commands.ConfirmFeedbackResponse).Result
	rc.feedback = &result
	return nil
}

func (rc *roundContext) thePlayerAcknowledgesTheReport() error {
	_, err := rc.send(&commands.AcknowledgeReportCommand{SessionID: rc.sessionID})
	return err
}

func (rc *roundContext) status() (game.Status, error) {
	resp, err := rc.mediator.Send(context.Background(), &gameQueries.GetRoundStatusQuery{SessionID: rc.sessionID})
	if err != nil {
		return game.Status{}, err
	}
	return resp.(*gameQueries.GetRoundStatusResponse).Status, nil
}

func (rc *roundContext) thePlayersCurrencyIs(amount int) error {
	st, err := rc.status()
	if err != nil {
		return err
	}
	if st.Resources.Currency != amount {
		return fmt.Errorf("expected currency %d, got %d", amount, st.Resources.Currency)
	}
	return nil
}

func (rc *roundContext) theRoundSignalIs(signal string) error {
	st, err := rc.status()
	if err != nil {
		return err
	}
	if string(st.Signal) != signal {
		return fmt.Errorf("expected signal %s, got %s", signal, st.Signal)
	}
	return nil
}

func (rc *roundContext) theCurrentRoundIs(n int) error {
	st, err := rc.status()
	if err != nil {
		return err
	}
	if st.Round != n {
		return fmt.Errorf("expected round %d, got %d", n, st.Round)
	}
	return nil
}

func (rc *roundContext) eventsOfTheRoundAreCompleted(n int) error {
	st, err := rc.status()
	if err != nil {
		return err
	}
	if st.EventsCompleted != n {
		return fmt.Errorf("expected %d completed events, got %d", n, st.EventsCompleted)
	}
	return nil
}

func (rc *roundContext) theCommandFailsWith(text string) error {
	if rc.err == nil {
		return fmt.Errorf("expected the command to fail with %q", text)
	}
	if !strings.Contains(rc.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got %v", text, rc.err)
	}
	return nil
}

func (rc *roundContext) reports() ([]gameReport, error) {
	resp, err := rc.mediator.Send(context.Background(), &gameQueries.GetReportHistoryQuery{SessionID: rc.sessionID})
	if err != nil {
		return nil, err
	}
	reports := resp.(*gameQueries.GetReportHistoryResponse).Reports
	out := make([]gameReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, gameReport{rent: r.RentPaid, stocking: r.StockingCost})
	}
	return out, nil
}

type gameReport struct {
	rent     int
	stocking int
}

func (rc *roundContext) theReportHistoryHolds(n int) error {
	reports, err := rc.reports()
	if err != nil {
		return err
	}
	if len(reports) != n {
		return fmt.Errorf("expected %d reports, got %d", n, len(reports))
	}
	return nil
}

func (rc *roundContext) theLatestReportShows(rent, stocking int) error {
	reports, err := rc.reports()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no reports")
	}
	latest := reports[len(reports)-1]
	if latest.rent != rent || latest.stocking != stocking {
		return fmt.Errorf("expected rent %d and stocking %d, got %d and %d", rent, stocking, latest.rent, latest.stocking)
	}
	return nil
}

func (rc *roundContext) theLastConfirmationWasNotApplied() error {
	if rc.feedback == nil {
		return fmt.Errorf("no feedback was confirmed")
	}
	if rc.feedback.Applied {
		return fmt.Errorf("expected the confirmation to be a no-op")
	}
	return nil
}

func (rc *roundContext) transactions(transactionType string) (int, error) {
	resp, err := rc.mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{
		SessionID: rc.sessionID,
		Type:      transactionType,
	})
	if err != nil {
		return 0, err
	}
	return resp.(*ledgerQueries.GetTransactionsResponse).Total, nil
}

func (rc *roundContext) theLedgerHoldsTransactions(n int) error {
	total, err := rc.transactions("")
	if err != nil {
		return err
	}
	if total != n {
		return fmt.Errorf("expected %d transactions, got %d", n, total)
	}
	return nil
}

func (rc *roundContext) theLedgerHoldsTransactionsOfType(n int, transactionType string) error {
	total, err := rc.transactions(transactionType)
	if err != nil {
		return err
	}
	if total != n {
		return fmt.Errorf("expected %d %s transactions, got %d", n, transactionType, total)
	}
	return nil
}

func (rc *roundContext) theProfitAndLossNetEqualsTheChangeInCurrency() error {
	resp, err := rc.mediator.Send(context.Background(), &ledgerQueries.GetProfitLossQuery{SessionID: rc.sessionID})
	if err != nil {
		return err
	}
	net := resp.(*ledgerQueries.GetProfitLossResponse).NetProfit
	st, err := rc.status()
	if err != nil {
		return err
	}
	if change := st.Resources.Currency - game.DefaultSettings().StartingCurrency; net != change {
		return fmt.Errorf("expected net %d to equal the currency change %d", net, change)
	}
	return nil
}

// InitializeRoundLifecycleScenario registers steps that play a session end to end
func InitializeRoundLifecycleScenario(ctx *godog.ScenarioContext) {
	rc := &roundContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, rc.reset()
	})

	ctx.Step(`^a new game "([^"]*)" for player "([^"]*)" with (\d+) events per round and no opponents$`, rc.aNewGame)
	ctx.Step(`^the player's currency is set to (\d+)$`, rc.thePlayersCurrencyIsSetTo)

	ctx.Step(`^the player selects district "([^"]*)" in "([^"]*)"$`, rc.thePlayerSelectsDistrict)
	ctx.Step(`^the player stocks (\d+) "([^"]*)"$`, rc.thePlayerStocks)
	ctx.Step(`^the player plays the current event choosing option "([^"]*)"$`, rc.thePlayerPlaysTheCurrentEvent)
	ctx.Step(`^the player confirms the feedback again$`, rc.thePlayerConfirmsTheFeedback)
	ctx.Step(`^the player acknowledges the report$`, rc.thePlayerAcknowledgesTheReport)

	ctx.Step(`^the player's currency is (\d+)$`, rc.thePlayersCurrencyIs)
	ctx.Step(`^the round signal is "([^"]*)"$`, rc.theRoundSignalIs)
	ctx.Step(`^the current round is (\d+)$`, rc.theCurrentRoundIs)
	ctx.Step(`^(\d+) events? of the round (?:is|are) completed$`, rc.eventsOfTheRoundAreCompleted)
	ctx.Step(`^the command fails with "([^"]*)"$`, rc.theCommandFailsWith)
	ctx.Step(`^the report history holds (\d+) reports?$`, rc.theReportHistoryHolds)
	ctx.Step(`^the latest report shows rent (\d+) and stocking cost (\d+)$`, rc.theLatestReportShows)
	ctx.Step(`^the last confirmation was not applied$`, rc.theLastConfirmationWasNotApplied)
	ctx.Step(`^the ledger holds (\d+) transactions$`, rc.theLedgerHoldsTransactions)
	ctx.Step(`^the ledger holds (\d+) "([^"]*)" transactions?$`, rc.theLedgerHoldsTransactionsOfType)
	ctx.Step(`^the profit and loss net equals the change in currency$`, rc.theProfitAndLossNetEqualsTheChangeInCurrency)
}
