package setup

import (
	"reflect"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	gameCommands "github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/bakerysim-go/internal/application/ledger/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/application/simulation"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	service         *game.Service
	transactionRepo ledger.TransactionRepository
	content         game.Content
	rng             shared.Random
	clock           shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// transactionRepo may be nil, in which case ledger queries are not registered.
func NewHandlerRegistry(
	service *game.Service,
	transactionRepo ledger.TransactionRepository,
	content game.Content,
	rng shared.Random,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to a time-seeded source if not provided
	if rng == nil {
		rng = shared.NewRandom(0)
	}

	return &HandlerRegistry{
		service:         service,
		transactionRepo: transactionRepo,
		content:         content,
		rng:             rng,
		clock:           clock,
	}
}

// RegisterGameHandlers registers every game command and query handler
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		// Commands
		{&gameCommands.StartGameCommand{}, gameCommands.NewStartGameHandler(r.service)},
		{&gameCommands.ResetGameCommand{}, gameCommands.NewResetGameHandler(r.service)},
		{&gameCommands.SelectRegionCommand{}, gameCommands.NewSelectRegionHandler(r.service)},
		{&gameCommands.PurchaseStockCommand{}, gameCommands.NewPurchaseStockHandler(r.service)},
		{&gameCommands.AdvanceDialogueCommand{}, gameCommands.NewAdvanceDialogueHandler(r.service)},
		{&gameCommands.SelectOptionCommand{}, gameCommands.NewSelectOptionHandler(r.service)},
		{&gameCommands.ConfirmFeedbackCommand{}, gameCommands.NewConfirmFeedbackHandler(r.service)},
		{&gameCommands.AcknowledgeReportCommand{}, gameCommands.NewAcknowledgeReportHandler(r.service)},

		// Queries
		{&gameQueries.GetRoundStatusQuery{}, gameQueries.NewGetRoundStatusHandler(r.service)},
		{&gameQueries.GetCurrentEventQuery{}, gameQueries.NewGetCurrentEventHandler(r.service)},
		{&gameQueries.GetReportHistoryQuery{}, gameQueries.NewGetReportHistoryHandler(r.service)},
		{&gameQueries.GetLeaderboardQuery{}, gameQueries.NewGetLeaderboardHandler(r.service)},
		{&gameQueries.ListSessionsQuery{}, gameQueries.NewListSessionsHandler(r.service)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLedgerHandlers registers all ledger query handlers with the mediator
//
// This method registers:
//   - GetTransactionsQuery → GetTransactionsHandler (for transaction queries)
//   - GetProfitLossQuery → GetProfitLossHandler (for P&L reports)
//   - GetCashFlowQuery → GetCashFlowHandler (for per-round cash flow)
//
// Transactions themselves are written by the game service after each
// successful operation, not through the mediator.
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	// Register GetTransactionsQuery handler
	getTransactionsHandler := ledgerQueries.NewGetTransactionsHandler(r.transactionRepo)
	if err := m.Register(
		reflect.TypeOf(&ledgerQueries.GetTransactionsQuery{}),
		getTransactionsHandler,
	); err != nil {
		return err
	}

	// Register GetProfitLossQuery handler
	getProfitLossHandler := ledgerQueries.NewGetProfitLossHandler(r.transactionRepo)
	if err := m.Register(
		reflect.TypeOf(&ledgerQueries.GetProfitLossQuery{}),
		getProfitLossHandler,
	); err != nil {
		return err
	}

	// Register GetCashFlowQuery handler
	getCashFlowHandler := ledgerQueries.NewGetCashFlowHandler(r.transactionRepo)
	if err := m.Register(
		reflect.TypeOf(&ledgerQueries.GetCashFlowQuery{}),
		getCashFlowHandler,
	); err != nil {
		return err
	}

	return nil
}

// RegisterSimulationHandlers registers the autoplay workflow.
// It sends game commands through m, so game handlers must be registered too.
func (r *HandlerRegistry) RegisterSimulationHandlers(m mediator.Mediator) error {
	return mediator.RegisterHandler[*simulation.AutoplayCommand](m, simulation.NewAutoplayHandler(m, r.content, r.rng, r.clock))
}

// CreateConfiguredMediator creates a new mediator with every handler registered
// and the given middlewares installed (first runs outermost)
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := r.RegisterGameHandlers(m); err != nil {
		return nil, err
	}

	// Ledger queries need a transaction store
	if r.transactionRepo != nil {
		if err := r.RegisterLedgerHandlers(m); err != nil {
			return nil, err
		}
	}

	if err := r.RegisterSimulationHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
