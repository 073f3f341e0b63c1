package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
)

// GetReportHistoryQuery asks for completed round reports; Round narrows to one
type GetReportHistoryQuery struct {
	SessionID string `validate:"required"`
	Round     *int
}

// GetReportHistoryResponse lists reports, oldest first
type GetReportHistoryResponse struct {
	Reports []report.RoundReport
}

// GetReportHistoryHandler handles the GetReportHistory query
type GetReportHistoryHandler struct {
	service *game.Service
}

// NewGetReportHistoryHandler creates a new GetReportHistoryHandler
func NewGetReportHistoryHandler(service *game.Service) *GetReportHistoryHandler {
	return &GetReportHistoryHandler{service: service}
}

// Handle executes the GetReportHistory query
func (h *GetReportHistoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetReportHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetReportHistoryQuery")
	}

	// Load runs the drift repair before the history is shown
	session, err := h.service.Load(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}

	if query.Round != nil {
		r, found := session.History.Find(*query.Round)
		if !found {
			return nil, fmt.Errorf("no report for round %d", *query.Round)
		}
		return &GetReportHistoryResponse{Reports: []report.RoundReport{r}}, nil
	}
	reports := make([]report.RoundReport, len(session.History.Reports))
	copy(reports, session.History.Reports)
	return &GetReportHistoryResponse{Reports: reports}, nil
}
