package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
)

// AcknowledgeReportResponse carries the acknowledged report
type AcknowledgeReportResponse struct {
	Report report.RoundReport
	Status game.Status
}

// AcknowledgeReportCommand dismisses the round report
type AcknowledgeReportCommand struct {
	SessionID string `validate:"required"`
}

// AcknowledgeReportHandler handles the AcknowledgeReport command
type AcknowledgeReportHandler struct {
	service *game.Service
}

// NewAcknowledgeReportHandler creates a new AcknowledgeReportHandler
func NewAcknowledgeReportHandler(service *game.Service) *AcknowledgeReportHandler {
	return &AcknowledgeReportHandler{service: service}
}

// Handle executes the AcknowledgeReport command
func (h *AcknowledgeReportHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AcknowledgeReportCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcknowledgeReportCommand")
	}

	var resp AcknowledgeReportResponse
	session, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		resp.Report, err = s.AcknowledgeReport()
		return err
	})
	if err != nil {
		return nil, err
	}
	resp.Status = session.Status()
	return &resp, nil
}
