package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

// eventFlowContext holds state for event flow scenarios
type eventFlowContext struct {
	flow     event.Flow
	err      error
	repaired bool
}

func (fc *eventFlowContext) reset() {
	fc.flow = event.Flow{}
	fc.err = nil
	fc.repaired = false
}

func parseStage(name string) (event.Stage, error) {
	for s := event.StageEconomicSignalReveal; s <= event.StageFeedback; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %s", name)
}

func (fc *eventFlowContext) theFlowOfEvent(eventID, regionType string, index int) error {
	fc.flow = event.Start(regionType, index, eventID)
	return nil
}

func (fc *eventFlowContext) theFlowOfEventAtStage(eventID, regionType string, index int, stage string) error {
	s, err := parseStage(stage)
	if err != nil {
		return err
	}
	fc.flow = event.Start(regionType, index, eventID)
	fc.flow.Stage = s
	return nil
}

func (fc *eventFlowContext) theFlowOfEventAtStageWithOption(eventID, regionType string, index int, stage, optionID string) error {
	if err := fc.theFlowOfEventAtStage(eventID, regionType, index, stage); err != nil {
		return err
	}
	fc.flow.SelectedOptionID = optionID
	return nil
}

func (fc *eventFlowContext) theDialogueAdvances() error {
	next, err := fc.flow.Advance()
	fc.err = err
	if err == nil {
		fc.flow = next
	}
	return nil
}

func (fc *eventFlowContext) optionIsChosen(optionID string) error {
	next, err := fc.flow.Choose(helpers.TestEvent(fc.flow.EventID, event.SignalNormal), optionID)
	fc.err = err
	if err == nil {
		fc.flow = next
	}
	return nil
}

func (fc *eventFlowContext) theFlowIsReconciled(eventID string, index int, regionType string) error {
	fc.flow, fc.repaired = fc.flow.Reconcile(regionType, index, helpers.TestEvent(eventID, event.SignalNormal))
	return nil
}

func (fc *eventFlowContext) theStageIs(stage string) error {
	if fc.flow.Stage.String() != stage {
		return fmt.Errorf("expected stage %s, got %s", stage, fc.flow.Stage)
	}
	return nil
}

func (fc *eventFlowContext) theFlowAwaitsADecision() error {
	if !fc.flow.AwaitingDecision() {
		return fmt.Errorf("flow is not awaiting a decision at %s", fc.flow.Stage)
	}
	return nil
}

func (fc *eventFlowContext) theFlowIsReadyToFinalizeWith(optionID string) error {
	if !fc.flow.ReadyToFinalize() {
		return fmt.Errorf("flow is not ready to finalize at %s", fc.flow.Stage)
	}
	if fc.flow.SelectedOptionID != optionID {
		return fmt.Errorf("expected option %s, got %s", optionID, fc.flow.SelectedOptionID)
	}
	return nil
}

func (fc *eventFlowContext) theTransitionIsRejected() error {
	var invalid *event.ErrInvalidTransition
	if !errors.As(fc.err, &invalid) {
		return fmt.Errorf("expected an invalid transition, got %v", fc.err)
	}
	return nil
}

func (fc *eventFlowContext) theChoiceFailsWithAnUnknownOption() error {
	if !errors.Is(fc.err, event.ErrUnknownOption) {
		return fmt.Errorf("expected unknown option, got %v", fc.err)
	}
	return nil
}

func (fc *eventFlowContext) theFlowWasRepaired() error {
	if !fc.repaired {
		return fmt.Errorf("expected the flow to be repaired")
	}
	return nil
}

func (fc *eventFlowContext) theFlowWasNotRepaired() error {
	if fc.repaired {
		return fmt.Errorf("expected the flow to be left alone")
	}
	return nil
}

func (fc *eventFlowContext) theFlowPointsAtEvent(eventID string) error {
	if fc.flow.EventID != eventID {
		return fmt.Errorf("expected event %s, got %s", eventID, fc.flow.EventID)
	}
	return nil
}

// InitializeEventFlowScenario registers event flow steps
func InitializeEventFlowScenario(ctx *godog.ScenarioContext) {
	fc := &eventFlowContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	// Specific patterns first: godog uses the first matching step
	ctx.Step(`^the flow of event "([^"]*)" in region "([^"]*)" at index (\d+) at stage "([^"]*)" with option "([^"]*)"$`, fc.theFlowOfEventAtStageWithOption)
	ctx.Step(`^the flow of event "([^"]*)" in region "([^"]*)" at index (\d+) at stage "([^"]*)"$`, fc.theFlowOfEventAtStage)
	ctx.Step(`^the flow of event "([^"]*)" in region "([^"]*)" at index (\d+)$`, fc.theFlowOfEvent)

	ctx.Step(`^the dialogue advances$`, fc.theDialogueAdvances)
	ctx.Step(`^option "([^"]*)" is chosen$`, fc.optionIsChosen)
	ctx.Step(`^the flow is reconciled against event "([^"]*)" at index (\d+) in region "([^"]*)"$`, fc.theFlowIsReconciled)

	ctx.Step(`^the stage is "([^"]*)"$`, fc.theStageIs)
	ctx.Step(`^the flow awaits a decision$`, fc.theFlowAwaitsADecision)
	ctx.Step(`^the flow is ready to finalize with option "([^"]*)"$`, fc.theFlowIsReadyToFinalizeWith)
	ctx.Step(`^the transition is rejected$`, fc.theTransitionIsRejected)
	ctx.Step(`^the choice fails with an unknown option$`, fc.theChoiceFailsWithAnUnknownOption)
	ctx.Step(`^the flow was repaired$`, fc.theFlowWasRepaired)
	ctx.Step(`^the flow was not repaired$`, fc.theFlowWasNotRepaired)
	ctx.Step(`^the flow points at event "([^"]*)"$`, fc.theFlowPointsAtEvent)
}
