package metrics

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// PrometheusMiddleware times every request and counts it by outcome. Install
// it outside the validation middleware so rejected requests are counted too.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.Observe(extractCommandName(request), outcomeOf(err), time.Since(start).Seconds())
		return response, err
	}
}

func outcomeOf(err error) string {
	var invalid validator.ValidationErrors
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &invalid):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

// extractCommandName returns the bare type name of a request,
// e.g. *commands.ConfirmFeedbackCommand → ConfirmFeedbackCommand
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
