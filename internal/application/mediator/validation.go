package mediator

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware rejects requests whose `validate` struct tags fail
func ValidationMiddleware() Middleware {
	validate := validator.New()
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		v := reflect.ValueOf(request)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		if v.Kind() == reflect.Struct {
			if err := validate.Struct(request); err != nil {
				return nil, fmt.Errorf("invalid %T: %w", request, err)
			}
		}
		return next(ctx, request)
	}
}
