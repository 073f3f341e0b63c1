package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

type pingCommand struct {
	Name string `validate:"required"`
}

type pingHandler struct {
	calls int
}

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	return "pong " + request.(*pingCommand).Name, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	h := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, h))

	resp, err := m.Send(context.Background(), &pingCommand{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "pong a", resp)
	assert.Equal(t, 1, h.calls)
}

func TestMediator_RegisterErrors(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingCommand{}), &pingHandler{}))

	assert.Error(t, m.Register(reflect.TypeOf(&pingCommand{}), &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(pingCommand{}), nil))
}

func TestMediator_SendErrors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &pingCommand{Name: "a"})
	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+">")
			resp, err := next(ctx, request)
			order = append(order, "<"+name)
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	_, err := m.Send(context.Background(), &pingCommand{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "<inner", "<outer"}, order)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	h := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, h))

	denied := errors.New("denied")
	m.Use(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingCommand{Name: "a"})
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, 0, h.calls)
}

func TestValidationMiddleware(t *testing.T) {
	m := mediator.NewMediator()
	h := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, h))
	m.Use(mediator.ValidationMiddleware())

	_, err := m.Send(context.Background(), &pingCommand{})
	assert.ErrorContains(t, err, "invalid *mediator_test.pingCommand")
	assert.Equal(t, 0, h.calls)

	_, err = m.Send(context.Background(), &pingCommand{Name: "ok"})
	assert.NoError(t, err)
}
