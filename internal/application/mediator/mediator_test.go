package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

type pingCommand struct{ Value string }

type pongQuery struct{}

type echoHandler struct {
	calls int
}

func (h *echoHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	return request.(*pingCommand).Value, nil
}

func TestMediator_DispatchesByRequestType(t *testing.T) {
	m := mediator.NewMediator()
	handler := &echoHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RegistrationErrors(t *testing.T) {
	m := mediator.NewMediator()
	handler := &echoHandler{}

	assert.EqualError(t, m.Register(nil, handler), "request type cannot be nil")
	assert.EqualError(t, m.Register(reflect.TypeOf(&pingCommand{}), nil), "handler cannot be nil")

	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))
	err := mediator.RegisterHandler[*pingCommand](m, handler)
	assert.ErrorContains(t, err, "handler already registered")
}

func TestMediator_AcceptsHandlerFunc(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pongQuery](m, mediator.HandlerFunc(func(context.Context, mediator.Request) (mediator.Response, error) {
		return "pong", nil
	})))

	resp, err := m.Send(context.Background(), &pongQuery{})

	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
}

func TestMediator_SendErrors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.EqualError(t, err, "request cannot be nil")

	_, err = m.Send(context.Background(), &pongQuery{})
	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_FirstMiddlewareRunsOutermost(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &echoHandler{}))
	var trace []string
	tag := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			trace = append(trace, name+">")
			resp, err := next(ctx, request)
			trace = append(trace, "<"+name)
			return resp, err
		}
	}
	m.RegisterMiddleware(tag("logging"))
	m.RegisterMiddleware(tag("metrics"))

	// Act
	_, err := m.Send(context.Background(), &pingCommand{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"logging>", "metrics>", "<metrics", "<logging"}, trace)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	handler := &echoHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))
	denied := errors.New("denied")
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingCommand{})

	assert.ErrorIs(t, err, denied)
	assert.Zero(t, handler.calls)
}
