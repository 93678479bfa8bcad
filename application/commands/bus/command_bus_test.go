package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	Value string
	err   error
}

func (c testCommand) Validate() error { return c.err }

func TestSendDispatchesToRegisteredHandler(t *testing.T) {
	b := NewCommandBus()

	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) (interface{}, error) {
			return cmd.(testCommand).Value + "-handled", nil
		})))

	result, err := b.Send(context.Background(), testCommand{Value: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello-handled", result)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	b := NewCommandBus()
	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, nil
	})

	require.NoError(t, b.Register(testCommand{}, handler))
	assert.Error(t, b.Register(testCommand{}, handler))
}

func TestSendFailsValidationBeforeDispatch(t *testing.T) {
	b := NewCommandBus()

	called := false
	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) (interface{}, error) {
			called = true
			return nil, nil
		})))

	_, err := b.Send(context.Background(), testCommand{err: errors.New("bad input")})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, called)
}

func TestSendUnknownCommand(t *testing.T) {
	b := NewCommandBus()

	_, err := b.Send(context.Background(), testCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestMiddlewareWrapsOutermostFirst(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(mw("outer"), mw("inner"))
	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) (interface{}, error) {
			order = append(order, "handler")
			return nil, nil
		})))

	_, err := b.Send(context.Background(), testCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
