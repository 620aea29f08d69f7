package dispatch

import (
	"context"
	"fmt"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

type Dispatcher struct {
	contacts core.ContactRepository
	orders   core.OrderRepository
}

func NewDispatcher(contacts core.ContactRepository, orders core.OrderRepository) *Dispatcher {
	return &Dispatcher{
		contacts: contacts,
		orders:   orders,
	}
}

// Invoke parses and runs a named action. Unknown names yield empty text and ErrUnsupportedAction.
func (d *Dispatcher) Invoke(ctx context.Context, name, args string) (string, error) {
	action, err := ParseAction(name, args)
	if err != nil {
		return "", err
	}
	return d.Run(ctx, action)
}

func (d *Dispatcher) Run(ctx context.Context, action Action) (string, error) {
	switch a := action.(type) {
	case AddContact:
		return d.contacts.Add(ctx, a.Record())
	case CheckOrderStatus:
		return d.orders.Lookup(ctx, a.OrderID)
	default:
		return "", fmt.Errorf("%w: %T", core.ErrUnsupportedAction, action)
	}
}

// Execute runs calls in order and returns exactly one output per call.
// Failures become the output text so the run can continue.
func (d *Dispatcher) Execute(ctx context.Context, calls []core.ToolCall) []core.ToolOutput {
	logger := log.FromCtx(ctx)
	outputs := make([]core.ToolOutput, 0, len(calls))

	for _, tc := range calls {
		logger.Info().Str("tool", tc.Function.Name).Str("call_id", tc.ID).Msg("executing tool")

		res, err := d.Invoke(ctx, tc.Function.Name, tc.Function.Arguments)
		if err != nil {
			logger.Warn().Err(err).Str("tool", tc.Function.Name).Msg("tool call failed")
			res = fmt.Sprintf("Error: %v", err)
		}

		outputs = append(outputs, core.ToolOutput{
			ToolCallID: tc.ID,
			Output:     res,
		})
	}
	return outputs
}
