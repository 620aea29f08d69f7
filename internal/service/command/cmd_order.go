package command

import (
	"context"
	"errors"

	"github.com/sandevgo/shopdesk/internal/core"
)

// OrderCommand looks an order up directly, without a round trip to the assistant.
type OrderCommand struct {
	orders    core.OrderRepository
	formatter *ResponseFormatter
}

func NewOrderCommand(orders core.OrderRepository) *OrderCommand {
	return &OrderCommand{
		orders:    orders,
		formatter: NewResponseFormatter(),
	}
}

func (c *OrderCommand) Name() string {
	return "order"
}

func (c *OrderCommand) Description() string {
	return "Check an order status by id"
}

func (c *OrderCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 1 {
		return "", &UsageError{Usage: "/order [order id]"}
	}

	status, err := c.orders.Lookup(ctx, args[0])
	if errors.Is(err, core.ErrInvalidIdentifier) {
		return c.formatter.Combine(
			c.formatter.Error("order", err),
			c.formatter.Tip("Order ids are numbers, for example `/order 42`"),
		), nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}
