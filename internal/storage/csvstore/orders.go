package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

const OrderNotFoundMsg = "There are no such order id in our orders inventory, are you sure you got the right order id?"

var _ core.OrderRepository = (*OrderStore)(nil)

// OrderStore reads a CSV of [order_id, owner_name, status] rows provisioned out of band.
// The first row is a header and is skipped.
type OrderStore struct {
	path string
}

func NewOrderStore(path string) *OrderStore {
	return &OrderStore{path: path}
}

// Lookup renders the status message for orderID. Ids compare by numeric value.
func (s *OrderStore) Lookup(ctx context.Context, orderID string) (string, error) {
	id, err := ParseOrderID(orderID)
	if err != nil {
		return "", err
	}

	order, err := s.Find(ctx, id)
	if errors.Is(err, core.ErrOrderNotFound) {
		return OrderNotFoundMsg, nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Hi %s, your order is currently %s", order.OwnerName, order.Status), nil
}

// Find scans the file for id. A missing file behaves like an empty one.
func (s *OrderStore) Find(ctx context.Context, id int64) (core.OrderRecord, error) {
	logger := log.FromCtx(ctx)

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("path", s.path).Msg("orders file does not exist")
			return core.OrderRecord{}, core.ErrOrderNotFound
		}
		return core.OrderRecord{}, fmt.Errorf("failed to open orders file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return core.OrderRecord{}, core.ErrOrderNotFound
		}
		return core.OrderRecord{}, fmt.Errorf("failed to read orders header: %w", err)
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return core.OrderRecord{}, fmt.Errorf("failed to read orders file: %w", err)
		}
		if len(row) < 3 {
			logger.Warn().Int("line", line).Msg("skipping short order row")
			continue
		}

		rowID, err := ParseOrderID(row[0])
		if err != nil {
			logger.Warn().Int("line", line).Str("order_id", row[0]).Msg("skipping order row with invalid id")
			continue
		}

		if rowID == id {
			return core.OrderRecord{OrderID: rowID, OwnerName: row[1], Status: row[2]}, nil
		}
	}

	return core.OrderRecord{}, core.ErrOrderNotFound
}

// ParseOrderID converts an order id to its numeric value, so "007" and "7" are equal.
func ParseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: order id %q is not a number", core.ErrInvalidIdentifier, raw)
	}
	return id, nil
}
