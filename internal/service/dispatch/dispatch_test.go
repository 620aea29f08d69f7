package dispatch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/storage/csvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *csvstore.ContactStore) {
	t.Helper()
	dir := t.TempDir()
	ordersPath := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(ordersPath, []byte("order_id,owner_name,status\n42,Jane Doe,Shipped\n"), 0644))

	contacts := csvstore.NewContactStore(filepath.Join(dir, "contacts.csv"))
	return NewDispatcher(contacts, csvstore.NewOrderStore(ordersPath)), contacts
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		args    string
		want    Action
		wantErr error
	}{
		{
			name:   "add contact",
			action: ActionAddContact,
			args:   `{"full_name":"Jane Doe","email":"jane@x.com","phone_number":"0501234567"}`,
			want:   AddContact{FullName: "Jane Doe", Email: "jane@x.com", PhoneNumber: "0501234567"},
		},
		{
			name:   "order id as string",
			action: ActionCheckOrderStatus,
			args:   `{"order_id":"007"}`,
			want:   CheckOrderStatus{OrderID: "007"},
		},
		{
			name:   "order id as number",
			action: ActionCheckOrderStatus,
			args:   `{"order_id":42}`,
			want:   CheckOrderStatus{OrderID: "42"},
		},
		{
			name:    "missing contact field",
			action:  ActionAddContact,
			args:    `{"full_name":"Jane Doe","email":"jane@x.com"}`,
			wantErr: core.ErrInvalidArguments,
		},
		{
			name:    "missing order id",
			action:  ActionCheckOrderStatus,
			args:    `{}`,
			wantErr: core.ErrInvalidArguments,
		},
		{
			name:    "order id wrong type",
			action:  ActionCheckOrderStatus,
			args:    `{"order_id":{"id":1}}`,
			wantErr: core.ErrInvalidArguments,
		},
		{
			name:    "malformed json",
			action:  ActionAddContact,
			args:    `{"full_name":`,
			wantErr: core.ErrInvalidArguments,
		},
		{
			name:    "unknown action",
			action:  "refund_order",
			args:    `{}`,
			wantErr: core.ErrUnsupportedAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.action, tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatcher_Invoke(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	got, err := d.Invoke(ctx, ActionCheckOrderStatus, `{"order_id":"42"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hi Jane Doe, your order is currently Shipped", got)

	got, err = d.Invoke(ctx, ActionAddContact, `{"full_name":"Jane Doe","email":"jane@x.com","phone_number":"0501234567"}`)
	require.NoError(t, err)
	assert.Equal(t, csvstore.ContactRegisteredMsg, got)
}

func TestDispatcher_Invoke_InvalidOrderID(t *testing.T) {
	d, _ := newTestDispatcher(t)

	got, err := d.Invoke(context.Background(), ActionCheckOrderStatus, `{"order_id":"abc"}`)
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)
	assert.Empty(t, got)
}

func TestDispatcher_Invoke_UnsupportedActionHasNoSideEffects(t *testing.T) {
	d, contacts := newTestDispatcher(t)
	ctx := context.Background()

	got, err := d.Invoke(ctx, "delete_contact", `{"full_name":"Jane Doe","email":"jane@x.com","phone_number":"0501234567"}`)
	assert.ErrorIs(t, err, core.ErrUnsupportedAction)
	assert.Empty(t, got)

	rows, err := contacts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDispatcher_Execute_PreservesOrderAndIDs(t *testing.T) {
	d, _ := newTestDispatcher(t)

	calls := []core.ToolCall{
		{ID: "call_b", Type: "function", Function: core.FunctionCall{Name: ActionCheckOrderStatus, Arguments: `{"order_id":"42"}`}},
		{ID: "call_a", Type: "function", Function: core.FunctionCall{Name: "unknown_tool", Arguments: `{}`}},
		{ID: "call_c", Type: "function", Function: core.FunctionCall{Name: ActionCheckOrderStatus, Arguments: `{"order_id":"x"}`}},
	}

	outputs := d.Execute(context.Background(), calls)
	require.Len(t, outputs, 3)

	assert.Equal(t, "call_b", outputs[0].ToolCallID)
	assert.Equal(t, "Hi Jane Doe, your order is currently Shipped", outputs[0].Output)

	assert.Equal(t, "call_a", outputs[1].ToolCallID)
	assert.Contains(t, outputs[1].Output, "unsupported action")

	assert.Equal(t, "call_c", outputs[2].ToolCallID)
	assert.Contains(t, outputs[2].Output, "invalid identifier")
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 2)

	wantRequired := map[string][]string{
		ActionAddContact:       {"full_name", "email", "phone_number"},
		ActionCheckOrderStatus: {"order_id"},
	}

	for _, def := range defs {
		assert.Equal(t, "function", def.Type)

		var schema struct {
			Type     string   `json:"type"`
			Required []string `json:"required"`
		}
		require.NoError(t, json.Unmarshal(def.Function.Parameters, &schema), def.Function.Name)
		assert.Equal(t, "object", schema.Type)
		assert.Equal(t, wantRequired[def.Function.Name], schema.Required)
	}
}
