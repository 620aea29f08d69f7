package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/service/dispatch"
	"github.com/sandevgo/shopdesk/internal/storage/csvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*client.Client, *csvstore.ContactStore) {
	t.Helper()
	dir := t.TempDir()
	ordersPath := filepath.Join(dir, "Orders_Info.csv")
	require.NoError(t, os.WriteFile(ordersPath, []byte("order_id,owner_name,status\n42,Jane Doe,Shipped\n"), 0644))

	contacts := csvstore.NewContactStore(filepath.Join(dir, "contacts.csv"))
	d := dispatch.NewDispatcher(contacts, csvstore.NewOrderStore(ordersPath))
	srv := NewServer(d, dispatch.Definitions(), nil, nil)

	c, err := client.NewInProcessClient(srv.MCP())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "desk-test", Version: core.DeskVersion}
	_, err = c.Initialize(ctx, req)
	require.NoError(t, err)

	return c, contacts
}

func call(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestServer_ListsSupportTools(t *testing.T) {
	c, _ := newTestClient(t)

	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{dispatch.ActionAddContact, dispatch.ActionCheckOrderStatus}, names)
}

func TestServer_CheckOrderStatus(t *testing.T) {
	c, _ := newTestClient(t)

	text, isErr := call(t, c, dispatch.ActionCheckOrderStatus, map[string]any{"order_id": "042"})
	assert.False(t, isErr)
	assert.Equal(t, "Hi Jane Doe, your order is currently Shipped", text)

	text, isErr = call(t, c, dispatch.ActionCheckOrderStatus, map[string]any{"order_id": "abc"})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid identifier")
}

func TestServer_AddContact(t *testing.T) {
	c, contacts := newTestClient(t)
	args := map[string]any{"full_name": "Jane Doe", "email": "jane@x.com", "phone_number": "0501234567"}

	text, isErr := call(t, c, dispatch.ActionAddContact, args)
	assert.False(t, isErr)
	assert.Equal(t, csvstore.ContactRegisteredMsg, text)

	text, _ = call(t, c, dispatch.ActionAddContact, args)
	assert.Equal(t, csvstore.ContactExistsMsg, text)

	rows, err := contacts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestServer_MissingArguments(t *testing.T) {
	c, contacts := newTestClient(t)

	text, isErr := call(t, c, dispatch.ActionAddContact, map[string]any{"full_name": "Jane Doe"})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid action arguments")

	rows, err := contacts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
