package dispatch

import (
	"encoding/json"

	"github.com/sandevgo/shopdesk/internal/core"
)

const addContactSchema = `
{
  "type": "object",
  "properties": {
    "full_name": { "type": "string", "description": "The user's full name" },
    "email": { "type": "string", "description": "The user's email" },
    "phone_number": { "type": "string", "description": "The user's phone number" }
  },
  "required": ["full_name", "email", "phone_number"]
}
`

const checkOrderStatusSchema = `
{
  "type": "object",
  "properties": {
    "order_id": { "type": "string", "description": "The order id number" }
  },
  "required": ["order_id"]
}
`

// Definitions returns the function tools the assistant may call, in a stable order.
func Definitions() []core.Tool {
	return []core.Tool{
		{
			Type: "function",
			Function: core.Function{
				Name:        ActionAddContact,
				Description: "Add user's info to the CSV file",
				Parameters:  json.RawMessage(addContactSchema),
			},
		},
		{
			Type: "function",
			Function: core.Function{
				Name:        ActionCheckOrderStatus,
				Description: "Get the order status based on id from inventory",
				Parameters:  json.RawMessage(checkOrderStatusSchema),
			},
		},
	}
}
