package core

import (
	"encoding/json"
	"time"
)

const (
	DeskName      = "ShopDesk"
	DeskUserAgent = "ShopDesk-Support/0.1"
	DeskVersion   = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolOutput is the result of one tool call, matched back by ToolCallID.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

type Message struct {
	ID      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContactRecord is a human-callback request. Identity is the exact tuple of all three fields.
type ContactRecord struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type OrderRecord struct {
	OrderID   int64  `json:"order_id"`
	OwnerName string `json:"owner_name"`
	Status    string `json:"status"`
}

type Turn struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	ThreadID  string    `json:"thread_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
