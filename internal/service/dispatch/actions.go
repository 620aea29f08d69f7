package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/shopdesk/internal/core"
)

const (
	ActionAddContact       = "add_contact"
	ActionCheckOrderStatus = "check_order_status"
)

// Action is one of AddContact or CheckOrderStatus.
type Action interface {
	Name() string
	isAction()
}

type AddContact struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (AddContact) Name() string { return ActionAddContact }
func (AddContact) isAction()    {}

func (a AddContact) Record() core.ContactRecord {
	return core.ContactRecord{FullName: a.FullName, Email: a.Email, PhoneNumber: a.PhoneNumber}
}

type CheckOrderStatus struct {
	OrderID string `json:"order_id"`
}

func (CheckOrderStatus) Name() string { return ActionCheckOrderStatus }
func (CheckOrderStatus) isAction()    {}

// ParseAction decodes the JSON arguments of a tool call into its typed action.
func ParseAction(name string, args string) (Action, error) {
	switch name {
	case ActionAddContact:
		var a AddContact
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if err := requireFields(map[string]string{
			"full_name":    a.FullName,
			"email":        a.Email,
			"phone_number": a.PhoneNumber,
		}); err != nil {
			return nil, err
		}
		return a, nil

	case ActionCheckOrderStatus:
		var raw struct {
			OrderID json.RawMessage `json:"order_id"`
		}
		if err := decodeArgs(args, &raw); err != nil {
			return nil, err
		}
		id, err := scalarString(raw.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: order_id: %v", core.ErrInvalidArguments, err)
		}
		if err := requireFields(map[string]string{"order_id": id}); err != nil {
			return nil, err
		}
		return CheckOrderStatus{OrderID: id}, nil

	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedAction, name)
	}
}

func decodeArgs(args string, v any) error {
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)
	}
	return nil
}

func requireFields(fields map[string]string) error {
	var missing []string
	for _, key := range []string{"full_name", "email", "phone_number", "order_id"} {
		if v, ok := fields[key]; ok && strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", core.ErrInvalidArguments, strings.Join(missing, ", "))
	}
	return nil
}

// scalarString accepts a JSON string or number; models occasionally send ids unquoted.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number")
	}
	return n.String(), nil
}
