package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Amounts are stored as numeric(20,8).
const amountScale = 8

var amountLimit = decimal.New(1, 20-amountScale)

// flexString decodes a JSON string or number into its textual form.
// Providers send ids and amounts either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexBool decodes true/false given as a JSON bool, string or 0/1.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %s", b)
	}
	*f = flexBool(v)
	return nil
}

// payload is the provider callback body as sent on the wire.
type payload struct {
	Type           string          `json:"type"`
	UUID           flexString      `json:"uuid"`
	OrderID        flexString      `json:"order_id"`
	Amount         flexString      `json:"amount"`
	PaymentAmount  flexString      `json:"payment_amount"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	IsFinal        flexBool        `json:"is_final"`
	AdditionalData json.RawMessage `json:"additional_data"`
}

// AdditionalData is the merchant data echoed back by the provider.
type AdditionalData struct {
	UserID        string `json:"-"`
	Game          string `json:"game"`
	Service       string `json:"service"`
	CustomerEmail string `json:"customer_email"`
}

// Event is a parsed and validated provider callback.
type Event struct {
	Provider string          `validate:"required"`
	Type     string          `validate:"max=64"`
	UUID     string          `validate:"max=128"`
	OrderID  string          `validate:"required,max=128"`
	Amount   decimal.Decimal `validate:"-"`
	Currency string          `validate:"max=16"`
	Status   string          `validate:"required,max=64"`
	IsFinal  bool
	Data     AdditionalData `validate:"-"`
	// DataInvalid is set when additional_data was present but unreadable.
	DataInvalid bool
}

// ParseEvent decodes and validates a raw callback body.
func ParseEvent(provider string, raw []byte) (*Event, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	amountText := string(p.Amount)
	if amountText == "" {
		amountText = string(p.PaymentAmount)
	}
	if amountText == "" {
		return nil, fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amountText, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("negative amount %s", amount)
	}
	if amount.GreaterThanOrEqual(amountLimit) {
		return nil, fmt.Errorf("amount %q out of range", amountText)
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amountText, amountScale)
	}

	ev := &Event{
		Provider: provider,
		Type:     strings.TrimSpace(p.Type),
		UUID:     string(p.UUID),
		OrderID:  string(p.OrderID),
		Amount:   amount,
		Currency: strings.ToUpper(strings.TrimSpace(p.Currency)),
		Status:   strings.ToLower(strings.TrimSpace(p.Status)),
		IsFinal:  bool(p.IsFinal),
	}

	data, err := parseAdditionalData(p.AdditionalData)
	if err != nil {
		ev.DataInvalid = true
	} else {
		ev.Data = data
	}

	if err := validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return ev, nil
}

// parseAdditionalData accepts either a JSON object or a string holding one.
func parseAdditionalData(raw json.RawMessage) (AdditionalData, error) {
	var out AdditionalData
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return out, err
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			return out, nil
		}
		raw = json.RawMessage(encoded)
	}

	var wire struct {
		UserID        flexString `json:"user_id"`
		Game          string     `json:"game"`
		Service       string     `json:"service"`
		CustomerEmail string     `json:"customer_email"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return out, err
	}

	out.UserID = string(wire.UserID)
	out.Game = strings.TrimSpace(wire.Game)
	out.Service = strings.TrimSpace(wire.Service)
	out.CustomerEmail = strings.TrimSpace(wire.CustomerEmail)
	return out, nil
}
