package webhook

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	t.Run("full payload with encoded additional_data", func(t *testing.T) {
		raw := []byte(`{
			"type": "payment",
			"uuid": "7f0d-11",
			"order_id": "ORD-1",
			"amount": "15.50",
			"currency": "usd",
			"status": "PAID",
			"is_final": true,
			"additional_data": "{\"user_id\":\"42\",\"game\":\"valorant\",\"service\":\"rank-boost\",\"customer_email\":\"a@b.c\"}"
		}`)

		ev, err := ParseEvent("cryptomus", raw)

		require.NoError(t, err)
		assert.Equal(t, "cryptomus", ev.Provider)
		assert.Equal(t, "7f0d-11", ev.UUID)
		assert.Equal(t, "ORD-1", ev.OrderID)
		assert.True(t, ev.Amount.Equal(decimal.RequireFromString("15.5")))
		assert.Equal(t, "USD", ev.Currency)
		assert.Equal(t, "paid", ev.Status)
		assert.True(t, ev.IsFinal)
		assert.Equal(t, "42", ev.Data.UserID)
		assert.Equal(t, "valorant", ev.Data.Game)
		assert.Equal(t, "rank-boost", ev.Data.Service)
		assert.Equal(t, "a@b.c", ev.Data.CustomerEmail)
		assert.False(t, ev.DataInvalid)
	})

	t.Run("object additional_data and numeric fields", func(t *testing.T) {
		raw := []byte(`{"order_id": 1001, "payment_amount": 20, "status": "paid", "is_final": "true",
			"additional_data": {"user_id": 7}}`)

		ev, err := ParseEvent("p", raw)

		require.NoError(t, err)
		assert.Equal(t, "1001", ev.OrderID)
		assert.Equal(t, "20", ev.Amount.String())
		assert.True(t, ev.IsFinal)
		assert.Equal(t, "7", ev.Data.UserID)
	})

	t.Run("amount preferred over payment_amount", func(t *testing.T) {
		ev, err := ParseEvent("p", []byte(`{"order_id":"o","amount":"5","payment_amount":"6","status":"paid"}`))
		require.NoError(t, err)
		assert.Equal(t, "5", ev.Amount.String())
	})

	t.Run("amount at the storage limit", func(t *testing.T) {
		ev, err := ParseEvent("p", []byte(`{"order_id":"o","amount":"999999999999.99999999","status":"paid"}`))
		require.NoError(t, err)
		assert.Equal(t, "999999999999.99999999", ev.Amount.String())

		ev, err = ParseEvent("p", []byte(`{"order_id":"o","amount":"10.500000000","status":"paid"}`))
		require.NoError(t, err)
		assert.Equal(t, "10.5", ev.Amount.String())
	})

	t.Run("unreadable additional_data is tolerated", func(t *testing.T) {
		ev, err := ParseEvent("p", []byte(`{"order_id":"o","amount":"5","status":"paid","additional_data":"{not json"}`))
		require.NoError(t, err)
		assert.True(t, ev.DataInvalid)
		assert.Empty(t, ev.Data.UserID)
	})

	malformed := map[string]string{
		"not json":           `{"order_id":`,
		"array body":         `[1,2]`,
		"missing order_id":   `{"amount":"5","status":"paid"}`,
		"missing status":     `{"order_id":"o","amount":"5"}`,
		"missing amount":     `{"order_id":"o","status":"paid"}`,
		"unparseable amount": `{"order_id":"o","amount":"ten","status":"paid"}`,
		"negative amount":    `{"order_id":"o","amount":"-1","status":"paid"}`,
		"exponent amount":    `{"order_id":"o","amount":"1e30","status":"paid"}`,
		"too many digits":    `{"order_id":"o","amount":"1000000000000","status":"paid"}`,
		"too many decimals":  `{"order_id":"o","amount":"0.000000001","status":"paid"}`,
		"long order_id":      `{"order_id":"` + strings.Repeat("x", 129) + `","amount":"1","status":"paid"}`,
		"bad is_final":       `{"order_id":"o","amount":"1","status":"paid","is_final":"maybe"}`,
		"object order_id":    `{"order_id":{"x":1},"amount":"1","status":"paid"}`,
		"null body":          `null`,
	}
	for name, raw := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEvent("p", []byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("uuid wins", func(t *testing.T) {
		ev := &Event{UUID: "u-1", OrderID: "o", Status: "paid", Amount: decimal.RequireFromString("1")}
		assert.Equal(t, "uuid:u-1", Fingerprint(ev))
	})

	t.Run("composite normalizes amount", func(t *testing.T) {
		a := &Event{OrderID: "o", Status: "paid", Amount: decimal.RequireFromString("10.50")}
		b := &Event{OrderID: "o", Status: "paid", Amount: decimal.RequireFromString("10.5")}
		assert.Equal(t, "composite:o:paid:10.5", Fingerprint(a))
		assert.Equal(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("fits the ledger column", func(t *testing.T) {
		raw := `{"order_id":"` + strings.Repeat("o", 128) + `","amount":"999999999999.99999999","status":"` +
			strings.Repeat("s", 64) + `"}`
		ev, err := ParseEvent("p", []byte(raw))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(Fingerprint(ev)), 512)
	})

	t.Run("composite distinguishes status", func(t *testing.T) {
		a := &Event{OrderID: "o", Status: "check", Amount: decimal.RequireFromString("1")}
		b := &Event{OrderID: "o", Status: "paid", Amount: decimal.RequireFromString("1")}
		assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	})
}
