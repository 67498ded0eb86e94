package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusPaid, OrderStatusFailed, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusFailed, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPaid, OrderStatusPaid, false},
		{OrderStatusCompleted, OrderStatusPaid, false},
		{OrderStatusCompleted, OrderStatusFailed, false},
		{OrderStatusFailed, OrderStatusPaid, false},
		{OrderStatus("bogus"), OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusFailed.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusPaid.IsTerminal())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrder_OwnerID(t *testing.T) {
	uid := "user-1"
	empty := ""

	assert.Equal(t, "user-1", (&Order{UserID: &uid}).OwnerID())
	assert.True(t, (&Order{}).IsGuest())
	assert.True(t, (&Order{UserID: &empty}).IsGuest())
}

func TestStringSet_ValueScan(t *testing.T) {
	v, err := StringSet{"a1", "a2"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"a1","a2"}`, v)

	v, err = StringSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var s StringSet
	require.NoError(t, s.Scan(`{"a1","a2"}`))
	assert.Equal(t, StringSet{"a1", "a2"}, s)

	require.NoError(t, s.Scan([]byte("{}")))
	assert.Empty(t, s)
}

func TestNotificationData_ValueScan(t *testing.T) {
	in := NotificationData{OrderID: "o-1", Status: "paid", Amount: "10.5"}

	v, err := in.Value()
	require.NoError(t, err)

	var out NotificationData
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Equal(t, NotificationData{}, out)

	assert.Error(t, out.Scan(42))
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]int{1, 2}, 5, 1, 2)
	assert.Equal(t, 3, resp.TotalPages)

	empty := NewPaginatedResponse[int](nil, 0, 1, 20)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
}
