package alert

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/boostpay/server/internal/port/outbound"
	"github.com/boostpay/server/internal/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAlerter_LogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	m := metrics.New("test", prometheus.NewRegistry())

	a := NewAlerter(zap.New(core), m, nil, "", 0)
	a.Alert(context.Background(), outbound.AlertLedgerUnavailable, map[string]string{"order_id": "ORD-1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "operator alert", entry.Message)
	assert.Equal(t, outbound.AlertLedgerUnavailable, entry.ContextMap()["alert"])
	assert.Equal(t, "ORD-1", entry.ContextMap()["order_id"])
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AlertsTotal.WithLabelValues(outbound.AlertLedgerUnavailable)))
}

func TestAlerter_PublishesToChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, "ops:alerts")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	a := NewAlerter(zap.NewNop(), nil, client, "ops:alerts", time.Second)
	a.Alert(canceled, outbound.AlertNotificationFailure, map[string]string{"order_id": "ORD-2"})

	select {
	case msg := <-sub.Channel():
		var got Message
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, outbound.AlertNotificationFailure, got.Kind)
		assert.Equal(t, "ORD-2", got.Fields["order_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("alert was not published")
	}
}
