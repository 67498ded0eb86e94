package memory

import (
	"context"
	"sync"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
)

// idempotencyLedger implements outbound.IdempotencyLedgerPort.
type idempotencyLedger struct {
	mu      sync.Mutex
	records map[string]model.IdempotencyRecord
}

// NewIdempotencyLedger creates an empty in-memory ledger.
func NewIdempotencyLedger() outbound.IdempotencyLedgerPort {
	return &idempotencyLedger{records: make(map[string]model.IdempotencyRecord)}
}

func (l *idempotencyLedger) Record(ctx context.Context, record *model.IdempotencyRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.records[record.Fingerprint]; ok {
		return false, nil
	}
	l.records[record.Fingerprint] = *record
	return true, nil
}

// Compile-time check
var _ outbound.IdempotencyLedgerPort = (*idempotencyLedger)(nil)
