package memory

import (
	"context"
	"sort"

	"github.com/boostpay/server/internal/port/outbound"
)

// staticAdminRoster implements outbound.AdminRosterPort from a fixed list.
type staticAdminRoster struct {
	ids []string
}

// NewStaticAdminRoster creates a roster that always returns ids, de-duplicated and sorted.
func NewStaticAdminRoster(ids []string) outbound.AdminRosterPort {
	return &staticAdminRoster{ids: normalizeIDs(ids)}
}

func (r *staticAdminRoster) ListAdminUserIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out, nil
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Compile-time check
var _ outbound.AdminRosterPort = (*staticAdminRoster)(nil)
