package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"gorm.io/gorm"
)

// adminRosterAdapter implements outbound.AdminRosterPort.
type adminRosterAdapter struct {
	db     *gorm.DB
	extras []string
}

// NewAdminRosterAdapter creates a roster backed by the users table.
// extras are configured admin ids that are always included.
func NewAdminRosterAdapter(db *gorm.DB, extras []string) outbound.AdminRosterPort {
	return &adminRosterAdapter{db: db, extras: extras}
}

func (a *adminRosterAdapter) ListAdminUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := a.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ? AND status = ? AND deleted_at IS NULL", true, model.UserStatusActive).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}

	seen := make(map[string]struct{}, len(ids)+len(a.extras))
	out := make([]string, 0, len(ids)+len(a.extras))
	for _, id := range append(ids, a.extras...) {
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
	return out, nil
}

// Compile-time check
var _ outbound.AdminRosterPort = (*adminRosterAdapter)(nil)
