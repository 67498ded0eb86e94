package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
)

type notificationKey struct {
	orderID  string
	kind     model.NotificationType
	audience model.NotificationAudience
}

// notificationStore implements outbound.NotificationDatabasePort.
type notificationStore struct {
	mu   sync.Mutex
	rows map[notificationKey]model.Notification
	seq  []notificationKey
}

// NewNotificationStore creates an empty in-memory notification store.
func NewNotificationStore() outbound.NotificationDatabasePort {
	return &notificationStore{rows: make(map[notificationKey]model.Notification)}
}

func (s *notificationStore) CreateCustomerNotification(ctx context.Context, n *model.Notification) (bool, error) {
	return s.insert(ctx, n)
}

func (s *notificationStore) CreateCollectiveAdminNotification(ctx context.Context, n *model.Notification) (bool, error) {
	return s.insert(ctx, n)
}

func (s *notificationStore) insert(ctx context.Context, n *model.Notification) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := notificationKey{orderID: n.OrderID, kind: n.Type, audience: n.Audience}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.rows[key] = copyNotification(n)
	s.seq = append(s.seq, key)
	return true, nil
}

func (s *notificationStore) ListByOrderID(ctx context.Context, orderID string, page *model.PaginationRequest) ([]*model.Notification, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	var matched []*model.Notification
	for _, key := range s.seq {
		if key.orderID != orderID {
			continue
		}
		row := s.rows[key]
		cp := copyNotification(&row)
		matched = append(matched, &cp)
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if page == nil {
		return matched, total, nil
	}
	start := page.Offset()
	if start >= len(matched) {
		return []*model.Notification{}, total, nil
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func copyNotification(n *model.Notification) model.Notification {
	out := *n
	if n.UserID != nil {
		uid := *n.UserID
		out.UserID = &uid
	}
	if n.AdminUserIDs != nil {
		out.AdminUserIDs = append(model.StringSet{}, n.AdminUserIDs...)
	}
	return out
}

// Compile-time check
var _ outbound.NotificationDatabasePort = (*notificationStore)(nil)
