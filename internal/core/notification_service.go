package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationService exposes the notification log to the back office.
// Entries are created by the order lifecycle, never directly.
type NotificationService interface {
	// List returns all entries, newest first.
	List(ctx context.Context) []Notification
	UnreadCount(ctx context.Context) int
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	engine *Engine
}

func NewNotificationService(engine *Engine) NotificationService {
	return &notificationService{engine: engine}
}

func (s *notificationService) List(ctx context.Context) []Notification {
	var out []Notification
	s.engine.View(func(st *State) {
		out = append(out, st.Notifications...)
	})
	return out
}

func (s *notificationService) UnreadCount(ctx context.Context) int {
	count := 0
	s.engine.View(func(st *State) {
		for _, n := range st.Notifications {
			if !n.IsRead {
				count++
			}
		}
	})
	return count
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Notifications {
			if st.Notifications[i].ID == id {
				st.Notifications[i].IsRead = true
				return []string{KeyNotifications}, nil
			}
		}
		return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
	})
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		touched := false
		for i := range st.Notifications {
			if !st.Notifications[i].IsRead {
				st.Notifications[i].IsRead = true
				touched = true
			}
		}
		if !touched {
			return nil, nil
		}
		return []string{KeyNotifications}, nil
	})
}

// pushNotification prepends an unread entry so the log stays newest first.
func (st *State) pushNotification(message, orderID string) {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		OrderID:   orderID,
		CreatedAt: time.Now().UTC(),
	}
	st.Notifications = append([]Notification{n}, st.Notifications...)
}

// purgeOrderNotifications drops every entry for the given order.
func (st *State) purgeOrderNotifications(orderID string) {
	kept := st.Notifications[:0]
	for _, n := range st.Notifications {
		if n.OrderID != orderID {
			kept = append(kept, n)
		}
	}
	st.Notifications = kept
}
