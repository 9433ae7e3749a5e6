package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ByUser(ctx context.Context, userID string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct {
	notifications *collection[model.Notification]
}

func NewNotificationRepository(store localstore.Store) NotificationRepository {
	return &notificationRepository{notifications: newCollection[model.Notification](store, KeyNotifications)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.notifications.mutate(ctx, func(all []*model.Notification) ([]*model.Notification, error) {
		return append(all, notification), nil
	})
}

// ByUser returns the user's notifications, newest first.
func (r *notificationRepository) ByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	all, err := r.notifications.all(ctx)
	if err != nil {
		return nil, err
	}

	var list []*model.Notification
	for _, n := range all {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	return r.notifications.mutate(ctx, func(all []*model.Notification) ([]*model.Notification, error) {
		for _, n := range all {
			if n.ID == notificationID && n.UserID == userID {
				n.Read = true
				return all, nil
			}
		}
		return nil, ErrNotificationNotFound
	})
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.notifications.mutate(ctx, func(all []*model.Notification) ([]*model.Notification, error) {
		for _, n := range all {
			if n.UserID == userID {
				n.Read = true
			}
		}
		return all, nil
	})
}
