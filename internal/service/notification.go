package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Push(ctx context.Context, userID, kind, message string) (*model.Notification, error) {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	err := s.repo.Create(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	return s.repo.ByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	list, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
