package services

import (
	"notification-center/internal/models"
	"notification-center/internal/repositories"
)

// FanoutService turns one notifiable event into a persisted notification plus
// per-recipient viewer rows
type FanoutService struct {
	resolver               *RecipientResolver
	notificationRepository repositories.NotificationRepository
}

// NewFanoutService creates a new FanoutService
func NewFanoutService(resolver *RecipientResolver, notifRepo repositories.NotificationRepository) *FanoutService {
	return &FanoutService{
		resolver:               resolver,
		notificationRepository: notifRepo,
	}
}

// CreateAndNotify resolves the recipients, persists the notification and fans
// it out. When nobody would see the notification, nothing is written and
// (nil, nil) is returned.
func (s *FanoutService) CreateAndNotify(notifiable models.Notifiable) (*models.Notification, error) {
	userIDs, err := s.resolver.Resolve(notifiable)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	var resourceID *uint
	if resource := notifiable.Resource(); resource != nil {
		id := resource.ID
		resourceID = &id
	}

	notification, err := s.notificationRepository.CreateNotification(
		notifiable.ActionKey(),
		notifiable.IconKey(),
		resourceID,
		notifiable.Details(),
		notifiable.Doer(),
	)
	if err != nil {
		return nil, err
	}

	return s.notificationRepository.NotifyUsers(notification, userIDs)
}
