package services

import (
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/pkg/apperrors"
)

type NotificationService interface {
	ListNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	DeleteNotification(userID, notificationID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// ListNotifications - страница уведомлений пользователя
func (s *NotificationServiceImpl) ListNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	dtos := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		dtos[i] = dto.NotificationFromModel(&notifications[i])
	}

	return &dto.NotificationListResponse{
		Notifications: dtos,
		Total:         total,
		UnreadCount:   unread,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

// MarkAsRead - пометить уведомление прочитанным
func (s *NotificationServiceImpl) MarkAsRead(userID, notificationID string) error {
	notification, err := s.findOwnNotification(userID, notificationID)
	if err != nil {
		return err
	}

	if notification.IsRead {
		return nil
	}

	return s.notificationRepo.MarkAsRead(notificationID)
}

// MarkAllAsRead - пометить все уведомления прочитанными
func (s *NotificationServiceImpl) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

// GetUnreadCount - количество непрочитанных
func (s *NotificationServiceImpl) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// DeleteNotification - удаление уведомления владельцем
func (s *NotificationServiceImpl) DeleteNotification(userID, notificationID string) error {
	if _, err := s.findOwnNotification(userID, notificationID); err != nil {
		return err
	}

	return s.notificationRepo.DeleteNotification(notificationID)
}

func (s *NotificationServiceImpl) findOwnNotification(userID, notificationID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if notification.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return notification, nil
}
