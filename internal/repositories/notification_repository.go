package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zakup_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Константы типов уведомлений
const (
	NotificationTypeNewBid         = "new_bid"
	NotificationTypeBidWithdrawn   = "bid_withdrawn"
	NotificationTypeRFQClosed      = "rfq_closed"
	NotificationTypeEvaluationDone = "evaluation_done"
	NotificationTypeBidAwarded     = "bid_awarded"
	NotificationTypeBidShortlisted = "bid_shortlisted"
	NotificationTypeBidRejected    = "bid_rejected"
)

type NotificationRepository interface {
	// Notification operations
	CreateNotification(notification *models.Notification) error
	CreateBulkNotifications(notifications []*models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(id string) error
	GetUnreadCount(userID string) (int64, error)
	CleanOldNotifications(days int) error

	// Factory methods for common notification types
	CreateNewBidNotification(buyerID, rfqID, bidID, supplierName string) error
	CreateRFQClosedNotification(buyerID, rfqID, rfqTitle string) error
	CreateEvaluationDoneNotification(buyerID, rfqID, evaluationID string, totalBids int) error
	CreateBidOutcomeNotification(supplierID, rfqTitle string, recommendation models.Recommendation) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// Search criteria for notifications
type NotificationCriteria struct {
	UnreadOnly bool      `form:"unread_only"`
	Type       string    `form:"type"`
	DateFrom   time.Time `form:"date_from"`
	DateTo     time.Time `form:"date_to"`
	Page       int       `form:"page" binding:"min=1"`
	PageSize   int       `form:"page_size" binding:"min=1,max=100"`
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Notification operations

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}

	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulkNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	for _, notification := range notifications {
		if err := r.validateNotification(notification); err != nil {
			return err
		}
	}

	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	// Apply filters
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	if !criteria.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", criteria.DateFrom)
	}

	if !criteria.DateTo.IsZero() {
		query = query.Where("created_at <= ?", criteria.DateTo)
	}

	// Get total count
	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	result := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})

	return result.Error
}

func (r *NotificationRepositoryImpl) DeleteNotification(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(days int) error {
	cutoffDate := time.Now().AddDate(0, 0, -days)
	return r.db.Where("created_at < ?", cutoffDate).Delete(&models.Notification{}).Error
}

// Factory methods for common notification types

func (r *NotificationRepositoryImpl) CreateNewBidNotification(buyerID, rfqID, bidID, supplierName string) error {
	data := map[string]interface{}{
		"rfq_id": rfqID,
		"bid_id": bidID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  buyerID,
		Type:    NotificationTypeNewBid,
		Title:   "Новое предложение",
		Message: fmt.Sprintf("Поставщик %s подал предложение на ваш запрос", supplierName),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(notification)
}

func (r *NotificationRepositoryImpl) CreateRFQClosedNotification(buyerID, rfqID, rfqTitle string) error {
	data := map[string]interface{}{"rfq_id": rfqID}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  buyerID,
		Type:    NotificationTypeRFQClosed,
		Title:   "Прием предложений завершен",
		Message: fmt.Sprintf("Срок подачи предложений по запросу '%s' истек", rfqTitle),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(notification)
}

func (r *NotificationRepositoryImpl) CreateEvaluationDoneNotification(buyerID, rfqID, evaluationID string, totalBids int) error {
	data := map[string]interface{}{
		"rfq_id":        rfqID,
		"evaluation_id": evaluationID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  buyerID,
		Type:    NotificationTypeEvaluationDone,
		Title:   "Оценка предложений завершена",
		Message: fmt.Sprintf("Оценено предложений: %d. Итоговый рейтинг готов.", totalBids),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(notification)
}

func (r *NotificationRepositoryImpl) CreateBidOutcomeNotification(supplierID, rfqTitle string, recommendation models.Recommendation) error {
	var notificationType, title, message string

	switch recommendation {
	case models.RecommendationAward:
		notificationType = NotificationTypeBidAwarded
		title = "Предложение рекомендовано к заключению"
		message = fmt.Sprintf("Ваше предложение по запросу '%s' рекомендовано к заключению договора", rfqTitle)
	case models.RecommendationShortlist:
		notificationType = NotificationTypeBidShortlisted
		title = "Предложение в коротком списке"
		message = fmt.Sprintf("Ваше предложение по запросу '%s' попало в короткий список", rfqTitle)
	case models.RecommendationReject:
		notificationType = NotificationTypeBidRejected
		title = "Предложение отклонено"
		message = fmt.Sprintf("Ваше предложение по запросу '%s' не прошло отбор", rfqTitle)
	default:
		return errors.New("unsupported recommendation for notification")
	}

	notification := &models.Notification{
		UserID:  supplierID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}

	return r.CreateNotification(notification)
}

// Helper methods

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}

	if notification.Type == "" {
		return errors.New("notification type is required")
	}

	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	// Validate notification type
	validTypes := map[string]bool{
		NotificationTypeNewBid:         true,
		NotificationTypeBidWithdrawn:   true,
		NotificationTypeRFQClosed:      true,
		NotificationTypeEvaluationDone: true,
		NotificationTypeBidAwarded:     true,
		NotificationTypeBidShortlisted: true,
		NotificationTypeBidRejected:    true,
	}

	if !validTypes[notification.Type] {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	// Validate JSON data if present
	if len(notification.Data) > 0 {
		if !json.Valid(notification.Data) {
			return ErrInvalidNotificationData
		}
	}

	return nil
}
