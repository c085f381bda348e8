package services

import (
	"zakup_backend/internal/email"
	"zakup_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	RFQService          RFQService
	BidService          BidService
	EvaluationService   EvaluationService
	NotificationService NotificationService
	DocumentService     DocumentService
	EmailService        email.Provider
	Storage             storage.Storage
}
