package app

import (
	"zakup_backend/internal/email"
	"zakup_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.Debug("mock email send", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	logger.Debug("mock email send with template", "template", templateName, "to", msg.To)
	return nil
}

func (m *MockEmailProvider) SendVerification(to string, token string) error {
	logger.Debug("mock verification email", "to", to)
	return nil
}

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	logger.Debug("mock template email", "to", to, "template", templateName)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
