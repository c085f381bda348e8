package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	RFQHandler          *RFQHandler
	BidHandler          *BidHandler
	EvaluationHandler   *EvaluationHandler
	NotificationHandler *NotificationHandler
	DocumentHandler     *DocumentHandler
}
