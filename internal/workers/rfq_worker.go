package workers

import (
	"context"
	"time"

	"zakup_backend/internal/logger"
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
)

// RFQWorker закрывает прием предложений по запросам с истекшим дедлайном
// и чистит устаревшие данные.
type RFQWorker struct {
	rfqRepo          repositories.RFQRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewRFQWorker(
	rfqRepo repositories.RFQRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *RFQWorker {
	return &RFQWorker{
		rfqRepo:          rfqRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Start запускает фоновые задачи
func (w *RFQWorker) Start(ctx context.Context) {
	go w.autoCloseExpired(ctx)
	go w.cleanupOldData(ctx)
}

// autoCloseExpired закрывает просроченные запросы каждые 10 минут
func (w *RFQWorker) autoCloseExpired(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("RFQ worker stopped")
			return
		case <-ticker.C:
			w.closeExpiredOnce()
		}
	}
}

func (w *RFQWorker) closeExpiredOnce() {
	// Сначала собираем просроченные открытые запросы для уведомлений
	expired, _, err := w.rfqRepo.FindWithFilter(repositories.RFQFilter{
		Status:   models.RFQStatusOpen,
		Page:     1,
		PageSize: 100,
	})
	if err != nil {
		logger.WorkerLog("rfq", "find expired", err)
		return
	}

	now := time.Now()
	closed, err := w.rfqRepo.CloseExpired(now)
	logger.WorkerLog("rfq", "close expired", err)
	if err != nil || closed == 0 {
		return
	}

	logger.Info("auto-closed expired rfqs", "count", closed)

	for i := range expired {
		rfq := &expired[i]
		if rfq.Deadline == nil || rfq.Deadline.After(now) {
			continue
		}
		if err := w.notificationRepo.CreateRFQClosedNotification(rfq.BuyerID, rfq.ID, rfq.Title); err != nil {
			logger.WithError(err).Warn("failed to create rfq closed notification", "rfq_id", rfq.ID)
		}
	}
}

// cleanupOldData чистит старые уведомления и протухшие refresh токены раз в сутки
func (w *RFQWorker) cleanupOldData(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := w.notificationRepo.CleanOldNotifications(90)
			logger.WorkerLog("rfq", "clean old notifications", err)

			err = w.userRepo.CleanExpiredRefreshTokens()
			logger.WorkerLog("rfq", "clean expired refresh tokens", err)
		}
	}
}
