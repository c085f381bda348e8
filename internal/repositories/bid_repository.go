package repositories

import (
	"errors"
	"time"

	"zakup_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBidNotFound = errors.New("bid not found")
	ErrBidExists   = errors.New("active bid for this rfq already exists")
)

type BidRepository interface {
	Create(bid *models.Bid) error
	FindByID(id string) (*models.Bid, error)
	FindActiveByRFQ(rfqID string) ([]models.Bid, error)
	FindBySupplierAndRFQ(supplierID, rfqID string) (*models.Bid, error)
	Update(bid *models.Bid) error
	UpdateStatus(id string, status models.BidStatus) error
	MarkEvaluated(rfqID string) error
	ListBySupplier(supplierID string, limit, offset int) ([]models.Bid, error)
	CountByRFQ(rfqID string) (int64, error)
}

type BidRepositoryImpl struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &BidRepositoryImpl{db: db}
}

func (r *BidRepositoryImpl) Create(bid *models.Bid) error {
	// У поставщика может быть только одно активное предложение на RFQ
	var existing models.Bid
	err := r.db.Where("rfq_id = ? AND supplier_id = ? AND status != ?",
		bid.RFQID, bid.SupplierID, models.BidStatusWithdrawn).First(&existing).Error
	if err == nil {
		return ErrBidExists
	}

	return r.db.Create(bid).Error
}

func (r *BidRepositoryImpl) FindByID(id string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

// FindActiveByRFQ возвращает предложения в порядке подачи.
// Порядок важен: движок оценки сохраняет его при равных очках.
func (r *BidRepositoryImpl) FindActiveByRFQ(rfqID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.Where("rfq_id = ? AND status != ?", rfqID, models.BidStatusWithdrawn).
		Order("created_at ASC").Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) FindBySupplierAndRFQ(supplierID, rfqID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.Where("supplier_id = ? AND rfq_id = ?", supplierID, rfqID).
		Order("created_at DESC").First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) Update(bid *models.Bid) error {
	result := r.db.Model(bid).Updates(map[string]interface{}{
		"price":                bid.Price,
		"currency":             bid.Currency,
		"delivery_date":        bid.DeliveryDate,
		"compliance":           bid.Compliance,
		"certifications":       bid.Certifications,
		"sustainability_score": bid.SustainabilityScore,
		"notes":                bid.Notes,
		"updated_at":           time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryImpl) UpdateStatus(id string, status models.BidStatus) error {
	result := r.db.Model(&models.Bid{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

// MarkEvaluated помечает все активные предложения RFQ как оцененные.
func (r *BidRepositoryImpl) MarkEvaluated(rfqID string) error {
	return r.db.Model(&models.Bid{}).
		Where("rfq_id = ? AND status = ?", rfqID, models.BidStatusSubmitted).
		Updates(map[string]interface{}{
			"status":     models.BidStatusEvaluated,
			"updated_at": time.Now(),
		}).Error
}

func (r *BidRepositoryImpl) ListBySupplier(supplierID string, limit, offset int) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.Preload("RFQ").Where("supplier_id = ?", supplierID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) CountByRFQ(rfqID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bid{}).
		Where("rfq_id = ? AND status != ?", rfqID, models.BidStatusWithdrawn).
		Count(&count).Error
	return count, err
}
