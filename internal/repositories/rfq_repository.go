package repositories

import (
	"errors"
	"time"

	"zakup_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRFQNotFound = errors.New("rfq not found")

type RFQRepository interface {
	Create(rfq *models.RFQ) error
	FindByID(id string) (*models.RFQ, error)
	FindByIDWithBids(id string) (*models.RFQ, error)
	Update(rfq *models.RFQ) error
	UpdateStatus(id string, status models.RFQStatus) error
	Delete(id string) error
	ListByBuyer(buyerID string, limit, offset int) ([]models.RFQ, error)
	FindWithFilter(criteria RFQFilter) ([]models.RFQ, int64, error)
	IncrementViews(id string) error
	CloseExpired(now time.Time) (int64, error)
}

type RFQFilter struct {
	BuyerID  string
	Status   models.RFQStatus
	Category string
	Search   string
	Page     int
	PageSize int
}

type RFQRepositoryImpl struct {
	db *gorm.DB
}

func NewRFQRepository(db *gorm.DB) RFQRepository {
	return &RFQRepositoryImpl{db: db}
}

func (r *RFQRepositoryImpl) Create(rfq *models.RFQ) error {
	return r.db.Create(rfq).Error
}

func (r *RFQRepositoryImpl) FindByID(id string) (*models.RFQ, error) {
	var rfq models.RFQ
	err := r.db.First(&rfq, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRFQNotFound
		}
		return nil, err
	}
	return &rfq, nil
}

func (r *RFQRepositoryImpl) FindByIDWithBids(id string) (*models.RFQ, error) {
	var rfq models.RFQ
	err := r.db.Preload("Bids").First(&rfq, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRFQNotFound
		}
		return nil, err
	}
	return &rfq, nil
}

func (r *RFQRepositoryImpl) Update(rfq *models.RFQ) error {
	result := r.db.Model(rfq).Updates(map[string]interface{}{
		"title":                 rfq.Title,
		"description":           rfq.Description,
		"category":              rfq.Category,
		"deadline":              rfq.Deadline,
		"status":                rfq.Status,
		"weight_price":          rfq.WeightPrice,
		"weight_delivery":       rfq.WeightDelivery,
		"weight_quality":        rfq.WeightQuality,
		"weight_experience":     rfq.WeightExperience,
		"weight_sustainability": rfq.WeightSustainability,
		"updated_at":            time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRFQNotFound
	}
	return nil
}

func (r *RFQRepositoryImpl) UpdateStatus(id string, status models.RFQStatus) error {
	result := r.db.Model(&models.RFQ{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRFQNotFound
	}
	return nil
}

func (r *RFQRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.RFQ{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRFQNotFound
	}
	return nil
}

func (r *RFQRepositoryImpl) ListByBuyer(buyerID string, limit, offset int) ([]models.RFQ, error) {
	var rfqs []models.RFQ
	err := r.db.Where("buyer_id = ?", buyerID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rfqs).Error
	return rfqs, err
}

func (r *RFQRepositoryImpl) FindWithFilter(criteria RFQFilter) ([]models.RFQ, int64, error) {
	var rfqs []models.RFQ
	query := r.db.Model(&models.RFQ{})

	if criteria.BuyerID != "" {
		query = query.Where("buyer_id = ?", criteria.BuyerID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rfqs).Error

	return rfqs, total, err
}

func (r *RFQRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.RFQ{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CloseExpired переводит открытые RFQ с истекшим дедлайном в closed.
// Используется фоновым worker'ом.
func (r *RFQRepositoryImpl) CloseExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.RFQ{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.RFQStatusOpen, now).
		Updates(map[string]interface{}{
			"status":     models.RFQStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
