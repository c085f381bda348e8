package repositories

import (
	"errors"

	"zakup_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(doc *models.Document) error
	FindByID(id string) (*models.Document, error)
	FindByKey(fileKey string) (*models.Document, error)
	ListByRFQ(rfqID string) ([]models.Document, error)
	ListByBid(bidID string) ([]models.Document, error)
	Delete(id string) error
	CountByRFQ(rfqID string) (int64, error)
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepositoryImpl) FindByID(id string) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) FindByKey(fileKey string) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, "file_key = ?", fileKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) ListByRFQ(rfqID string) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("rfq_id = ?", rfqID).Order("created_at ASC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) ListByBid(bidID string) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("bid_id = ?", bidID).Order("created_at ASC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepositoryImpl) CountByRFQ(rfqID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Where("rfq_id = ?", rfqID).Count(&count).Error
	return count, err
}
