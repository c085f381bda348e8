package services

import (
	"fmt"
	"math"
	"time"

	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/pkg/apperrors"
)

type RFQService interface {
	CreateRFQ(req *dto.CreateRFQRequest) (*dto.RFQResponse, error)
	GetRFQ(id string, countView bool) (*dto.RFQResponse, error)
	UpdateRFQ(id, buyerID string, req *dto.UpdateRFQRequest) (*dto.RFQResponse, error)
	PublishRFQ(id, buyerID string) error
	CloseRFQ(id, buyerID string) error
	CancelRFQ(id, buyerID string) error
	DeleteRFQ(id, buyerID string) error
	SearchRFQs(criteria dto.RFQSearchCriteria) ([]dto.RFQResponse, int64, error)
}

type RFQServiceImpl struct {
	rfqRepo repositories.RFQRepository
	bidRepo repositories.BidRepository
}

func NewRFQService(rfqRepo repositories.RFQRepository, bidRepo repositories.BidRepository) RFQService {
	return &RFQServiceImpl{
		rfqRepo: rfqRepo,
		bidRepo: bidRepo,
	}
}

// Схема весов по умолчанию: цена 30, поставка 20, качество 25, опыт 15, устойчивость 10
func defaultCriteria() dto.CriteriaDTO {
	return dto.CriteriaDTO{
		PriceWeight:          30,
		DeliveryWeight:       20,
		QualityWeight:        25,
		ExperienceWeight:     15,
		SustainabilityWeight: 10,
	}
}

// validateCriteriaWeights проверяет, что веса дают в сумме 100 (допуск 0.01)
func validateCriteriaWeights(c dto.CriteriaDTO) error {
	sum := c.PriceWeight + c.DeliveryWeight + c.QualityWeight +
		c.ExperienceWeight + c.SustainabilityWeight
	if math.Abs(sum-100) > 0.01 {
		return apperrors.ErrInvalidCriteria(
			fmt.Errorf("weights sum to %.2f, expected 100", sum),
		).WithDetails(map[string]interface{}{"weight_sum": sum})
	}
	return nil
}

// CreateRFQ - создание запроса котировок (в статусе draft)
func (s *RFQServiceImpl) CreateRFQ(req *dto.CreateRFQRequest) (*dto.RFQResponse, error) {
	criteria := defaultCriteria()
	if req.Criteria != nil {
		criteria = *req.Criteria
	}

	if err := validateCriteriaWeights(criteria); err != nil {
		return nil, err
	}

	rfq := &models.RFQ{
		BuyerID:              req.BuyerID,
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Deadline:             req.Deadline,
		Status:               models.RFQStatusDraft,
		WeightPrice:          criteria.PriceWeight,
		WeightDelivery:       criteria.DeliveryWeight,
		WeightQuality:        criteria.QualityWeight,
		WeightExperience:     criteria.ExperienceWeight,
		WeightSustainability: criteria.SustainabilityWeight,
	}

	if err := s.rfqRepo.Create(rfq); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.RFQFromModel(rfq, 0), nil
}

// GetRFQ - получение RFQ, опционально со счетчиком просмотров
func (s *RFQServiceImpl) GetRFQ(id string, countView bool) (*dto.RFQResponse, error) {
	rfq, err := s.rfqRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if countView {
		s.rfqRepo.IncrementViews(id)
		rfq.Views++
	}

	bidCount, err := s.bidRepo.CountByRFQ(id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.RFQFromModel(rfq, bidCount), nil
}

// UpdateRFQ - правка RFQ владельцем. Веса критериев можно менять
// только пока запрос в черновике: после публикации поставщики подают
// предложения под зафиксированную схему.
func (s *RFQServiceImpl) UpdateRFQ(id, buyerID string, req *dto.UpdateRFQRequest) (*dto.RFQResponse, error) {
	rfq, err := s.findOwnedRFQ(id, buyerID)
	if err != nil {
		return nil, err
	}

	if rfq.Status != models.RFQStatusDraft && rfq.Status != models.RFQStatusOpen {
		return nil, apperrors.ErrInvalidRFQStatus
	}

	if req.Title != nil {
		rfq.Title = *req.Title
	}
	if req.Description != nil {
		rfq.Description = *req.Description
	}
	if req.Category != nil {
		rfq.Category = *req.Category
	}
	if req.Deadline != nil {
		rfq.Deadline = req.Deadline
	}

	if req.Criteria != nil {
		if rfq.Status != models.RFQStatusDraft {
			return nil, apperrors.ErrInvalidOperation("rfq",
				"Evaluation criteria can only be changed while the RFQ is a draft")
		}
		if err := validateCriteriaWeights(*req.Criteria); err != nil {
			return nil, err
		}
		rfq.WeightPrice = req.Criteria.PriceWeight
		rfq.WeightDelivery = req.Criteria.DeliveryWeight
		rfq.WeightQuality = req.Criteria.QualityWeight
		rfq.WeightExperience = req.Criteria.ExperienceWeight
		rfq.WeightSustainability = req.Criteria.SustainabilityWeight
	}

	if err := s.rfqRepo.Update(rfq); err != nil {
		return nil, apperrors.InternalError(err)
	}

	bidCount, _ := s.bidRepo.CountByRFQ(id)
	return dto.RFQFromModel(rfq, bidCount), nil
}

// PublishRFQ - перевод черновика в открытый прием предложений
func (s *RFQServiceImpl) PublishRFQ(id, buyerID string) error {
	rfq, err := s.findOwnedRFQ(id, buyerID)
	if err != nil {
		return err
	}

	if rfq.Status != models.RFQStatusDraft {
		return apperrors.ErrInvalidRFQStatus
	}

	if rfq.Deadline != nil && rfq.Deadline.Before(time.Now()) {
		return apperrors.ErrInvalidOperation("rfq", "Deadline must be in the future")
	}

	return s.rfqRepo.UpdateStatus(id, models.RFQStatusOpen)
}

// CloseRFQ - досрочное закрытие приема предложений
func (s *RFQServiceImpl) CloseRFQ(id, buyerID string) error {
	rfq, err := s.findOwnedRFQ(id, buyerID)
	if err != nil {
		return err
	}

	if rfq.Status != models.RFQStatusOpen {
		return apperrors.ErrInvalidRFQStatus
	}

	return s.rfqRepo.UpdateStatus(id, models.RFQStatusClosed)
}

// CancelRFQ - отмена запроса
func (s *RFQServiceImpl) CancelRFQ(id, buyerID string) error {
	rfq, err := s.findOwnedRFQ(id, buyerID)
	if err != nil {
		return err
	}

	if rfq.Status != models.RFQStatusDraft && rfq.Status != models.RFQStatusOpen {
		return apperrors.ErrInvalidRFQStatus
	}

	return s.rfqRepo.UpdateStatus(id, models.RFQStatusCancelled)
}

// DeleteRFQ - удаление. Разрешено только для черновиков
func (s *RFQServiceImpl) DeleteRFQ(id, buyerID string) error {
	rfq, err := s.findOwnedRFQ(id, buyerID)
	if err != nil {
		return err
	}

	if rfq.Status != models.RFQStatusDraft {
		return apperrors.ErrInvalidRFQStatus
	}

	return s.rfqRepo.Delete(id)
}

// SearchRFQs - поиск с фильтрами и пагинацией
func (s *RFQServiceImpl) SearchRFQs(criteria dto.RFQSearchCriteria) ([]dto.RFQResponse, int64, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	rfqs, total, err := s.rfqRepo.FindWithFilter(repositories.RFQFilter{
		BuyerID:  criteria.BuyerID,
		Status:   models.RFQStatus(criteria.Status),
		Category: criteria.Category,
		Search:   criteria.Query,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.RFQResponse, len(rfqs))
	for i := range rfqs {
		bidCount, _ := s.bidRepo.CountByRFQ(rfqs[i].ID)
		responses[i] = *dto.RFQFromModel(&rfqs[i], bidCount)
	}

	return responses, total, nil
}

// findOwnedRFQ загружает RFQ и проверяет владельца
func (s *RFQServiceImpl) findOwnedRFQ(id, buyerID string) (*models.RFQ, error) {
	rfq, err := s.rfqRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rfq.BuyerID != buyerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return rfq, nil
}
