package services

import (
	"time"

	"zakup_backend/internal/logger"
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/pkg/apperrors"
)

type BidService interface {
	SubmitBid(req *dto.SubmitBidRequest) (*dto.BidResponse, error)
	GetBid(id, requesterID string, requesterRole models.UserRole) (*dto.BidResponse, error)
	UpdateBid(id, supplierID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error)
	WithdrawBid(id, supplierID string) error
	ListRFQBids(rfqID, buyerID string) ([]dto.BidResponse, error)
	ListSupplierBids(supplierID string, limit, offset int) ([]dto.BidResponse, error)
}

type BidServiceImpl struct {
	bidRepo          repositories.BidRepository
	rfqRepo          repositories.RFQRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewBidService(
	bidRepo repositories.BidRepository,
	rfqRepo repositories.RFQRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) BidService {
	return &BidServiceImpl{
		bidRepo:          bidRepo,
		rfqRepo:          rfqRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// SubmitBid - подача предложения поставщиком
func (s *BidServiceImpl) SubmitBid(req *dto.SubmitBidRequest) (*dto.BidResponse, error) {
	rfq, err := s.rfqRepo.FindByID(req.RFQID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Предложения принимаются только по открытым запросам
	if rfq.Status != models.RFQStatusOpen {
		return nil, apperrors.ErrInvalidRFQStatus
	}

	if rfq.Deadline != nil && time.Now().After(*rfq.Deadline) {
		return nil, apperrors.ErrRFQDeadlinePassed
	}

	currency := req.Currency
	if currency == "" {
		currency = "KZT"
	}

	deliveryDate := req.DeliveryDate
	bid := &models.Bid{
		RFQID:               req.RFQID,
		SupplierID:          req.SupplierID,
		Price:               req.Price,
		Currency:            currency,
		DeliveryDate:        &deliveryDate,
		Compliance:          dto.FormatCompliance(req.Compliance),
		Certifications:      dto.FormatCertifications(req.Certifications),
		SustainabilityScore: req.SustainabilityScore,
		Status:              models.BidStatusSubmitted,
		Notes:               req.Notes,
	}

	if err := s.bidRepo.Create(bid); err != nil {
		if apperrors.Is(err, repositories.ErrBidExists) {
			return nil, apperrors.ErrBidAlreadySubmitted
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifyNewBid(rfq, bid)

	return dto.BidFromModel(bid), nil
}

// GetBid - просмотр предложения. Доступно поставщику-автору,
// владельцу запроса и админу.
func (s *BidServiceImpl) GetBid(id, requesterID string, requesterRole models.UserRole) (*dto.BidResponse, error) {
	bid, err := s.bidRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if requesterRole != models.UserRoleAdmin && bid.SupplierID != requesterID {
		rfq, err := s.rfqRepo.FindByID(bid.RFQID)
		if err != nil || rfq.BuyerID != requesterID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	return dto.BidFromModel(bid), nil
}

// UpdateBid - правка предложения до дедлайна
func (s *BidServiceImpl) UpdateBid(id, supplierID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error) {
	bid, err := s.findOwnBid(id, supplierID)
	if err != nil {
		return nil, err
	}

	if bid.Status != models.BidStatusSubmitted {
		return nil, apperrors.ErrInvalidOperation("bid", "Only submitted bids can be updated")
	}

	rfq, err := s.rfqRepo.FindByID(bid.RFQID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if rfq.Status != models.RFQStatusOpen {
		return nil, apperrors.ErrInvalidRFQStatus
	}
	if rfq.Deadline != nil && time.Now().After(*rfq.Deadline) {
		return nil, apperrors.ErrRFQDeadlinePassed
	}

	if req.Price != nil {
		bid.Price = *req.Price
	}
	if req.DeliveryDate != nil {
		bid.DeliveryDate = req.DeliveryDate
	}
	if req.Compliance != nil {
		bid.Compliance = dto.FormatCompliance(req.Compliance)
	}
	if req.Certifications != nil {
		bid.Certifications = dto.FormatCertifications(req.Certifications)
	}
	if req.SustainabilityScore != nil {
		bid.SustainabilityScore = req.SustainabilityScore
	}
	if req.Notes != nil {
		bid.Notes = *req.Notes
	}

	if err := s.bidRepo.Update(bid); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.BidFromModel(bid), nil
}

// WithdrawBid - отзыв предложения поставщиком
func (s *BidServiceImpl) WithdrawBid(id, supplierID string) error {
	bid, err := s.findOwnBid(id, supplierID)
	if err != nil {
		return err
	}

	if bid.Status != models.BidStatusSubmitted {
		return apperrors.ErrBidWithdrawn
	}

	return s.bidRepo.UpdateStatus(id, models.BidStatusWithdrawn)
}

// ListRFQBids - список предложений по запросу (для владельца)
func (s *BidServiceImpl) ListRFQBids(rfqID, buyerID string) ([]dto.BidResponse, error) {
	rfq, err := s.rfqRepo.FindByID(rfqID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rfq.BuyerID != buyerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bids, err := s.bidRepo.FindActiveByRFQ(rfqID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.BidResponse, len(bids))
	for i := range bids {
		responses[i] = *dto.BidFromModel(&bids[i])
	}

	return responses, nil
}

// ListSupplierBids - предложения поставщика
func (s *BidServiceImpl) ListSupplierBids(supplierID string, limit, offset int) ([]dto.BidResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	bids, err := s.bidRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.BidResponse, len(bids))
	for i := range bids {
		responses[i] = *dto.BidFromModel(&bids[i])
	}

	return responses, nil
}

// findOwnBid загружает предложение и проверяет автора
func (s *BidServiceImpl) findOwnBid(id, supplierID string) (*models.Bid, error) {
	bid, err := s.bidRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if bid.SupplierID != supplierID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return bid, nil
}

// notifyNewBid уведомляет владельца запроса о новом предложении
func (s *BidServiceImpl) notifyNewBid(rfq *models.RFQ, bid *models.Bid) {
	supplierName := "Поставщик"
	if supplier, err := s.userRepo.FindByID(bid.SupplierID); err == nil && supplier.CompanyName != "" {
		supplierName = supplier.CompanyName
	}

	if err := s.notificationRepo.CreateNewBidNotification(rfq.BuyerID, rfq.ID, bid.ID, supplierName); err != nil {
		logger.WithError(err).Warn("failed to create new bid notification")
	}
}
