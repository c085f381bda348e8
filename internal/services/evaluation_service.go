package services

import (
	"encoding/json"
	"time"

	"zakup_backend/internal/config"
	"zakup_backend/internal/evaluation"
	"zakup_backend/internal/logger"
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/pkg/apperrors"
)

// EventPusher доставляет событие подключенному пользователю.
// Реализуется websocket-менеджером; nil отключает push.
type EventPusher interface {
	BroadcastToClient(clientID string, message any)
}

type EvaluationService interface {
	EvaluateRFQ(rfqID string, req *dto.EvaluateRFQRequest) (*dto.EvaluationResponse, error)
	GetLatestEvaluation(rfqID, requesterID string, requesterRole models.UserRole) (*dto.EvaluationResponse, error)
	GetEvaluation(id, requesterID string, requesterRole models.UserRole) (*dto.EvaluationResponse, error)
	ListEvaluations(rfqID, requesterID string, requesterRole models.UserRole) ([]dto.EvaluationResponse, error)
}

type EvaluationServiceImpl struct {
	engine           *evaluation.Engine
	rfqRepo          repositories.RFQRepository
	bidRepo          repositories.BidRepository
	evaluationRepo   repositories.EvaluationRepository
	notificationRepo repositories.NotificationRepository
	pusher           EventPusher
}

func NewEvaluationService(
	rfqRepo repositories.RFQRepository,
	bidRepo repositories.BidRepository,
	evaluationRepo repositories.EvaluationRepository,
	notificationRepo repositories.NotificationRepository,
	pusher EventPusher,
) EvaluationService {
	policy := evaluation.DefaultPolicy()
	cfg := config.GetConfig()
	policy.AwardThreshold = cfg.Evaluation.AwardThreshold
	policy.ShortlistThreshold = cfg.Evaluation.ShortlistThreshold

	return &EvaluationServiceImpl{
		engine:           evaluation.NewEngine(policy, nil, nil),
		rfqRepo:          rfqRepo,
		bidRepo:          bidRepo,
		evaluationRepo:   evaluationRepo,
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// EvaluateRFQ - запуск оценки предложений по запросу.
// Оценивает активные (не отозванные) предложения в порядке подачи,
// сохраняет результаты и помечает предложения оцененными.
func (s *EvaluationServiceImpl) EvaluateRFQ(rfqID string, req *dto.EvaluateRFQRequest) (*dto.EvaluationResponse, error) {
	start := time.Now()

	rfq, err := s.rfqRepo.FindByID(rfqID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rfq.BuyerID != req.EvaluatorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	// Оценивать можно открытый или закрытый запрос
	if rfq.Status != models.RFQStatusOpen && rfq.Status != models.RFQStatusClosed {
		return nil, apperrors.ErrInvalidRFQStatus
	}

	bids, err := s.bidRepo.FindActiveByRFQ(rfqID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	engineReq := s.buildEngineRequest(rfq, bids, req)

	result, err := s.engine.Evaluate(engineReq)
	logger.EvaluationLog(rfqID, req.EvaluatorID, len(bids), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	eval, err := s.persistResult(result)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.bidRepo.MarkEvaluated(rfqID); err != nil {
		logger.WithError(err).Warn("failed to mark bids evaluated", "rfq_id", rfqID)
	}

	s.notifyParticipants(rfq, eval, result)

	return dto.EvaluationFromResult(eval.ID, result), nil
}

// GetEvaluation - чтение сохраненного запуска оценки
func (s *EvaluationServiceImpl) GetEvaluation(id, requesterID string, requesterRole models.UserRole) (*dto.EvaluationResponse, error) {
	eval, err := s.evaluationRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEvaluationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.authorizeRead(eval, requesterID, requesterRole); err != nil {
		return nil, err
	}

	return dto.EvaluationFromModel(eval), nil
}

// GetLatestEvaluation - последний запуск оценки по запросу
func (s *EvaluationServiceImpl) GetLatestEvaluation(rfqID, requesterID string, requesterRole models.UserRole) (*dto.EvaluationResponse, error) {
	eval, err := s.evaluationRepo.FindLatestByRFQ(rfqID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEvaluationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.authorizeRead(eval, requesterID, requesterRole); err != nil {
		return nil, err
	}

	return dto.EvaluationFromModel(eval), nil
}

// ListEvaluations - история запусков оценки по запросу
func (s *EvaluationServiceImpl) ListEvaluations(rfqID, requesterID string, requesterRole models.UserRole) ([]dto.EvaluationResponse, error) {
	rfq, err := s.rfqRepo.FindByID(rfqID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if requesterRole != models.UserRoleAdmin && rfq.BuyerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	evals, err := s.evaluationRepo.ListByRFQ(rfqID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.EvaluationResponse, len(evals))
	for i := range evals {
		responses[i] = *dto.EvaluationFromModel(&evals[i])
	}

	return responses, nil
}

// buildEngineRequest собирает снимок входа для движка.
// Критерии берутся из запроса, иначе с RFQ.
func (s *EvaluationServiceImpl) buildEngineRequest(rfq *models.RFQ, bids []models.Bid, req *dto.EvaluateRFQRequest) *evaluation.Request {
	criteria := evaluation.Criteria{
		PriceWeight:          rfq.WeightPrice,
		DeliveryWeight:       rfq.WeightDelivery,
		QualityWeight:        rfq.WeightQuality,
		ExperienceWeight:     rfq.WeightExperience,
		SustainabilityWeight: rfq.WeightSustainability,
	}
	if req.Criteria != nil {
		criteria = evaluation.Criteria{
			PriceWeight:          req.Criteria.PriceWeight,
			DeliveryWeight:       req.Criteria.DeliveryWeight,
			QualityWeight:        req.Criteria.QualityWeight,
			ExperienceWeight:     req.Criteria.ExperienceWeight,
			SustainabilityWeight: req.Criteria.SustainabilityWeight,
		}
	}

	engineBids := make([]evaluation.Bid, len(bids))
	for i := range bids {
		bid := &bids[i]

		var deliveryDate time.Time
		if bid.DeliveryDate != nil {
			deliveryDate = *bid.DeliveryDate
		}

		compliance := dto.ParseCompliance(bid.Compliance)
		items := make([]evaluation.ComplianceItem, len(compliance))
		for j, item := range compliance {
			items[j] = evaluation.ComplianceItem{
				Requirement: item.Requirement,
				Compliant:   item.Compliant,
			}
		}

		engineBids[i] = evaluation.Bid{
			ID:                  bid.ID,
			SupplierID:          bid.SupplierID,
			UnitPrice:           bid.Price,
			DeliveryDate:        deliveryDate,
			Compliance:          items,
			Certifications:      dto.ParseCertifications(bid.Certifications),
			SustainabilityScore: bid.SustainabilityScore,
		}
	}

	return &evaluation.Request{
		RFQID:          rfq.ID,
		EvaluatorID:    req.EvaluatorID,
		Criteria:       criteria,
		Bids:           engineBids,
		EvaluatorNotes: req.EvaluatorNotes,
	}
}

// persistResult сохраняет запуск и строки результатов одной транзакцией
func (s *EvaluationServiceImpl) persistResult(result *evaluation.Result) (*models.Evaluation, error) {
	snapshot, err := json.Marshal(result.Criteria)
	if err != nil {
		return nil, err
	}

	eval := &models.Evaluation{
		RFQID:            result.RFQID,
		EvaluatorID:      result.EvaluatorID,
		CriteriaSnapshot: snapshot,
		BidsEvaluated:    result.Summary.TotalBids,
		EvaluatedAt:      result.EvaluatedAt,
	}

	rows := make([]models.EvaluationResult, len(result.Evaluations))
	for i, ev := range result.Evaluations {
		rows[i] = models.EvaluationResult{
			BidID:               ev.BidID,
			SupplierID:          ev.SupplierID,
			PriceScore:          ev.PriceScore,
			DeliveryScore:       ev.DeliveryScore,
			QualityScore:        ev.QualityScore,
			ExperienceScore:     ev.ExperienceScore,
			SustainabilityScore: ev.SustainabilityScore,
			TotalScore:          ev.TotalScore,
			Rank:                ev.Ranking,
			Recommendation:      ev.Recommendation,
		}
	}

	if err := s.evaluationRepo.CreateWithResults(eval, rows); err != nil {
		return nil, err
	}

	return eval, nil
}

// notifyParticipants рассылает итоги: владельцу запроса и каждому поставщику
func (s *EvaluationServiceImpl) notifyParticipants(rfq *models.RFQ, eval *models.Evaluation, result *evaluation.Result) {
	if err := s.notificationRepo.CreateEvaluationDoneNotification(
		rfq.BuyerID, rfq.ID, eval.ID, result.Summary.TotalBids,
	); err != nil {
		logger.WithError(err).Warn("failed to create evaluation notification")
	}

	for _, ev := range result.Evaluations {
		if err := s.notificationRepo.CreateBidOutcomeNotification(
			ev.SupplierID, rfq.Title, ev.Recommendation,
		); err != nil {
			logger.WithError(err).Warn("failed to create bid outcome notification")
		}
	}

	if s.pusher != nil {
		s.pusher.BroadcastToClient(rfq.BuyerID, map[string]interface{}{
			"type":          "evaluation_done",
			"rfq_id":        rfq.ID,
			"evaluation_id": eval.ID,
			"total_bids":    result.Summary.TotalBids,
		})
	}
}

// authorizeRead проверяет доступ к результатам оценки
func (s *EvaluationServiceImpl) authorizeRead(eval *models.Evaluation, requesterID string, requesterRole models.UserRole) error {
	if requesterRole == models.UserRoleAdmin || eval.EvaluatorID == requesterID {
		return nil
	}

	rfq, err := s.rfqRepo.FindByID(eval.RFQID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if rfq.BuyerID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	return nil
}
