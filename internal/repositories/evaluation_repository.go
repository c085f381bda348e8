package repositories

import (
	"errors"

	"zakup_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

type EvaluationRepository interface {
	// CreateWithResults сохраняет запуск оценки и все его строки атомарно
	CreateWithResults(evaluation *models.Evaluation, results []models.EvaluationResult) error
	FindByID(id string) (*models.Evaluation, error)
	FindLatestByRFQ(rfqID string) (*models.Evaluation, error)
	ListByRFQ(rfqID string) ([]models.Evaluation, error)
	FindResults(evaluationID string) ([]models.EvaluationResult, error)
}

type EvaluationRepositoryImpl struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &EvaluationRepositoryImpl{db: db}
}

func (r *EvaluationRepositoryImpl) CreateWithResults(evaluation *models.Evaluation, results []models.EvaluationResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(evaluation).Error; err != nil {
			return err
		}

		for i := range results {
			results[i].EvaluationID = evaluation.ID
		}

		return tx.Create(&results).Error
	})
}

func (r *EvaluationRepositoryImpl) FindByID(id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.Preload("Results", func(db *gorm.DB) *gorm.DB {
		return db.Order("evaluation_results.rank ASC")
	}).First(&evaluation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepositoryImpl) FindLatestByRFQ(rfqID string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.Preload("Results", func(db *gorm.DB) *gorm.DB {
		return db.Order("evaluation_results.rank ASC")
	}).Where("rfq_id = ?", rfqID).
		Order("evaluated_at DESC").First(&evaluation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepositoryImpl) ListByRFQ(rfqID string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.Where("rfq_id = ?", rfqID).
		Order("evaluated_at DESC").Find(&evaluations).Error
	return evaluations, err
}

func (r *EvaluationRepositoryImpl) FindResults(evaluationID string) ([]models.EvaluationResult, error) {
	var results []models.EvaluationResult
	err := r.db.Where("evaluation_id = ?", evaluationID).
		Order("rank ASC").Find(&results).Error
	return results, err
}
