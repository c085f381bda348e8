package handlers

import (
	"net/http"

	"zakup_backend/internal/middleware"
	"zakup_backend/internal/models"
	"zakup_backend/internal/services"
	"zakup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	*BaseHandler
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(base *BaseHandler, evaluationService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       base,
		evaluationService: evaluationService,
	}
}

// RegisterRoutes регистрирует роуты оценки
func (h *EvaluationHandler) RegisterRoutes(r *gin.RouterGroup) {
	evals := r.Group("/rfqs/:rfqId")
	evals.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBuyer, models.UserRoleAdmin))
	{
		evals.POST("/evaluate", h.EvaluateRFQ)
		evals.GET("/evaluation", h.GetLatestEvaluation)
		evals.GET("/evaluations", h.ListEvaluations)
	}

	single := r.Group("/evaluations")
	single.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBuyer, models.UserRoleAdmin))
	{
		single.GET("/:evaluationId", h.GetEvaluation)
	}
}

// EvaluateRFQ - POST /rfqs/:rfqId/evaluate
func (h *EvaluationHandler) EvaluateRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EvaluateRFQRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.EvaluatorID = userID

	result, err := h.evaluationService.EvaluateRFQ(c.Param("rfqId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLatestEvaluation - GET /rfqs/:rfqId/evaluation
func (h *EvaluationHandler) GetLatestEvaluation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.evaluationService.GetLatestEvaluation(
		c.Param("rfqId"), userID, models.UserRole(h.GetUserRole(c)))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListEvaluations - GET /rfqs/:rfqId/evaluations
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	results, err := h.evaluationService.ListEvaluations(
		c.Param("rfqId"), userID, models.UserRole(h.GetUserRole(c)))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluations": results, "total": len(results)})
}

// GetEvaluation - GET /evaluations/:evaluationId
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.evaluationService.GetEvaluation(
		c.Param("evaluationId"), userID, models.UserRole(h.GetUserRole(c)))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
