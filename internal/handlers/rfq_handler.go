package handlers

import (
	"net/http"

	"zakup_backend/internal/middleware"
	"zakup_backend/internal/models"
	"zakup_backend/internal/services"
	"zakup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RFQHandler struct {
	*BaseHandler
	rfqService services.RFQService
	bidService services.BidService
}

func NewRFQHandler(base *BaseHandler, rfqService services.RFQService, bidService services.BidService) *RFQHandler {
	return &RFQHandler{
		BaseHandler: base,
		rfqService:  rfqService,
		bidService:  bidService,
	}
}

// RegisterRoutes регистрирует роуты запросов котировок
func (h *RFQHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/rfqs")
	{
		public.GET("", h.SearchRFQs)
		public.GET("/:rfqId", h.GetRFQ)
	}

	// Protected routes - Buyer only
	rfqs := r.Group("/rfqs")
	rfqs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBuyer, models.UserRoleAdmin))
	{
		rfqs.POST("", h.CreateRFQ)
		rfqs.GET("/my", h.GetMyRFQs)
		rfqs.PUT("/:rfqId", h.UpdateRFQ)
		rfqs.DELETE("/:rfqId", h.DeleteRFQ)
		rfqs.PUT("/:rfqId/publish", h.PublishRFQ)
		rfqs.PUT("/:rfqId/close", h.CloseRFQ)
		rfqs.PUT("/:rfqId/cancel", h.CancelRFQ)
		rfqs.GET("/:rfqId/bids", h.ListRFQBids)
	}
}

// --- Public handlers ---

// SearchRFQs - GET /rfqs
func (h *RFQHandler) SearchRFQs(c *gin.Context) {
	var criteria dto.RFQSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	rfqs, total, err := h.rfqService.SearchRFQs(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rfqs":      rfqs,
		"total":     total,
		"page":      criteria.Page,
		"page_size": criteria.PageSize,
	})
}

// GetRFQ - GET /rfqs/:rfqId
func (h *RFQHandler) GetRFQ(c *gin.Context) {
	rfq, err := h.rfqService.GetRFQ(c.Param("rfqId"), true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rfq)
}

// --- Buyer handlers ---

// CreateRFQ - POST /rfqs
func (h *RFQHandler) CreateRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRFQRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.BuyerID = userID

	rfq, err := h.rfqService.CreateRFQ(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rfq)
}

// GetMyRFQs - GET /rfqs/my
func (h *RFQHandler) GetMyRFQs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	criteria := dto.RFQSearchCriteria{
		BuyerID:  userID,
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	rfqs, total, err := h.rfqService.SearchRFQs(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rfqs":      rfqs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateRFQ - PUT /rfqs/:rfqId
func (h *RFQHandler) UpdateRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRFQRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	rfq, err := h.rfqService.UpdateRFQ(c.Param("rfqId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rfq)
}

// DeleteRFQ - DELETE /rfqs/:rfqId
func (h *RFQHandler) DeleteRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rfqService.DeleteRFQ(c.Param("rfqId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RFQ deleted"})
}

// PublishRFQ - PUT /rfqs/:rfqId/publish
func (h *RFQHandler) PublishRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rfqService.PublishRFQ(c.Param("rfqId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RFQ published"})
}

// CloseRFQ - PUT /rfqs/:rfqId/close
func (h *RFQHandler) CloseRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rfqService.CloseRFQ(c.Param("rfqId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RFQ closed"})
}

// CancelRFQ - PUT /rfqs/:rfqId/cancel
func (h *RFQHandler) CancelRFQ(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rfqService.CancelRFQ(c.Param("rfqId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RFQ cancelled"})
}

// ListRFQBids - GET /rfqs/:rfqId/bids
func (h *RFQHandler) ListRFQBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.bidService.ListRFQBids(c.Param("rfqId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids, "total": len(bids)})
}
