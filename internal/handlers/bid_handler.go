package handlers

import (
	"net/http"

	"zakup_backend/internal/middleware"
	"zakup_backend/internal/models"
	"zakup_backend/internal/services"
	"zakup_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	*BaseHandler
	bidService services.BidService
}

func NewBidHandler(base *BaseHandler, bidService services.BidService) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		bidService:  bidService,
	}
}

// RegisterRoutes регистрирует роуты предложений
func (h *BidHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Supplier routes
	supplier := r.Group("/rfqs/:rfqId/bids")
	supplier.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleSupplier))
	{
		supplier.POST("", h.SubmitBid)
	}

	bids := r.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		bids.GET("/my", h.GetMyBids)
		bids.GET("/:bidId", h.GetBid)
		bids.PUT("/:bidId", h.UpdateBid)
		bids.PUT("/:bidId/withdraw", h.WithdrawBid)
	}
}

// SubmitBid - POST /rfqs/:rfqId/bids
func (h *BidHandler) SubmitBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitBidRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.SupplierID = userID
	req.RFQID = c.Param("rfqId")

	bid, err := h.bidService.SubmitBid(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// GetMyBids - GET /bids/my
func (h *BidHandler) GetMyBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	bids, err := h.bidService.ListSupplierBids(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids, "page": page, "page_size": pageSize})
}

// GetBid - GET /bids/:bidId
func (h *BidHandler) GetBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bid, err := h.bidService.GetBid(c.Param("bidId"), userID, models.UserRole(h.GetUserRole(c)))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}

// UpdateBid - PUT /bids/:bidId
func (h *BidHandler) UpdateBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBidRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	bid, err := h.bidService.UpdateBid(c.Param("bidId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}

// WithdrawBid - PUT /bids/:bidId/withdraw
func (h *BidHandler) WithdrawBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.bidService.WithdrawBid(c.Param("bidId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bid withdrawn"})
}
