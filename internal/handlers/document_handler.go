package handlers

import (
	"net/http"

	"zakup_backend/internal/middleware"
	"zakup_backend/internal/services"
	"zakup_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:     base,
		documentService: documentService,
	}
}

// RegisterRoutes регистрирует роуты документов
func (h *DocumentHandler) RegisterRoutes(r *gin.RouterGroup) {
	docs := r.Group("")
	docs.Use(middleware.AuthMiddleware())
	{
		docs.POST("/rfqs/:rfqId/documents", h.UploadRFQDocument)
		docs.GET("/rfqs/:rfqId/documents", h.ListRFQDocuments)
		docs.POST("/bids/:bidId/documents", h.UploadBidDocument)
		docs.GET("/bids/:bidId/documents", h.ListBidDocuments)
		docs.GET("/documents/:documentId", h.GetDocument)
		docs.GET("/documents/:documentId/download", h.DownloadDocument)
		docs.DELETE("/documents/:documentId", h.DeleteDocument)
	}
}

// UploadRFQDocument - POST /rfqs/:rfqId/documents
func (h *DocumentHandler) UploadRFQDocument(c *gin.Context) {
	h.upload(c, func(userID string, input services.UploadInput) (interface{}, error) {
		return h.documentService.UploadRFQDocument(c.Request.Context(), c.Param("rfqId"), input)
	})
}

// UploadBidDocument - POST /bids/:bidId/documents
func (h *DocumentHandler) UploadBidDocument(c *gin.Context) {
	h.upload(c, func(userID string, input services.UploadInput) (interface{}, error) {
		return h.documentService.UploadBidDocument(c.Request.Context(), c.Param("bidId"), input)
	})
}

// upload - общий путь обработки multipart-загрузки
func (h *DocumentHandler) upload(c *gin.Context, save func(userID string, input services.UploadInput) (interface{}, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file in form field 'file'"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	input := services.UploadInput{
		OwnerID:  userID,
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Reader:   file,
	}

	doc, err := save(userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// ListRFQDocuments - GET /rfqs/:rfqId/documents
func (h *DocumentHandler) ListRFQDocuments(c *gin.Context) {
	docs, err := h.documentService.ListRFQDocuments(c.Param("rfqId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// ListBidDocuments - GET /bids/:bidId/documents
func (h *DocumentHandler) ListBidDocuments(c *gin.Context) {
	docs, err := h.documentService.ListBidDocuments(c.Param("bidId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// GetDocument - GET /documents/:documentId
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("documentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DownloadDocument - GET /documents/:documentId/download
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reader, doc, err := h.documentService.DownloadDocument(c.Request.Context(), c.Param("documentId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}

// DeleteDocument - DELETE /documents/:documentId
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("documentId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
