package services

import (
	"context"
	"io"
	"time"

	"zakup_backend/internal/config"
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/internal/storage"
	"zakup_backend/pkg/apperrors"
)

// UploadInput - параметры загрузки файла
type UploadInput struct {
	OwnerID  string
	FileName string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type DocumentService interface {
	UploadRFQDocument(ctx context.Context, rfqID string, input UploadInput) (*dto.DocumentResponse, error)
	UploadBidDocument(ctx context.Context, bidID string, input UploadInput) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	DownloadDocument(ctx context.Context, id, requesterID string) (io.ReadCloser, *models.Document, error)
	DeleteDocument(ctx context.Context, id, requesterID string) error
	ListRFQDocuments(rfqID string) ([]dto.DocumentResponse, error)
	ListBidDocuments(bidID string) ([]dto.DocumentResponse, error)
}

type DocumentServiceImpl struct {
	documentRepo repositories.DocumentRepository
	rfqRepo      repositories.RFQRepository
	bidRepo      repositories.BidRepository
	store        storage.Storage
}

func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	rfqRepo repositories.RFQRepository,
	bidRepo repositories.BidRepository,
	store storage.Storage,
) DocumentService {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		rfqRepo:      rfqRepo,
		bidRepo:      bidRepo,
		store:        store,
	}
}

// UploadRFQDocument - вложение к запросу котировок (только владелец)
func (s *DocumentServiceImpl) UploadRFQDocument(ctx context.Context, rfqID string, input UploadInput) (*dto.DocumentResponse, error) {
	rfq, err := s.rfqRepo.FindByID(rfqID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRFQNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if rfq.BuyerID != input.OwnerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := s.validateUpload(input); err != nil {
		return nil, err
	}

	count, err := s.documentRepo.CountByRFQ(rfqID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= int64(config.GetConfig().Upload.MaxRFQFiles) {
		return nil, apperrors.ErrInvalidOperation("document", "Attachment limit reached for this RFQ")
	}

	return s.saveDocument(ctx, input, &rfqID, nil)
}

// UploadBidDocument - вложение к предложению (только автор)
func (s *DocumentServiceImpl) UploadBidDocument(ctx context.Context, bidID string, input UploadInput) (*dto.DocumentResponse, error) {
	bid, err := s.bidRepo.FindByID(bidID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if bid.SupplierID != input.OwnerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := s.validateUpload(input); err != nil {
		return nil, err
	}

	return s.saveDocument(ctx, input, nil, &bidID)
}

// GetDocument - метаданные файла
func (s *DocumentServiceImpl) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.DocumentFromModel(doc), nil
}

// DownloadDocument - поток содержимого файла
func (s *DocumentServiceImpl) DownloadDocument(ctx context.Context, id, requesterID string) (io.ReadCloser, *models.Document, error) {
	doc, err := s.documentRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reader, err := s.store.Get(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	return reader, doc, nil
}

// DeleteDocument - удаление файла владельцем
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, id, requesterID string) error {
	doc, err := s.documentRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if doc.OwnerID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.store.Delete(ctx, doc.FileKey); err != nil {
		return apperrors.InternalError(err)
	}

	return s.documentRepo.Delete(id)
}

// ListRFQDocuments - вложения запроса
func (s *DocumentServiceImpl) ListRFQDocuments(rfqID string) ([]dto.DocumentResponse, error) {
	docs, err := s.documentRepo.ListByRFQ(rfqID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return documentResponses(docs), nil
}

// ListBidDocuments - вложения предложения
func (s *DocumentServiceImpl) ListBidDocuments(bidID string) ([]dto.DocumentResponse, error) {
	docs, err := s.documentRepo.ListByBid(bidID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return documentResponses(docs), nil
}

// validateUpload проверяет размер и MIME-тип против конфигурации
func (s *DocumentServiceImpl) validateUpload(input UploadInput) error {
	cfg := config.GetConfig()

	if input.Size > cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	allowed := false
	for _, t := range cfg.Upload.AllowedTypes {
		if t == input.MimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.ErrInvalidFileType
	}

	return nil
}

// saveDocument кладет файл в хранилище и пишет метаданные
func (s *DocumentServiceImpl) saveDocument(ctx context.Context, input UploadInput, rfqID, bidID *string) (*dto.DocumentResponse, error) {
	scope := "rfq"
	scopeID := ""
	if rfqID != nil {
		scopeID = *rfqID
	} else if bidID != nil {
		scope = "bid"
		scopeID = *bidID
	}

	key := storage.BuildObjectKey(scope, scopeID, input.FileName)

	if err := s.store.Save(ctx, key, input.Reader, input.MimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetSignedURL(ctx, key, 24*time.Hour)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	doc := &models.Document{
		OwnerID:  input.OwnerID,
		RFQID:    rfqID,
		BidID:    bidID,
		FileName: input.FileName,
		FileKey:  key,
		MimeType: input.MimeType,
		Size:     input.Size,
		URL:      url,
	}

	if err := s.documentRepo.Create(doc); err != nil {
		// Файл уже в хранилище, убираем за собой
		s.store.Delete(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	return dto.DocumentFromModel(doc), nil
}

func documentResponses(docs []models.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = *dto.DocumentFromModel(&docs[i])
	}
	return responses
}
