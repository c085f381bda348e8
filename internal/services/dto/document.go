package dto

import (
	"time"

	"zakup_backend/internal/models"
)

// DocumentResponse - метаданные загруженного файла
type DocumentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	RFQID     *string   `json:"rfq_id,omitempty"`
	BidID     *string   `json:"bid_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentFromModel строит DocumentResponse из модели
func DocumentFromModel(doc *models.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:        doc.ID,
		FileName:  doc.FileName,
		MimeType:  doc.MimeType,
		Size:      doc.Size,
		URL:       doc.URL,
		RFQID:     doc.RFQID,
		BidID:     doc.BidID,
		CreatedAt: doc.CreatedAt,
	}
}
