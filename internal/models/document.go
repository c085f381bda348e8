package models

// Document - файл, прикрепленный к RFQ или предложению
// (техзадание, спецификация, сертификат).
type Document struct {
	BaseModel
	OwnerID  string  `gorm:"not null;index"`
	RFQID    *string `gorm:"index"`
	BidID    *string `gorm:"index"`
	FileName string  `gorm:"not null"`
	FileKey  string  `gorm:"not null;uniqueIndex"` // Ключ в хранилище
	MimeType string  `gorm:"type:varchar(100)"`
	Size     int64
	URL      string
}
