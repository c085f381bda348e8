package models

import (
	"gorm.io/datatypes"
	"time"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "new_bid", "rfq_closed", "evaluation_done", "bid_awarded"
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"rfq_id": "...", "bid_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}
