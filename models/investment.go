package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment is a single-user investment record, tracked alongside
// personal expenses but never counted as spend.
type Investment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index:idx_investment_user_date" json:"user_id"`
	Name           string    `gorm:"not null;size:200" json:"name"`
	Amount         float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	InvestmentType string    `gorm:"size:100;default:'';index" json:"investment_type"`
	Date           time.Time `gorm:"index:idx_investment_user_date" json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InvestmentRequest is shared by create and update; updates replace the
// record wholesale. Amount is a pointer so a zero-value investment (e.g.
// a placeholder SIP) still binds.
type InvestmentRequest struct {
	Name           string   `json:"name" binding:"required,max=200"`
	Amount         *float64 `json:"amount" binding:"required,gte=0"`
	InvestmentType string   `json:"investment_type" binding:"max=100"`
	Date           string   `json:"date"` // YYYY-MM-DD
}
