package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonalExpense is a single-user expense outside any room.
type PersonalExpense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_user_date" json:"user_id"`
	Description string    `gorm:"not null;size:500" json:"description"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string    `gorm:"size:100;default:''" json:"category"`
	Date        time.Time `gorm:"index:idx_user_date" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *PersonalExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Salary is a per-user configuration record, one row per user.
type Salary struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request structs
type CreatePersonalExpenseRequest struct {
	Description string  `json:"description" binding:"required,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"max=100"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

type UpdatePersonalExpenseRequest struct {
	Description string  `json:"description" binding:"required,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"max=100"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

type SetSalaryRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PersonalAnalytics is returned for GET /api/expenses/analytics.
type PersonalAnalytics struct {
	Today     float64 `json:"today"`
	Week      float64 `json:"week"`
	Month     float64 `json:"month"`
	Salary    float64 `json:"salary"`
	Remaining float64 `json:"remaining"` // salary minus month spend
}
