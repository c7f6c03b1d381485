package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Split statuses. The status is strictly binary; partial progress lives in
// PaidAmount.
const (
	SplitStatusPaid    = "paid"
	SplitStatusPending = "pending"
)

// SplitDetail is one member's computed share of a room expense plus their
// payment progress. PaidAmount never exceeds ShareAmount.
type SplitDetail struct {
	UserID      uuid.UUID `json:"user_id"`
	ShareAmount float64   `json:"share_amount"`
	PaidAmount  float64   `json:"paid_amount"`
	Status      string    `json:"status"`
}

// RoomExpense holds all split state for one expense in a single row.
// SplitDetails is a membership snapshot frozen at creation time; later
// membership changes do not touch existing expenses.
type RoomExpense struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID       uuid.UUID     `gorm:"type:uuid;index:idx_room_date;index:idx_room_archived" json:"room_id"`
	Description  string        `gorm:"not null;size:500" json:"description"`
	TotalAmount  float64       `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaidBy       uuid.UUID     `gorm:"type:uuid;index" json:"paid_by"`
	Date         time.Time     `gorm:"index:idx_room_date" json:"date"`
	Category     string        `gorm:"size:100;default:''" json:"category"`
	SplitDetails []SplitDetail `gorm:"type:jsonb;serializer:json" json:"split_details"`
	IsArchived   bool          `gorm:"default:false;index:idx_room_archived" json:"is_archived"`
	Version      int64         `gorm:"default:0" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (e *RoomExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateRoomExpenseRequest struct {
	RoomID      string  `json:"room_id" binding:"required"`
	Description string  `json:"description" binding:"required,max=500"`
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
	Date        string  `json:"date"` // YYYY-MM-DD, IST calendar day
	Category    string  `json:"category" binding:"max=100"`
}

type UpdatePaymentStatusRequest struct {
	MemberUserID string `json:"member_user_id" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=paid pending"`
}

type UpdatePartialPaymentRequest struct {
	MemberUserID string   `json:"member_user_id" binding:"required"`
	PaidAmount   *float64 `json:"paid_amount"`
	ShareAmount  *float64 `json:"share_amount"`
}
