package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is one entry in a room's membership list. Email and name are
// denormalized so expense snapshots stay readable after a user record
// changes.
type Member struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	Members   []Member  `gorm:"type:jsonb;serializer:json" json:"members"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MemberFilterJSON builds the jsonb containment document that matches
// rooms whose members list includes the given user, mirroring HasMember
// for SQL-side filtering.
func MemberFilterJSON(userID uuid.UUID) string {
	doc, _ := json.Marshal([]map[string]string{{"user_id": userID.String()}})
	return string(doc)
}

// HasMember reports whether a user is the creator or a listed member.
func (r *Room) HasMember(userID uuid.UUID) bool {
	if r.CreatedBy == userID {
		return true
	}
	for _, m := range r.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// Request structs
type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

type RemoveMemberRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}
