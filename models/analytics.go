package models

import "github.com/google/uuid"

// RoomAnalytics is returned for GET /api/room-expenses/:roomId/analytics.
// Today/Week/Month are room-wide spend over IST windows; UserPaid/UserOwed
// cover the full history of the room.
type RoomAnalytics struct {
	Today    float64 `json:"today"`
	Week     float64 `json:"week"`
	Month    float64 `json:"month"`
	UserPaid float64 `json:"user_paid"`
	UserOwed float64 `json:"user_owed"`
}

// DebtEntry is what the requesting user still owes one other member,
// summed over every expense that member paid. Zero-debt members are
// included for completeness.
type DebtEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Amount float64   `json:"amount"`
}

// DebtBreakdown is returned for GET /api/room-expenses/:roomId/debt-breakdown.
type DebtBreakdown struct {
	Debts        []DebtEntry `json:"debts"`
	TotalPending float64     `json:"total_pending"`
}
