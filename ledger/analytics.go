package ledger

import (
	"math"
	"time"

	"roomledger-backend/models"
	"roomledger-backend/timewindow"

	"github.com/google/uuid"
)

// Analytics derives point-in-time aggregates for one user over a room's
// full expense set. Today/week/month totals are room-wide spend inside IST
// windows; userPaid and userOwed span the whole history. Each expense is
// treated in isolation: amounts others owe the user are never netted
// against what the user owes.
func Analytics(expenses []models.RoomExpense, userID uuid.UUID, now time.Time) models.RoomAnalytics {
	day := timewindow.Day(now, timewindow.ISTOffsetMinutes)
	week := timewindow.Week(now, timewindow.ISTOffsetMinutes)
	month := timewindow.Month(now, timewindow.ISTOffsetMinutes)

	var result models.RoomAnalytics
	for _, exp := range expenses {
		if day.Contains(exp.Date) {
			result.Today += exp.TotalAmount
		}
		if week.Contains(exp.Date) {
			result.Week += exp.TotalAmount
		}
		if month.Contains(exp.Date) {
			result.Month += exp.TotalAmount
		}

		if exp.PaidBy == userID {
			result.UserPaid += exp.TotalAmount
			continue
		}
		for _, d := range exp.SplitDetails {
			if d.UserID == userID {
				result.UserOwed += Outstanding(d)
			}
		}
	}

	result.Today = round2(result.Today)
	result.Week = round2(result.Week)
	result.Month = round2(result.Month)
	result.UserPaid = round2(result.UserPaid)
	result.UserOwed = round2(result.UserOwed)
	return result
}

// DebtBreakdown sums, for every other room member, what the requesting
// user still owes them across all expenses that member paid. Members with
// nothing outstanding are still listed with a zero amount.
func DebtBreakdown(expenses []models.RoomExpense, members []models.Member, userID uuid.UUID) models.DebtBreakdown {
	owedTo := make(map[uuid.UUID]float64)
	for _, exp := range expenses {
		if exp.PaidBy == userID {
			continue
		}
		for _, d := range exp.SplitDetails {
			if d.UserID == userID {
				owedTo[exp.PaidBy] += Outstanding(d)
			}
		}
	}

	breakdown := models.DebtBreakdown{Debts: []models.DebtEntry{}}
	for _, m := range members {
		if m.UserID == userID {
			continue
		}
		amount := round2(owedTo[m.UserID])
		breakdown.Debts = append(breakdown.Debts, models.DebtEntry{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Amount: amount,
		})
		breakdown.TotalPending += amount
	}
	breakdown.TotalPending = round2(breakdown.TotalPending)
	return breakdown
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
