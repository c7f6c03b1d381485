// Package ledger owns the split-state machine for room expenses: equal
// splits at creation, per-member payment mutations, and the derived
// archival flag. Everything here is pure in-memory state; persistence is
// the caller's problem.
package ledger

import (
	"errors"

	"roomledger-backend/models"

	"github.com/google/uuid"
)

var (
	// ErrNotPayer: only the member who paid the expense may mutate it.
	ErrNotPayer = errors.New("only the expense payer can perform this action")
	// ErrSelfTarget: the payer's own split entry is immutable.
	ErrSelfTarget = errors.New("cannot update the payer's own split entry")
	// ErrMemberNotInSplit: the target user has no entry in the snapshot.
	ErrMemberNotInSplit = errors.New("member not found in split details")
	// ErrNoMembers guards the data-integrity case of an empty room.
	ErrNoMembers = errors.New("room has no members")
	// ErrInvalidStatus: status must be paid or pending.
	ErrInvalidStatus = errors.New(`status must be "paid" or "pending"`)
	// ErrNoFields: a partial-payment update must carry at least one field.
	ErrNoFields = errors.New("paid_amount or share_amount is required")
	// ErrNegativeAmount: amounts must be non-negative.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrZeroShare: an explicit share override must be positive.
	ErrZeroShare = errors.New("share_amount must be greater than zero")
)

// EqualSplit builds the split snapshot for a new expense: total divided
// across all current members, with the payer's own entry zeroed and
// pre-marked paid (the payer never owes themselves).
func EqualSplit(members []models.Member, paidBy uuid.UUID, totalAmount float64) ([]models.SplitDetail, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	shareAmount := totalAmount / float64(len(members))

	details := make([]models.SplitDetail, 0, len(members))
	for _, m := range members {
		d := models.SplitDetail{
			UserID:      m.UserID,
			ShareAmount: shareAmount,
			Status:      models.SplitStatusPending,
		}
		if m.UserID == paidBy {
			d.ShareAmount = 0
			d.Status = models.SplitStatusPaid
		}
		details = append(details, d)
	}
	return details, nil
}

// SetPaymentStatus marks one member's split paid or pending. Marking paid
// pins paidAmount to shareAmount; marking pending preserves any partial
// payment already recorded. The archival flag is recomputed afterward, so
// a fully-settled expense can come back out of the archive.
func SetPaymentStatus(expense *models.RoomExpense, requester, memberUserID uuid.UUID, status string) error {
	if status != models.SplitStatusPaid && status != models.SplitStatusPending {
		return ErrInvalidStatus
	}
	if expense.PaidBy != requester {
		return ErrNotPayer
	}
	if memberUserID == requester {
		return ErrSelfTarget
	}

	detail := findSplit(expense, memberUserID)
	if detail == nil {
		return ErrMemberNotInSplit
	}

	detail.Status = status
	if status == models.SplitStatusPaid {
		detail.PaidAmount = detail.ShareAmount
	}

	expense.IsArchived = AllSettled(expense.SplitDetails)
	return nil
}

// ApplyPartialPayment records a partial payment and/or overwrites a
// member's owed amount. The share override is applied first so a
// simultaneous paid amount clamps against the new share. Status is then
// derived: paid iff paidAmount reaches shareAmount (snapped exact to avoid
// float drift), pending otherwise.
func ApplyPartialPayment(expense *models.RoomExpense, requester, memberUserID uuid.UUID, paidAmount, shareAmount *float64) error {
	if paidAmount == nil && shareAmount == nil {
		return ErrNoFields
	}
	if paidAmount != nil && *paidAmount < 0 {
		return ErrNegativeAmount
	}
	if shareAmount != nil && *shareAmount <= 0 {
		return ErrZeroShare
	}
	if expense.PaidBy != requester {
		return ErrNotPayer
	}
	if memberUserID == requester {
		return ErrSelfTarget
	}

	detail := findSplit(expense, memberUserID)
	if detail == nil {
		return ErrMemberNotInSplit
	}

	if shareAmount != nil {
		detail.ShareAmount = *shareAmount
	}
	if paidAmount != nil {
		detail.PaidAmount = min(*paidAmount, detail.ShareAmount)
	} else if detail.PaidAmount > detail.ShareAmount {
		// Share was lowered below an existing payment.
		detail.PaidAmount = detail.ShareAmount
	}

	if detail.PaidAmount >= detail.ShareAmount {
		detail.Status = models.SplitStatusPaid
		detail.PaidAmount = detail.ShareAmount
	} else {
		detail.Status = models.SplitStatusPending
	}

	expense.IsArchived = AllSettled(expense.SplitDetails)
	return nil
}

// Outstanding is what a member still owes on one split entry.
func Outstanding(d models.SplitDetail) float64 {
	return d.ShareAmount - d.PaidAmount
}

func findSplit(expense *models.RoomExpense, userID uuid.UUID) *models.SplitDetail {
	for i := range expense.SplitDetails {
		if expense.SplitDetails[i].UserID == userID {
			return &expense.SplitDetails[i]
		}
	}
	return nil
}

// AllSettled reports whether every split entry has reached paid status;
// it is the archival condition for an expense.
func AllSettled(details []models.SplitDetail) bool {
	for _, d := range details {
		if d.Status != models.SplitStatusPaid {
			return false
		}
	}
	return true
}
