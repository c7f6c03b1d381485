package ledger

import (
	"math"
	"testing"
	"time"

	"roomledger-backend/models"

	"github.com/google/uuid"
)

var (
	userA = uuid.MustParse("a0000000-0000-0000-0000-000000000001")
	userB = uuid.MustParse("b0000000-0000-0000-0000-000000000002")
	userC = uuid.MustParse("c0000000-0000-0000-0000-000000000003")
)

func threeMembers() []models.Member {
	return []models.Member{
		{UserID: userA, Email: "a@example.com", Name: "Alice"},
		{UserID: userB, Email: "b@example.com", Name: "Bob"},
		{UserID: userC, Email: "c@example.com", Name: "Carol"},
	}
}

func newExpense(t *testing.T, members []models.Member, paidBy uuid.UUID, total float64) *models.RoomExpense {
	t.Helper()
	details, err := EqualSplit(members, paidBy, total)
	if err != nil {
		t.Fatalf("EqualSplit() error = %v", err)
	}
	return &models.RoomExpense{
		ID:           uuid.New(),
		RoomID:       uuid.New(),
		TotalAmount:  total,
		PaidBy:       paidBy,
		Date:         time.Now(),
		SplitDetails: details,
		IsArchived:   AllSettled(details),
	}
}

func findDetail(t *testing.T, exp *models.RoomExpense, userID uuid.UUID) models.SplitDetail {
	t.Helper()
	for _, d := range exp.SplitDetails {
		if d.UserID == userID {
			return d
		}
	}
	t.Fatalf("no split detail for %s", userID)
	return models.SplitDetail{}
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name     string
		members  []models.Member
		paidBy   uuid.UUID
		total    float64
		wantErr  error
		validate func(t *testing.T, details []models.SplitDetail)
	}{
		{
			name:    "three members, payer share is zero",
			members: threeMembers(),
			paidBy:  userA,
			total:   300,
			validate: func(t *testing.T, details []models.SplitDetail) {
				if len(details) != 3 {
					t.Fatalf("len(details) = %d, want 3", len(details))
				}
				for _, d := range details {
					if d.UserID == userA {
						if d.ShareAmount != 0 || d.Status != models.SplitStatusPaid {
							t.Errorf("payer entry = %+v, want share 0 and status paid", d)
						}
					} else {
						if d.ShareAmount != 100 || d.Status != models.SplitStatusPending {
							t.Errorf("member entry = %+v, want share 100 and status pending", d)
						}
					}
					if d.PaidAmount != 0 {
						t.Errorf("PaidAmount = %v, want 0 at creation", d.PaidAmount)
					}
				}
			},
		},
		{
			name:    "non-payer shares sum to total*(n-1)/n",
			members: threeMembers(),
			paidBy:  userB,
			total:   250,
			validate: func(t *testing.T, details []models.SplitDetail) {
				var sum float64
				for _, d := range details {
					sum += d.ShareAmount
				}
				want := 250 * 2.0 / 3.0
				if math.Abs(sum-want) > 1e-9 {
					t.Errorf("sum of shares = %v, want %v", sum, want)
				}
			},
		},
		{
			name:    "single member expense is settled immediately",
			members: threeMembers()[:1],
			paidBy:  userA,
			total:   75,
			validate: func(t *testing.T, details []models.SplitDetail) {
				if !AllSettled(details) {
					t.Error("AllSettled() = false, want true for single-member room")
				}
			},
		},
		{
			name:    "empty membership rejected",
			members: nil,
			paidBy:  userA,
			total:   100,
			wantErr: ErrNoMembers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := EqualSplit(tt.members, tt.paidBy, tt.total)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("EqualSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit() error = %v", err)
			}
			tt.validate(t, details)
		})
	}
}

func TestSetPaymentStatus(t *testing.T) {
	t.Run("marking paid pins paidAmount to shareAmount", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userA, userB, models.SplitStatusPaid); err != nil {
			t.Fatalf("SetPaymentStatus() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.Status != models.SplitStatusPaid || d.PaidAmount != d.ShareAmount {
			t.Errorf("detail = %+v, want paid with paidAmount == shareAmount", d)
		}
		if exp.IsArchived {
			t.Error("IsArchived = true, want false while Carol is still pending")
		}
	})

	t.Run("idempotent when already paid", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userA, userB, models.SplitStatusPaid); err != nil {
			t.Fatalf("first call error = %v", err)
		}
		before := findDetail(t, exp, userB)
		if err := SetPaymentStatus(exp, userA, userB, models.SplitStatusPaid); err != nil {
			t.Fatalf("second call error = %v", err)
		}
		after := findDetail(t, exp, userB)
		if before != after {
			t.Errorf("second call changed state: before %+v, after %+v", before, after)
		}
	})

	t.Run("archives once every member is paid", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		SetPaymentStatus(exp, userA, userB, models.SplitStatusPaid)
		if err := SetPaymentStatus(exp, userA, userC, models.SplitStatusPaid); err != nil {
			t.Fatalf("SetPaymentStatus() error = %v", err)
		}
		if !exp.IsArchived {
			t.Error("IsArchived = false, want true after last member settles")
		}
	})

	t.Run("unmarking reverts archival and preserves paidAmount", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		SetPaymentStatus(exp, userA, userB, models.SplitStatusPaid)
		SetPaymentStatus(exp, userA, userC, models.SplitStatusPaid)

		if err := SetPaymentStatus(exp, userA, userB, models.SplitStatusPending); err != nil {
			t.Fatalf("SetPaymentStatus() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.Status != models.SplitStatusPending {
			t.Errorf("Status = %q, want pending", d.Status)
		}
		if d.PaidAmount != 100 {
			t.Errorf("PaidAmount = %v, want 100 preserved after unmark", d.PaidAmount)
		}
		if exp.IsArchived {
			t.Error("IsArchived = true, want false after unmark")
		}
	})

	t.Run("non-payer cannot update", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userB, userC, models.SplitStatusPaid); err != ErrNotPayer {
			t.Errorf("error = %v, want ErrNotPayer", err)
		}
	})

	t.Run("payer cannot target own entry", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userA, userA, models.SplitStatusPending); err != ErrSelfTarget {
			t.Errorf("error = %v, want ErrSelfTarget", err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userA, uuid.New(), models.SplitStatusPaid); err != ErrMemberNotInSplit {
			t.Errorf("error = %v, want ErrMemberNotInSplit", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := SetPaymentStatus(exp, userA, userB, "partial"); err != ErrInvalidStatus {
			t.Errorf("error = %v, want ErrInvalidStatus", err)
		}
	})
}

func floatPtr(v float64) *float64 { return &v }

func TestApplyPartialPayment(t *testing.T) {
	t.Run("partial payment stays pending", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := ApplyPartialPayment(exp, userA, userB, floatPtr(40), nil); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.PaidAmount != 40 || d.Status != models.SplitStatusPending {
			t.Errorf("detail = %+v, want paidAmount 40 and status pending", d)
		}
	})

	t.Run("full payment flips to paid and snaps exact", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := ApplyPartialPayment(exp, userA, userB, floatPtr(100), nil); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.Status != models.SplitStatusPaid || d.PaidAmount != d.ShareAmount {
			t.Errorf("detail = %+v, want paid with exact paidAmount", d)
		}
		if exp.IsArchived {
			t.Error("IsArchived = true, want false while Carol is still pending")
		}
	})

	t.Run("overpayment clamps to share", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := ApplyPartialPayment(exp, userA, userB, floatPtr(250), nil); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.PaidAmount != 100 {
			t.Errorf("PaidAmount = %v, want clamped to 100", d.PaidAmount)
		}
		if d.Status != models.SplitStatusPaid {
			t.Errorf("Status = %q, want paid", d.Status)
		}
	})

	t.Run("share override rewrites the debt", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := ApplyPartialPayment(exp, userA, userB, nil, floatPtr(120)); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.ShareAmount != 120 || d.Status != models.SplitStatusPending {
			t.Errorf("detail = %+v, want share 120 still pending", d)
		}
	})

	t.Run("lowering share below prior payment settles the entry", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		ApplyPartialPayment(exp, userA, userB, floatPtr(80), nil)
		if err := ApplyPartialPayment(exp, userA, userB, nil, floatPtr(50)); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.Status != models.SplitStatusPaid || d.PaidAmount != 50 {
			t.Errorf("detail = %+v, want paid with paidAmount snapped to 50", d)
		}
	})

	t.Run("share and paid together clamp against the new share", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		if err := ApplyPartialPayment(exp, userA, userB, floatPtr(90), floatPtr(60)); err != nil {
			t.Fatalf("ApplyPartialPayment() error = %v", err)
		}
		d := findDetail(t, exp, userB)
		if d.ShareAmount != 60 || d.PaidAmount != 60 || d.Status != models.SplitStatusPaid {
			t.Errorf("detail = %+v, want share 60 fully paid", d)
		}
	})

	t.Run("paidAmount never exceeds shareAmount after any mutation", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		mutations := []struct {
			paid, share *float64
		}{
			{floatPtr(500), nil},
			{nil, floatPtr(30)},
			{floatPtr(10), floatPtr(200)},
			{floatPtr(999), floatPtr(5)},
		}
		for _, m := range mutations {
			if err := ApplyPartialPayment(exp, userA, userB, m.paid, m.share); err != nil {
				t.Fatalf("ApplyPartialPayment() error = %v", err)
			}
			d := findDetail(t, exp, userB)
			if d.PaidAmount > d.ShareAmount {
				t.Fatalf("invariant broken: paidAmount %v > shareAmount %v", d.PaidAmount, d.ShareAmount)
			}
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		exp := newExpense(t, threeMembers(), userA, 300)
		tests := []struct {
			name        string
			requester   uuid.UUID
			member      uuid.UUID
			paid, share *float64
			want        error
		}{
			{"no fields", userA, userB, nil, nil, ErrNoFields},
			{"negative paid", userA, userB, floatPtr(-1), nil, ErrNegativeAmount},
			{"zero share", userA, userB, nil, floatPtr(0), ErrZeroShare},
			{"not payer", userB, userC, floatPtr(10), nil, ErrNotPayer},
			{"self target", userA, userA, floatPtr(10), nil, ErrSelfTarget},
			{"unknown member", userA, uuid.New(), floatPtr(10), nil, ErrMemberNotInSplit},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := ApplyPartialPayment(exp, tt.requester, tt.member, tt.paid, tt.share); err != tt.want {
					t.Errorf("error = %v, want %v", err, tt.want)
				}
			})
		}
	})
}
