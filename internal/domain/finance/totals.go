package finance

import (
	"sort"
	"time"

	"github.com/takibi/backend/internal/domain/shared/valueobject"
)

// Totals is the derived-totals snapshot written back onto the finance
// record after every mutation.
type Totals struct {
	TotalContractCents    int64
	CollectedCents        int64
	ExpenseTotalCents     int64
	ExpenseCollectedCents int64
	RemainingCents        int64
	HasOverdueInstallment bool
}

// ComputeTotals derives the totals from the component rows:
//
//	total    = fixed + percentage portion
//	collected = Σ payments
//	expenses  = Σ expenses; collected back = Σ office-paid collected
//	remaining = (total − collected) + office-paid expenses not yet collected
func ComputeTotals(r *Record, installments []Installment, payments []Payment, expenses []Expense, now time.Time) Totals {
	t := Totals{TotalContractCents: r.ContractTotalCents()}

	for _, p := range payments {
		t.CollectedCents += p.AmountCents
	}

	var officeUncollected int64
	for _, e := range expenses {
		t.ExpenseTotalCents += e.AmountCents
		if e.Source == SourceOffice {
			if e.Status == ExpenseCollected {
				t.ExpenseCollectedCents += e.AmountCents
			} else {
				officeUncollected += e.AmountCents
			}
		}
	}

	t.RemainingCents = (t.TotalContractCents - t.CollectedCents) + officeUncollected

	for _, i := range installments {
		if i.IsOverdue(now) {
			t.HasOverdueInstallment = true
			break
		}
	}
	return t
}

// DueCategory buckets a finance record by how close its next unpaid
// installment is.
type DueCategory string

const (
	DueOverdue DueCategory = "overdue"
	DueToday   DueCategory = "due_today"
	DueSoon    DueCategory = "due_1_3"
	DueWeek    DueCategory = "due_4_7"
	DueFuture  DueCategory = "due_future"
	DueNone    DueCategory = ""
)

// ComputeDueCategory finds the next unpaid installment and tags the
// record by the distance of its due date from today.
func ComputeDueCategory(installments []Installment, now time.Time) DueCategory {
	unpaid := make([]Installment, 0, len(installments))
	for _, i := range installments {
		if i.Status != InstallmentPaid && i.DueDate != "" {
			unpaid = append(unpaid, i)
		}
	}
	if len(unpaid) == 0 {
		return DueNone
	}
	sort.Slice(unpaid, func(a, b int) bool { return unpaid[a].DueDate < unpaid[b].DueDate })

	days, ok := valueobject.DaysUntil(unpaid[0].DueDate, now)
	if !ok {
		return DueNone
	}
	switch {
	case days < 0:
		return DueOverdue
	case days == 0:
		return DueToday
	case days <= 3:
		return DueSoon
	case days <= 7:
		return DueWeek
	default:
		return DueFuture
	}
}
