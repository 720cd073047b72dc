package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	r := &Record{FixedFeeCents: 1000000, PercentRate: 10, PercentBaseCents: 5000000}

	t.Run("fresh record", func(t *testing.T) {
		got := ComputeTotals(r, nil, nil, nil, now)
		assert.Equal(t, int64(1500000), got.TotalContractCents)
		assert.Equal(t, int64(0), got.CollectedCents)
		assert.Equal(t, int64(1500000), got.RemainingCents)
		assert.False(t, got.HasOverdueInstallment)
	})

	t.Run("payments reduce the remaining balance", func(t *testing.T) {
		payments := []Payment{
			{AmountCents: 300000, Method: MethodInstallment},
			{AmountCents: 200000, Method: MethodOffice},
		}
		got := ComputeTotals(r, nil, payments, nil, now)
		assert.Equal(t, int64(500000), got.CollectedCents)
		assert.Equal(t, int64(1000000), got.RemainingCents)
	})

	t.Run("office expenses owed until collected", func(t *testing.T) {
		expenses := []Expense{
			{AmountCents: 50000, Source: SourceOffice, Status: ExpensePending},
			{AmountCents: 20000, Source: SourceOffice, Status: ExpenseCollected},
			{AmountCents: 10000, Source: SourceFromCash, Status: ExpensePending},
		}
		got := ComputeTotals(r, nil, nil, expenses, now)
		assert.Equal(t, int64(80000), got.ExpenseTotalCents)
		assert.Equal(t, int64(20000), got.ExpenseCollectedCents)
		// remaining carries only the office-paid uncollected 500,00
		assert.Equal(t, int64(1550000), got.RemainingCents)
	})

	t.Run("overdue flag from unpaid past installment", func(t *testing.T) {
		installments := []Installment{
			{DueDate: "2025-01-15", Status: InstallmentDue},
			{DueDate: "2025-03-15", Status: InstallmentDue},
		}
		got := ComputeTotals(r, installments, nil, nil, now)
		assert.True(t, got.HasOverdueInstallment)

		installments[0].Status = InstallmentPaid
		got = ComputeTotals(r, installments, nil, nil, now)
		assert.False(t, got.HasOverdueInstallment)
	})

	t.Run("percentage of zero base", func(t *testing.T) {
		r := &Record{FixedFeeCents: 100000, PercentRate: 15}
		got := ComputeTotals(r, nil, nil, nil, now)
		assert.Equal(t, int64(100000), got.TotalContractCents)
	})
}

func TestComputeDueCategory(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		installments []Installment
		want         DueCategory
	}{
		{"no installments", nil, DueNone},
		{"all paid", []Installment{{DueDate: "2025-03-01", Status: InstallmentPaid}}, DueNone},
		{"overdue", []Installment{{DueDate: "2025-03-01", Status: InstallmentDue}}, DueOverdue},
		{"today", []Installment{{DueDate: "2025-03-10", Status: InstallmentDue}}, DueToday},
		{"in three days", []Installment{{DueDate: "2025-03-13", Status: InstallmentDue}}, DueSoon},
		{"in a week", []Installment{{DueDate: "2025-03-17", Status: InstallmentDue}}, DueWeek},
		{"far future", []Installment{{DueDate: "2025-06-01", Status: InstallmentDue}}, DueFuture},
		{
			"next unpaid decides",
			[]Installment{
				{DueDate: "2025-02-01", Status: InstallmentPaid},
				{DueDate: "2025-06-01", Status: InstallmentDue},
				{DueDate: "2025-03-12", Status: InstallmentDue},
			},
			DueSoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDueCategory(tt.installments, now))
		})
	}
}

func TestCashBalance(t *testing.T) {
	entries := []CashEntry{
		{AmountCents: 500000, Operation: CashAdvanceExpense},
		{AmountCents: 100000, Operation: CashUsedAdvance},
		{AmountCents: 200000, Operation: CashContractPayment},
	}
	assert.Equal(t, int64(200000), CashBalance(entries))
	assert.Equal(t, int64(0), CashBalance(nil))
}

func TestExpenseNormalize(t *testing.T) {
	e := Expense{Source: SourceFromCash, Status: ExpenseCollected, CollectedOn: "2025-01-01"}
	e.Normalize()
	assert.Equal(t, ExpensePending, e.Status)
	assert.Empty(t, e.CollectedOn)

	office := Expense{Source: SourceOffice}
	office.Normalize()
	assert.Equal(t, ExpensePending, office.Status)

	collected := Expense{Source: SourceOffice, Status: ExpenseCollected, CollectedOn: "2025-01-02"}
	collected.Normalize()
	assert.Equal(t, "2025-01-02", collected.CollectedOn)
}
