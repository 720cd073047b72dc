package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takibi/backend/internal/domain/shared"
)

func TestGenerateInstallments(t *testing.T) {
	t.Run("five monthly installments", func(t *testing.T) {
		// 10.000,00 fixed + 10% of 50.000,00 = 15.000,00 total
		r := &Record{ID: 1, FixedFeeCents: 1000000, PercentRate: 10, PercentBaseCents: 5000000}
		p := &Plan{RecordID: 1, Count: 5, Period: PeriodMonth, DueDay: 15, StartDate: "2025-01-15"}

		got, err := GenerateInstallments(r, p)
		require.NoError(t, err)
		require.Len(t, got, 5)

		wantDates := []string{"2025-01-15", "2025-02-15", "2025-03-15", "2025-04-15", "2025-05-15"}
		for i, inst := range got {
			assert.Equal(t, i+1, inst.Seq)
			assert.Equal(t, int64(300000), inst.AmountCents)
			assert.Equal(t, wantDates[i], inst.DueDate)
			assert.Equal(t, InstallmentDue, inst.Status)
		}
	})

	t.Run("single installment takes everything", func(t *testing.T) {
		r := &Record{ID: 1, FixedFeeCents: 123457}
		p := &Plan{Count: 1, Period: PeriodMonth, StartDate: "2025-06-01"}

		got, err := GenerateInstallments(r, p)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(123457), got[0].AmountCents)
		assert.Equal(t, "2025-06-01", got[0].DueDate)
	})

	t.Run("remainder lands on last installment", func(t *testing.T) {
		r := &Record{ID: 1, FixedFeeCents: 1000}
		p := &Plan{Count: 3, Period: PeriodWeek, StartDate: "2025-01-01"}

		got, err := GenerateInstallments(r, p)
		require.NoError(t, err)
		assert.Equal(t, int64(333), got[0].AmountCents)
		assert.Equal(t, int64(333), got[1].AmountCents)
		assert.Equal(t, int64(334), got[2].AmountCents)
		assert.Equal(t, "2025-01-08", got[1].DueDate)
		assert.Equal(t, "2025-01-15", got[2].DueDate)
	})

	t.Run("deferred percentage excluded from amounts", func(t *testing.T) {
		r := &Record{ID: 1, FixedFeeCents: 1000000, PercentRate: 10, PercentBaseCents: 5000000, PercentDeferred: true}
		p := &Plan{Count: 2, Period: PeriodMonth, DueDay: 1, StartDate: "2025-01-01"}

		got, err := GenerateInstallments(r, p)
		require.NoError(t, err)
		assert.Equal(t, int64(500000), got[0].AmountCents)
		assert.Equal(t, int64(500000), got[1].AmountCents)
		// percentage still owed on the contract
		assert.Equal(t, int64(1500000), r.ContractTotalCents())
	})

	t.Run("due day clamped to short months", func(t *testing.T) {
		r := &Record{ID: 1, FixedFeeCents: 300000}
		p := &Plan{Count: 3, Period: PeriodMonth, DueDay: 31, StartDate: "2025-01-31"}

		got, err := GenerateInstallments(r, p)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-31", got[0].DueDate)
		assert.Equal(t, "2025-02-28", got[1].DueDate)
		assert.Equal(t, "2025-03-31", got[2].DueDate)
	})

	t.Run("invalid plans rejected", func(t *testing.T) {
		r := &Record{ID: 1, FixedFeeCents: 1000}
		for _, p := range []*Plan{
			{Count: 0, Period: PeriodMonth, StartDate: "2025-01-01"},
			{Count: -2, Period: PeriodMonth, StartDate: "2025-01-01"},
			{Count: 3, Period: "GUN", StartDate: "2025-01-01"},
			{Count: 3, Period: PeriodMonth, StartDate: "not-a-date"},
		} {
			_, err := GenerateInstallments(r, p)
			assert.ErrorIs(t, err, shared.ErrInvalidPlan)
		}

		// deferred percentage with no fixed fee leaves nothing to plan
		deferred := &Record{ID: 1, PercentRate: 20, PercentBaseCents: 100000, PercentDeferred: true}
		_, err := GenerateInstallments(deferred, &Plan{Count: 2, Period: PeriodMonth, StartDate: "2025-01-01"})
		assert.ErrorIs(t, err, shared.ErrInvalidPlan)
		assert.Equal(t, int64(20000), deferred.ContractTotalCents())
	})
}

func TestInstallmentEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	paid := Installment{Status: InstallmentPaid, DueDate: "2025-01-01"}
	assert.Equal(t, InstallmentPaid, paid.EffectiveStatus(now))

	overdue := Installment{Status: InstallmentDue, DueDate: "2025-03-09"}
	assert.Equal(t, InstallmentOverdue, overdue.EffectiveStatus(now))
	assert.True(t, overdue.IsOverdue(now))

	today := Installment{Status: InstallmentDue, DueDate: "2025-03-10"}
	assert.Equal(t, InstallmentDue, today.EffectiveStatus(now))

	future := Installment{Status: InstallmentDue, DueDate: "2025-04-01"}
	assert.Equal(t, InstallmentDue, future.EffectiveStatus(now))
}
