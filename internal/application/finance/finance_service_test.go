package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/finance"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/timeline"
	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

var testNow = time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := persistence.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.New(db.DB, zap.NewNop()).Bootstrap())

	svc := NewService(db.DB, "avukat", zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, db.DB
}

// seedContract builds the S1 contract: 10.000,00 fixed, 10% of
// 50.000,00, five monthly installments from 2025-01-15.
func seedContract(t *testing.T, svc *Service) *finance.Record {
	t.Helper()
	ctx := context.Background()

	rec, err := svc.EnsureRecordForCase(ctx, 1)
	require.NoError(t, err)

	rec.FixedFeeCents = 1_000_000
	rec.PercentRate = 10
	rec.PercentBaseCents = 5_000_000
	rec.PercentDeferred = false
	updated, err := svc.UpdateContract(ctx, rec)
	require.NoError(t, err)

	plan := &finance.Plan{Count: 5, Period: finance.PeriodMonth, DueDay: 15, StartDate: "2025-01-15"}
	installments, err := svc.GenerateInstallments(ctx, updated.ID, plan)
	require.NoError(t, err)
	require.Len(t, installments, 5)
	require.NoError(t, svc.SavePlan(ctx, updated.ID, plan, installments, false))

	return updated
}

func TestContractPlanAndTotals(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	state, err := svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, state.Plan)
	require.Len(t, state.Installments, 5)
	for _, inst := range state.Installments {
		assert.Equal(t, int64(300_000), inst.AmountCents)
	}
	assert.Equal(t, "2025-01-15", state.Installments[0].DueDate)
	assert.Equal(t, "2025-05-15", state.Installments[4].DueDate)

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), got.TotalContractCents)
	assert.Equal(t, int64(0), got.CollectedCents)
	assert.Equal(t, int64(1_500_000), got.RemainingCents)
}

func TestInstallmentPaidToggle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	state, err := svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	second := state.Installments[1]

	require.NoError(t, svc.SetInstallmentPaid(ctx, second.ID, true, "2025-02-15"))

	payments, err := svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, finance.MethodInstallment, payments[0].Method)
	assert.Equal(t, int64(300_000), payments[0].AmountCents)
	assert.Equal(t, "2025-02-15", payments[0].Date)
	require.NotNil(t, payments[0].InstallmentID)
	assert.Equal(t, second.ID, *payments[0].InstallmentID)

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300_000), got.CollectedCents)
	assert.Equal(t, int64(1_200_000), got.RemainingCents)

	// toggling back is the inverse on the payment set
	require.NoError(t, svc.SetInstallmentPaid(ctx, second.ID, false, ""))

	payments, err = svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	got, err = svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CollectedCents)
	assert.Equal(t, int64(1_500_000), got.RemainingCents)

	inst, err := svc.repo(svc.db).GetInstallment(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.InstallmentDue, inst.Status)
	assert.Empty(t, inst.PaidOn)
}

func TestContractPaymentCashMirror(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	entry := &finance.CashEntry{
		RecordID:    rec.ID,
		Date:        "2025-01-20",
		AmountCents: 200_000,
		Operation:   finance.CashContractPayment,
	}
	require.NoError(t, svc.AddCashEntry(ctx, entry))

	payments, err := svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, finance.MethodFromCash, payments[0].Method)
	assert.Equal(t, int64(200_000), payments[0].AmountCents)

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200_000), got.CollectedCents)

	balance, err := svc.CashBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-200_000), balance)

	require.NoError(t, svc.DeleteCashEntry(ctx, entry.ID))

	payments, err = svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	got, err = svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CollectedCents)

	balance, err = svc.CashBalance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestFromCashExpenseMirror(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	exp := &finance.Expense{
		RecordID:    rec.ID,
		Item:        "Harç",
		AmountCents: 50_000,
		Source:      finance.SourceFromCash,
		Date:        "2025-01-22",
		Status:      finance.ExpenseCollected, // must be coerced back to pending
	}
	require.NoError(t, svc.AddExpense(ctx, exp))

	cash, err := svc.ListCash(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.Equal(t, finance.CashUsedAdvance, cash[0].Operation)
	assert.Equal(t, "2025-01-22", cash[0].Date)
	assert.Equal(t, int64(50_000), cash[0].AmountCents)

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), got.ExpenseTotalCents)
	assert.Equal(t, int64(0), got.ExpenseCollectedCents)
	// from-cash expenses never touch the remaining balance
	assert.Equal(t, int64(1_500_000), got.RemainingCents)

	require.NoError(t, svc.DeleteExpense(ctx, exp.ID))

	cash, err = svc.ListCash(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, cash)
}

func TestOfficeExpenseRemainingBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	exp := &finance.Expense{
		RecordID:    rec.ID,
		Item:        "Bilirkişi ücreti",
		AmountCents: 75_000,
		Source:      finance.SourceOffice,
		Date:        "2025-01-25",
		Status:      finance.ExpensePending,
	}
	require.NoError(t, svc.AddExpense(ctx, exp))

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_575_000), got.RemainingCents)

	exp.Status = finance.ExpenseCollected
	exp.CollectedOn = "2025-02-01"
	require.NoError(t, svc.UpdateExpense(ctx, exp))

	got, err = svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(75_000), got.ExpenseCollectedCents)
	assert.Equal(t, int64(1_500_000), got.RemainingCents)
}

func TestAutomaticRowsRefuseDirectDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	state, err := svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SetInstallmentPaid(ctx, state.Installments[0].ID, true, ""))

	payments, err := svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.ErrorIs(t, svc.DeletePayment(ctx, payments[0].ID), shared.ErrConflict)

	exp := &finance.Expense{
		RecordID: rec.ID, Item: "Harç", AmountCents: 10_000,
		Source: finance.SourceFromCash, Date: "2025-01-22",
	}
	require.NoError(t, svc.AddExpense(ctx, exp))
	cash, err := svc.ListCash(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.ErrorIs(t, svc.DeleteCashEntry(ctx, cash[0].ID), shared.ErrConflict)
}

func TestResetPlanKeepsPaid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	state, err := svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SetInstallmentPaid(ctx, state.Installments[0].ID, true, "2025-01-15"))

	deleted, err := svc.ResetPlan(ctx, rec.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	state, err = svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, state.Installments, 1)
	assert.Equal(t, finance.InstallmentPaid, state.Installments[0].Status)

	payments, err := svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	deleted, err = svc.ResetPlan(ctx, rec.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	payments, err = svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestSavePlanSyncsPayments(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	state, err := svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)

	// mark two rows paid through the editor, persist with sync
	state.Installments[0].Status = finance.InstallmentPaid
	state.Installments[0].PaidOn = "2025-01-15"
	state.Installments[1].Status = finance.InstallmentPaid
	state.Installments[1].PaidOn = "2025-02-15"
	require.NoError(t, svc.SavePlan(ctx, rec.ID, state.Plan, state.Installments, true))

	payments, err := svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	// un-mark one; its mirror must go, the other must stay unique
	state, err = svc.GetPlan(ctx, rec.ID)
	require.NoError(t, err)
	state.Installments[1].Status = finance.InstallmentDue
	require.NoError(t, svc.SavePlan(ctx, rec.ID, state.Plan, state.Installments, true))

	payments, err = svc.ListPayments(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].InstallmentID)
	assert.Equal(t, state.Installments[0].ID, *payments[0].InstallmentID)

	got, err := svc.GetContract(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300_000), got.CollectedCents)
}

func TestExternalQuickCreateAndAbandon(t *testing.T) {
	db, err := persistence.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.New(db.DB, zap.NewNop()).Bootstrap())

	svc := NewExternalService(db.DB, "avukat", zap.NewNop())
	svc.now = func() time.Time { return testNow }
	ctx := context.Background()

	rec, err := svc.QuickCreateExternal(ctx)
	require.NoError(t, err)
	require.NotZero(t, rec.ID)

	deleted, err := svc.DeleteIfAbandoned(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = svc.GetContract(ctx, rec.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// identity set: the record survives the dialog closing
	rec, err = svc.QuickCreateExternal(ctx)
	require.NoError(t, err)
	rec.ClientName = "Harici Müvekkil"
	_, err = svc.UpdateContract(ctx, rec)
	require.NoError(t, err)

	deleted, err = svc.DeleteIfAbandoned(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestOverviewDueCategoryAndSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	overviews, err := svc.ListOverview(ctx)
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	// next unpaid installment is 2025-01-15, five days before testNow
	assert.Equal(t, finance.DueOverdue, overviews[0].DueCategory)
	assert.Equal(t, rec.ID, overviews[0].Record.ID)

	sum, err := svc.Summarize(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), sum.TotalContractCents)
	assert.Equal(t, int64(1_500_000), sum.RemainingCents)
}

func TestTimelineManualEvent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	require.NoError(t, svc.AppendEvent(ctx, rec.ID, "Görüşme", "Müvekkil ile ödeme planı görüşüldü"))

	entries, err := svc.Timeline(ctx, rec.ID)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, timeline.KindManual, entries[0].Kind)
	assert.Equal(t, "Görüşme", entries[0].Title)
	assert.Equal(t, "Müvekkil ile ödeme planı görüşüldü", entries[0].Body)
	assert.Equal(t, "avukat", entries[0].User)

	// the standalone twin tables keep their own log
	external := NewExternalService(db, "avukat", zap.NewNop())
	other, err := external.Timeline(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAppendEventRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	rec := seedContract(t, svc)

	assert.ErrorIs(t, svc.AppendEvent(ctx, rec.ID, "Görüşme", ""), shared.ErrInvalidInput)
	assert.ErrorIs(t, svc.AppendEvent(ctx, rec.ID+99, "", "kayıt yok"), shared.ErrNotFound)
}
