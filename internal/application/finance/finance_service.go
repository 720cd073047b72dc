package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/finance"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/shared/valueobject"
	"github.com/takibi/backend/internal/domain/timeline"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

// Service orchestrates the finance engine over one table set. Every
// user action runs in a single transaction; any mutation that can move
// the derived totals recomputes them before the commit. The same type
// serves case-bound records and the standalone twin tables.
type Service struct {
	db       *gorm.DB
	external bool
	scope    timeline.Scope
	user     string
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the finance service over the case-bound tables.
func NewService(db *gorm.DB, user string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		scope:  timeline.ScopeFinance,
		user:   user,
		logger: logger,
		now:    time.Now,
	}
}

// NewExternalService creates the finance service over the standalone
// twin tables.
func NewExternalService(db *gorm.DB, user string, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		external: true,
		scope:    timeline.ScopeExternalFinance,
		user:     user,
		logger:   logger,
		now:      time.Now,
	}
}

// repo binds a repository over this service's table set to the given
// handle, which may be a transaction.
func (s *Service) repo(tx *gorm.DB) *persistence.GormFinanceRepository {
	if s.external {
		return persistence.NewGormExternalFinanceRepository(tx)
	}
	return persistence.NewGormFinanceRepository(tx)
}

func (s *Service) today() string {
	return s.now().Format(valueobject.ISODateLayout)
}

// note appends one finance timeline entry inside the transaction.
func (s *Service) note(ctx context.Context, tx *gorm.DB, recordID int64, body string) error {
	return persistence.NewGormTimelineRepository(tx).Append(ctx, &timeline.Entry{
		Scope:   s.scope,
		OwnerID: recordID,
		User:    s.user,
		Kind:    timeline.KindFinanceNote,
		Body:    body,
	})
}

// recompute rewrites the derived-totals cache from the component rows.
// Callers invoke it inside their transaction, after their writes.
func (s *Service) recompute(ctx context.Context, tx *gorm.DB, recordID int64) error {
	repo := s.repo(tx)
	rec, err := repo.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}
	installments, err := repo.ListInstallments(ctx, recordID)
	if err != nil {
		return err
	}
	payments, err := repo.ListPayments(ctx, recordID)
	if err != nil {
		return err
	}
	expenses, err := repo.ListExpenses(ctx, recordID)
	if err != nil {
		return err
	}
	totals := finance.ComputeTotals(rec, installments, payments, expenses, s.now())
	return repo.SaveTotals(ctx, recordID, totals)
}

// ===================== Records =====================

// GetContract returns the full record including the derived totals.
func (s *Service) GetContract(ctx context.Context, recordID int64) (*finance.Record, error) {
	return s.repo(s.db).GetRecord(ctx, recordID)
}

// EnsureRecordForCase returns the finance record of a case, creating a
// bare one on first use. Not available on the external service.
func (s *Service) EnsureRecordForCase(ctx context.Context, caseID int64) (*finance.Record, error) {
	if s.external {
		return nil, shared.ErrInvalidInput
	}
	rec, err := s.repo(s.db).GetRecordByCase(ctx, caseID)
	if err == nil {
		return rec, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	rec = &finance.Record{CaseID: caseID}
	if err := s.repo(s.db).CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// QuickCreateExternal inserts a bare standalone record so the editor
// dialog has a row to work on. An abandoned row is removed by
// DeleteRecord once the dialog closes without identity.
func (s *Service) QuickCreateExternal(ctx context.Context) (*finance.Record, error) {
	if !s.external {
		return nil, shared.ErrInvalidInput
	}
	rec := &finance.Record{}
	if err := s.repo(s.db).CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateContract rewrites the contract columns and recomputes.
func (s *Service) UpdateContract(ctx context.Context, rec *finance.Record) (*finance.Record, error) {
	var updated *finance.Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		if err := repo.UpdateContract(ctx, rec); err != nil {
			return err
		}
		if err := s.recompute(ctx, tx, rec.ID); err != nil {
			return err
		}
		if err := s.note(ctx, tx, rec.ID, "Sözleşme bilgileri güncellendi"); err != nil {
			return err
		}
		var err error
		updated, err = repo.GetRecord(ctx, rec.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecord removes a record with all component rows.
func (s *Service) DeleteRecord(ctx context.Context, recordID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo(tx).DeleteRecord(ctx, recordID)
	})
}

// DeleteIfAbandoned removes a quick-created external record when both
// identity fields are still empty, and reports whether it did.
func (s *Service) DeleteIfAbandoned(ctx context.Context, recordID int64) (bool, error) {
	rec, err := s.repo(s.db).GetRecord(ctx, recordID)
	if err != nil {
		return false, err
	}
	if !rec.IsAbandoned() {
		return false, nil
	}
	return true, s.DeleteRecord(ctx, recordID)
}

// ===================== Plan & installments =====================

// PlanState is the plan header with its installments, ordered by
// sequence. Plan is nil when the record has none.
type PlanState struct {
	Plan         *finance.Plan         `json:"plan"`
	Installments []finance.Installment `json:"installments"`
}

// GetPlan returns the plan of a record.
func (s *Service) GetPlan(ctx context.Context, recordID int64) (*PlanState, error) {
	repo := s.repo(s.db)
	plan, err := repo.GetPlan(ctx, recordID)
	if err != nil {
		return nil, err
	}
	installments, err := repo.ListInstallments(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return &PlanState{Plan: plan, Installments: installments}, nil
}

// GenerateInstallments previews the equal-share rows a plan would
// produce for a record. Nothing is persisted.
func (s *Service) GenerateInstallments(ctx context.Context, recordID int64, plan *finance.Plan) ([]finance.Installment, error) {
	rec, err := s.repo(s.db).GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return finance.GenerateInstallments(rec, plan)
}

// SavePlan persists the plan header and the given installments as the
// desired state: rows missing from the list are deleted, the rest
// inserted or rewritten. With syncPayments the mirror payments are
// reconciled against the paid flags in the same transaction.
func (s *Service) SavePlan(ctx context.Context, recordID int64, plan *finance.Plan, installments []finance.Installment, syncPayments bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		if _, err := repo.GetRecord(ctx, recordID); err != nil {
			return err
		}

		plan.RecordID = recordID
		if err := repo.SavePlanHeader(ctx, plan); err != nil {
			return err
		}

		existing, err := repo.ListInstallments(ctx, recordID)
		if err != nil {
			return err
		}
		keep := make(map[int64]bool, len(installments))
		for i := range installments {
			if installments[i].ID != 0 {
				keep[installments[i].ID] = true
			}
		}
		for i := range existing {
			if keep[existing[i].ID] {
				continue
			}
			if err := repo.DeletePaymentsByInstallment(ctx, existing[i].ID); err != nil {
				return err
			}
			if err := repo.DeleteInstallment(ctx, existing[i].ID); err != nil {
				return err
			}
		}

		for i := range installments {
			inst := &installments[i]
			inst.RecordID = recordID
			if inst.Status == finance.InstallmentPaid && inst.PaidOn == "" {
				inst.PaidOn = s.today()
			}
			if inst.Status != finance.InstallmentPaid {
				inst.PaidOn = ""
			}
			if inst.ID == 0 {
				if err := repo.InsertInstallment(ctx, inst); err != nil {
					return err
				}
			} else if err := repo.UpdateInstallment(ctx, inst); err != nil {
				return err
			}
			if syncPayments {
				if err := s.syncInstallmentPayment(ctx, repo, inst); err != nil {
					return err
				}
			}
		}

		if err := s.recompute(ctx, tx, recordID); err != nil {
			return err
		}
		return s.note(ctx, tx, recordID,
			fmt.Sprintf("Taksit planı kaydedildi (%d taksit)", len(installments)))
	})
}

// syncInstallmentPayment makes the mirror payment set agree with one
// installment's paid flag.
func (s *Service) syncInstallmentPayment(ctx context.Context, repo *persistence.GormFinanceRepository, inst *finance.Installment) error {
	mirror, err := repo.FindPaymentByInstallment(ctx, inst.ID)
	if err != nil {
		return err
	}
	if inst.Status == finance.InstallmentPaid {
		if mirror != nil {
			return nil
		}
		id := inst.ID
		return repo.InsertPayment(ctx, &finance.Payment{
			RecordID:      inst.RecordID,
			Date:          inst.PaidOn,
			AmountCents:   inst.AmountCents,
			Method:        finance.MethodInstallment,
			Note:          fmt.Sprintf("%d. taksit", inst.Seq),
			InstallmentID: &id,
		})
	}
	if mirror == nil {
		return nil
	}
	return repo.DeletePaymentsByInstallment(ctx, inst.ID)
}

// ResetPlan deletes the installments of a record and reports how many
// went. keepPaid leaves the paid rows and their mirror payments in
// place; without it the mirrors of the deleted paid rows go too.
func (s *Service) ResetPlan(ctx context.Context, recordID int64, keepPaid bool) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		if !keepPaid {
			existing, err := repo.ListInstallments(ctx, recordID)
			if err != nil {
				return err
			}
			for i := range existing {
				if existing[i].Status != finance.InstallmentPaid {
					continue
				}
				if err := repo.DeletePaymentsByInstallment(ctx, existing[i].ID); err != nil {
					return err
				}
			}
			if err := repo.DeletePlan(ctx, recordID); err != nil {
				return err
			}
		}
		var err error
		deleted, err = repo.DeleteInstallments(ctx, recordID, keepPaid)
		if err != nil {
			return err
		}
		if err := s.recompute(ctx, tx, recordID); err != nil {
			return err
		}
		return s.note(ctx, tx, recordID,
			fmt.Sprintf("Taksit planı sıfırlandı (%d taksit silindi)", deleted))
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// SetInstallmentPaid toggles one installment. Marking it paid creates
// exactly one mirror payment linked by installment id, amount equal to
// the installment, date defaulting to today. Marking it unpaid deletes
// that payment. Either direction recomputes the totals.
func (s *Service) SetInstallmentPaid(ctx context.Context, installmentID int64, paid bool, paidOn string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		inst, err := repo.GetInstallment(ctx, installmentID)
		if err != nil {
			return err
		}

		switch {
		case paid && inst.Status != finance.InstallmentPaid:
			if paidOn == "" {
				paidOn = s.today()
			}
			inst.Status = finance.InstallmentPaid
			inst.PaidOn = paidOn
			if err := repo.UpdateInstallment(ctx, inst); err != nil {
				return err
			}
			id := inst.ID
			if err := repo.InsertPayment(ctx, &finance.Payment{
				RecordID:      inst.RecordID,
				Date:          paidOn,
				AmountCents:   inst.AmountCents,
				Method:        finance.MethodInstallment,
				Note:          fmt.Sprintf("%d. taksit", inst.Seq),
				InstallmentID: &id,
			}); err != nil {
				return err
			}
			if err := s.note(ctx, tx, inst.RecordID, fmt.Sprintf(
				"%d. taksit ödendi (%s)", inst.Seq, valueobject.FormatCents(inst.AmountCents))); err != nil {
				return err
			}

		case !paid && inst.Status == finance.InstallmentPaid:
			inst.Status = finance.InstallmentDue
			inst.PaidOn = ""
			if err := repo.UpdateInstallment(ctx, inst); err != nil {
				return err
			}
			if err := repo.DeletePaymentsByInstallment(ctx, inst.ID); err != nil {
				return err
			}
			if err := s.note(ctx, tx, inst.RecordID, fmt.Sprintf(
				"%d. taksit ödemesi geri alındı", inst.Seq)); err != nil {
				return err
			}

		default:
			return nil // already in the requested state
		}

		return s.recompute(ctx, tx, inst.RecordID)
	})
}

// ===================== Payments =====================

// ListPayments returns the payments of a record, oldest first.
func (s *Service) ListPayments(ctx context.Context, recordID int64) ([]finance.Payment, error) {
	return s.repo(s.db).ListPayments(ctx, recordID)
}

// AddPayment inserts a manual payment and recomputes.
func (s *Service) AddPayment(ctx context.Context, p *finance.Payment) error {
	if p.AmountCents <= 0 {
		return shared.ErrInvalidMoney
	}
	if p.Date == "" {
		p.Date = s.today()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo(tx).InsertPayment(ctx, p); err != nil {
			return err
		}
		if err := s.recompute(ctx, tx, p.RecordID); err != nil {
			return err
		}
		return s.note(ctx, tx, p.RecordID, fmt.Sprintf(
			"Ödeme eklendi: %s (%s)", valueobject.FormatCents(p.AmountCents), p.Method))
	})
}

// UpdatePayment rewrites a manual payment and recomputes. Automatic
// rows belong to their source and are refused.
func (s *Service) UpdatePayment(ctx context.Context, p *finance.Payment) error {
	prior, err := s.repo(s.db).GetPayment(ctx, p.ID)
	if err != nil {
		return err
	}
	if prior.Method.IsAutomatic() {
		return shared.ErrConflict
	}
	if p.AmountCents <= 0 {
		return shared.ErrInvalidMoney
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo(tx).UpdatePayment(ctx, p); err != nil {
			return err
		}
		return s.recompute(ctx, tx, p.RecordID)
	})
}

// DeletePayment removes a manual payment. The mirrors written by the
// installment and cash flows can only disappear with their source.
func (s *Service) DeletePayment(ctx context.Context, paymentID int64) error {
	p, err := s.repo(s.db).GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.Method.IsAutomatic() {
		return shared.ErrConflict
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo(tx).DeletePayment(ctx, paymentID); err != nil {
			return err
		}
		if err := s.recompute(ctx, tx, p.RecordID); err != nil {
			return err
		}
		return s.note(ctx, tx, p.RecordID, fmt.Sprintf(
			"Ödeme silindi: %s", valueobject.FormatCents(p.AmountCents)))
	})
}

// ===================== Expenses =====================

// ListExpenses returns the expenses of a record, oldest first.
func (s *Service) ListExpenses(ctx context.Context, recordID int64) ([]finance.Expense, error) {
	return s.repo(s.db).ListExpenses(ctx, recordID)
}

// AddExpense inserts an expense and recomputes. A from-cash expense
// also writes the advance-use entry into the client cash ledger.
func (s *Service) AddExpense(ctx context.Context, e *finance.Expense) error {
	if e.AmountCents <= 0 {
		return shared.ErrInvalidMoney
	}
	if e.Date == "" {
		e.Date = s.today()
	}
	e.Normalize()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		if err := repo.InsertExpense(ctx, e); err != nil {
			return err
		}
		if e.Source == finance.SourceFromCash {
			if err := repo.InsertCashEntry(ctx, &finance.CashEntry{
				RecordID:    e.RecordID,
				Date:        e.Date,
				AmountCents: e.AmountCents,
				Operation:   finance.CashUsedAdvance,
				Note:        fmt.Sprintf("Masraf: %s", e.Item),
			}); err != nil {
				return err
			}
		}
		if err := s.recompute(ctx, tx, e.RecordID); err != nil {
			return err
		}
		return s.note(ctx, tx, e.RecordID, fmt.Sprintf(
			"Masraf eklendi: %s (%s)", e.Item, valueobject.FormatCents(e.AmountCents)))
	})
}

// UpdateExpense rewrites an expense and keeps its cash mirror in step
// with the source flag and the (date, amount) pair.
func (s *Service) UpdateExpense(ctx context.Context, e *finance.Expense) error {
	if e.AmountCents <= 0 {
		return shared.ErrInvalidMoney
	}
	e.Normalize()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		prior, err := repo.GetExpense(ctx, e.ID)
		if err != nil {
			return err
		}
		if err := repo.UpdateExpense(ctx, e); err != nil {
			return err
		}

		if prior.Source == finance.SourceFromCash {
			if err := s.deleteCashMirror(ctx, repo, prior); err != nil {
				return err
			}
		}
		if e.Source == finance.SourceFromCash {
			if err := repo.InsertCashEntry(ctx, &finance.CashEntry{
				RecordID:    e.RecordID,
				Date:        e.Date,
				AmountCents: e.AmountCents,
				Operation:   finance.CashUsedAdvance,
				Note:        fmt.Sprintf("Masraf: %s", e.Item),
			}); err != nil {
				return err
			}
		}
		return s.recompute(ctx, tx, e.RecordID)
	})
}

// DeleteExpense removes an expense; a from-cash expense takes its
// advance-use ledger entry with it.
func (s *Service) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		e, err := repo.GetExpense(ctx, expenseID)
		if err != nil {
			return err
		}
		if err := repo.DeleteExpense(ctx, expenseID); err != nil {
			return err
		}
		if e.Source == finance.SourceFromCash {
			if err := s.deleteCashMirror(ctx, repo, e); err != nil {
				return err
			}
		}
		if err := s.recompute(ctx, tx, e.RecordID); err != nil {
			return err
		}
		return s.note(ctx, tx, e.RecordID, fmt.Sprintf("Masraf silindi: %s", e.Item))
	})
}

// deleteCashMirror drops the advance-use entry matching an expense by
// (date, amount). A missing mirror is not an error; old rows predate
// the mirroring.
func (s *Service) deleteCashMirror(ctx context.Context, repo *persistence.GormFinanceRepository, e *finance.Expense) error {
	entry, err := repo.FindCashByMatch(ctx, e.RecordID, e.Date, e.AmountCents, finance.CashUsedAdvance)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	return repo.DeleteCashEntry(ctx, entry.ID)
}

// ===================== Client cash =====================

// ListCash returns the cash ledger of a record, oldest first.
func (s *Service) ListCash(ctx context.Context, recordID int64) ([]finance.CashEntry, error) {
	return s.repo(s.db).ListCash(ctx, recordID)
}

// CashBalance returns inflows minus outflows over the ledger.
func (s *Service) CashBalance(ctx context.Context, recordID int64) (int64, error) {
	entries, err := s.repo(s.db).ListCash(ctx, recordID)
	if err != nil {
		return 0, err
	}
	return finance.CashBalance(entries), nil
}

// AddCashEntry inserts a ledger row and recomputes. A contract payment
// from the cash account mirrors into the payment list.
func (s *Service) AddCashEntry(ctx context.Context, e *finance.CashEntry) error {
	if !e.Operation.IsValid() {
		return shared.ErrInvalidInput
	}
	if e.AmountCents <= 0 {
		return shared.ErrInvalidMoney
	}
	if e.Date == "" {
		e.Date = s.today()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		if err := repo.InsertCashEntry(ctx, e); err != nil {
			return err
		}
		if e.Operation == finance.CashContractPayment {
			if err := repo.InsertPayment(ctx, &finance.Payment{
				RecordID:    e.RecordID,
				Date:        e.Date,
				AmountCents: e.AmountCents,
				Method:      finance.MethodFromCash,
				Note:        "Kasadan sözleşme ödemesi",
			}); err != nil {
				return err
			}
		}
		if err := s.recompute(ctx, tx, e.RecordID); err != nil {
			return err
		}
		return s.note(ctx, tx, e.RecordID, fmt.Sprintf(
			"Kasa hareketi: %s %s", e.Operation, valueobject.FormatCents(e.AmountCents)))
	})
}

// DeleteCashEntry removes a ledger row. Advance-use rows belong to
// their expense and are refused; a contract payment takes its payment
// mirror with it, matched by (date, amount).
func (s *Service) DeleteCashEntry(ctx context.Context, entryID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo(tx)
		e, err := repo.GetCashEntry(ctx, entryID)
		if err != nil {
			return err
		}
		if e.Operation.IsAutomatic() {
			return shared.ErrConflict
		}
		if err := repo.DeleteCashEntry(ctx, entryID); err != nil {
			return err
		}
		if e.Operation == finance.CashContractPayment {
			mirror, err := repo.FindPaymentByMatch(ctx, e.RecordID, e.Date, e.AmountCents, finance.MethodFromCash)
			if err != nil {
				return err
			}
			if mirror != nil {
				if err := repo.DeletePayment(ctx, mirror.ID); err != nil {
					return err
				}
			}
		}
		return s.recompute(ctx, tx, e.RecordID)
	})
}

// ===================== Timeline =====================

// AppendEvent writes one manual entry onto a record's finance timeline.
func (s *Service) AppendEvent(ctx context.Context, recordID int64, title, body string) error {
	if body == "" {
		return shared.ErrInvalidInput
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo(tx).GetRecord(ctx, recordID); err != nil {
			return err
		}
		return persistence.NewGormTimelineRepository(tx).Append(ctx, &timeline.Entry{
			Scope:   s.scope,
			OwnerID: recordID,
			User:    s.user,
			Kind:    timeline.KindManual,
			Title:   title,
			Body:    body,
		})
	})
}

// Timeline returns the audit entries of one record, newest first.
func (s *Service) Timeline(ctx context.Context, recordID int64) ([]timeline.Entry, error) {
	return persistence.NewGormTimelineRepository(s.db).ListByOwner(ctx, s.scope, recordID)
}

// ===================== Overview =====================

// Overview is one row of the finance list: the record with its cached
// totals plus the read-time extras.
type Overview struct {
	Record      finance.Record      `json:"record"`
	DueCategory finance.DueCategory `json:"due_category"`
	CashBalance int64               `json:"cash_balance_cents"`
}

// Summary aggregates totals over a set of records.
type Summary struct {
	TotalContractCents int64 `json:"total_contract_cents"`
	CollectedCents     int64 `json:"collected_cents"`
	ExpenseTotalCents  int64 `json:"expense_total_cents"`
	RemainingCents     int64 `json:"remaining_cents"`
}

// ListOverview returns every record with its due-category tag and cash
// balance, newest first.
func (s *Service) ListOverview(ctx context.Context) ([]Overview, error) {
	repo := s.repo(s.db)
	records, err := repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	overviews := make([]Overview, 0, len(records))
	for i := range records {
		installments, err := repo.ListInstallments(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		cash, err := repo.ListCash(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, Overview{
			Record:      records[i],
			DueCategory: finance.ComputeDueCategory(installments, now),
			CashBalance: finance.CashBalance(cash),
		})
	}
	return overviews, nil
}

// Summarize aggregates the cached totals over the given record ids, or
// over every record when ids is empty.
func (s *Service) Summarize(ctx context.Context, ids []int64) (*Summary, error) {
	records, err := s.repo(s.db).ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var sum Summary
	for i := range records {
		if len(ids) > 0 && !wanted[records[i].ID] {
			continue
		}
		sum.TotalContractCents += records[i].TotalContractCents
		sum.CollectedCents += records[i].CollectedCents
		sum.ExpenseTotalCents += records[i].ExpenseTotalCents
		sum.RemainingCents += records[i].RemainingCents
	}
	return &sum, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
