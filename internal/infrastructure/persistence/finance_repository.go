package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/finance"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// GormFinanceRepository implements finance storage over one table set.
// The same repository serves case-bound and external records; the
// table set decides which twin it touches. Repositories are cheap and
// are re-created on a transaction handle inside service transactions.
type GormFinanceRepository struct {
	db     *gorm.DB
	tables models.FinanceTables
}

// NewGormFinanceRepository creates a repository over the case-bound tables.
func NewGormFinanceRepository(db *gorm.DB) *GormFinanceRepository {
	return &GormFinanceRepository{db: db, tables: models.CaseFinanceTables}
}

// NewGormExternalFinanceRepository creates a repository over the
// standalone twin tables.
func NewGormExternalFinanceRepository(db *gorm.DB) *GormFinanceRepository {
	return &GormFinanceRepository{db: db, tables: models.ExternalFinanceTables}
}

// Tables exposes the table set, used by the bootstrap and triggers.
func (r *GormFinanceRepository) Tables() models.FinanceTables {
	return r.tables
}

func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return errors.Join(shared.ErrStore, err)
}

// ===================== Records =====================

// CreateRecord inserts a record and fills its id.
func (r *GormFinanceRepository) CreateRecord(ctx context.Context, rec *finance.Record) error {
	var model models.FinanceRecordModel
	model.FromDomain(rec)
	if err := r.db.WithContext(ctx).Table(r.tables.Records).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	rec.ID = model.ID
	return nil
}

// GetRecord finds a record by its id.
func (r *GormFinanceRepository) GetRecord(ctx context.Context, id int64) (*finance.Record, error) {
	var model models.FinanceRecordModel
	if err := r.db.WithContext(ctx).Table(r.tables.Records).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// GetRecordByCase finds the record bound to a case.
func (r *GormFinanceRepository) GetRecordByCase(ctx context.Context, caseID int64) (*finance.Record, error) {
	var model models.FinanceRecordModel
	if err := r.db.WithContext(ctx).Table(r.tables.Records).First(&model, "case_id = ?", caseID).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// ListRecords returns every record, newest first.
func (r *GormFinanceRepository) ListRecords(ctx context.Context) ([]finance.Record, error) {
	var rows []models.FinanceRecordModel
	if err := r.db.WithContext(ctx).Table(r.tables.Records).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]finance.Record, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// UpdateContract rewrites the contract columns of a record.
func (r *GormFinanceRepository) UpdateContract(ctx context.Context, rec *finance.Record) error {
	res := r.db.WithContext(ctx).Table(r.tables.Records).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"client_name":           rec.ClientName,
			"buro_takip_no":         rec.BuroTakipNo,
			"esas_no":               rec.EsasNo,
			"fixed_fee_cents":       rec.FixedFeeCents,
			"percent_rate":          rec.PercentRate,
			"percent_base_cents":    rec.PercentBaseCents,
			"percent_deferred":      rec.PercentDeferred,
			"other_party_fee_cents": rec.OtherPartyFeeCents,
			"notes":                 rec.Notes,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveTotals writes the derived-totals cache onto the record row.
func (r *GormFinanceRepository) SaveTotals(ctx context.Context, recordID int64, t finance.Totals) error {
	res := r.db.WithContext(ctx).Table(r.tables.Records).
		Where("id = ?", recordID).
		Updates(map[string]any{
			"total_contract_cents":    t.TotalContractCents,
			"collected_cents":         t.CollectedCents,
			"expense_total_cents":     t.ExpenseTotalCents,
			"expense_collected_cents": t.ExpenseCollectedCents,
			"remaining_cents":         t.RemainingCents,
			"has_overdue_installment": t.HasOverdueInstallment,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteRecord removes a record and all its component rows.
func (r *GormFinanceRepository) DeleteRecord(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	for _, tbl := range []string{
		r.tables.Plans, r.tables.Installments, r.tables.Payments,
		r.tables.Expenses, r.tables.Cash, r.tables.Timeline,
	} {
		col := "record_id"
		if tbl == r.tables.Timeline {
			col = "owner_id"
		}
		if err := db.Table(tbl).Where(col+" = ?", id).Delete(nil).Error; err != nil {
			return storeErr(err)
		}
	}
	res := db.Table(r.tables.Records).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ===================== Plan & installments =====================

// GetPlan returns the plan header, or nil when the record has none.
func (r *GormFinanceRepository) GetPlan(ctx context.Context, recordID int64) (*finance.Plan, error) {
	var model models.PlanModel
	err := r.db.WithContext(ctx).Table(r.tables.Plans).First(&model, "record_id = ?", recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// SavePlanHeader inserts or rewrites the plan header of a record.
func (r *GormFinanceRepository) SavePlanHeader(ctx context.Context, p *finance.Plan) error {
	db := r.db.WithContext(ctx).Table(r.tables.Plans)
	var existing models.PlanModel
	err := db.First(&existing, "record_id = ?", p.RecordID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		var model models.PlanModel
		model.FromDomain(p)
		model.ID = 0
		if err := db.Create(&model).Error; err != nil {
			return storeErr(err)
		}
		p.ID = model.ID
		return nil
	case err != nil:
		return storeErr(err)
	}

	p.ID = existing.ID
	var model models.PlanModel
	model.FromDomain(p)
	if err := db.Where("id = ?", existing.ID).Updates(map[string]any{
		"count":       model.Count,
		"period":      model.Period,
		"due_day":     model.DueDay,
		"start_date":  model.StartDate,
		"description": model.Description,
	}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// DeletePlan drops the plan header of a record, if any.
func (r *GormFinanceRepository) DeletePlan(ctx context.Context, recordID int64) error {
	if err := r.db.WithContext(ctx).Table(r.tables.Plans).
		Where("record_id = ?", recordID).Delete(nil).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// ListInstallments returns the installments of a record ordered by sequence.
func (r *GormFinanceRepository) ListInstallments(ctx context.Context, recordID int64) ([]finance.Installment, error) {
	var rows []models.InstallmentModel
	if err := r.db.WithContext(ctx).Table(r.tables.Installments).
		Where("record_id = ?", recordID).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]finance.Installment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// GetInstallment finds an installment by its id.
func (r *GormFinanceRepository) GetInstallment(ctx context.Context, id int64) (*finance.Installment, error) {
	var model models.InstallmentModel
	if err := r.db.WithContext(ctx).Table(r.tables.Installments).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// InsertInstallment inserts one installment and fills its id.
func (r *GormFinanceRepository) InsertInstallment(ctx context.Context, inst *finance.Installment) error {
	var model models.InstallmentModel
	model.FromDomain(inst)
	if err := r.db.WithContext(ctx).Table(r.tables.Installments).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	inst.ID = model.ID
	return nil
}

// UpdateInstallment rewrites one installment row.
func (r *GormFinanceRepository) UpdateInstallment(ctx context.Context, inst *finance.Installment) error {
	var model models.InstallmentModel
	model.FromDomain(inst)
	res := r.db.WithContext(ctx).Table(r.tables.Installments).
		Where("id = ?", inst.ID).
		Updates(map[string]any{
			"seq":          model.Seq,
			"due_date":     model.DueDate,
			"amount_cents": model.AmountCents,
			"status":       model.Status,
			"paid_on":      model.PaidOn,
			"note":         model.Note,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteInstallment removes one installment row.
func (r *GormFinanceRepository) DeleteInstallment(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Table(r.tables.Installments).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteInstallments removes the installments of a record and reports
// how many went. keepPaid leaves rows in Paid untouched.
func (r *GormFinanceRepository) DeleteInstallments(ctx context.Context, recordID int64, keepPaid bool) (int64, error) {
	q := r.db.WithContext(ctx).Table(r.tables.Installments).Where("record_id = ?", recordID)
	if keepPaid {
		q = q.Where("status <> ?", string(finance.InstallmentPaid))
	}
	res := q.Delete(nil)
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}

// ===================== Payments =====================

// ListPayments returns the payments of a record, oldest first.
func (r *GormFinanceRepository) ListPayments(ctx context.Context, recordID int64) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).Table(r.tables.Payments).
		Where("record_id = ?", recordID).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]finance.Payment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// GetPayment finds a payment by its id.
func (r *GormFinanceRepository) GetPayment(ctx context.Context, id int64) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Table(r.tables.Payments).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// InsertPayment inserts one payment and fills its id.
func (r *GormFinanceRepository) InsertPayment(ctx context.Context, p *finance.Payment) error {
	var model models.PaymentModel
	model.FromDomain(p)
	if err := r.db.WithContext(ctx).Table(r.tables.Payments).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	p.ID = model.ID
	return nil
}

// UpdatePayment rewrites one payment row.
func (r *GormFinanceRepository) UpdatePayment(ctx context.Context, p *finance.Payment) error {
	var model models.PaymentModel
	model.FromDomain(p)
	res := r.db.WithContext(ctx).Table(r.tables.Payments).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"date":           model.Date,
			"amount_cents":   model.AmountCents,
			"method":         model.Method,
			"note":           model.Note,
			"installment_id": model.InstallmentID,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeletePayment removes one payment row.
func (r *GormFinanceRepository) DeletePayment(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Table(r.tables.Payments).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeletePaymentsByInstallment removes the mirror payments of an installment.
func (r *GormFinanceRepository) DeletePaymentsByInstallment(ctx context.Context, installmentID int64) error {
	if err := r.db.WithContext(ctx).Table(r.tables.Payments).
		Where("installment_id = ? AND method = ?", installmentID, string(finance.MethodInstallment)).
		Delete(nil).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindPaymentByInstallment finds the mirror payment of an installment,
// or nil when the installment was never marked paid.
func (r *GormFinanceRepository) FindPaymentByInstallment(ctx context.Context, installmentID int64) (*finance.Payment, error) {
	var model models.PaymentModel
	err := r.db.WithContext(ctx).Table(r.tables.Payments).
		Where("installment_id = ? AND method = ?", installmentID, string(finance.MethodInstallment)).
		Order("id ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// FindPaymentByMatch finds the oldest payment matching (date, amount,
// method) on a record, or nil.
func (r *GormFinanceRepository) FindPaymentByMatch(ctx context.Context, recordID int64, date string, amountCents int64, method finance.PaymentMethod) (*finance.Payment, error) {
	var model models.PaymentModel
	err := r.db.WithContext(ctx).Table(r.tables.Payments).
		Where("record_id = ? AND date = ? AND amount_cents = ? AND method = ?",
			recordID, date, amountCents, string(method)).
		Order("id ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// ===================== Expenses =====================

// ListExpenses returns the expenses of a record, oldest first.
func (r *GormFinanceRepository) ListExpenses(ctx context.Context, recordID int64) ([]finance.Expense, error) {
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).Table(r.tables.Expenses).
		Where("record_id = ?", recordID).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]finance.Expense, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// GetExpense finds an expense by its id.
func (r *GormFinanceRepository) GetExpense(ctx context.Context, id int64) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).Table(r.tables.Expenses).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// InsertExpense inserts one expense and fills its id.
func (r *GormFinanceRepository) InsertExpense(ctx context.Context, e *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(e)
	if err := r.db.WithContext(ctx).Table(r.tables.Expenses).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	e.ID = model.ID
	return nil
}

// UpdateExpense rewrites one expense row.
func (r *GormFinanceRepository) UpdateExpense(ctx context.Context, e *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(e)
	res := r.db.WithContext(ctx).Table(r.tables.Expenses).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"item":         model.Item,
			"amount_cents": model.AmountCents,
			"source":       model.Source,
			"date":         model.Date,
			"status":       model.Status,
			"collected_on": model.CollectedOn,
			"note":         model.Note,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteExpense removes one expense row.
func (r *GormFinanceRepository) DeleteExpense(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Table(r.tables.Expenses).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ===================== Client cash =====================

// ListCash returns the cash ledger of a record, oldest first.
func (r *GormFinanceRepository) ListCash(ctx context.Context, recordID int64) ([]finance.CashEntry, error) {
	var rows []models.CashEntryModel
	if err := r.db.WithContext(ctx).Table(r.tables.Cash).
		Where("record_id = ?", recordID).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]finance.CashEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// GetCashEntry finds a cash entry by its id.
func (r *GormFinanceRepository) GetCashEntry(ctx context.Context, id int64) (*finance.CashEntry, error) {
	var model models.CashEntryModel
	if err := r.db.WithContext(ctx).Table(r.tables.Cash).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// InsertCashEntry inserts one cash row and fills its id.
func (r *GormFinanceRepository) InsertCashEntry(ctx context.Context, e *finance.CashEntry) error {
	var model models.CashEntryModel
	model.FromDomain(e)
	if err := r.db.WithContext(ctx).Table(r.tables.Cash).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	e.ID = model.ID
	return nil
}

// DeleteCashEntry removes one cash row.
func (r *GormFinanceRepository) DeleteCashEntry(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Table(r.tables.Cash).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindCashByMatch finds the oldest cash entry matching (date, amount,
// operation) on a record, or nil.
func (r *GormFinanceRepository) FindCashByMatch(ctx context.Context, recordID int64, date string, amountCents int64, op finance.CashOperation) (*finance.CashEntry, error) {
	var model models.CashEntryModel
	err := r.db.WithContext(ctx).Table(r.tables.Cash).
		Where("record_id = ? AND date = ? AND amount_cents = ? AND operation = ?",
			recordID, date, amountCents, string(op)).
		Order("id ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}
