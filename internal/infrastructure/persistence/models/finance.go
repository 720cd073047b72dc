package models

import (
	"time"

	"github.com/takibi/backend/internal/domain/finance"
)

// Finance models carry no TableName: the same structs serve both the
// case-bound tables and their `_external` twins, selected through
// FinanceTables by the repository.

// FinanceTables names one set of finance tables.
type FinanceTables struct {
	Records      string
	Plans        string
	Installments string
	Payments     string
	Expenses     string
	Cash         string
	Timeline     string
}

// CaseFinanceTables is the table set backing case-bound finance records.
var CaseFinanceTables = FinanceTables{
	Records:      "finance_records",
	Plans:        "installment_plans",
	Installments: "installments",
	Payments:     "payments",
	Expenses:     "expenses",
	Cash:         "client_cash",
	Timeline:     "finance_timeline",
}

// ExternalFinanceTables is the table set backing standalone records.
var ExternalFinanceTables = FinanceTables{
	Records:      "finance_records_external",
	Plans:        "installment_plans_external",
	Installments: "installments_external",
	Payments:     "payments_external",
	Expenses:     "expenses_external",
	Cash:         "client_cash_external",
	Timeline:     "finance_timeline_external",
}

// FinanceRecordModel is the persistence model for a finance record.
// The legacy float fee column is kept so old databases can be upgraded
// in place; runtime math uses only the cents columns.
type FinanceRecordModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CaseID      int64  `gorm:"index"`
	ClientName  string `gorm:"type:varchar(200)"`
	BuroTakipNo string `gorm:"column:buro_takip_no;type:varchar(50)"`
	EsasNo      string `gorm:"column:esas_no;type:varchar(50)"`

	FixedFee           float64 `gorm:"column:ucret"` // legacy float lira
	FixedFeeCents      int64   `gorm:"not null;default:0"`
	PercentRate        float64 `gorm:"not null;default:0"`
	PercentBaseCents   int64   `gorm:"not null;default:0"`
	PercentDeferred    bool    `gorm:"not null;default:false"`
	OtherPartyFeeCents int64   `gorm:"not null;default:0"`
	Notes              string  `gorm:"type:text"`

	TotalContractCents    int64 `gorm:"not null;default:0"`
	CollectedCents        int64 `gorm:"not null;default:0"`
	ExpenseTotalCents     int64 `gorm:"not null;default:0"`
	ExpenseCollectedCents int64 `gorm:"not null;default:0"`
	RemainingCents        int64 `gorm:"not null;default:0"`
	HasOverdueInstallment bool  `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToDomain converts the persistence model to a domain Record.
func (m *FinanceRecordModel) ToDomain() *finance.Record {
	return &finance.Record{
		ID:                    m.ID,
		CaseID:                m.CaseID,
		ClientName:            m.ClientName,
		BuroTakipNo:           m.BuroTakipNo,
		EsasNo:                m.EsasNo,
		FixedFeeCents:         m.FixedFeeCents,
		PercentRate:           m.PercentRate,
		PercentBaseCents:      m.PercentBaseCents,
		PercentDeferred:       m.PercentDeferred,
		OtherPartyFeeCents:    m.OtherPartyFeeCents,
		Notes:                 m.Notes,
		TotalContractCents:    m.TotalContractCents,
		CollectedCents:        m.CollectedCents,
		ExpenseTotalCents:     m.ExpenseTotalCents,
		ExpenseCollectedCents: m.ExpenseCollectedCents,
		RemainingCents:        m.RemainingCents,
		HasOverdueInstallment: m.HasOverdueInstallment,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Record.
func (m *FinanceRecordModel) FromDomain(r *finance.Record) {
	m.ID = r.ID
	m.CaseID = r.CaseID
	m.ClientName = r.ClientName
	m.BuroTakipNo = r.BuroTakipNo
	m.EsasNo = r.EsasNo
	m.FixedFeeCents = r.FixedFeeCents
	m.PercentRate = r.PercentRate
	m.PercentBaseCents = r.PercentBaseCents
	m.PercentDeferred = r.PercentDeferred
	m.OtherPartyFeeCents = r.OtherPartyFeeCents
	m.Notes = r.Notes
	m.TotalContractCents = r.TotalContractCents
	m.CollectedCents = r.CollectedCents
	m.ExpenseTotalCents = r.ExpenseTotalCents
	m.ExpenseCollectedCents = r.ExpenseCollectedCents
	m.RemainingCents = r.RemainingCents
	m.HasOverdueInstallment = r.HasOverdueInstallment
}

// PlanModel is the persistence model for an installment plan header.
type PlanModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	RecordID    int64  `gorm:"uniqueIndex;not null"`
	Count       int    `gorm:"not null"`
	Period      string `gorm:"type:varchar(10);not null"`
	DueDay      int    `gorm:"not null;default:0"`
	StartDate   string `gorm:"type:varchar(10)"`
	Description string `gorm:"type:text"`
}

// ToDomain converts the persistence model to a domain Plan.
func (m *PlanModel) ToDomain() *finance.Plan {
	return &finance.Plan{
		ID:          m.ID,
		RecordID:    m.RecordID,
		Count:       m.Count,
		Period:      finance.PlanPeriod(m.Period),
		DueDay:      m.DueDay,
		StartDate:   m.StartDate,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Plan.
func (m *PlanModel) FromDomain(p *finance.Plan) {
	m.ID = p.ID
	m.RecordID = p.RecordID
	m.Count = p.Count
	m.Period = string(p.Period)
	m.DueDay = p.DueDay
	m.StartDate = p.StartDate
	m.Description = p.Description
}

// InstallmentModel is the persistence model for one installment.
type InstallmentModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	RecordID    int64   `gorm:"index;not null"`
	Seq         int     `gorm:"not null"`
	DueDate     string  `gorm:"type:varchar(10)"`
	Amount      float64 `gorm:"column:tutar"` // legacy float lira
	AmountCents int64   `gorm:"not null;default:0"`
	Status      string  `gorm:"type:varchar(20);not null;default:'ODENECEK'"`
	PaidOn      string  `gorm:"type:varchar(10)"`
	Note        string  `gorm:"type:text"`
}

// ToDomain converts the persistence model to a domain Installment.
func (m *InstallmentModel) ToDomain() *finance.Installment {
	return &finance.Installment{
		ID:          m.ID,
		RecordID:    m.RecordID,
		Seq:         m.Seq,
		DueDate:     m.DueDate,
		AmountCents: m.AmountCents,
		Status:      finance.InstallmentStatus(m.Status),
		PaidOn:      m.PaidOn,
		Note:        m.Note,
	}
}

// FromDomain populates the persistence model from a domain Installment.
func (m *InstallmentModel) FromDomain(i *finance.Installment) {
	m.ID = i.ID
	m.RecordID = i.RecordID
	m.Seq = i.Seq
	m.DueDate = i.DueDate
	m.AmountCents = i.AmountCents
	m.Status = string(i.Status)
	m.PaidOn = i.PaidOn
	m.Note = i.Note
}

// PaymentModel is the persistence model for one payment.
type PaymentModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	RecordID      int64   `gorm:"index;not null"`
	Date          string  `gorm:"type:varchar(10)"`
	Amount        float64 `gorm:"column:tutar"` // legacy float lira
	AmountCents   int64   `gorm:"not null;default:0"`
	Method        string  `gorm:"type:varchar(100)"`
	Note          string  `gorm:"type:text"`
	InstallmentID *int64  `gorm:"index"`
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		ID:            m.ID,
		RecordID:      m.RecordID,
		Date:          m.Date,
		AmountCents:   m.AmountCents,
		Method:        finance.PaymentMethod(m.Method),
		Note:          m.Note,
		InstallmentID: m.InstallmentID,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.ID = p.ID
	m.RecordID = p.RecordID
	m.Date = p.Date
	m.AmountCents = p.AmountCents
	m.Method = string(p.Method)
	m.Note = p.Note
	m.InstallmentID = p.InstallmentID
}

// ExpenseModel is the persistence model for one expense.
type ExpenseModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	RecordID    int64   `gorm:"index;not null"`
	Item        string  `gorm:"type:varchar(200);not null"`
	Amount      float64 `gorm:"column:tutar"` // legacy float lira
	AmountCents int64   `gorm:"not null;default:0"`
	Source      string  `gorm:"type:varchar(20);not null;default:'Ofis'"`
	Date        string  `gorm:"type:varchar(10)"`
	Status      string  `gorm:"type:varchar(20);not null;default:'BEKLIYOR'"`
	CollectedOn string  `gorm:"type:varchar(10)"`
	Note        string  `gorm:"type:text"`
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		ID:          m.ID,
		RecordID:    m.RecordID,
		Item:        m.Item,
		AmountCents: m.AmountCents,
		Source:      finance.ExpenseSource(m.Source),
		Date:        m.Date,
		Status:      finance.ExpenseStatus(m.Status),
		CollectedOn: m.CollectedOn,
		Note:        m.Note,
	}
}

// FromDomain populates the persistence model from a domain Expense.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.ID = e.ID
	m.RecordID = e.RecordID
	m.Item = e.Item
	m.AmountCents = e.AmountCents
	m.Source = string(e.Source)
	m.Date = e.Date
	m.Status = string(e.Status)
	m.CollectedOn = e.CollectedOn
	m.Note = e.Note
}

// CashEntryModel is the persistence model for one client-cash row.
type CashEntryModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	RecordID    int64   `gorm:"index;not null"`
	Date        string  `gorm:"type:varchar(10)"`
	Amount      float64 `gorm:"column:tutar"` // legacy float lira
	AmountCents int64   `gorm:"not null;default:0"`
	Operation   string  `gorm:"type:varchar(50);not null"`
	Note        string  `gorm:"type:text"`
}

// ToDomain converts the persistence model to a domain CashEntry.
func (m *CashEntryModel) ToDomain() *finance.CashEntry {
	return &finance.CashEntry{
		ID:          m.ID,
		RecordID:    m.RecordID,
		Date:        m.Date,
		AmountCents: m.AmountCents,
		Operation:   finance.CashOperation(m.Operation),
		Note:        m.Note,
	}
}

// FromDomain populates the persistence model from a domain CashEntry.
func (m *CashEntryModel) FromDomain(e *finance.CashEntry) {
	m.ID = e.ID
	m.RecordID = e.RecordID
	m.Date = e.Date
	m.AmountCents = e.AmountCents
	m.Operation = string(e.Operation)
	m.Note = e.Note
}
