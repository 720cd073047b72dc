package finance

import (
	"time"

	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/shared/valueobject"
)

// PlanPeriod is the spacing between installments
type PlanPeriod string

const (
	PeriodMonth PlanPeriod = "AY"
	PeriodWeek  PlanPeriod = "HAFTA"
)

// IsValid checks if the period is one of the closed set
func (p PlanPeriod) IsValid() bool {
	return p == PeriodMonth || p == PeriodWeek
}

// String returns the string representation of PlanPeriod
func (p PlanPeriod) String() string {
	return string(p)
}

// InstallmentStatus is the collection state of one installment.
// Overdue is derived: due date in the past and not paid.
type InstallmentStatus string

const (
	InstallmentDue     InstallmentStatus = "ODENECEK"
	InstallmentPaid    InstallmentStatus = "ODENDI"
	InstallmentOverdue InstallmentStatus = "GECIKTI"
)

// IsValid checks if the status is one of the closed set
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentDue, InstallmentPaid, InstallmentOverdue:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// Plan is the installment plan header, zero-or-one per finance record.
type Plan struct {
	ID          int64
	RecordID    int64
	Count       int
	Period      PlanPeriod
	DueDay      int    // day of month, or ISO weekday for weekly plans
	StartDate   string // ISO date of the first installment
	Description string
}

// Installment is one scheduled share of the contract fee.
type Installment struct {
	ID          int64
	RecordID    int64
	Seq         int
	DueDate     string // ISO date
	AmountCents int64
	Status      InstallmentStatus
	PaidOn      string // ISO date, set iff Status is Paid
	Note        string
}

// IsOverdue reports whether the installment is unpaid and past due.
func (i *Installment) IsOverdue(now time.Time) bool {
	if i.Status == InstallmentPaid {
		return false
	}
	days, ok := valueobject.DaysUntil(i.DueDate, now)
	return ok && days < 0
}

// EffectiveStatus derives the displayed status: Paid stays Paid, an
// unpaid installment past its due date shows Overdue.
func (i *Installment) EffectiveStatus(now time.Time) InstallmentStatus {
	if i.Status == InstallmentPaid {
		return InstallmentPaid
	}
	if i.IsOverdue(now) {
		return InstallmentOverdue
	}
	return InstallmentDue
}

// GenerateInstallments builds a fresh installment list for the record
// from the plan. Amounts are equal half-up shares of the plannable
// contract portion; the last share absorbs the rounding remainder.
func GenerateInstallments(r *Record, p *Plan) ([]Installment, error) {
	if p.Count <= 0 {
		return nil, shared.ErrInvalidPlan
	}
	if !p.Period.IsValid() {
		return nil, shared.ErrInvalidPlan
	}
	total := r.PlannableCents()
	if total <= 0 {
		return nil, shared.ErrInvalidPlan
	}
	start, ok := valueobject.ParseISODate(p.StartDate)
	if !ok {
		return nil, shared.ErrInvalidPlan
	}

	shares := valueobject.SplitCents(total, p.Count)
	installments := make([]Installment, p.Count)
	for i := 0; i < p.Count; i++ {
		installments[i] = Installment{
			RecordID:    r.ID,
			Seq:         i + 1,
			DueDate:     installmentDueDate(start, p, i),
			AmountCents: shares[i],
			Status:      InstallmentDue,
		}
	}
	return installments, nil
}

// installmentDueDate places installment i: the first falls on the start
// date, the rest step by the plan period with the due day clamped to
// the month length.
func installmentDueDate(start time.Time, p *Plan, i int) string {
	if i == 0 {
		return start.Format(valueobject.ISODateLayout)
	}
	if p.Period == PeriodWeek {
		return start.AddDate(0, 0, 7*i).Format(valueobject.ISODateLayout)
	}

	day := p.DueDay
	if day <= 0 {
		day = start.Day()
	}
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC).
		Format(valueobject.ISODateLayout)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
