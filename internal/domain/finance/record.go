package finance

import (
	"time"

	"github.com/takibi/backend/internal/domain/shared/valueobject"
)

// Record is the finance file of a case: the fee contract plus the
// cached derived totals. Exactly one exists per case. External records
// (not bound to any case) carry their own identifying fields instead
// of a case id and live in twin tables.
type Record struct {
	ID     int64
	CaseID int64 // zero for external records

	// External-record identity (unused on case-bound records)
	ClientName  string
	BuroTakipNo string
	EsasNo      string

	// Contract
	FixedFeeCents      int64
	PercentRate        float64
	PercentBaseCents   int64
	PercentDeferred    bool // percentage collected at case end, excluded from installments
	OtherPartyFeeCents int64
	Notes              string

	// Derived totals cache, rewritten by Recompute after every mutation
	TotalContractCents    int64
	CollectedCents        int64
	ExpenseTotalCents     int64
	ExpenseCollectedCents int64
	RemainingCents        int64
	HasOverdueInstallment bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExternal reports whether the record stands alone, outside any case.
func (r *Record) IsExternal() bool {
	return r.CaseID == 0
}

// IsAbandoned reports whether a quick-created external record was left
// without identity and can be silently removed.
func (r *Record) IsAbandoned() bool {
	return r.IsExternal() && r.ClientName == "" && r.BuroTakipNo == ""
}

// ContractTotalCents returns fixed fee plus the percentage portion.
// The deferred flag does not remove the percentage from the total; it
// only keeps it out of installment generation.
func (r *Record) ContractTotalCents() int64 {
	return r.FixedFeeCents + valueobject.PercentageCents(r.PercentBaseCents, r.PercentRate)
}

// PlannableCents returns the portion of the contract an installment
// plan divides: the percentage is excluded while deferred.
func (r *Record) PlannableCents() int64 {
	if r.PercentDeferred {
		return r.FixedFeeCents
	}
	return r.ContractTotalCents()
}
