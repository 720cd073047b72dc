package finance

// CashOperation is one movement type on the client cash account
// ("müvekkil kasası"). Inflows add to the balance, outflows subtract.
type CashOperation string

const (
	// Inflows
	CashFileRevenue    CashOperation = "Dosya Geliri"
	CashAdvanceExpense CashOperation = "Masraf Avansı"
	CashExpenseRevenue CashOperation = "Masraf Geliri"

	// Outflows
	CashUsedAdvance     CashOperation = "Avans Kullanımı"
	CashPaidExpense     CashOperation = "Masraf Ödemesi"
	CashPayToClient     CashOperation = "Müvekkile Ödeme"
	CashContractPayment CashOperation = "Sözleşme Ödemesi"
)

// IsValid checks if the operation is one of the closed set
func (o CashOperation) IsValid() bool {
	switch o {
	case CashFileRevenue, CashAdvanceExpense, CashExpenseRevenue,
		CashUsedAdvance, CashPaidExpense, CashPayToClient, CashContractPayment:
		return true
	}
	return false
}

// IsInflow reports whether the operation increases the cash balance.
func (o CashOperation) IsInflow() bool {
	switch o {
	case CashFileRevenue, CashAdvanceExpense, CashExpenseRevenue:
		return true
	}
	return false
}

// IsAutomatic reports whether entries with this operation are produced
// as a side effect (from-cash expenses) and may not be deleted directly.
func (o CashOperation) IsAutomatic() bool {
	return o == CashUsedAdvance
}

// String returns the string representation of CashOperation
func (o CashOperation) String() string {
	return string(o)
}

// CashEntry is one row of the client cash ledger.
type CashEntry struct {
	ID          int64
	RecordID    int64
	Date        string // ISO date
	AmountCents int64
	Operation   CashOperation
	Note        string
}

// CashBalance sums inflows minus outflows over the ledger.
func CashBalance(entries []CashEntry) int64 {
	var balance int64
	for _, e := range entries {
		if e.Operation.IsInflow() {
			balance += e.AmountCents
		} else {
			balance -= e.AmountCents
		}
	}
	return balance
}
