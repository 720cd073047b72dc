package finance

// ExpenseSource tells who fronted the money for an expense.
type ExpenseSource string

const (
	SourceOffice   ExpenseSource = "Ofis"
	SourceFromCash ExpenseSource = "Kasadan"
)

// IsValid checks if the source is one of the closed set
func (s ExpenseSource) IsValid() bool {
	return s == SourceOffice || s == SourceFromCash
}

// String returns the string representation of ExpenseSource
func (s ExpenseSource) String() string {
	return string(s)
}

// ExpenseStatus is the collect-back state of an office-paid expense.
type ExpenseStatus string

const (
	ExpensePending   ExpenseStatus = "BEKLIYOR"
	ExpenseCollected ExpenseStatus = "TAHSIL_EDILDI"
)

// IsValid checks if the status is one of the closed set
func (s ExpenseStatus) IsValid() bool {
	return s == ExpensePending || s == ExpenseCollected
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// Expense is one case expense. Expenses paid from the client cash
// account have nothing to collect back, so their status is pinned to
// Pending and the collected-on date stays empty.
type Expense struct {
	ID          int64
	RecordID    int64
	Item        string
	AmountCents int64
	Source      ExpenseSource
	Date        string // ISO date
	Status      ExpenseStatus
	CollectedOn string // ISO date
	Note        string
}

// Normalize enforces the from-cash pin: source=Kasadan forces Pending
// with no collected-on date.
func (e *Expense) Normalize() {
	if e.Status == "" {
		e.Status = ExpensePending
	}
	if e.Source == SourceFromCash {
		e.Status = ExpensePending
		e.CollectedOn = ""
	}
	if e.Status != ExpenseCollected {
		e.CollectedOn = ""
	}
}
