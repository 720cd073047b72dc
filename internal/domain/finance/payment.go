package finance

// PaymentMethod classifies how a payment arrived. The first three are
// the only values the services produce automatically; anything else is
// user-entered free text.
type PaymentMethod string

const (
	MethodOffice      PaymentMethod = "Ofis"
	MethodFromCash    PaymentMethod = "Kasadan"
	MethodInstallment PaymentMethod = "Taksit"
)

// IsAutomatic reports whether rows with this method are created and
// destroyed by their source (installment or client-cash entry) and must
// not be deleted directly.
func (m PaymentMethod) IsAutomatic() bool {
	return m == MethodFromCash || m == MethodInstallment
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is one collected amount on a finance record.
type Payment struct {
	ID            int64
	RecordID      int64
	Date          string // ISO date
	AmountCents   int64
	Method        PaymentMethod
	Note          string
	InstallmentID *int64 // set on method=Taksit mirror payments
}
