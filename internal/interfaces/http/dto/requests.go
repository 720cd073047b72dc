package dto

// CreateCaseRequest opens a new case file.
type CreateCaseRequest struct {
	BuroTakipNo string `json:"buro_takip_no"`
	EsasNo      string `json:"esas_no"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientRole  string `json:"client_role"`
	OtherParty  string `json:"other_party"`
	Subject     string `json:"subject"`
	Court       string `json:"court"`
	OpeningDate string `json:"opening_date" binding:"omitempty,isodate"`
	HearingDate string `json:"durusma_tarihi" binding:"omitempty,isodate"`
	Status1     string `json:"status_1"`
	ActionDate1 string `json:"action_date_1" binding:"omitempty,isodate"`
	Note1       string `json:"note_1"`
	Status2     string `json:"status_2"`
	ActionDate2 string `json:"action_date_2" binding:"omitempty,isodate"`
	Note2       string `json:"note_2"`
}

// UpdateCaseRequest carries a sparse column set; only the keys present
// in the JSON body are applied.
type UpdateCaseRequest map[string]any

// caseColumns whitelists the columns the update pipeline accepts.
var caseColumns = map[string]bool{
	"buro_takip_no":  true,
	"esas_no":        true,
	"client_name":    true,
	"client_role":    true,
	"other_party":    true,
	"subject":        true,
	"court":          true,
	"opening_date":   true,
	"durusma_tarihi": true,
	"status_1":       true,
	"action_date_1":  true,
	"note_1":         true,
	"status_2":       true,
	"action_date_2":  true,
	"note_2":         true,
}

// Columns filters the request down to the updatable columns.
func (r UpdateCaseRequest) Columns() map[string]any {
	cols := make(map[string]any, len(r))
	for k, v := range r {
		if caseColumns[k] {
			cols[k] = v
		}
	}
	return cols
}

// ContractRequest rewrites the fee contract of a finance record.
type ContractRequest struct {
	ClientName         string  `json:"client_name"`
	BuroTakipNo        string  `json:"buro_takip_no"`
	EsasNo             string  `json:"esas_no"`
	FixedFeeCents      int64   `json:"fixed_fee_cents"`
	PercentRate        float64 `json:"percent_rate" binding:"gte=0,lte=100"`
	PercentBaseCents   int64   `json:"percent_base_cents"`
	PercentDeferred    bool    `json:"percent_deferred"`
	OtherPartyFeeCents int64   `json:"other_party_fee_cents"`
	Notes              string  `json:"notes"`
}

// PlanRequest persists an installment plan with its rows.
type PlanRequest struct {
	Count        int                  `json:"count" binding:"required,gt=0"`
	Period       string               `json:"period" binding:"required,oneof=AY HAFTA"`
	DueDay       int                  `json:"due_day" binding:"gte=0,lte=31"`
	StartDate    string               `json:"start_date" binding:"required,isodate"`
	Description  string               `json:"description"`
	Installments []InstallmentPayload `json:"installments"`
	SyncPayments bool                 `json:"sync_payments"`
}

// InstallmentPayload is one plan row as the editor holds it.
type InstallmentPayload struct {
	ID          int64  `json:"id"`
	Seq         int    `json:"seq"`
	DueDate     string `json:"due_date" binding:"omitempty,isodate"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	PaidOn      string `json:"paid_on" binding:"omitempty,isodate"`
	Note        string `json:"note"`
}

// GeneratePlanRequest previews the rows a plan would produce.
type GeneratePlanRequest struct {
	Count     int    `json:"count" binding:"required,gt=0"`
	Period    string `json:"period" binding:"required,oneof=AY HAFTA"`
	DueDay    int    `json:"due_day" binding:"gte=0,lte=31"`
	StartDate string `json:"start_date" binding:"required,isodate"`
}

// InstallmentToggleRequest flips the paid flag of one installment.
type InstallmentToggleRequest struct {
	Paid   bool   `json:"paid"`
	PaidOn string `json:"paid_on" binding:"omitempty,isodate"`
}

// PaymentRequest inserts or rewrites a manual payment.
type PaymentRequest struct {
	Date        string `json:"date" binding:"omitempty,isodate"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Method      string `json:"method"`
	Note        string `json:"note"`
}

// ExpenseRequest inserts or rewrites an expense.
type ExpenseRequest struct {
	Item        string `json:"item" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Source      string `json:"source" binding:"required,oneof=Ofis Kasadan"`
	Date        string `json:"date" binding:"omitempty,isodate"`
	Status      string `json:"status"`
	CollectedOn string `json:"collected_on" binding:"omitempty,isodate"`
	Note        string `json:"note"`
}

// CashEntryRequest inserts a client-cash ledger row.
type CashEntryRequest struct {
	Date        string `json:"date" binding:"omitempty,isodate"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Operation   string `json:"operation" binding:"required"`
	Note        string `json:"note"`
}

// TaskRequest inserts or rewrites a manual task.
type TaskRequest struct {
	DueDate   string `json:"due_date" binding:"omitempty,isodate"`
	Subject   string `json:"subject" binding:"required"`
	Body      string `json:"body"`
	Assignees string `json:"assignees"`
}

// DoneRequest flips a done flag.
type DoneRequest struct {
	Done bool `json:"done"`
}

// NotificationRequest inserts or rewrites a tebligat row.
type NotificationRequest struct {
	CaseID      int64  `json:"case_id"`
	BuroTakipNo string `json:"buro_takip_no"`
	Institution string `json:"institution" binding:"required"`
	Content     string `json:"content"`
	Deadline    string `json:"is_son_gunu" binding:"omitempty,isodate"`
	Done        bool   `json:"done"`
}

// MediationRequest inserts or rewrites an arabuluculuk row.
type MediationRequest struct {
	CaseID      int64  `json:"case_id"`
	BuroTakipNo string `json:"buro_takip_no"`
	Parties     string `json:"parties" binding:"required"`
	MeetingDate string `json:"toplanti_tarihi" binding:"omitempty,isodate"`
	TimeSlot    string `json:"time_slot"`
	Done        bool   `json:"done"`
}

// StatusRequest inserts or rewrites one status-palette entry.
type StatusRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required,hexcolor"`
	Owner string `json:"owner" binding:"required"`
}

// TimelineEventRequest appends a manual timeline entry.
type TimelineEventRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body" binding:"required"`
}

// SummarizeRequest selects the records an overview sums over.
type SummarizeRequest struct {
	IDs []int64 `json:"ids"`
}

// ArchiveRequest flips the archive flag of a case.
type ArchiveRequest struct {
	Archived bool `json:"archived"`
}
