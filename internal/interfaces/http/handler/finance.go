package handler

import (
	"github.com/gin-gonic/gin"

	appfinance "github.com/takibi/backend/internal/application/finance"
	"github.com/takibi/backend/internal/domain/finance"
	"github.com/takibi/backend/internal/interfaces/http/dto"
)

// FinanceHandler exposes one finance service: the contract, the
// installment plan, payments, expenses and the client cash ledger.
// The router mounts it twice, once per table set.
type FinanceHandler struct {
	BaseHandler
	svc    *appfinance.Service
	prefix string
}

// NewFinanceHandler creates a FinanceHandler mounted under prefix,
// e.g. "/finance" or "/external-finance".
func NewFinanceHandler(svc *appfinance.Service, prefix string) *FinanceHandler {
	return &FinanceHandler{svc: svc, prefix: prefix}
}

// Overview lists every record with due-category tag and cash balance.
func (h *FinanceHandler) Overview(c *gin.Context) {
	overviews, err := h.svc.ListOverview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overviews)
}

// Summarize aggregates the cached totals over a set of record ids.
func (h *FinanceHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	sum, err := h.svc.Summarize(c.Request.Context(), req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sum)
}

// GetContract returns the record with its derived totals.
func (h *FinanceHandler) GetContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rec, err := h.svc.GetContract(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// EnsureForCase returns the finance record of a case, creating a bare
// one on first use.
func (h *FinanceHandler) EnsureForCase(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}
	rec, err := h.svc.EnsureRecordForCase(c.Request.Context(), caseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// QuickCreate inserts a bare external record for the editor dialog.
func (h *FinanceHandler) QuickCreate(c *gin.Context) {
	rec, err := h.svc.QuickCreateExternal(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// UpdateContract rewrites the contract columns.
func (h *FinanceHandler) UpdateContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	rec := &finance.Record{
		ID:                 id,
		ClientName:         req.ClientName,
		BuroTakipNo:        req.BuroTakipNo,
		EsasNo:             req.EsasNo,
		FixedFeeCents:      req.FixedFeeCents,
		PercentRate:        req.PercentRate,
		PercentBaseCents:   req.PercentBaseCents,
		PercentDeferred:    req.PercentDeferred,
		OtherPartyFeeCents: req.OtherPartyFeeCents,
		Notes:              req.Notes,
	}
	updated, err := h.svc.UpdateContract(c.Request.Context(), rec)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete removes a record. ?abandoned=true only deletes a quick-created
// external record still without identity.
func (h *FinanceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if c.Query("abandoned") == "true" {
		deleted, err := h.svc.DeleteIfAbandoned(ctx, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, gin.H{"deleted": deleted})
		return
	}
	if err := h.svc.DeleteRecord(ctx, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetPlan returns the plan header with its installments.
func (h *FinanceHandler) GetPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	state, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// GeneratePlan previews the installment rows a plan would produce.
func (h *FinanceHandler) GeneratePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	rows, err := h.svc.GenerateInstallments(c.Request.Context(), id, &finance.Plan{
		Count:     req.Count,
		Period:    finance.PlanPeriod(req.Period),
		DueDay:    req.DueDay,
		StartDate: req.StartDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// SavePlan persists the plan and its rows as the desired state.
func (h *FinanceHandler) SavePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	plan := &finance.Plan{
		Count:       req.Count,
		Period:      finance.PlanPeriod(req.Period),
		DueDay:      req.DueDay,
		StartDate:   req.StartDate,
		Description: req.Description,
	}
	installments := make([]finance.Installment, len(req.Installments))
	for i, p := range req.Installments {
		installments[i] = finance.Installment{
			ID:          p.ID,
			Seq:         p.Seq,
			DueDate:     p.DueDate,
			AmountCents: p.AmountCents,
			Status:      finance.InstallmentStatus(p.Status),
			PaidOn:      p.PaidOn,
			Note:        p.Note,
		}
	}
	if err := h.svc.SavePlan(c.Request.Context(), id, plan, installments, req.SyncPayments); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResetPlan deletes the installments. ?keep_paid=true spares paid rows.
func (h *FinanceHandler) ResetPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	keepPaid := c.Query("keep_paid") == "true"
	deleted, err := h.svc.ResetPlan(c.Request.Context(), id, keepPaid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}

// ToggleInstallment flips the paid flag of one installment.
func (h *FinanceHandler) ToggleInstallment(c *gin.Context) {
	id, ok := pathID(c, "installmentID")
	if !ok {
		return
	}
	var req dto.InstallmentToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.svc.SetInstallmentPaid(c.Request.Context(), id, req.Paid, req.PaidOn); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPayments returns the payments of a record.
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payments, err := h.svc.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// AddPayment inserts a manual payment.
func (h *FinanceHandler) AddPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	payment := &finance.Payment{
		RecordID:    id,
		Date:        req.Date,
		AmountCents: req.AmountCents,
		Method:      finance.PaymentMethod(req.Method),
		Note:        req.Note,
	}
	if err := h.svc.AddPayment(c.Request.Context(), payment); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// UpdatePayment rewrites a manual payment.
func (h *FinanceHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "paymentID")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	payment := &finance.Payment{
		ID:          paymentID,
		RecordID:    id,
		Date:        req.Date,
		AmountCents: req.AmountCents,
		Method:      finance.PaymentMethod(req.Method),
		Note:        req.Note,
	}
	if err := h.svc.UpdatePayment(c.Request.Context(), payment); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// DeletePayment removes a manual payment.
func (h *FinanceHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c, "paymentID")
	if !ok {
		return
	}
	if err := h.svc.DeletePayment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListExpenses returns the expenses of a record.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	expenses, err := h.svc.ListExpenses(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// AddExpense inserts an expense.
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	expense := &finance.Expense{
		RecordID:    id,
		Item:        req.Item,
		AmountCents: req.AmountCents,
		Source:      finance.ExpenseSource(req.Source),
		Date:        req.Date,
		Status:      finance.ExpenseStatus(req.Status),
		CollectedOn: req.CollectedOn,
		Note:        req.Note,
	}
	if err := h.svc.AddExpense(c.Request.Context(), expense); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// UpdateExpense rewrites an expense.
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	expenseID, ok := pathID(c, "expenseID")
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	expense := &finance.Expense{
		ID:          expenseID,
		RecordID:    recordID,
		Item:        req.Item,
		AmountCents: req.AmountCents,
		Source:      finance.ExpenseSource(req.Source),
		Date:        req.Date,
		Status:      finance.ExpenseStatus(req.Status),
		CollectedOn: req.CollectedOn,
		Note:        req.Note,
	}
	if err := h.svc.UpdateExpense(c.Request.Context(), expense); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// DeleteExpense removes an expense with its cash mirror.
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "expenseID")
	if !ok {
		return
	}
	if err := h.svc.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCash returns the client cash ledger with the running balance.
func (h *FinanceHandler) ListCash(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	entries, err := h.svc.ListCash(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	balance, err := h.svc.CashBalance(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"entries": entries, "balance_cents": balance})
}

// AddCashEntry inserts a ledger row.
func (h *FinanceHandler) AddCashEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	entry := &finance.CashEntry{
		RecordID:    id,
		Date:        req.Date,
		AmountCents: req.AmountCents,
		Operation:   finance.CashOperation(req.Operation),
		Note:        req.Note,
	}
	if err := h.svc.AddCashEntry(c.Request.Context(), entry); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// DeleteCashEntry removes a ledger row.
func (h *FinanceHandler) DeleteCashEntry(c *gin.Context) {
	id, ok := pathID(c, "entryID")
	if !ok {
		return
	}
	if err := h.svc.DeleteCashEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Timeline returns the audit entries of a record, newest first.
func (h *FinanceHandler) Timeline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.svc.Timeline(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// AppendEvent writes one manual entry onto a record's timeline.
func (h *FinanceHandler) AppendEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.svc.AppendEvent(c.Request.Context(), id, req.Title, req.Body); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all finance routes under the mount prefix.
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(h.prefix)
	{
		g.GET("", h.Overview)
		g.POST("", h.QuickCreate)
		g.POST("/summary", h.Summarize)
		g.POST("/for-case/:caseID", h.EnsureForCase)
		g.POST("/installments/:installmentID/paid", h.ToggleInstallment)

		g.GET("/:id", h.GetContract)
		g.PUT("/:id", h.UpdateContract)
		g.DELETE("/:id", h.Delete)

		g.GET("/:id/plan", h.GetPlan)
		g.PUT("/:id/plan", h.SavePlan)
		g.POST("/:id/plan/generate", h.GeneratePlan)
		g.DELETE("/:id/plan", h.ResetPlan)

		g.GET("/:id/payments", h.ListPayments)
		g.POST("/:id/payments", h.AddPayment)
		g.PUT("/:id/payments/:paymentID", h.UpdatePayment)
		g.DELETE("/:id/payments/:paymentID", h.DeletePayment)

		g.GET("/:id/expenses", h.ListExpenses)
		g.POST("/:id/expenses", h.AddExpense)
		g.PUT("/:id/expenses/:expenseID", h.UpdateExpense)
		g.DELETE("/:id/expenses/:expenseID", h.DeleteExpense)

		g.GET("/:id/cash", h.ListCash)
		g.POST("/:id/cash", h.AddCashEntry)
		g.DELETE("/:id/cash/:entryID", h.DeleteCashEntry)

		g.GET("/:id/timeline", h.Timeline)
		g.POST("/:id/timeline", h.AppendEvent)
	}
}
