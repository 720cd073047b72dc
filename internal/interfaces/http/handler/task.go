package handler

import (
	"github.com/gin-gonic/gin"

	apptask "github.com/takibi/backend/internal/application/task"
	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/interfaces/http/dto"
)

// TaskHandler exposes the unified task list and the docket rows that
// feed its mirrors.
type TaskHandler struct {
	BaseHandler
	svc *apptask.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *apptask.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Agenda returns stored plus computed rows. ?done=true includes
// completed tasks.
func (h *TaskHandler) Agenda(c *gin.Context) {
	agenda, err := h.svc.Agenda(c.Request.Context(), c.Query("done") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"stored": agenda.Stored, "computed": agenda.Computed})
}

// Create inserts a manual task.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	t := &task.Task{
		DueDate:   req.DueDate,
		Subject:   req.Subject,
		Body:      req.Body,
		Assignees: req.Assignees,
	}
	if err := h.svc.CreateTask(c.Request.Context(), t); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update rewrites a manual task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	t := &task.Task{
		ID:        id,
		DueDate:   req.DueDate,
		Subject:   req.Subject,
		Body:      req.Body,
		Assignees: req.Assignees,
	}
	if err := h.svc.UpdateTask(c.Request.Context(), t); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// SetDone flips the done flag; on a mirror the source row follows.
func (h *TaskHandler) SetDone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.svc.SetTaskDone(c.Request.Context(), id, req.Done); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a manual task.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ===================== Docket =====================

// ListNotifications returns the tebligat rows. ?case_id filters.
func (h *TaskHandler) ListNotifications(c *gin.Context) {
	caseID := queryID(c, "case_id")
	rows, err := h.svc.ListNotifications(c.Request.Context(), caseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateNotification inserts a tebligat row with its mirror.
func (h *TaskHandler) CreateNotification(c *gin.Context) {
	var req dto.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	n := &litigation.Notification{
		CaseID:      req.CaseID,
		BuroTakipNo: req.BuroTakipNo,
		Institution: req.Institution,
		Content:     req.Content,
		Deadline:    req.Deadline,
		Done:        req.Done,
	}
	if err := h.svc.CreateNotification(c.Request.Context(), n); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, n)
}

// UpdateNotification rewrites a tebligat row, reconciling the mirror.
func (h *TaskHandler) UpdateNotification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	n := &litigation.Notification{
		ID:          id,
		CaseID:      req.CaseID,
		BuroTakipNo: req.BuroTakipNo,
		Institution: req.Institution,
		Content:     req.Content,
		Deadline:    req.Deadline,
		Done:        req.Done,
	}
	if err := h.svc.UpdateNotification(c.Request.Context(), n); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}

// DeleteNotification removes a tebligat row with its mirror.
func (h *TaskHandler) DeleteNotification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteNotification(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMediations returns the arabuluculuk rows. ?case_id filters.
func (h *TaskHandler) ListMediations(c *gin.Context) {
	caseID := queryID(c, "case_id")
	rows, err := h.svc.ListMediations(c.Request.Context(), caseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateMediation inserts an arabuluculuk row with its mirror.
func (h *TaskHandler) CreateMediation(c *gin.Context) {
	var req dto.MediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	m := &litigation.Mediation{
		CaseID:      req.CaseID,
		BuroTakipNo: req.BuroTakipNo,
		Parties:     req.Parties,
		MeetingDate: req.MeetingDate,
		TimeSlot:    req.TimeSlot,
		Done:        req.Done,
	}
	if err := h.svc.CreateMediation(c.Request.Context(), m); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, m)
}

// UpdateMediation rewrites an arabuluculuk row, reconciling the mirror.
func (h *TaskHandler) UpdateMediation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	m := &litigation.Mediation{
		ID:          id,
		CaseID:      req.CaseID,
		BuroTakipNo: req.BuroTakipNo,
		Parties:     req.Parties,
		MeetingDate: req.MeetingDate,
		TimeSlot:    req.TimeSlot,
		Done:        req.Done,
	}
	if err := h.svc.UpdateMediation(c.Request.Context(), m); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// DeleteMediation removes an arabuluculuk row with its mirror.
func (h *TaskHandler) DeleteMediation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMediation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the task, notification and mediation routes.
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.Agenda)
		tasks.POST("", h.Create)
		tasks.PUT("/:id", h.Update)
		tasks.POST("/:id/done", h.SetDone)
		tasks.DELETE("/:id", h.Delete)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("", h.CreateNotification)
		notifications.PUT("/:id", h.UpdateNotification)
		notifications.DELETE("/:id", h.DeleteNotification)
	}

	mediations := rg.Group("/mediations")
	{
		mediations.GET("", h.ListMediations)
		mediations.POST("", h.CreateMediation)
		mediations.PUT("/:id", h.UpdateMediation)
		mediations.DELETE("/:id", h.DeleteMediation)
	}
}
