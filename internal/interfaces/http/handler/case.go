package handler

import (
	"github.com/gin-gonic/gin"

	applitigation "github.com/takibi/backend/internal/application/litigation"
	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/interfaces/http/dto"
)

// CaseHandler exposes the case list, the update pipeline, the status
// palette and the case timeline.
type CaseHandler struct {
	BaseHandler
	cases *applitigation.CaseService
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(cases *applitigation.CaseService) *CaseHandler {
	return &CaseHandler{cases: cases}
}

// List returns the case files. ?archived=true includes archived ones.
func (h *CaseHandler) List(c *gin.Context) {
	includeArchived := c.Query("archived") == "true"
	cases, err := h.cases.ListCases(c.Request.Context(), includeArchived)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cases)
}

// Get returns one case file.
func (h *CaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	caseFile, err := h.cases.GetCase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, caseFile)
}

// Create opens a new case file.
func (h *CaseHandler) Create(c *gin.Context) {
	var req dto.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	caseFile := &litigation.Case{
		BuroTakipNo: req.BuroTakipNo,
		EsasNo:      req.EsasNo,
		ClientName:  req.ClientName,
		ClientRole:  litigation.ClientRole(req.ClientRole),
		OtherParty:  req.OtherParty,
		Subject:     req.Subject,
		Court:       req.Court,
		OpeningDate: req.OpeningDate,
		HearingDate: req.HearingDate,
		Status1:     req.Status1,
		ActionDate1: req.ActionDate1,
		Note1:       req.Note1,
		Status2:     req.Status2,
		ActionDate2: req.ActionDate2,
		Note2:       req.Note2,
	}
	if err := h.cases.CreateCase(c.Request.Context(), caseFile); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, caseFile)
}

// Update runs the write pipeline over a sparse column set.
func (h *CaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	updated, err := h.cases.UpdateCase(c.Request.Context(), id, req.Columns())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Archive flips the archive flag.
func (h *CaseHandler) Archive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.cases.SetArchived(c.Request.Context(), id, req.Archived); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a case with everything hanging off it.
func (h *CaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cases.DeleteCase(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Timeline returns the audit entries of a case, newest first.
func (h *CaseHandler) Timeline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.cases.CaseTimeline(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// AppendEvent writes one manual entry onto a case timeline.
func (h *CaseHandler) AppendEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.cases.AppendCaseEvent(c.Request.Context(), id, req.Kind, req.Title, req.Body); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListStatuses returns the status palette.
func (h *CaseHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.cases.ListStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}

// SaveStatus inserts or rewrites one palette entry.
func (h *CaseHandler) SaveStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	status := &litigation.Status{
		Name:  req.Name,
		Color: req.Color,
		Owner: litigation.StatusOwner(req.Owner),
	}
	if err := h.cases.SaveStatus(c.Request.Context(), status); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// DeleteStatus removes one palette entry.
func (h *CaseHandler) DeleteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cases.DeleteStatus(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all case and status-palette routes.
func (h *CaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	{
		cases.GET("", h.List)
		cases.POST("", h.Create)
		cases.GET("/:id", h.Get)
		cases.PUT("/:id", h.Update)
		cases.DELETE("/:id", h.Delete)
		cases.POST("/:id/archive", h.Archive)
		cases.GET("/:id/timeline", h.Timeline)
		cases.POST("/:id/timeline", h.AppendEvent)
	}

	statuses := rg.Group("/statuses")
	{
		statuses.GET("", h.ListStatuses)
		statuses.PUT("", h.SaveStatus)
		statuses.DELETE("/:id", h.DeleteStatus)
	}
}
