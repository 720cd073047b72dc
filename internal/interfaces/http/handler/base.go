package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 with the binding failure text.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(shared.ErrInvalidInput.Code, err.Error()))
}

// HandleError maps a domain error onto the HTTP status it deserves and
// sends its Turkish message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(shared.ErrStore.Code, shared.ErrStore.Message))
		return
	}
	c.JSON(statusFor(domainErr), dto.NewErrorResponse(domainErr.Code, domainErr.Message))
}

func statusFor(err *shared.DomainError) int {
	switch err.Code {
	case shared.ErrNotFound.Code:
		return http.StatusNotFound
	case shared.ErrConflict.Code:
		return http.StatusConflict
	case shared.ErrInvalidMoney.Code, shared.ErrInvalidPlan.Code, shared.ErrInvalidInput.Code:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// queryID parses an optional numeric query parameter, zero when absent.
func queryID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// pathID parses the numeric id segment of the route.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(shared.ErrInvalidInput.Code, shared.ErrInvalidInput.Message))
		return 0, false
	}
	return id, true
}
