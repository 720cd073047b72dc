package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/takibi/backend/internal/application/refresh"
)

// RefreshHandler drives the change-log poller from the outside.
type RefreshHandler struct {
	BaseHandler
	poller *refresh.Poller
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(poller *refresh.Poller) *RefreshHandler {
	return &RefreshHandler{poller: poller}
}

// DrainNow forces an immediate drain cycle. Reports whether the cycle
// actually ran; a false means another drain was already in flight.
func (h *RefreshHandler) DrainNow(c *gin.Context) {
	ran := h.poller.DrainNow(c.Request.Context())
	h.Success(c, gin.H{"ran": ran})
}

// Pause suspends scheduled drains until Resume.
func (h *RefreshHandler) Pause(c *gin.Context) {
	h.poller.Pause()
	h.NoContent(c)
}

// Resume re-enables scheduled drains.
func (h *RefreshHandler) Resume(c *gin.Context) {
	h.poller.Resume()
	h.NoContent(c)
}

// RegisterRoutes registers the refresh control routes.
func (h *RefreshHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/refresh")
	{
		g.POST("/drain", h.DrainNow)
		g.POST("/pause", h.Pause)
		g.POST("/resume", h.Resume)
	}
}
