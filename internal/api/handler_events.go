package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type confirmRequest struct {
	Amount float64 `json:"amount"`
}

// ConfirmSale promotes a reserved event to sold. An absent or non-positive
// amount charges the table's base price.
func (h *Handler) ConfirmSale(c *gin.Context) {
	// An empty body is a valid "charge the base price" request.
	var req confirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.engine.ConfirmSale(c.Request.Context(), c.Param("event_id"), req.Amount); err != nil {
		writeError(c, err)
		return
	}

	h.flushViews()
	c.Status(http.StatusNoContent)
}

// UndoSale reverts a sold event back to reserved, clearing the charged amount.
func (h *Handler) UndoSale(c *gin.Context) {
	if err := h.engine.UndoSale(c.Request.Context(), c.Param("event_id")); err != nil {
		writeError(c, err)
		return
	}

	h.flushViews()
	c.Status(http.StatusNoContent)
}

// CancelReservation deletes a reserved event, returning its table to free.
func (h *Handler) CancelReservation(c *gin.Context) {
	if err := h.engine.Cancel(c.Request.Context(), c.Param("event_id")); err != nil {
		writeError(c, err)
		return
	}

	h.flushViews()
	c.Status(http.StatusNoContent)
}
