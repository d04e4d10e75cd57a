package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTables returns the reconciled view of the layout, one record per table.
// An optional ?sector= query narrows the result to a single sector.
func (h *Handler) GetTables(c *gin.Context) {
	view, err := h.engine.View(c.Request.Context(), c.Query("sector"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tables": view})
}

type reserveRequest struct {
	Customer string `json:"customer" binding:"required"`
	Referrer string `json:"referrer"`
	Phone    string `json:"phone"`
}

// Reserve creates a reservation for a free table and returns the new event
// identifier.
func (h *Handler) Reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := h.engine.Reserve(c.Request.Context(), c.Param("table_id"), req.Customer, req.Referrer, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}

	h.flushViews()
	c.JSON(http.StatusCreated, gin.H{"event_id": eventID})
}
