package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festa-mesas-backend/internal/hitmap"
)

type locateRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// When both are set, x and y are pixel coordinates in a viewport of this
	// size; otherwise they are already normalized to 0..1.
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Locate resolves a click on the map image to the nearest table identifier.
func (h *Handler) Locate(c *gin.Context) {
	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := hitmap.Position{X: req.X, Y: req.Y}
	if req.ViewportWidth > 0 && req.ViewportHeight > 0 {
		p = hitmap.FromPixels(req.X, req.Y, req.ViewportWidth, req.ViewportHeight)
	}

	tableID, ok := hitmap.Locate(p, h.positions, h.hitRadius)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"hit": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hit": true, "table_id": tableID})
}
