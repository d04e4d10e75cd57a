package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/parse"
)

// GetSummary returns the event-wide financial totals.
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.engine.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type saleRecord struct {
	EventID     string     `json:"event_id"`
	TableID     string     `json:"table_id"`
	Display     string     `json:"display"`
	Customer    string     `json:"customer"`
	Referrer    string     `json:"referrer,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	Amount      float64    `json:"amount"`
	BasePrice   float64    `json:"base_price"`
	ReservedAt  time.Time  `json:"reserved_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// GetSales returns the per-sale extract: every table whose latest event is
// Reservado or Vendido, with the charged (or expected) amount.
func (h *Handler) GetSales(c *gin.Context) {
	view, err := h.engine.View(c.Request.Context(), "")
	if err != nil {
		writeError(c, err)
		return
	}

	sales := make([]saleRecord, 0, len(view))
	for _, t := range view {
		if t.Event == nil {
			continue
		}
		rec := saleRecord{
			EventID:    t.Event.ID,
			TableID:    t.ID,
			Display:    t.Display,
			Customer:   t.Event.Customer,
			Referrer:   t.Event.Referrer,
			Phone:      t.Event.Phone,
			Status:     string(t.Status),
			BasePrice:  t.BasePrice,
			ReservedAt: t.Event.ReservedAt,
		}
		if t.Status == model.StatusSold {
			rec.Amount = parse.Amount(t.Event.AmountRaw)
			if !t.Event.ConfirmedAt.IsZero() {
				confirmed := t.Event.ConfirmedAt
				rec.ConfirmedAt = &confirmed
			}
		} else {
			rec.Amount = t.BasePrice
		}
		sales = append(sales, rec)
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}
