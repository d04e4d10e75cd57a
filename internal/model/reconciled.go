package model

// ReconciledTable is the authoritative per-table record, recomputed on every
// read by merging the layout catalog with the latest reservation event. It is
// never persisted.
type ReconciledTable struct {
	TableDefinition
	Status Status            `json:"status"`
	Event  *ReservationEvent `json:"event,omitempty"` // nil when the table is free
}

// FinancialSummary holds the aggregated totals for the whole event.
type FinancialSummary struct {
	Collected      float64 `json:"collected"`
	Pending        float64 `json:"pending"`
	SoldCount      int     `json:"sold_count"`
	ReservedCount  int     `json:"reserved_count"`
	FreeCount      int     `json:"free_count"`
	TotalCount     int     `json:"total_count"`
	OccupancyRatio float64 `json:"occupancy_ratio"`
}
