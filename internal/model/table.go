package model

// TableDefinition is one sellable table from the layout sheet. Loaded once per
// session and treated as immutable; the layout is the source of truth for which
// tables exist.
type TableDefinition struct {
	ID        string  `json:"id"`
	Row       int     `json:"row"`
	Column    int     `json:"column"`
	Display   string  `json:"display"`
	Sector    string  `json:"sector"`
	BasePrice float64 `json:"base_price"`
}
