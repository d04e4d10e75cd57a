package engine

import (
	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/parse"
)

// Aggregate computes the event-wide financial totals from a reconciled view.
// Collected revenue is the sum of charged amounts over sold tables; pending is
// the expected revenue of reserved tables at base price. Charged amounts pass
// through the normalizer so a malformed stored cell counts as 0 instead of
// breaking the totals.
func Aggregate(view []model.ReconciledTable) model.FinancialSummary {
	s := model.FinancialSummary{TotalCount: len(view)}
	for _, t := range view {
		switch t.Status {
		case model.StatusSold:
			s.SoldCount++
			if t.Event != nil {
				s.Collected += parse.Amount(t.Event.AmountRaw)
			}
		case model.StatusReserved:
			s.ReservedCount++
			s.Pending += t.BasePrice
		default:
			s.FreeCount++
		}
	}
	if s.TotalCount > 0 {
		s.OccupancyRatio = float64(s.SoldCount+s.ReservedCount) / float64(s.TotalCount)
	}
	return s
}
