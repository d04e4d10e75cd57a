package engine

import (
	"context"
	"fmt"
	"time"

	"festa-mesas-backend/internal/catalog"
	"festa-mesas-backend/internal/ledger"
	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/notification"
)

// Recorder persists an audit record of a log mutation. Implemented by the
// audit store; optional.
type Recorder interface {
	Record(ctx context.Context, op, eventID, tableID, detail string)
}

// Notifier is told about table status changes. Implemented by the push worker
// pool; optional.
type Notifier interface {
	Dispatch(job notification.Job)
}

// Engine derives the authoritative per-table state and runs the table
// lifecycle. It keeps no mutable state: every operation is read-reconcile-act
// against a fresh snapshot of the log, so no in-process locking is needed. The
// backing sheet is shared with other writers and offers no transactions; two
// actors reserving the same free table can both succeed, and the last-writer-
// wins reduction arbitrates on the next read.
type Engine struct {
	catalog  *catalog.Catalog
	log      *ledger.Log
	recorder Recorder
	notifier Notifier
	now      func() time.Time
}

// New creates an engine over the given catalog and reservation log.
func New(cat *catalog.Catalog, log *ledger.Log) *Engine {
	return &Engine{catalog: cat, log: log, now: time.Now}
}

// SetRecorder attaches an audit recorder.
func (e *Engine) SetRecorder(r Recorder) { e.recorder = r }

// SetNotifier attaches a status-change notifier.
func (e *Engine) SetNotifier(n Notifier) { e.notifier = n }

// View returns one reconciled record per catalog table, optionally filtered by
// sector. The result is derived fresh from the current log snapshot and has no
// identity beyond this call.
func (e *Engine) View(ctx context.Context, sector string) ([]model.ReconciledTable, error) {
	tables, err := e.catalog.Tables(ctx)
	if err != nil {
		return nil, err
	}
	events, err := e.log.Events(ctx)
	if err != nil {
		return nil, err
	}

	view := Reconcile(tables, ledger.LatestByTable(events))
	if sector == "" {
		return view, nil
	}

	filtered := make([]model.ReconciledTable, 0, len(view))
	for _, t := range view {
		if t.Sector == sector {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Summary aggregates the financial totals over the full reconciled view.
func (e *Engine) Summary(ctx context.Context) (model.FinancialSummary, error) {
	view, err := e.View(ctx, "")
	if err != nil {
		return model.FinancialSummary{}, err
	}
	return Aggregate(view), nil
}

// Reconcile is a left-outer merge of the catalog with the latest event per
// table. Every catalog table yields exactly one record; a table with no event
// is Free. Events referencing tables outside the catalog are dropped: the
// catalog is the source of truth for which tables exist.
func Reconcile(tables []model.TableDefinition, latest map[string]model.ReservationEvent) []model.ReconciledTable {
	out := make([]model.ReconciledTable, 0, len(tables))
	for _, t := range tables {
		rt := model.ReconciledTable{TableDefinition: t, Status: model.StatusFree}
		if ev, ok := latest[t.ID]; ok {
			evCopy := ev
			rt.Event = &evCopy
			rt.Status = ev.Status
		}
		out = append(out, rt)
	}
	return out
}

func (e *Engine) record(ctx context.Context, op, eventID, tableID, detail string) {
	if e.recorder != nil {
		e.recorder.Record(ctx, op, eventID, tableID, detail)
	}
}

func (e *Engine) notify(table model.TableDefinition, status model.Status) {
	if e.notifier != nil {
		e.notifier.Dispatch(notification.Job{
			TableID: table.ID,
			Display: table.Display,
			Status:  status,
		})
	}
}

// findEvent looks an event up in a fresh log snapshot.
func (e *Engine) findEvent(ctx context.Context, eventID string) (model.ReservationEvent, error) {
	events, err := e.log.Events(ctx)
	if err != nil {
		return model.ReservationEvent{}, err
	}
	for _, ev := range events {
		if ev.ID == eventID {
			return ev, nil
		}
	}
	return model.ReservationEvent{}, fmt.Errorf("%w: %s", ledger.ErrEventNotFound, eventID)
}
