package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/sheet"
)

// The log sheet has a fixed column order; rows are appended and cells rewritten
// positionally.
const (
	colEventID = iota + 1
	colTableID
	colStatus
	colCustomer
	colReferrer
	colPhone
	colAmount
	colReservedAt
	colConfirmedAt
)

// timeLayout is how timestamps are written to the sheet. Reads are more
// lenient, see parseTime.
const timeLayout = "2006-01-02 15:04:05"

// ErrEventNotFound reports a stale selection: the targeted event identifier is
// no longer present in the log, typically because another actor already
// cancelled it.
var ErrEventNotFound = errors.New("ledger: event not found")

// Log is a read model plus write operations over the append-only reservation
// log sheet. It holds no state of its own; every read is a fresh snapshot.
type Log struct {
	client    sheet.Client
	sheetName string
	loc       *time.Location
}

// New creates a log view over the given sheet. Timestamps are written and
// parsed in loc.
func New(client sheet.Client, sheetName string, loc *time.Location) *Log {
	if loc == nil {
		loc = time.UTC
	}
	return &Log{client: client, sheetName: sheetName, loc: loc}
}

// Events returns every event currently in the log. A missing log sheet is not
// an error: it degrades to "no reservations yet".
func (l *Log) Events(ctx context.Context) ([]model.ReservationEvent, error) {
	rows, err := l.client.ReadAll(ctx, l.sheetName)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetMissing) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reservation log %q: %w", l.sheetName, err)
	}

	var events []model.ReservationEvent
	for i, row := range rows {
		ev, ok := l.decodeRow(row)
		if !ok {
			if i > 0 && cell(row, colEventID) != "" {
				log.Printf("skipping malformed log row %d", i+1)
			}
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// LatestByTable reduces an event list to the single most recent event per
// table: last writer wins. Recency is the reservation timestamp, ties broken
// by the event identifier (higher wins; identifiers are time-derived).
func LatestByTable(events []model.ReservationEvent) map[string]model.ReservationEvent {
	sorted := append([]model.ReservationEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ReservedAt.Equal(sorted[j].ReservedAt) {
			return sorted[i].ReservedAt.After(sorted[j].ReservedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	latest := make(map[string]model.ReservationEvent, len(sorted))
	for _, ev := range sorted {
		if _, seen := latest[ev.TableID]; !seen {
			latest[ev.TableID] = ev
		}
	}
	return latest
}

// NewEventID mints a log identifier. The unix-seconds prefix keeps identifiers
// time-ordered; the uuid suffix disambiguates same-second writes.
func NewEventID(now time.Time) string {
	return fmt.Sprintf("RES-%d-%s", now.Unix(), uuid.NewString()[:8])
}

// Append writes a new event row to the end of the log.
func (l *Log) Append(ctx context.Context, ev model.ReservationEvent) error {
	row := []string{
		ev.ID,
		ev.TableID,
		string(ev.Status),
		ev.Customer,
		ev.Referrer,
		ev.Phone,
		ev.AmountRaw,
		l.formatTime(ev.ReservedAt),
		l.formatTime(ev.ConfirmedAt),
	}
	if err := l.client.AppendRow(ctx, l.sheetName, row); err != nil {
		return fmt.Errorf("failed to append reservation %s: %w", ev.ID, err)
	}
	return nil
}

// MarkSold rewrites the matched event in place: status becomes Vendido, the
// charged amount and confirmation timestamp are set.
func (l *Log) MarkSold(ctx context.Context, eventID string, amount float64, when time.Time) error {
	row, err := l.findRow(ctx, eventID)
	if err != nil {
		return err
	}
	cells := map[int]string{
		colStatus:      string(model.StatusSold),
		colAmount:      strconv.FormatFloat(amount, 'f', 2, 64),
		colConfirmedAt: l.formatTime(when),
	}
	return l.updateCells(ctx, eventID, row, cells)
}

// MarkReserved undoes a sale: status back to Reservado, charged amount and
// confirmation timestamp cleared.
func (l *Log) MarkReserved(ctx context.Context, eventID string) error {
	row, err := l.findRow(ctx, eventID)
	if err != nil {
		return err
	}
	cells := map[int]string{
		colStatus:      string(model.StatusReserved),
		colAmount:      "",
		colConfirmedAt: "",
	}
	return l.updateCells(ctx, eventID, row, cells)
}

// Remove deletes the matched event row entirely, returning its table to Free.
func (l *Log) Remove(ctx context.Context, eventID string) error {
	row, err := l.findRow(ctx, eventID)
	if err != nil {
		return err
	}
	if err := l.client.DeleteRow(ctx, l.sheetName, row); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

func (l *Log) findRow(ctx context.Context, eventID string) (int, error) {
	row, err := l.client.Find(ctx, l.sheetName, eventID)
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) || errors.Is(err, sheet.ErrSheetMissing) {
			return 0, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
		}
		return 0, fmt.Errorf("failed to locate event %s: %w", eventID, err)
	}
	return row, nil
}

func (l *Log) updateCells(ctx context.Context, eventID string, row int, cells map[int]string) error {
	// Fixed iteration order so partial failures are reproducible.
	cols := make([]int, 0, len(cells))
	for col := range cells {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for _, col := range cols {
		if err := l.client.UpdateCell(ctx, l.sheetName, row, col, cells[col]); err != nil {
			return fmt.Errorf("failed to update event %s: %w", eventID, err)
		}
	}
	return nil
}

func (l *Log) decodeRow(row []string) (model.ReservationEvent, bool) {
	id := cell(row, colEventID)
	if id == "" || id == "ID_Venda" {
		return model.ReservationEvent{}, false
	}
	status := model.Status(cell(row, colStatus))
	if status != model.StatusReserved && status != model.StatusSold {
		return model.ReservationEvent{}, false
	}
	return model.ReservationEvent{
		ID:          id,
		TableID:     cell(row, colTableID),
		Status:      status,
		Customer:    cell(row, colCustomer),
		Referrer:    cell(row, colReferrer),
		Phone:       cell(row, colPhone),
		AmountRaw:   cell(row, colAmount),
		ReservedAt:  l.parseTime(cell(row, colReservedAt)),
		ConfirmedAt: l.parseTime(cell(row, colConfirmedAt)),
	}, true
}

func (l *Log) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(l.loc).Format(timeLayout)
}

// parseTime reads a sheet timestamp. The log is hand-editable, so a couple of
// common layouts are accepted; anything else degrades to the zero time and the
// event sorts as oldest.
func (l *Log) parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05.999999", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, l.loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

func cell(row []string, col int) string {
	if col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}
