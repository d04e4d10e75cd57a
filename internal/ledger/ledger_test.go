package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/sheet"
)

const logSheet = "RESERVAS"

var logHeader = []string{
	"ID_Venda", "Ref_Mesa", "Status", "Nome_Cliente", "Nome_Festeiro",
	"Telefone_Cliente", "Valor_Entrada_Cobrado", "Data_Reserva", "Data_Confirmacao",
}

func newTestLog(t *testing.T, rows ...[]string) (*Log, *sheet.Memory) {
	t.Helper()
	mem := sheet.NewMemory()
	mem.Seed(logSheet, append([][]string{logHeader}, rows...))
	return New(mem, logSheet, time.UTC), mem
}

func TestEvents_MissingSheetDegradesToEmpty(t *testing.T) {
	l := New(sheet.NewMemory(), logSheet, time.UTC)
	events, err := l.Events(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEvents_DecodesRows(t *testing.T) {
	l, _ := newTestLog(t,
		[]string{"RES-100-aa", "M01", "Reservado", "Ana", "João", "9999", "", "2026-06-20 18:00:00", ""},
		[]string{"RES-101-bb", "M02", "Vendido", "Rui", "", "", "R$ 80,00", "2026-06-20 19:00:00", "2026-06-21 10:00:00"},
		[]string{"", "", "", "", "", "", "", "", ""},
		[]string{"RES-102-cc", "M03", "Pendente", "??", "", "", "", "2026-06-20 20:00:00", ""}, // unknown status tag
	)

	events, err := l.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "RES-100-aa", events[0].ID)
	assert.Equal(t, model.StatusReserved, events[0].Status)
	assert.Equal(t, time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC), events[0].ReservedAt)
	assert.True(t, events[0].ConfirmedAt.IsZero())

	assert.Equal(t, model.StatusSold, events[1].Status)
	assert.Equal(t, "R$ 80,00", events[1].AmountRaw)
	assert.False(t, events[1].ConfirmedAt.IsZero())
}

func TestLatestByTable(t *testing.T) {
	t1 := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	older := model.ReservationEvent{ID: "RES-1-aa", TableID: "M01", Status: model.StatusReserved, ReservedAt: t1}
	newer := model.ReservationEvent{ID: "RES-2-bb", TableID: "M01", Status: model.StatusSold, ReservedAt: t2}
	other := model.ReservationEvent{ID: "RES-3-cc", TableID: "M02", Status: model.StatusReserved, ReservedAt: t1}

	// Latest wins regardless of input order.
	for name, events := range map[string][]model.ReservationEvent{
		"chronological": {older, newer, other},
		"reversed":      {newer, other, older},
	} {
		t.Run(name, func(t *testing.T) {
			latest := LatestByTable(events)
			require.Len(t, latest, 2)
			assert.Equal(t, "RES-2-bb", latest["M01"].ID)
			assert.Equal(t, "RES-3-cc", latest["M02"].ID)
		})
	}
}

func TestLatestByTable_TimestampTieBreaksOnID(t *testing.T) {
	ts := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	a := model.ReservationEvent{ID: "RES-100-aa", TableID: "M01", ReservedAt: ts, Status: model.StatusReserved}
	b := model.ReservationEvent{ID: "RES-100-zz", TableID: "M01", ReservedAt: ts, Status: model.StatusReserved}

	latest := LatestByTable([]model.ReservationEvent{a, b})
	assert.Equal(t, "RES-100-zz", latest["M01"].ID)

	latest = LatestByTable([]model.ReservationEvent{b, a})
	assert.Equal(t, "RES-100-zz", latest["M01"].ID)
}

func TestNewEventID_TimeOrderedAndUnique(t *testing.T) {
	now := time.Unix(1766000000, 0)
	id1 := NewEventID(now)
	id2 := NewEventID(now)
	assert.Regexp(t, `^RES-1766000000-[0-9a-f]{8}$`, id1)
	assert.NotEqual(t, id1, id2, "same-second identifiers must still differ")

	later := NewEventID(now.Add(time.Second))
	assert.Less(t, id1[:14], later[:14])
}

func TestAppendAndMarkSold(t *testing.T) {
	l, mem := newTestLog(t)
	reservedAt := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

	ev := model.ReservationEvent{
		ID:         "RES-500-ab",
		TableID:    "M01",
		Status:     model.StatusReserved,
		Customer:   "Ana",
		ReservedAt: reservedAt,
	}
	require.NoError(t, l.Append(context.Background(), ev))

	require.NoError(t, l.MarkSold(context.Background(), "RES-500-ab", 80, reservedAt.Add(time.Hour)))

	rows, err := mem.ReadAll(context.Background(), logSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Vendido", rows[1][2])
	assert.Equal(t, "80.00", rows[1][6])
	assert.Equal(t, "2026-06-20 19:00:00", rows[1][8])

	// Round-trip: the rewritten row reads back as a sold event.
	events, err := l.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.StatusSold, events[0].Status)
	assert.Equal(t, reservedAt, events[0].ReservedAt)
}

func TestMarkReservedClearsSale(t *testing.T) {
	l, mem := newTestLog(t,
		[]string{"RES-500-ab", "M01", "Vendido", "Ana", "", "", "80.00", "2026-06-20 18:00:00", "2026-06-20 19:00:00"},
	)

	require.NoError(t, l.MarkReserved(context.Background(), "RES-500-ab"))

	rows, _ := mem.ReadAll(context.Background(), logSheet)
	assert.Equal(t, "Reservado", rows[1][2])
	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "", rows[1][8])
}

func TestRemoveDeletesRow(t *testing.T) {
	l, mem := newTestLog(t,
		[]string{"RES-500-ab", "M01", "Reservado", "Ana", "", "", "", "2026-06-20 18:00:00", ""},
	)

	require.NoError(t, l.Remove(context.Background(), "RES-500-ab"))

	rows, _ := mem.ReadAll(context.Background(), logSheet)
	assert.Len(t, rows, 1, "only the header should remain")
}

func TestWritesAgainstMissingEvent(t *testing.T) {
	l, _ := newTestLog(t)

	err := l.MarkSold(context.Background(), "RES-999-zz", 50, time.Now())
	assert.True(t, errors.Is(err, ErrEventNotFound))

	err = l.MarkReserved(context.Background(), "RES-999-zz")
	assert.True(t, errors.Is(err, ErrEventNotFound))

	err = l.Remove(context.Background(), "RES-999-zz")
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestParseTime_Lenient(t *testing.T) {
	l := New(sheet.NewMemory(), logSheet, time.UTC)

	assert.Equal(t, time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC), l.parseTime("2026-06-20 18:00:00"))
	assert.False(t, l.parseTime("2026-06-20 18:00:00.123456").IsZero())
	assert.False(t, l.parseTime("2026-06-20T18:00:00Z").IsZero())
	assert.True(t, l.parseTime("ontem").IsZero())
	assert.True(t, l.parseTime("").IsZero())
}
