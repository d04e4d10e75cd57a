package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"festa-mesas-backend/internal/audit"
	"festa-mesas-backend/internal/catalog"
	"festa-mesas-backend/internal/engine"
	"festa-mesas-backend/internal/ledger"
	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/sheet"
)

// TestReservationLifecycle walks one table through the full lifecycle —
// reserve, confirm, undo, cancel — against an in-memory spreadsheet, and
// verifies the reconciled view and the audit trail at each step.
func TestReservationLifecycle(t *testing.T) {
	// --- Test Setup ---

	// 1. Setup an in-memory SQLite database for the audit trail.
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.AuditEntry{}))

	// 2. Seed the spreadsheet: a two-table layout and an empty log.
	mem := sheet.NewMemory()
	mem.Seed("Layout_Mesas", [][]string{
		{"ID_Mesa", "Linha", "Coluna", "Numero_Display", "Tipo_Item", "Preco_Mesa"},
		{"M01", "1", "1", "01", "Pista", "R$ 100,00"},
		{"M02", "1", "2", "02", "Pista", "R$ 100,00"},
	})
	mem.Seed("RESERVAS", [][]string{{
		"ID_Venda", "Ref_Mesa", "Status", "Nome_Cliente", "Nome_Festeiro",
		"Telefone_Cliente", "Valor_Entrada_Cobrado", "Data_Reserva", "Data_Confirmacao",
	}})

	eng := engine.New(catalog.New(mem, "Layout_Mesas"), ledger.New(mem, "RESERVAS", time.UTC))
	eng.SetRecorder(audit.NewStore(testDB))

	ctx := context.Background()

	statusOf := func(tableID string) (model.Status, *model.ReservationEvent) {
		view, err := eng.View(ctx, "")
		require.NoError(t, err)
		for _, rt := range view {
			if rt.ID == tableID {
				return rt.Status, rt.Event
			}
		}
		t.Fatalf("table %s missing from view", tableID)
		return "", nil
	}

	// --- Reserve ---
	eventID, err := eng.Reserve(ctx, "M01", "Ana Souza", "Bia", "11 99999-0000")
	require.NoError(t, err)
	require.NotEmpty(t, eventID)

	status, ev := statusOf("M01")
	assert.Equal(t, model.StatusReserved, status)
	require.NotNil(t, ev)
	assert.Equal(t, "Ana Souza", ev.Customer)
	assert.Empty(t, ev.AmountRaw)

	// The second table is untouched.
	status, _ = statusOf("M02")
	assert.Equal(t, model.StatusFree, status)

	// --- Confirm with an explicit amount ---
	require.NoError(t, eng.ConfirmSale(ctx, eventID, 80))

	status, ev = statusOf("M01")
	assert.Equal(t, model.StatusSold, status)
	require.NotNil(t, ev)
	assert.Equal(t, "80.00", ev.AmountRaw)
	assert.False(t, ev.ConfirmedAt.IsZero())

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80.0, summary.Collected)
	assert.Equal(t, 1, summary.SoldCount)
	assert.Equal(t, 1, summary.FreeCount)

	// --- Undo the sale ---
	require.NoError(t, eng.UndoSale(ctx, eventID))

	status, ev = statusOf("M01")
	assert.Equal(t, model.StatusReserved, status)
	require.NotNil(t, ev)
	assert.Empty(t, ev.AmountRaw, "undo clears the charged amount")
	assert.True(t, ev.ConfirmedAt.IsZero(), "undo clears the confirmation timestamp")

	// --- Cancel ---
	require.NoError(t, eng.Cancel(ctx, eventID))

	status, ev = statusOf("M01")
	assert.Equal(t, model.StatusFree, status)
	assert.Nil(t, ev)

	// Cancelling removed the row, so the event id no longer resolves.
	err = eng.Cancel(ctx, eventID)
	assert.ErrorIs(t, err, ledger.ErrEventNotFound)

	// --- Audit trail ---
	entries, err := audit.NewStore(testDB).Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	ops := make([]string, len(entries))
	for i, e := range entries {
		ops[i] = e.Operation
	}
	// Recent returns newest first.
	assert.Equal(t, []string{"cancel", "undo", "confirm", "reserve"}, ops)
	for _, e := range entries {
		assert.Equal(t, eventID, e.EventID)
		assert.Equal(t, "M01", e.TableID)
	}
}
