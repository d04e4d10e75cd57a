package engine

import (
	"context"
	"fmt"
	"strings"

	"festa-mesas-backend/internal/ledger"
	"festa-mesas-backend/internal/model"
)

// Reserve appends a Reservado event for a free table and returns the new event
// identifier. Validation happens before any write; the append itself is the
// single remote mutation.
func (e *Engine) Reserve(ctx context.Context, tableID, customer, referrer, phone string) (string, error) {
	if strings.TrimSpace(customer) == "" {
		return "", ErrCustomerRequired
	}

	table, ok, err := e.catalog.ByID(ctx, tableID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
	}

	events, err := e.log.Events(ctx)
	if err != nil {
		return "", err
	}
	if _, taken := ledger.LatestByTable(events)[tableID]; taken {
		return "", fmt.Errorf("%w: %s", ErrTableUnavailable, tableID)
	}

	now := e.now()
	ev := model.ReservationEvent{
		ID:         ledger.NewEventID(now),
		TableID:    tableID,
		Status:     model.StatusReserved,
		Customer:   strings.TrimSpace(customer),
		Referrer:   strings.TrimSpace(referrer),
		Phone:      strings.TrimSpace(phone),
		ReservedAt: now,
	}
	if err := e.log.Append(ctx, ev); err != nil {
		return "", err
	}

	e.record(ctx, "reserve", ev.ID, tableID, ev.Customer)
	e.notify(table, model.StatusReserved)
	return ev.ID, nil
}

// ConfirmSale marks a reserved event as sold. A zero or negative amount means
// "charge the table's base price". A missing event is a stale selection and
// surfaces as ledger.ErrEventNotFound so the caller can re-fetch.
func (e *Engine) ConfirmSale(ctx context.Context, eventID string, amount float64) error {
	ev, err := e.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.Status != model.StatusReserved {
		return fmt.Errorf("%w: confirm requires Reservado, event %s is %s", ErrInvalidTransition, eventID, ev.Status)
	}

	table, ok, err := e.catalog.ByID(ctx, ev.TableID)
	if err != nil {
		return err
	}
	if amount <= 0 && ok {
		amount = table.BasePrice
	}

	if err := e.log.MarkSold(ctx, eventID, amount, e.now()); err != nil {
		return err
	}

	e.record(ctx, "confirm", eventID, ev.TableID, fmt.Sprintf("amount=%.2f", amount))
	if ok {
		e.notify(table, model.StatusSold)
	}
	return nil
}

// Cancel deletes a reserved event from the log, returning the table to Free.
func (e *Engine) Cancel(ctx context.Context, eventID string) error {
	ev, err := e.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.Status != model.StatusReserved {
		return fmt.Errorf("%w: cancel requires Reservado, event %s is %s", ErrInvalidTransition, eventID, ev.Status)
	}

	if err := e.log.Remove(ctx, eventID); err != nil {
		return err
	}

	e.record(ctx, "cancel", eventID, ev.TableID, "")
	if table, ok, err := e.catalog.ByID(ctx, ev.TableID); err == nil && ok {
		e.notify(table, model.StatusFree)
	}
	return nil
}

// UndoSale rewrites a sold event back to Reservado, clearing the charged
// amount and confirmation timestamp.
func (e *Engine) UndoSale(ctx context.Context, eventID string) error {
	ev, err := e.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.Status != model.StatusSold {
		return fmt.Errorf("%w: undo requires Vendido, event %s is %s", ErrInvalidTransition, eventID, ev.Status)
	}

	if err := e.log.MarkReserved(ctx, eventID); err != nil {
		return err
	}

	e.record(ctx, "undo", eventID, ev.TableID, "")
	if table, ok, err := e.catalog.ByID(ctx, ev.TableID); err == nil && ok {
		e.notify(table, model.StatusReserved)
	}
	return nil
}
