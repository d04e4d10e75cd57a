package engine

import "errors"

var (
	// ErrCustomerRequired rejects a reservation with an empty customer name
	// before anything is written to the log.
	ErrCustomerRequired = errors.New("engine: customer name is required")

	// ErrUnknownTable reports a table identifier that is not in the layout
	// catalog.
	ErrUnknownTable = errors.New("engine: unknown table")

	// ErrTableUnavailable reports a reserve attempt against a table whose
	// latest event already holds it.
	ErrTableUnavailable = errors.New("engine: table is not free")

	// ErrInvalidTransition reports a lifecycle operation whose target event is
	// present but not in the required status (e.g. confirming an already sold
	// table).
	ErrInvalidTransition = errors.New("engine: invalid status transition")
)
