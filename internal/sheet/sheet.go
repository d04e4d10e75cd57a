package sheet

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Find when no cell matches the key.
var ErrNotFound = errors.New("sheet: key not found")

// ErrSheetMissing is returned by ReadAll when the named sheet does not exist in
// the spreadsheet. Callers reading the reservation log treat it as an empty log
// rather than a failure.
var ErrSheetMissing = errors.New("sheet: sheet missing")

// Client is the minimal surface the engine needs from the shared spreadsheet.
// The store exposes no locking or transactions; every operation is a single
// independent remote call.
type Client interface {
	// ReadAll returns every row of the named sheet, including the header row.
	ReadAll(ctx context.Context, sheet string) ([][]string, error)
	// AppendRow appends one row after the last non-empty row.
	AppendRow(ctx context.Context, sheet string, row []string) error
	// UpdateCell overwrites a single cell. Row and column are 1-based.
	UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
	// DeleteRow removes the given 1-based row entirely.
	DeleteRow(ctx context.Context, sheet string, row int) error
	// Find returns the 1-based row of the first cell equal to key, scanning
	// rows top to bottom. Returns ErrNotFound on a miss.
	Find(ctx context.Context, sheet string, key string) (int, error)
}
