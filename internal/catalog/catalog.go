package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"festa-mesas-backend/internal/model"
	"festa-mesas-backend/internal/parse"
	"festa-mesas-backend/internal/sheet"
)

const cacheKey = "layout"

// Header names of the layout sheet. Column order is not fixed; the header row
// decides which column is which.
const (
	colTableID = "ID_Mesa"
	colRow     = "Linha"
	colColumn  = "Coluna"
	colDisplay = "Numero_Display"
	colSector  = "Tipo_Item"
	colPrice   = "Preco_Mesa"
)

// Catalog loads and caches the static set of sellable tables. The layout does
// not change during an event, so it is fetched once per session and re-fetched
// only on explicit refresh.
type Catalog struct {
	client    sheet.Client
	sheetName string
	cache     *cache.Cache
}

// New creates a catalog over the given sheet.
func New(client sheet.Client, sheetName string) *Catalog {
	return &Catalog{
		client:    client,
		sheetName: sheetName,
		cache:     cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// Tables returns the sellable tables, serving from cache when available.
func (c *Catalog) Tables(ctx context.Context) ([]model.TableDefinition, error) {
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]model.TableDefinition), nil
	}
	return c.Refresh(ctx)
}

// Refresh re-fetches the layout from the backing sheet and replaces the cache.
func (c *Catalog) Refresh(ctx context.Context) ([]model.TableDefinition, error) {
	rows, err := c.client.ReadAll(ctx, c.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout sheet %q: %w", c.sheetName, err)
	}

	tables := decodeRows(rows)
	c.cache.Set(cacheKey, tables, cache.NoExpiration)
	return tables, nil
}

// ByID returns one table definition, or false when the identifier is unknown.
func (c *Catalog) ByID(ctx context.Context, id string) (model.TableDefinition, bool, error) {
	tables, err := c.Tables(ctx)
	if err != nil {
		return model.TableDefinition{}, false, err
	}
	for _, t := range tables {
		if t.ID == id {
			return t, true, nil
		}
	}
	return model.TableDefinition{}, false, nil
}

// decodeRows turns raw sheet rows into table definitions. The first row is the
// header. Rows whose normalized row number is not strictly positive are stray
// or header rows in the source and are dropped from the sellable set.
func decodeRows(rows [][]string) []model.TableDefinition {
	if len(rows) < 2 {
		return nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[name] = i
	}
	for _, required := range []string{colTableID, colRow, colColumn, colPrice} {
		if _, ok := idx[required]; !ok {
			log.Printf("layout sheet is missing column %q; no tables loaded", required)
			return nil
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	tables := make([]model.TableDefinition, 0, len(rows)-1)
	for _, row := range rows[1:] {
		line := int(parse.Amount(field(row, colRow)))
		if line <= 0 {
			continue
		}
		tables = append(tables, model.TableDefinition{
			ID:        field(row, colTableID),
			Row:       line,
			Column:    int(parse.Amount(field(row, colColumn))),
			Display:   field(row, colDisplay),
			Sector:    field(row, colSector),
			BasePrice: parse.Amount(field(row, colPrice)),
		})
	}
	return tables
}
