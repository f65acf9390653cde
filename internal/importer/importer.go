// Package importer loads customer and shipment spreadsheets exported from
// the operator's back office into the record store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

// ErrMissingColumns is matched by errors.Is on a *MissingColumnsError.
var ErrMissingColumns = errors.New("required columns missing")

// ErrUnsupportedFormat is returned for files that are neither spreadsheets
// nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// MissingColumnsError aborts an import before any row is processed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// CustomerStore is the part of the customer service an import needs.
type CustomerStore interface {
	UpsertImported(ctx context.Context, c *models.Customer) (bool, error)
}

// ShipmentStore is the part of the shipment service an import needs.
type ShipmentStore interface {
	ReplaceAll(ctx context.Context, rows []models.Shipment) (int, error)
}

type Importer struct {
	customers CustomerStore
	shipments ShipmentStore
	rules     validators.Rules
	tempDir   string
	logger    logging.Logger
	now       func() time.Time
}

func New(customers CustomerStore, shipments ShipmentStore, rules validators.Rules, tempDir string, logger logging.Logger) *Importer {
	return &Importer{
		customers: customers,
		shipments: shipments,
		rules:     rules,
		tempDir:   tempDir,
		logger:    logger.With("module", "importer"),
		now:       time.Now,
	}
}

// table is a sheet with its header row split off.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func newTable(all [][]string) *table {
	t := &table{index: map[string]int{}}
	if len(all) == 0 {
		return t
	}
	t.header = all[0]
	for i, h := range t.header {
		name := strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	for _, r := range all[1:] {
		if !blank(r) {
			t.rows = append(t.rows, r)
		}
	}
	return t
}

func (t *table) require(columns []string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// cell returns the trimmed value of column in row, or "" when the row is
// shorter than the header or the column is absent.
func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
