package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

const (
	colTracking = "Shipment Tracking Code"
	colCustomer = "Customer code"
	colName     = "Shipping Name"
	colPackage  = "Package Number"
	colWeight   = "Weight/KG"
	colQuantity = "Quantity"
	colFlight   = "Flight"
)

// ShipmentColumns are the columns a shipment file must carry. Name, package,
// weight, quantity and flight are optional.
var ShipmentColumns = []string{colTracking, colCustomer}

// ImportShipments replaces every stored shipment with the rows of the xlsx
// or csv file at path and returns how many were stored.
func (i *Importer) ImportShipments(ctx context.Context, path string) (int, error) {
	var (
		all [][]string
		err error
	)
	if ext(path) == ".csv" {
		all, err = readCSV(path)
	} else {
		all, err = readWorkbook(path)
	}
	if err != nil {
		return 0, err
	}

	t := newTable(all)
	if err := t.require(ShipmentColumns); err != nil {
		i.logger.Error(ctx, "shipment import aborted", "path", path, "error", err)
		return 0, err
	}

	rows := make([]models.Shipment, 0, len(t.rows))
	for idx, r := range t.rows {
		qty, ok := parseQuantity(t.cell(r, colQuantity))
		if !ok {
			i.logger.Warn(ctx, "shipment quantity unreadable, stored as 0",
				"row", idx+2, "value", t.cell(r, colQuantity))
		}
		rows = append(rows, models.Shipment{
			TrackingCode:  t.cell(r, colTracking),
			ShippingName:  t.cell(r, colName),
			PackageNumber: t.cell(r, colPackage),
			Weight:        parseWeight(t.cell(r, colWeight)),
			Quantity:      qty,
			Flight:        t.cell(r, colFlight),
			CustomerCode:  t.cell(r, colCustomer),
		})
	}

	n, err := i.shipments.ReplaceAll(ctx, rows)
	if err != nil {
		return 0, err
	}
	i.logger.Info(ctx, "shipment import finished", "path", filepath.Base(path), "rows", n)
	return n, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// parseWeight reads a decimal weight, accepting a comma separator. Missing
// or unreadable values are 0.
func parseWeight(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseQuantity truncates numeric cells such as "3.0". An empty cell is 0;
// text, non-finite values and values outside the int range are 0 and
// reported as not ok.
func parseQuantity(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}
