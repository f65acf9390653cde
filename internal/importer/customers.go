package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/cargobot/internal/filex"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/validators"
	"github.com/xuri/excelize/v2"
)

const (
	colCode      = "code_str"
	colFullName  = "fullname_passport"
	colSeries    = "passport_series"
	colBirthDate = "birth_date"
	colAddress   = "address_region"
	colPhone     = "phone_number"
	colPinfl     = "passport_pinfl"
)

// CustomerColumns is the header a customer spreadsheet must carry.
var CustomerColumns = []string{colCode, colFullName, colSeries, colBirthDate, colAddress, colPhone, colPinfl}

// Failure is a row that could not be imported. Row is the 1-based sheet row.
type Failure struct {
	Row    int
	Reason error
}

// Report summarizes a customer import.
type Report struct {
	Created    int
	Updated    int
	Failures   []Failure
	FailedFile string // xlsx with the failed rows, empty when none failed
}

func (r *Report) Imported() int { return r.Created + r.Updated }
func (r *Report) Failed() int   { return len(r.Failures) }

// ImportCustomers validates every row of the first sheet of the xlsx file
// at path and upserts the valid ones as approved customers. Invalid rows and
// rows the store refuses are copied to a failures workbook in the temp dir.
func (i *Importer) ImportCustomers(ctx context.Context, path string) (*Report, error) {
	all, err := readWorkbook(path)
	if err != nil {
		return nil, err
	}

	t := newTable(all)
	if err := t.require(CustomerColumns); err != nil {
		i.logger.Error(ctx, "customer import aborted", "path", path, "error", err)
		return nil, err
	}

	report := &Report{}
	var failed [][]string

	for n, row := range t.rows {
		sheetRow := n + 2
		c, err := i.customerFromRow(t, row)
		if err == nil {
			var created bool
			created, err = i.customers.UpsertImported(ctx, c)
			if err == nil {
				if created {
					report.Created++
				} else {
					report.Updated++
				}
				continue
			}
		}

		i.logger.Warn(ctx, "customer row rejected", "row", sheetRow, "error", err)
		report.Failures = append(report.Failures, Failure{Row: sheetRow, Reason: err})
		failed = append(failed, row)
	}

	if len(failed) > 0 {
		out := filepath.Join(i.tempDir, filex.TimestampedName("failed_imports", ".xlsx", i.now()))
		if err := writeWorkbook(out, t.header, failed); err != nil {
			i.logger.Error(ctx, "failed rows not saved", "path", out, "error", err)
		} else {
			report.FailedFile = out
		}
	}

	i.logger.Info(ctx, "customer import finished",
		"created", report.Created, "updated", report.Updated, "failed", report.Failed())
	return report, nil
}

func (i *Importer) customerFromRow(t *table, row []string) (*models.Customer, error) {
	code, err := validators.ClientCode(t.cell(row, colCode))
	if err != nil {
		return nil, err
	}
	name, err := validators.RequiredText(validators.FieldFullName, t.cell(row, colFullName))
	if err != nil {
		return nil, err
	}
	series, err := validators.DocumentSeries(t.cell(row, colSeries))
	if err != nil {
		return nil, err
	}
	phone, err := validators.ImportPhone(t.cell(row, colPhone))
	if err != nil {
		return nil, err
	}
	pinfl, err := i.rules.ImportPinfl(t.cell(row, colPinfl))
	if err != nil {
		return nil, err
	}

	return &models.Customer{
		ClientCode:     code,
		FullName:       name,
		DocumentNumber: series,
		BirthDate:      t.cell(row, colBirthDate),
		Address:        t.cell(row, colAddress),
		Phone:          phone,
		Pinfl:          pinfl,
		Status:         models.StatusApproved,
	}, nil
}

// readWorkbook returns the raw cell text of the first sheet.
func readWorkbook(path string) ([][]string, error) {
	switch ext(path) {
	case ".xlsx", ".xls", ".xlsm":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func writeWorkbook(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	write := func(n int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := write(1, header); err != nil {
		return err
	}
	for n, r := range rows {
		if err := write(n+2, r); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
