// Command importer loads a customer or shipment spreadsheet into the bot's
// database from the command line, the same way an admin upload does.
//
// Usage:
//
//	importer -customers clients.xlsx [-d data/cargo.db]
//	importer -shipments cargo.csv [-driver postgres -d postgres://...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/cargobot/internal/config"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/flagx"
	"github.com/dmitrijs2005/cargobot/internal/importer"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cargobot/internal/services"
)

type job struct {
	customers string
	shipments string
}

var errUsage = errors.New("exactly one of -customers or -shipments is required")

func parseJob(args []string) (job, error) {
	var j job
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&j.customers, "customers", "", "customer spreadsheet (.xlsx)")
	fs.StringVar(&j.shipments, "shipments", "", "shipment spreadsheet (.xlsx, .xls or .csv)")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-customers", "-shipments"})); err != nil {
		return j, err
	}
	if (j.customers == "") == (j.shipments == "") {
		return j, errUsage
	}
	return j, nil
}

// Importer is the part of importer.Importer the command drives.
type Importer interface {
	ImportCustomers(ctx context.Context, path string) (*importer.Report, error)
	ImportShipments(ctx context.Context, path string) (int, error)
}

// run performs the import and prints a summary to out.
func run(ctx context.Context, imp Importer, j job, out io.Writer) error {
	if j.shipments != "" {
		n, err := imp.ImportShipments(ctx, j.shipments)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "shipments imported: %d\n", n)
		return nil
	}

	report, err := imp.ImportCustomers(ctx, j.customers)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "customers created: %d\ncustomers updated: %d\nrows failed: %d\n",
		report.Created, report.Updated, report.Failed())
	for _, f := range report.Failures {
		fmt.Fprintf(out, "  row %d: %v\n", f.Row, f.Reason)
	}
	if report.FailedFile != "" {
		fmt.Fprintf(out, "failed rows saved to %s\n", report.FailedFile)
	}
	return nil
}

func main() {

	args := os.Args[1:]
	j, err := parseJob(args)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.LoadImportConfig(args)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, rm, err := repomanager.Open(ctx, dbx.Dialect(cfg.DBDriver), cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	imp := importer.New(
		services.NewCustomerService(db, rm, cfg, logger),
		services.NewShipmentService(db, rm, logger),
		cfg.Rules(),
		os.TempDir(),
		logger,
	)

	if err := run(ctx, imp, j, os.Stdout); err != nil {
		logger.Error(ctx, "import failed", "error", err)
		db.Close()
		os.Exit(1)
	}

}
