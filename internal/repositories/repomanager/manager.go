// Package repomanager vends repository implementations bound to a
// database handle or transaction and runs the embedded schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/repositories/customers"
	"github.com/dmitrijs2005/cargobot/internal/repositories/feedbacks"
	"github.com/dmitrijs2005/cargobot/internal/repositories/shipments"
	"github.com/dmitrijs2005/cargobot/internal/repositories/verifications"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Customers(db dbx.DBTX) customers.Repository
	Shipments(db dbx.DBTX) shipments.Repository
	Feedbacks(db dbx.DBTX) feedbacks.Repository
	Verifications(db dbx.DBTX) verifications.Repository
}
