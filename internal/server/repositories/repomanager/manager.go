package repomanager

import (
	"context"
	"database/sql"

	"github.com/wstore/webshop/internal/dbx"
	"github.com/wstore/webshop/internal/server/repositories/orders"
	"github.com/wstore/webshop/internal/server/repositories/products"
	"github.com/wstore/webshop/internal/server/repositories/refreshtokens"
	"github.com/wstore/webshop/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// same repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Products(db dbx.DBTX) products.Repository
	Orders(db dbx.DBTX) orders.Repository
}
