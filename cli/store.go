package cli

import (
	"fmt"

	"homechef-api/config"
	"homechef-api/logger"
	"homechef-api/store"
	"homechef-api/store/mongostore"
	"homechef-api/store/sqlstore"
)

// openStore connects the configured backend. Both backends create their
// tables or indexes on open.
func openStore(cfg config.StoreConfig, log *logger.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		log.Info("Connecting to MongoDB", "db", cfg.MongoDB, "transactions", cfg.MongoTransactions)
		return mongostore.Open(mongostore.Options{
			URI:          cfg.MongoURI,
			DB:           cfg.MongoDB,
			Transactions: cfg.MongoTransactions,
		}, log)
	case config.DriverSQLite:
		log.Info("Opening SQLite database", "path", cfg.SQLitePath)
		return sqlstore.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
