package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Connect opens the database and waits for it to come up. The compose
// setup starts Postgres alongside the service, so the first pings can
// fail while the container is still booting.
func Connect(dsn string, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			logger.Info("Database connection established")
			return db, nil
		}
		logger.Info("Waiting for database...")
		time.Sleep(2 * time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("database not reachable: %w", err)
}
