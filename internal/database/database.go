// Package database centralises sqlx connection helpers and the store-wide
// readiness flag.  The default driver is go-sql-driver/mysql, which also
// works with MariaDB when configured for the MySQL wire protocol.
//
// Public entry points:
//
//	Open(dsn)                              – quick helper with conservative pool sizes.
//	OpenWithOptions(dsn, maxOpen, maxIdle) – fine-grained control.
//	Ready()                                – true once a pool has been opened and pinged.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Request filters consult Ready() and degrade to no-ops
// until the data store is reachable, so a half-installed instance serves
// pages without tracking side effects.  Callers should Close() the returned
// *sqlx.DB when no longer needed.
package database

import (
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ready flips to true after the first successful Open.  It never flips back;
// transient outages surface as query errors, not as an uninstalled store.
var ready atomic.Bool

// Ready reports whether the persistent store has been initialised.
func Ready() bool { return ready.Load() }

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.  Suitable for process-wide pools or for
// test setups.
func Open(dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle per pool.
func OpenWithOptions(dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	ready.Store(true)
	return db, nil
}
