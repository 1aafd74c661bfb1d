// Package database opens the MySQL pool shared by every repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Stay boundaries, promo windows and shift dates are compared as UTC
// calendar dates across the whole service, so every connection must parse
// DATE columns into UTC time.Time values instead of the server's session
// timezone.
const dsnParams = "charset=utf8mb4&parseTime=true&loc=UTC"

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open builds the DSN, configures the pool and verifies connectivity before
// the service starts taking reservations.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth += ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?%s", auth, host, port, name, dsnParams)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
