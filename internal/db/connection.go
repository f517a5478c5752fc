package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Connection holds the database connection
type Connection struct {
	DB *sql.DB
}

// NewConnection opens a Postgres connection pool from a URL or keyword DSN.
// Intermediary network equipment kills idle connections, so the pool bounds
// both connection lifetime and idle time; the transport-level TCP keepalive
// comes from Go's default dialer.
func NewConnection(databaseURL string, maxConns int) (*Connection, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxConns < 1 {
		maxConns = 10
	}
	conn.SetMaxOpenConns(maxConns)
	conn.SetMaxIdleConns(maxConns / 2)
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{DB: conn}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
