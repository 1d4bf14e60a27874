package config

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	_ "github.com/microsoft/go-mssqldb"
)

var (
	goldDB *sql.DB
)

// GetGoldDB returns the read-only connection to the Gold SQL Server.
// Nil until ConnectGoldDatabase has succeeded.
func GetGoldDB() *sql.DB {
	return goldDB
}

// ConnectGoldDatabase opens the connection pool to the external Gold
// reporting server. The Gold side is strictly read-only: nothing in this
// codebase ever writes through this handle.
func ConnectGoldDatabase() error {
	host := os.Getenv("GOLD_DB_HOST")
	port := os.Getenv("GOLD_DB_PORT")
	user := os.Getenv("GOLD_DB_USER")
	password := os.Getenv("GOLD_DB_PASSWORD")
	dbName := os.Getenv("GOLD_DB_NAME")

	if port == "" {
		port = "1433"
	}

	dsn := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(user, password),
		Host:   fmt.Sprintf("%s:%s", host, port),
	}
	q := url.Values{}
	q.Set("database", dbName)
	q.Set("app name", "elab_backend")
	dsn.RawQuery = q.Encode()

	conn, err := sql.Open("sqlserver", dsn.String())
	if err != nil {
		return fmt.Errorf("open gold database: %w", err)
	}
	conn.SetMaxOpenConns(intFromEnv("GOLD_DB_MAX_OPEN_CONNS", 5))
	conn.SetConnMaxLifetime(time.Duration(intFromEnv("GOLD_DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second)

	goldDB = conn
	log.Printf("gold database pool configured (host=%s db=%s)", host, dbName)
	return nil
}
