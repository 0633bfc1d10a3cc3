package db

import (
	"context"
	"fmt"
	"strings"
)

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	SQLite   DBType = "sqlite"
)

// ParseDBType accepts the DB_TYPE values, case-insensitively.
func ParseDBType(s string) (DBType, error) {
	switch t := DBType(strings.ToLower(strings.TrimSpace(s))); t {
	case Postgres, Mongo, SQLite:
		return t, nil
	case "postgresql", "pg":
		return Postgres, nil
	case "mongodb":
		return Mongo, nil
	}
	return "", fmt.Errorf("DB_TYPE %q not supported", s)
}

// IsSQL reports whether the backend is migrated with golang-migrate.
func (t DBType) IsSQL() bool {
	return t == Postgres || t == SQLite
}

// DB is a connection handle owned by the server process.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
