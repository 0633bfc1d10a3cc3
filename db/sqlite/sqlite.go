package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nhtransport/db"
)

var _ db.DB = (*SQLiteDB)(nil)

// SQLiteDB is a single-file database, used for small deployments and tests.
type SQLiteDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	Path   string
}

func NewSQLiteDB(path string) *SQLiteDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &SQLiteDB{
		Ctx:    ctx,
		Cancel: cancel,
		Path:   path,
	}
}

// DSN enables WAL and foreign keys, and stores times in a format the
// driver reads back as time.Time.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_time_format=sqlite", path)
}

func (s *SQLiteDB) Connect() error {
	conn, err := sql.Open("sqlite", DSN(s.Path))
	if err != nil {
		return err
	}
	// one writer at a time
	conn.SetMaxOpenConns(1)

	s.Conn = conn
	return s.Conn.PingContext(s.Ctx)
}

func (s *SQLiteDB) Disconnect() error {
	s.Cancel()
	if s.Conn != nil {
		return s.Conn.Close()
	}
	return nil
}

func (s *SQLiteDB) GetContext() context.Context {
	return s.Ctx
}
