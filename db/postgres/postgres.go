package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"nhtransport/db"
)

var _ db.DB = (*PostgresDB)(nil)

// Pool sizes the connection pool. Serverless Postgres drops idle
// connections, so the defaults stay small.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPool = Pool{MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: 30 * time.Minute}

type PostgresDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
	Pool   Pool
}

func NewPostgresDB(url string, pool Pool) *PostgresDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pool.MaxOpenConns <= 0 {
		pool = DefaultPool
	}
	return &PostgresDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
		Pool:   pool,
	}
}

func (p *PostgresDB) Connect() error {
	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return err
	}

	conn.SetMaxOpenConns(p.Pool.MaxOpenConns)
	conn.SetMaxIdleConns(p.Pool.MaxIdleConns)
	conn.SetConnMaxLifetime(p.Pool.ConnMaxLifetime)

	p.Conn = conn
	if err := p.Conn.PingContext(p.Ctx); err != nil {
		conn.Close()
		return err
	}
	return nil
}

func (p *PostgresDB) Disconnect() error {
	p.Cancel()
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}

func (p *PostgresDB) GetContext() context.Context {
	return p.Ctx
}
