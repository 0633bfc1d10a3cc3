package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"nhtransport/config"
	"nhtransport/db"
	"nhtransport/db/mongo"
	"nhtransport/db/postgres"
	"nhtransport/db/sqlite"
	"nhtransport/repository"
	"nhtransport/service"
	"nhtransport/utils"
)

// app holds the repositories and services for the configured backend.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	bookings repository.BookingRepository
	parties  repository.PartyRepository
	vehicles repository.VehicleRepository
	company  repository.CompanyRepository
	storage  utils.Storage

	closers []func() error
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL, postgres.Pool{
			MaxOpenConns:    cfg.PGMaxOpenConns,
			MaxIdleConns:    cfg.PGMaxIdleConns,
			ConnMaxLifetime: cfg.PGConnMaxLifetime,
		})
		if err := pg.Connect(); err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pg.Disconnect)
		if err := a.openSQL(pg.Conn, db.Postgres, repository.Postgres, migrate); err != nil {
			a.Close()
			return nil, err
		}
		a.bookings = repository.NewPostgresBookingRepo(pg.Conn)

	case db.SQLite:
		lite := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := lite.Connect(); err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, lite.Disconnect)
		if err := a.openSQL(lite.Conn, db.SQLite, repository.SQLite, migrate); err != nil {
			a.Close()
			return nil, err
		}
		a.bookings = repository.NewSQLiteBookingRepo(lite.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(); err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, mg.Disconnect)
		a.bookings = repository.NewMongoBookingRepo(mg.Client, cfg.MongoDB)
		a.parties = repository.NewMongoPartyRepo(mg.Client, cfg.MongoDB)
		a.vehicles = repository.NewMongoVehicleRepo(mg.Client, cfg.MongoDB)
		a.company = repository.NewMongoCompanyRepo(mg.Client, cfg.MongoDB)

	default:
		return nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
	}
	logger.Info("database connected", "type", cfg.DBType)

	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Storage(ctx, utils.R2Options{
			AccountID:       cfg.R2.AccountID,
			Bucket:          cfg.R2.Bucket,
			PublicURL:       cfg.R2.PublicURL,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Endpoint:        cfg.R2.Endpoint,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("r2 storage: %w", err)
		}
		a.storage = r2
		logger.Info("file storage", "backend", "r2", "bucket", cfg.R2.Bucket)
	} else {
		a.storage = utils.NewLocalStorage(cfg.UploadDir, "/uploads")
		logger.Info("file storage", "backend", "local", "dir", cfg.UploadDir)
	}
	return a, nil
}

func (a *app) openSQL(conn *sql.DB, dbType db.DBType, dialect repository.Dialect, migrate bool) error {
	if migrate {
		if err := db.RunMigrations(conn, dbType, a.logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	a.parties = repository.NewSQLPartyRepo(conn, dialect)
	a.vehicles = repository.NewSQLVehicleRepo(conn, dialect)
	a.company = repository.NewSQLCompanyRepo(conn, dialect)
	return nil
}

func (a *app) bookingService() *service.BookingService {
	return service.NewBookingService(a.bookings, a.parties, a.vehicles, a.storage, a.logger)
}

func (a *app) invoiceService() *service.InvoiceService {
	repo := repository.NewInvoiceRepository(a.bookings, a.company)
	return service.NewInvoiceService(repo, &utils.ChromePDF{Timeout: a.cfg.ChromeTimeout}, a.storage, a.logger)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}
