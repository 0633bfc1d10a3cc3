package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nhtransport/config"
	"nhtransport/handlers"
	"nhtransport/routes"
	"nhtransport/service"
)

var serveProduction bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveProduction, "production", false, "Redirect plain HTTP requests to HTTPS")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, logger, true)
	if err != nil {
		logger.Error("startup failed", "err", err)
		return err
	}
	defer a.Close()

	opts := routes.Options{
		Bookings: handlers.NewBookingHandler(a.bookingService(), logger),
		Invoices: handlers.NewInvoiceHandler(a.invoiceService(), logger),
		Parties:  &handlers.PartyHandler{Service: service.NewPartyService(a.parties), Logger: logger},
		Vehicles: &handlers.VehicleHandler{Service: service.NewVehicleService(a.vehicles), Logger: logger},
		Company:  &handlers.CompanyHandler{Service: service.NewCompanyService(a.company), Logger: logger},

		Logger:          logger,
		Metrics:         routes.NewMetrics(),
		CORSOrigin:      cfg.CORSOrigin,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Production:      serveProduction,
	}
	if !cfg.R2.Enabled() {
		opts.UploadDir = cfg.UploadDir
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
