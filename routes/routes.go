package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"nhtransport/handlers"
)

type Options struct {
	Bookings *handlers.BookingHandler
	Invoices *handlers.InvoiceHandler
	Parties  *handlers.PartyHandler
	Vehicles *handlers.VehicleHandler
	Company  *handlers.CompanyHandler

	Logger  *slog.Logger
	Metrics *Metrics

	CORSOrigin      string
	RateLimitPerMin int
	// UploadDir is served under /uploads/ when files are kept on local disk.
	UploadDir string
	// Production turns on HTTPS redirects.
	Production bool
}

func withCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withSecureHeaders(logger *slog.Logger, production bool) func(http.Handler) http.Handler {
	// invoices are rendered with inline styles
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", "path", r.URL.Path, "err", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter mounts the API.
func NewRouter(opts Options) http.Handler {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 300
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withCORS(opts.CORSOrigin))
	r.Use(handlers.RecoverWrapper(opts.Logger))
	r.Use(withSecureHeaders(opts.Logger, opts.Production))
	r.Use(opts.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Method(http.MethodGet, "/uploads/*", fs)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(opts.RateLimitPerMin, time.Minute))
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/bookings", func(r chi.Router) {
			b := opts.Bookings
			r.Get("/", b.List)
			r.Post("/", b.Create)
			r.Post("/calculate", b.Calculate)
			r.Get("/next-number", b.NextNumber)
			r.Get("/pending", b.Pending)
			r.Get("/summary", b.Summary)
			r.Get("/export", b.Export)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", b.Get)
				r.Put("/", b.Update)
				r.Delete("/", b.Delete)
				r.Put("/delivery", b.UpdateDelivery)
				r.Patch("/payment-status", b.SetPaymentStatus)
				r.Post("/vehicle-payments", b.AddVehiclePayment)
				r.Get("/invoice", opts.Invoices.Get)
				r.Post("/invoice", opts.Invoices.Publish)
			})
		})

		r.Route("/parties", func(r chi.Router) {
			p := opts.Parties
			r.Get("/", p.List)
			r.Post("/", p.Create)
			r.Get("/{id}", p.Get)
			r.Put("/{id}", p.Update)
			r.Delete("/{id}", p.Delete)
		})

		r.Route("/vehicles", func(r chi.Router) {
			v := opts.Vehicles
			r.Get("/", v.List)
			r.Post("/", v.Create)
			r.Get("/{id}", v.Get)
			r.Put("/{id}", v.Update)
			r.Delete("/{id}", v.Delete)
		})

		r.Get("/company", opts.Company.Get)
		r.Post("/company", opts.Company.Save)
	})

	return r
}
