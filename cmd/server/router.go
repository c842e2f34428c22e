package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/config"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api/billsplitv1/billsplitv1connect"
)

// pingStore is a store that can report its health.
type pingStore interface {
	storage.Store
	Ping(ctx context.Context) error
}

type deps struct {
	cfg        *config.Config
	store      pingStore
	jwtManager *auth.JWTManager
	registry   *prometheus.Registry
	logger     *slog.Logger
}

// newHandler builds the HTTP router: Connect services, health and metrics.
func newHandler(d deps) http.Handler {
	rpcMetrics := middleware.NewMetrics(d.cfg.MetricsNamespace, d.registry)
	allocMetrics := service.NewAllocationMetrics(d.cfg.MetricsNamespace, d.registry)

	// Auth runs first so the logger and handlers see the user.
	common := []connect.Interceptor{
		middleware.OptionalAuth(d.jwtManager),
		middleware.LoggingInterceptor(d.logger),
		rpcMetrics.Interceptor(),
	}
	// SplitService checks the user per method; CalculateBill is public.
	splitInterceptors := connect.WithInterceptors(common...)
	// Only Register and Login are open on AuthService.
	authInterceptors := connect.WithInterceptors(append(common,
		middleware.RequireAuth(d.jwtManager,
			billsplitv1connect.AuthServiceRegisterProcedure,
			billsplitv1connect.AuthServiceLoginProcedure,
		),
	)...)

	authenticator := auth.NewPasswordAuthenticator(d.store)
	splitPath, splitHandler := billsplitv1connect.NewSplitServiceHandler(
		service.NewSplitService(d.store, d.logger, allocMetrics), splitInterceptors)
	authPath, authHandler := billsplitv1connect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, d.store, d.jwtManager, d.logger), authInterceptors)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(d.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"Connect-Protocol-Version", "Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	r.Mount(splitPath, splitHandler)
	r.Mount(authPath, authHandler)

	r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{Registry: d.registry}))
	r.Get("/healthz", healthz(d.store))

	return r
}

func healthz(store pingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// requestLogger logs every HTTP request once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", chimw.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
