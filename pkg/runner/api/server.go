package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/logger"
)

// Runner serves the HTTP API until its context is cancelled.
type Runner struct {
	Service *app.Service
	Logger  *zap.Logger

	ListenAddr string
	// AllowedOrigins is the CORS allow-list; empty allows any origin.
	AllowedOrigins []string
	OnListening    func(net.Addr)
}

// Handler builds the routed, CORS-wrapped handler.
func (r Runner) Handler() http.Handler {
	log := logger.OrNop(r.Logger)

	router := mux.NewRouter()
	router.Use(logging(log))
	NewHandler(r.Service, log).RegisterRoutes(router)

	origins := r.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
	return c.Handler(router)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("api runner requires an agenda service")
	}
	log := logger.OrNop(r.Logger)

	addr := r.ListenAddr
	if addr == "" {
		addr = "127.0.0.1:8081"
	}
	httpSrv := &http.Server{
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("serving agenda api", zap.String("addr", ln.Addr().String()))
	if r.OnListening != nil {
		r.OnListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logging(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
