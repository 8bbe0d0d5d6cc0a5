package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cardioref/ptp-cli/internal/assess"
	"github.com/cardioref/ptp-cli/internal/model"
	"github.com/cardioref/ptp-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP evaluation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: open store")
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
		r := newRouter(st, limiter)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the chi router; extracted so handler tests can exercise it
// without binding a socket.
func newRouter(st store.Store, limiter *rate.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if limiter != nil {
		r.Use(rateLimitMiddleware(limiter))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/evaluate", func(w http.ResponseWriter, req *http.Request) {
		var body assess.Request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		a := assess.Evaluate(body)

		save := req.URL.Query().Get("save") == "true"
		if save && st != nil {
			if err := st.SaveAssessment(req.Context(), a); err != nil {
				zap.L().Error("save assessment failed",
					zap.String("id", a.ID),
					zap.Error(err),
				)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save assessment"})
				return
			}
		}

		status := http.StatusOK
		if !a.PTP.OK {
			// Validation failures are still well-formed responses; the flags
			// carry the diagnostics.
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, a)
	})

	r.Get("/v1/assessments", func(w http.ResponseWriter, req *http.Request) {
		if st == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no store configured"})
			return
		}
		filter := store.AssessmentFilter{
			Category: model.RiskCategory(req.URL.Query().Get("category")),
			Symptom:  model.Symptom(req.URL.Query().Get("symptom")),
		}
		list, err := st.ListAssessments(req.Context(), filter)
		if err != nil {
			zap.L().Error("list assessments failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list assessments"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"assessments": list, "count": len(list)})
	})

	r.Get("/v1/table", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"rows": tableRows()})
	})

	return r
}

// rateLimitMiddleware rejects requests above the configured sustained rate.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
