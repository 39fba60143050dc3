package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/engrainai/siteapi/internal/forms"
	"github.com/engrainai/siteapi/internal/ratelimit"
	"github.com/engrainai/siteapi/internal/store"
	"github.com/engrainai/siteapi/internal/webhook"
)

const maxRequestBodySize = 1 << 20 // 1MB

// WebhookSink enqueues a fire-and-forget delivery. Implemented by
// webhook.Dispatcher.
type WebhookSink interface {
	Enqueue(webhook.Delivery)
}

// ContactMailer sends the synchronous contact notification email.
// Implemented by mailer.Mailer.
type ContactMailer interface {
	SendContactNotification(ctx context.Context, rec forms.ContactRequest) error
}

// CaptchaVerifier gates the contact form when enabled. Implemented by
// captcha.Verifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Deps carries the explicitly-owned state and sinks the handlers use. All of
// it is constructed once at process start; nothing here is package-global.
type Deps struct {
	Store   *store.Store
	Mailer  ContactMailer
	Webhook WebhookSink
	Captcha CaptchaVerifier
	Limiter *ratelimit.Limiter
	Logger  *slog.Logger
}

// NewHandler builds the site's HTTP API.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Get("/api/health", handleHealth)

	r.Post("/api/consultation-requests", handleCreateConsultation(deps))
	r.Get("/api/consultation-requests", handleListConsultations(deps))
	r.Post("/api/demo-call-requests", handleCreateDemoCall(deps))
	r.Get("/api/demo-call-requests", handleListDemoCalls(deps))

	// The contact form is embedded on pages served from other origins, so it
	// alone gets an open CORS policy.
	r.Route("/api/contact", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Post("/", handleContact(deps))
		r.Options("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	return r
}

// requestLogger emits one line per API request: method, path, status, duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
