package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/engrainai/siteapi/internal/config"
	"github.com/engrainai/siteapi/internal/forms"
)

const (
	queueCapacity   = 64
	deliveryTimeout = 10 * time.Second
	maxLoggedBody   = 500
)

// Delivery is one form submission bound for the external webhook.
type Delivery struct {
	FormType forms.Kind
	Data     any
}

type payload struct {
	FormType  forms.Kind `json:"formType"`
	Data      any        `json:"data"`
	Timestamp string     `json:"timestamp"`
}

// Dispatcher forwards form submissions to a configured webhook URL on a
// background goroutine. Delivery is at-most-once: failures of any kind are
// logged and dropped, never retried, and never visible to the HTTP response
// that triggered them. When no URL/key is configured every Enqueue is a
// logged no-op.
type Dispatcher struct {
	cfg    config.WebhookConfig
	client *http.Client
	queue  chan Delivery
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Dispatcher with a bounded queue. If client is nil a default
// client with the delivery timeout is used.
func New(cfg config.WebhookConfig, client *http.Client, logger *slog.Logger) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: deliveryTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		cfg:    cfg,
		client: client,
		queue:  make(chan Delivery, queueCapacity),
		logger: logger,
		now:    time.Now,
	}
}

// Enqueue hands a delivery to the background worker without blocking. A full
// queue drops the delivery; the caller already has its response either way.
func (d *Dispatcher) Enqueue(del Delivery) {
	if !d.cfg.Enabled() {
		d.logger.Info("webhook skipped, URL or API key not configured", "formType", del.FormType)
		return
	}
	select {
	case d.queue <- del:
	default:
		d.logger.Warn("webhook queue full, dropping delivery", "formType", del.FormType)
	}
}

// Run processes queued deliveries until ctx is cancelled, then drains
// whatever is already queued before returning.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case del := <-d.queue:
			d.deliver(del)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case del := <-d.queue:
			d.deliver(del)
		default:
			return
		}
	}
}

// deliver POSTs one delivery. In-flight requests deliberately do not inherit
// the server's shutdown context; each gets its own bounded deadline.
func (d *Dispatcher) deliver(del Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	body, err := json.Marshal(payload{
		FormType:  del.FormType,
		Data:      del.Data,
		Timestamp: d.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		d.logger.Error("webhook payload marshal failed", "formType", del.FormType, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		d.logger.Error("webhook request build failed", "formType", del.FormType, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Key", d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("webhook delivery failed", "formType", del.FormType, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		d.logger.Error("webhook returned non-2xx",
			"formType", del.FormType, "status", resp.StatusCode, "body", string(respBody))
		return
	}
	d.logger.Info("webhook delivered", "formType", del.FormType, "status", resp.StatusCode)
}
