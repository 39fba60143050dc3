package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"
	verifyTimeout   = 10 * time.Second

	// scoreThreshold is the minimum reCAPTCHA v3 score (0.0 bot .. 1.0 human).
	scoreThreshold = 0.5

	// expectedAction must match the action name the frontend passes to
	// grecaptcha.execute, preventing token reuse across forms.
	expectedAction = "contact_form_submit"
)

// Client-caused verification failures. Handlers map these to 400 responses;
// anything else from Verify means the verification service itself failed.
var (
	ErrTokenRequired      = errors.New("reCAPTCHA verification required")
	ErrVerificationFailed = errors.New("reCAPTCHA verification failed")
	ErrInvalidAction      = errors.New("invalid reCAPTCHA action")
	ErrLowScore           = errors.New("security check failed")
)

// IsClientError reports whether err is a rejection of the submitter rather
// than an upstream failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrTokenRequired) ||
		errors.Is(err, ErrVerificationFailed) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrLowScore)
}

// Verifier checks reCAPTCHA v3 tokens against the siteverify API. A Verifier
// with an empty secret is disabled and accepts everything.
type Verifier struct {
	secret   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func New(secret string, client *http.Client, logger *slog.Logger) *Verifier {
	return NewWithEndpoint(secret, defaultEndpoint, client, logger)
}

// NewWithEndpoint creates a Verifier against a custom siteverify endpoint
// (used by tests).
func NewWithEndpoint(secret, endpoint string, client *http.Client, logger *slog.Logger) *Verifier {
	if client == nil {
		client = &http.Client{Timeout: verifyTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{secret: secret, endpoint: endpoint, client: client, logger: logger}
}

// Enabled reports whether verification is active.
func (v *Verifier) Enabled() bool { return v.secret != "" }

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks token for the given client address. Disabled verifiers accept
// unconditionally. Client-caused rejections satisfy IsClientError; other
// errors mean siteverify could not be reached or understood.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return ErrTokenRequired
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
		"remoteip": {remoteIP},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling siteverify: %w", err)
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding siteverify response: %w", err)
	}

	if !result.Success {
		v.logger.Warn("reCAPTCHA verification failed", "errorCodes", result.ErrorCodes)
		return ErrVerificationFailed
	}
	if result.Action != expectedAction {
		v.logger.Warn("reCAPTCHA action mismatch", "action", result.Action)
		return ErrInvalidAction
	}
	if result.Score < scoreThreshold {
		v.logger.Warn("low reCAPTCHA score", "score", result.Score, "remoteIP", remoteIP)
		return ErrLowScore
	}
	v.logger.Debug("reCAPTCHA verification passed", "score", result.Score)
	return nil
}
