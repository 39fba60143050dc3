package captcha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func verifierFor(t *testing.T, response string) *Verifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing siteverify form: %v", err)
		}
		if r.PostForm.Get("secret") != "test-secret" {
			t.Errorf("secret = %q, want test-secret", r.PostForm.Get("secret"))
		}
		fmt.Fprint(w, response)
	}))
	t.Cleanup(srv.Close)
	return NewWithEndpoint("test-secret", srv.URL, srv.Client(), quietLogger())
}

func TestVerify_DisabledAcceptsEverything(t *testing.T) {
	v := New("", nil, quietLogger())
	if err := v.Verify(context.Background(), "", "203.0.113.7"); err != nil {
		t.Errorf("disabled verifier should accept, got %v", err)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	v := NewWithEndpoint("test-secret", "http://127.0.0.1:0", nil, quietLogger())
	err := v.Verify(context.Background(), "", "203.0.113.7")
	if !errors.Is(err, ErrTokenRequired) {
		t.Errorf("err = %v, want ErrTokenRequired", err)
	}
}

func TestVerify_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  error
	}{
		{
			name:     "passes",
			response: `{"success":true,"score":0.9,"action":"contact_form_submit"}`,
		},
		{
			name:     "verification failure",
			response: `{"success":false,"error-codes":["invalid-input-response"]}`,
			wantErr:  ErrVerificationFailed,
		},
		{
			name:     "action mismatch",
			response: `{"success":true,"score":0.9,"action":"login"}`,
			wantErr:  ErrInvalidAction,
		},
		{
			name:     "low score",
			response: `{"success":true,"score":0.2,"action":"contact_form_submit"}`,
			wantErr:  ErrLowScore,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := verifierFor(t, tt.response)
			err := v.Verify(context.Background(), "token", "203.0.113.7")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !IsClientError(err) {
				t.Errorf("%v should be a client error", err)
			}
		})
	}
}

func TestVerify_UpstreamErrorIsNotClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	v := NewWithEndpoint("test-secret", srv.URL, srv.Client(), quietLogger())
	err := v.Verify(context.Background(), "token", "203.0.113.7")
	if err == nil {
		t.Fatal("expected error on malformed siteverify response")
	}
	if IsClientError(err) {
		t.Errorf("upstream failure %v must not be a client error", err)
	}
}
