package api

import (
	"errors"
	"net/http"

	"github.com/engrainai/siteapi/internal/captcha"
	"github.com/engrainai/siteapi/internal/forms"
	"github.com/engrainai/siteapi/internal/ratelimit"
	"github.com/engrainai/siteapi/internal/webhook"
)

func handleCreateConsultation(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in forms.ConsultationInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		rec := deps.Store.CreateConsultationRequest(in)
		deps.Webhook.Enqueue(webhook.Delivery{FormType: forms.KindConsultation, Data: rec})
		respondJSON(w, http.StatusCreated, rec)
	}
}

func handleListConsultations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, deps.Store.ListConsultationRequests())
	}
}

func handleCreateDemoCall(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in forms.DemoCallInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		rec := deps.Store.CreateDemoCallRequest(in)
		deps.Webhook.Enqueue(webhook.Delivery{FormType: forms.KindDemoCall, Data: rec})
		respondJSON(w, http.StatusCreated, rec)
	}
}

func handleListDemoCalls(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, deps.Store.ListDemoCallRequests())
	}
}

// handleContact runs the long path: rate limit, validation, optional captcha,
// store write, synchronous email, fire-and-forget webhook. Checks that reject
// the caller all happen before any side effect; the store write is never
// rolled back once made.
func handleContact(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientAddr := ratelimit.ClientAddr(r)
		if !deps.Limiter.Allow(clientAddr) {
			respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		var in forms.ContactInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		if err := deps.Captcha.Verify(r.Context(), in.CaptchaToken, clientAddr); err != nil {
			if captcha.IsClientError(err) {
				respondError(w, http.StatusBadRequest, captchaMessage(err))
				return
			}
			deps.Logger.Error("captcha verification unavailable", "error", err)
			respondError(w, http.StatusInternalServerError, "An error occurred processing your request. Please try again.")
			return
		}

		rec := deps.Store.CreateContactRequest(in)

		// The user is told whether their message could be emailed, so this
		// send blocks the response. The record stays either way.
		if err := deps.Mailer.SendContactNotification(r.Context(), rec); err != nil {
			deps.Logger.Error("contact email send failed", "id", rec.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to send message. Please try again.")
			return
		}

		deps.Webhook.Enqueue(webhook.Delivery{FormType: forms.KindContact, Data: rec})

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Message sent successfully",
		})
	}
}

func captchaMessage(err error) string {
	switch {
	case errors.Is(err, captcha.ErrTokenRequired):
		return "reCAPTCHA verification required"
	case errors.Is(err, captcha.ErrVerificationFailed):
		return "reCAPTCHA verification failed"
	case errors.Is(err, captcha.ErrInvalidAction):
		return "Invalid reCAPTCHA action"
	default:
		return "Security check failed. Please try again."
	}
}
