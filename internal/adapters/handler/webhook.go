package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"trackerbot/internal/core/domain"
	"trackerbot/internal/core/port"
	"trackerbot/internal/core/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	headerTimestamp = "X-Slack-Request-Timestamp"
	headerSignature = "X-Slack-Signature"

	maxBodySize = 1 << 20
)

// Webhook exposes the two inbound surfaces. Both converge on the same
// verify/dispatch pipeline and differ only in how the response is delivered.
type Webhook struct {
	verifier   *service.Verifier
	dispatcher port.Dispatcher
	replies    port.ResponseSender
	callbacks  port.ResponseSender
}

func NewWebhook(verifier *service.Verifier, dispatcher port.Dispatcher,
	replies, callbacks port.ResponseSender) *Webhook {
	return &Webhook{
		verifier:   verifier,
		dispatcher: dispatcher,
		replies:    replies,
		callbacks:  callbacks,
	}
}

func (h *Webhook) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleHealth)
	r.Post("/slack/events", h.handleEvent)
	r.Post("/slack/command", h.handleCommand)

	return r
}

func (h *Webhook) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

type eventEnvelope struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     struct {
		Type    string `json:"type"`
		Subtype string `json:"subtype"`
		BotID   string `json:"bot_id"`
		Channel string `json:"channel"`
		Text    string `json:"text"`
		TS      string `json:"ts"`
	} `json:"event"`
}

func (h *Webhook) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readVerifiedBody(w, r)
	if !ok {
		return
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	// The URL-verification handshake is only answered after the signature
	// check above, so the challenge cannot be used unauthenticated.
	if envelope.Type == "url_verification" {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(envelope.Challenge))
		return
	}

	if envelope.Type != "event_callback" {
		w.WriteHeader(http.StatusOK)
		return
	}

	event := envelope.Event

	// Skip messages emitted by bots and message subtypes (edits, joins),
	// otherwise the relay would answer its own replies.
	if event.BotID != "" || event.Subtype != "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	h.dispatcher.DispatchAsync(&domain.Request{
		Surface:  domain.SurfaceEvent,
		Channel:  event.Channel,
		Text:     event.Text,
		ThreadTS: event.TS,
	}, h.replies)
}

func (h *Webhook) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readVerifiedBody(w, r)
	if !ok {
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	// Empty ack before the query runs; the caller times out in seconds and
	// the substantive answer goes to the response URL.
	w.WriteHeader(http.StatusOK)

	h.dispatcher.DispatchAsync(&domain.Request{
		Surface:     domain.SurfaceSlash,
		Channel:     form.Get("channel_id"),
		Command:     form.Get("command"),
		ResponseURL: form.Get("response_url"),
	}, h.callbacks)
}

// readVerifiedBody captures the raw body bytes and verifies the request
// signature before any decoding happens.
func (h *Webhook) readVerifiedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}

	if err := h.verifier.Verify(body, r.Header.Get(headerTimestamp), r.Header.Get(headerSignature)); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejecting unverified request")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return nil, false
	}

	return body, true
}
