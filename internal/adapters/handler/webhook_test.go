package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"trackerbot/internal/core/domain"
	"trackerbot/internal/core/port"
	"trackerbot/internal/core/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

type MockDispatcher struct {
	Request *domain.Request
	Sender  port.ResponseSender
	Calls   int
}

func (m *MockDispatcher) Dispatch(_ context.Context, request *domain.Request, sender port.ResponseSender) domain.Outcome {
	m.Request = request
	m.Sender = sender
	m.Calls++
	return domain.OutcomeResponded
}

func (m *MockDispatcher) DispatchAsync(request *domain.Request, sender port.ResponseSender) {
	m.Dispatch(context.Background(), request, sender)
}

type MockSender struct{}

func (m *MockSender) Send(_ context.Context, _ *domain.Request, _ string) error {
	return nil
}

func newTestWebhook() (*Webhook, *MockDispatcher) {
	dispatcher := &MockDispatcher{}
	return NewWebhook(service.NewVerifier(testSecret), dispatcher, &MockSender{}, &MockSender{}), dispatcher
}

func signedRequest(t *testing.T, path, body string) *http.Request {
	t.Helper()

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte("v0:" + ts + ":" + body))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(headerTimestamp, ts)
	req.Header.Set(headerSignature, "v0="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func TestHealthEndpoint(t *testing.T) {
	webhook, _ := newTestWebhook()

	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "ok", string(body))
}

func TestEventRejectsUnsignedRequest(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(`{"type":"event_callback"}`))
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}

func TestEventRejectsBadSignature(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(`{"type":"event_callback"}`))
	req.Header.Set(headerTimestamp, strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set(headerSignature, "v0=0000000000000000000000000000000000000000000000000000000000000000")
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}

func TestEventRejectsMalformedPayload(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/events", "{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}

func TestEventChallengeEcho(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	body := `{"type":"url_verification","challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"}`
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/events", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	respBody, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P", string(respBody))
	assert.Zero(t, dispatcher.Calls)
}

func TestEventDispatchesMessage(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	body := `{"type":"event_callback","event":{"type":"message","channel":"C024BE91L","text":"check #problemashoy","ts":"1700000000.000100"}}`
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/events", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, dispatcher.Calls)
	assert.Equal(t, domain.SurfaceEvent, dispatcher.Request.Surface)
	assert.Equal(t, "C024BE91L", dispatcher.Request.Channel)
	assert.Equal(t, "check #problemashoy", dispatcher.Request.Text)
	assert.Equal(t, "1700000000.000100", dispatcher.Request.ThreadTS)
}

func TestEventSkipsBotMessages(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	body := `{"type":"event_callback","event":{"type":"message","bot_id":"B01","channel":"C024BE91L","text":"#problemashoy"}}`
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/events", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}

func TestEventSkipsMessageSubtypes(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	body := `{"type":"event_callback","event":{"type":"message","subtype":"message_changed","channel":"C024BE91L","text":"#problemashoy"}}`
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/events", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}

func TestCommandAcksAndDispatches(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	body := "command=%2Fcomandos&channel_id=C024BE91L&response_url=https%3A%2F%2Fhooks.example.com%2Fcb"
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, signedRequest(t, "/slack/command", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	respBody, _ := io.ReadAll(rec.Body)
	assert.Empty(t, respBody)

	require.Equal(t, 1, dispatcher.Calls)
	assert.Equal(t, domain.SurfaceSlash, dispatcher.Request.Surface)
	assert.Equal(t, "/comandos", dispatcher.Request.Command)
	assert.Equal(t, "C024BE91L", dispatcher.Request.Channel)
	assert.Equal(t, "https://hooks.example.com/cb", dispatcher.Request.ResponseURL)
}

func TestCommandRejectsUnsignedRequest(t *testing.T) {
	webhook, dispatcher := newTestWebhook()

	req := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader("command=%2Fcomandos"))
	rec := httptest.NewRecorder()
	webhook.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, dispatcher.Calls)
}
