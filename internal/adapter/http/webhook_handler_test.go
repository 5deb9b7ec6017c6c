package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/domain"
)

type fakeRouter struct {
	routed []domain.Event
	fail   map[string]error
	panics map[string]bool
}

func (r *fakeRouter) Route(_ context.Context, ev domain.Event) error {
	if r.panics[ev.WebhookEventID] {
		panic("boom")
	}
	r.routed = append(r.routed, ev)
	return r.fail[ev.WebhookEventID]
}

const batch = `{"destination":"bot-1","events":[
	{"type":"message","webhookEventId":"ev-1","replyToken":"rt-1",
	 "source":{"type":"user","userId":"U1"},"message":{"type":"text","text":"T1"}},
	{"type":"message","webhookEventId":"ev-2","replyToken":"rt-2",
	 "source":{"type":"user","userId":"U2"},"message":{"type":"text","text":"beer"}}
]}`

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestWebhookDispatchesEveryEvent(t *testing.T) {
	router := &fakeRouter{}
	h := NewWebhookHandler(router, logger.Nop())

	w := post(http.HandlerFunc(h.HandleWebhook), batch)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, router.routed, 2)
	assert.Equal(t, "U1", router.routed[0].Source.UserID)
	assert.Equal(t, "beer", router.routed[1].Message.Text)
}

func TestWebhookIsolatesFailingEvents(t *testing.T) {
	router := &fakeRouter{fail: map[string]error{"ev-1": errors.New("gateway down")}}
	h := NewWebhookHandler(router, logger.Nop())

	w := post(http.HandlerFunc(h.HandleWebhook), batch)

	// The failure is swallowed and the second event still processed.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, router.routed, 2)
}

func TestWebhookIsolatesPanickingEvents(t *testing.T) {
	router := &fakeRouter{panics: map[string]bool{"ev-1": true}}
	h := NewWebhookHandler(router, logger.Nop())

	w := post(http.HandlerFunc(h.HandleWebhook), batch)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, router.routed, 1)
	assert.Equal(t, "ev-2", router.routed[0].WebhookEventID)
}

func TestWebhookMalformedBodyAcknowledged(t *testing.T) {
	router := &fakeRouter{}
	h := NewWebhookHandler(router, logger.Nop())

	w := post(http.HandlerFunc(h.HandleWebhook), "{not json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, router.routed)
}

func TestWebhookEmptyBatchAcknowledged(t *testing.T) {
	h := NewWebhookHandler(&fakeRouter{}, logger.Nop())

	w := post(http.HandlerFunc(h.HandleWebhook), `{"events":[]}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookRejectsNonPost(t *testing.T) {
	h := NewWebhookHandler(&fakeRouter{}, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	w := httptest.NewRecorder()
	http.HandlerFunc(h.HandleWebhook)(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestSignatureMiddlewareAcceptsValidSignature(t *testing.T) {
	router := &fakeRouter{}
	h := NewWebhookHandler(router, logger.Nop())
	handler := SignatureMiddleware("secret", logger.Nop())(http.HandlerFunc(h.HandleWebhook))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(batch))
	req.Header.Set("X-Line-Signature", sign("secret", batch))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, router.routed, 2)
}

func TestSignatureMiddlewareRejectsBadSignature(t *testing.T) {
	router := &fakeRouter{}
	h := NewWebhookHandler(router, logger.Nop())
	handler := SignatureMiddleware("secret", logger.Nop())(http.HandlerFunc(h.HandleWebhook))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(batch))
	req.Header.Set("X-Line-Signature", sign("wrong-secret", batch))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, router.routed)
}

func TestSignatureMiddlewareDisabledWithoutSecret(t *testing.T) {
	router := &fakeRouter{}
	h := NewWebhookHandler(router, logger.Nop())
	handler := SignatureMiddleware("", logger.Nop())(http.HandlerFunc(h.HandleWebhook))

	w := post(handler, batch)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, router.routed, 2)
}
