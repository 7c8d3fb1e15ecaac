package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var got PushMessage
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	event := &entity.SecurityEvent{
		ID:        uuid.New(),
		EventType: entity.EventAccountLocked,
		Category:  entity.CategoryAuthentication,
		Severity:  entity.SeverityCritical,
		RequestID: "req-1",
		Message:   "account locked",
	}

	require.NoError(t, publisher.PublishSecurityEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, event.ID.String(), got.Message.MessageID)
	assert.Equal(t, "critical", got.Message.Attributes["severity"])
	assert.Equal(t, "account_locked", got.Message.Attributes["event_type"])

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var decoded entity.SecurityEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, entity.EventAccountLocked, decoded.EventType)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := publisher.PublishSecurityEvent(context.Background(), &entity.SecurityEvent{ID: uuid.New()})

	assert.ErrorContains(t, err, "502")
}
