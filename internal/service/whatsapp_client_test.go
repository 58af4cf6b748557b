package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elderguard-data/internal/config"
	"elderguard-data/internal/domain"
)

func TestWhatsAppSend_SimulatedWhenCredentialsMissing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewWhatsAppClient(&config.WhatsAppConfig{
		BaseURL: server.URL,
	}, zap.NewNop())

	result := client.Send(context.Background(), "+15551234567", "hello")

	assert.True(t, client.Simulated())
	assert.Equal(t, domain.DispatchSimulated, result.Status)
	assert.Equal(t, "+15551234567", result.Recipient)
	assert.Equal(t, "hello", result.Detail)
	assert.False(t, called, "simulated mode must not hit the network")
}

func TestWhatsAppSend_Success(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotBody WhatsAppMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(&config.WhatsAppConfig{
		BaseURL:       server.URL,
		PhoneNumberID: "123456",
		AccessToken:   "test-token",
	}, zap.NewNop())

	result := client.Send(context.Background(), "+15551234567", "SOS ALERT! Mary needs help.")

	assert.Equal(t, domain.DispatchSent, result.Status)
	assert.Equal(t, "+15551234567", result.Recipient)
	assert.Equal(t, "/123456/messages", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "text", gotBody.Type)
	assert.Equal(t, "+15551234567", gotBody.To)
	assert.Equal(t, "SOS ALERT! Mary needs help.", gotBody.Text.Body)
}

func TestWhatsAppSend_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(&config.WhatsAppConfig{
		BaseURL:       server.URL,
		PhoneNumberID: "123456",
		AccessToken:   "bad-token",
	}, zap.NewNop())

	result := client.Send(context.Background(), "+15551234567", "hello")

	assert.Equal(t, domain.DispatchError, result.Status)
	assert.Equal(t, "+15551234567", result.Recipient)
	assert.Contains(t, result.Detail, "status=401")
}
