package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendMailer_Send(t *testing.T) {
	var got resendRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := &ResendMailer{apiKey: "test-key", baseURL: srv.URL, client: srv.Client()}

	err := m.Send(context.Background(), Message{
		To:      "new@example.com",
		From:    "no-reply@example.com",
		Subject: "Please Verify Your Account",
		Text:    "welcome",
		HTML:    "<p>welcome</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"new@example.com"}, got.To)
	assert.Equal(t, "no-reply@example.com", got.From)
	assert.Equal(t, "Please Verify Your Account", got.Subject)
}

func TestResendMailer_Send_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from address"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := &ResendMailer{apiKey: "test-key", baseURL: srv.URL, client: srv.Client()}

	err := m.Send(context.Background(), Message{To: "new@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestLogMailer_Send(t *testing.T) {
	err := LogMailer{}.Send(context.Background(), Message{To: "new@example.com"})
	assert.NoError(t, err)
}
