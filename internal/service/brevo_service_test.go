package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "xkeysib-super-secret"

func newTestBrevo(t *testing.T, baseURL string) *BrevoService {
	t.Helper()
	svc, err := NewBrevoService(BrevoConfig{
		APIKey:         testAPIKey,
		BaseURL:        baseURL,
		SenderEmail:    "noreply@example.com",
		SenderName:     "Contact Form",
		RecipientEmail: "inbox@example.com",
		SendRate:       100,
		SendBurst:      10,
	})
	require.NoError(t, err)
	return svc
}

func testMessage() *ContactMessage {
	return &ContactMessage{
		Name:    "John <Doe>",
		Email:   "john@example.com",
		Subject: "Test",
		Message: "Hello",
		Info: &ContactMessageInfo{
			IPAddress: "203.0.113.7",
			UserAgent: "go-test",
		},
	}
}

func TestNewBrevoService_RequiresCredentials(t *testing.T) {
	_, err := NewBrevoService(BrevoConfig{SenderEmail: "a@b.c", RecipientEmail: "c@d.e"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendContactEmail_Success(t *testing.T) {
	var got brevoEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		assert.Equal(t, testAPIKey, r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<202401011200.123@smtp-relay.mailin.fr>"}`))
	}))
	defer srv.Close()

	svc := newTestBrevo(t, srv.URL+"/v3/")
	id, err := svc.SendContactEmail(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "<202401011200.123@smtp-relay.mailin.fr>", id)

	assert.Equal(t, "noreply@example.com", got.Sender.Email)
	assert.Equal(t, "Contact Form", got.Sender.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "inbox@example.com", got.To[0].Email)
	assert.Equal(t, "john@example.com", got.ReplyTo.Email)
	assert.Equal(t, "John <Doe>", got.ReplyTo.Name)
	assert.Equal(t, "Contact Form: Test", got.Subject)
	assert.Contains(t, got.HTMLContent, "John &lt;Doe&gt;")
	assert.NotContains(t, got.HTMLContent, "<Doe>")
	assert.Contains(t, got.TextContent, "Message:\nHello")
	assert.Contains(t, got.TextContent, "IP: 203.0.113.7")
}

func TestSendContactEmail_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   DispatchKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"code":"unauthorized","message":"Key not found"}`, DispatchAuthentication},
		{"forbidden", http.StatusForbidden, `{"code":"permission_denied","message":"IP not allowed"}`, DispatchAuthentication},
		{"no credits", http.StatusPaymentRequired, `{"code":"not_enough_credits","message":"no credits"}`, DispatchQuotaExceeded},
		{"too many", http.StatusTooManyRequests, ``, DispatchQuotaExceeded},
		{"bad sender", http.StatusBadRequest, `{"code":"invalid_parameter","message":"sender is invalid"}`, DispatchRejected},
		{"server error", http.StatusInternalServerError, `oops`, DispatchRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestBrevo(t, srv.URL).SendContactEmail(context.Background(), testMessage())
			require.Error(t, err)

			var dispatchErr *DispatchError
			require.True(t, errors.As(err, &dispatchErr))
			assert.Equal(t, tt.kind, dispatchErr.Kind)
			assert.Equal(t, tt.status, dispatchErr.StatusCode)
			assert.ErrorIs(t, err, ErrDispatch)
			assert.NotContains(t, err.Error(), testAPIKey)
		})
	}
}

func TestSendContactEmail_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestBrevo(t, baseURL).SendContactEmail(context.Background(), testMessage())
	require.Error(t, err)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, DispatchNetwork, dispatchErr.Kind)
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestSendContactEmail_CancelledContext(t *testing.T) {
	svc := newTestBrevo(t, "http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SendContactEmail(ctx, testMessage())

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, DispatchQuotaExceeded, dispatchErr.Kind)
}

func TestSendContactEmail_DeadlineComesFromContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<slow@test>"}`))
	}))
	defer srv.Close()

	svc := newTestBrevo(t, srv.URL+"/v3")
	assert.Zero(t, svc.client.Timeout)

	t.Run("generous deadline succeeds", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := svc.SendContactEmail(ctx, testMessage())
		require.NoError(t, err)
		assert.Equal(t, "<slow@test>", id)
	})

	t.Run("short deadline fails as network error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := svc.SendContactEmail(ctx, testMessage())
		var dispatchErr *DispatchError
		require.True(t, errors.As(err, &dispatchErr))
		assert.Equal(t, DispatchNetwork, dispatchErr.Kind)
	})
}
