package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventticketing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Verify(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantStatus domain.VerificationStatus
		wantErr    bool
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			body:       `{"status":true,"message":"Verification successful","data":{"status":"success","reference":"TX1","amount":10000,"currency":"GHS"}}`,
			wantStatus: domain.VerificationSucceeded,
		},
		{
			name:       "top level status false",
			statusCode: http.StatusOK,
			body:       `{"status":false,"message":"nope","data":{"status":"success"}}`,
			wantStatus: domain.VerificationFailed,
		},
		{
			name:       "abandoned transaction",
			statusCode: http.StatusOK,
			body:       `{"status":true,"message":"Verification successful","data":{"status":"abandoned"}}`,
			wantStatus: domain.VerificationFailed,
		},
		{
			name:       "reference not found",
			statusCode: http.StatusBadRequest,
			body:       `{"status":false,"message":"Transaction reference not found"}`,
			wantStatus: domain.VerificationFailed,
		},
		{
			name:       "invalid key",
			statusCode: http.StatusUnauthorized,
			body:       `{"status":false,"message":"Invalid key"}`,
			wantStatus: domain.VerificationUnavailable,
			wantErr:    true,
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantStatus: domain.VerificationUnavailable,
			wantErr:    true,
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       `not json`,
			wantStatus: domain.VerificationUnavailable,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/transaction/verify/TX1", r.URL.Path)
				assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "sk_test_123", time.Second)
			got, err := c.Verify(context.Background(), "TX1")
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestClient_Verify_CarriesAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"status":"success","amount":15000,"currency":"GHS"}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "sk", time.Second).Verify(context.Background(), "TX1")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(15000), got.Amount)
	assert.Equal(t, "GHS", got.Currency)
	assert.Equal(t, "success", got.GatewayStatus)
}

func TestClient_Verify_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	got, err := NewClient(srv.URL, "sk", 50*time.Millisecond).Verify(context.Background(), "TX1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, domain.VerificationUnavailable, got.Status)
}

func TestClient_Verify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got, err := NewClient(url, "sk", time.Second).Verify(context.Background(), "TX1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, domain.VerificationUnavailable, got.Status)
}

func TestClient_Initialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body initializeBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ama@example.com", body.Email)
		assert.Equal(t, int64(10000), body.Amount)
		assert.Equal(t, "GHS", body.Currency)

		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"ref-1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "sk", time.Second)
	got, err := c.Initialize(context.Background(), domain.PaymentInitRequest{
		Email:    "ama@example.com",
		Amount:   10000,
		Currency: "GHS",
	})
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc", got.AuthorizationURL)
	assert.Equal(t, "abc", got.AccessCode)
}

func TestClient_Initialize_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid Email Address Passed"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "sk", time.Second).Initialize(context.Background(), domain.PaymentInitRequest{Email: "x", Amount: 1})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "Invalid Email Address Passed")
}
