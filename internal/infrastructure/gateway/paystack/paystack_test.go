package paystack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
	"github.com/CIPMABUJA/hr-hub-backend/internal/infrastructure/gateway/paystack"
)

func TestInitialize(t *testing.T) {
	logger := zap.NewNop()

	t.Run("converts amount to kobo and returns authorization URL", func(t *testing.T) {
		var received map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": true,
				"message": "Authorization URL created",
				"data": {
					"authorization_url": "https://checkout.paystack.com/abc123",
					"access_code": "abc123",
					"reference": "HRH-1700000000000-a1b2"
				}
			}`))
		}))
		defer server.Close()

		client := paystack.NewClient("sk_test_abc", server.URL, 5*time.Second, logger)

		result, err := client.Initialize(context.Background(), &gateway.InitializeRequest{
			Email:     "a@b.com",
			Amount:    decimal.NewFromInt(45000),
			Reference: "HRH-1700000000000-a1b2",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
		assert.Equal(t, "HRH-1700000000000-a1b2", result.Reference)
		assert.Equal(t, float64(4500000), received["amount"])
	})

	t.Run("non-success envelope is a gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
		}))
		defer server.Close()

		client := paystack.NewClient("sk_test_bad", server.URL, 5*time.Second, logger)

		_, err := client.Initialize(context.Background(), &gateway.InitializeRequest{
			Email:     "a@b.com",
			Amount:    decimal.NewFromInt(100),
			Reference: "ref-1",
		})

		assert.True(t, domainErrors.IsGateway(err))
	})

	t.Run("missing secret key fails before any call", func(t *testing.T) {
		client := paystack.NewClient("", "http://127.0.0.1:1", 5*time.Second, logger)

		_, err := client.Initialize(context.Background(), &gateway.InitializeRequest{
			Email:     "a@b.com",
			Amount:    decimal.NewFromInt(100),
			Reference: "ref-1",
		})

		assert.True(t, domainErrors.IsGateway(err))
	})
}

func TestVerify(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success converts kobo back to naira", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/verify/HRH-1-a1b2", r.URL.Path)
			w.Write([]byte(`{
				"status": true,
				"message": "Verification successful",
				"data": {
					"status": "success",
					"amount": 4500000,
					"channel": "card",
					"paid_at": "2026-03-10T14:25:00.000Z",
					"customer": {"email": "a@b.com"},
					"metadata": {"payment_type": "membership"}
				}
			}`))
		}))
		defer server.Close()

		client := paystack.NewClient("sk_test_abc", server.URL, 5*time.Second, logger)

		result, err := client.Verify(context.Background(), "HRH-1-a1b2")

		require.NoError(t, err)
		assert.Equal(t, gateway.StatusSuccess, result.Status)
		assert.True(t, decimal.NewFromInt(45000).Equal(result.Amount))
		assert.Equal(t, "card", result.Channel)
		assert.Equal(t, "a@b.com", result.Email)
		require.NotNil(t, result.PaidAt)
		assert.Equal(t, 2026, result.PaidAt.Year())
		assert.Equal(t, "membership", result.Metadata["payment_type"])
	})

	t.Run("gateway-reported failure is a result, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"status": true,
				"message": "Verification successful",
				"data": {"status": "abandoned", "amount": 4500000, "customer": {"email": "a@b.com"}, "metadata": ""}
			}`))
		}))
		defer server.Close()

		client := paystack.NewClient("sk_test_abc", server.URL, 5*time.Second, logger)

		result, err := client.Verify(context.Background(), "ref-2")

		require.NoError(t, err)
		assert.Equal(t, gateway.StatusAbandoned, result.Status)
		assert.Nil(t, result.Metadata)
	})

	t.Run("unreachable gateway is a gateway error", func(t *testing.T) {
		client := paystack.NewClient("sk_test_abc", "http://127.0.0.1:1", time.Second, logger)

		_, err := client.Verify(context.Background(), "ref-3")

		assert.True(t, domainErrors.IsGateway(err))
	})
}
