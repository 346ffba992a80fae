package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
)

const defaultBaseURL = "https://api.paystack.co"

// Client implements the gateway.Client interface against the Paystack
// transaction API. Amounts cross the wire in kobo.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *zap.Logger
}

// NewClient creates a new Paystack client. An empty baseURL selects the
// production API; timeout bounds every gateway call.
func NewClient(secretKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		secretKey:  secretKey,
		logger:     logger,
	}
}

// Name returns the gateway identifier recorded as the payment method
func (c *Client) Name() string {
	return "paystack"
}

type initializePayload struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string          `json:"status"`
	Amount          int64           `json:"amount"`
	GatewayResponse string          `json:"gateway_response"`
	Channel         string          `json:"channel"`
	PaidAt          string          `json:"paid_at"`
	Customer        verifyCustomer  `json:"customer"`
	Metadata        json.RawMessage `json:"metadata"`
}

type verifyCustomer struct {
	Email string `json:"email"`
}

// Initialize creates a hosted checkout session for an amount/reference
func (c *Client) Initialize(ctx context.Context, req *gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	if c.secretKey == "" {
		return nil, domainErrors.NewGatewayError("initialize", req.Reference, "gateway secret key is not configured", nil)
	}

	payload := initializePayload{
		Email:       req.Email,
		Amount:      gateway.ToMinorUnits(req.Amount),
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	env, err := c.post(ctx, "/transaction/initialize", payload)
	if err != nil {
		return nil, domainErrors.NewGatewayError("initialize", req.Reference, "request failed", err)
	}
	if !env.Status {
		return nil, domainErrors.NewGatewayError("initialize", req.Reference, env.Message, nil)
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, domainErrors.NewGatewayError("initialize", req.Reference, "malformed gateway response", err)
	}

	c.logger.Info("Gateway checkout session created",
		zap.String("reference", data.Reference),
		zap.String("access_code", data.AccessCode))

	return &gateway.InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the authoritative final status for a reference. A
// gateway-reported non-success transaction is a result, not an error.
func (c *Client) Verify(ctx context.Context, reference string) (*gateway.VerifyResult, error) {
	if c.secretKey == "" {
		return nil, domainErrors.NewGatewayError("verify", reference, "gateway secret key is not configured", nil)
	}

	env, err := c.get(ctx, "/transaction/verify/"+reference)
	if err != nil {
		return nil, domainErrors.NewGatewayError("verify", reference, "request failed", err)
	}
	if !env.Status {
		return nil, domainErrors.NewGatewayError("verify", reference, env.Message, nil)
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, domainErrors.NewGatewayError("verify", reference, "malformed gateway response", err)
	}

	result := &gateway.VerifyResult{
		Status:  gateway.TransactionStatus(data.Status),
		Amount:  gateway.FromMinorUnits(data.Amount),
		Channel: data.Channel,
		Email:   data.Customer.Email,
	}

	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			result.PaidAt = &paidAt
		}
	}

	// Paystack returns metadata as "" when none was sent
	if len(data.Metadata) > 0 {
		var metadata map[string]interface{}
		if err := json.Unmarshal(data.Metadata, &metadata); err == nil {
			result.Metadata = metadata
		}
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("gateway returned HTTP %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	return &env, nil
}
