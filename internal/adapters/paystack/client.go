package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventticketing/internal/domain"
)

const successStatus = "success"

// maxBodyBytes bounds how much of a gateway response is read.
const maxBodyBytes = 1 << 20

type client struct {
	http      *http.Client
	baseURL   string
	secretKey string
}

// NewClient returns a domain.PaymentGateway backed by the Paystack REST API.
// The timeout bounds every gateway call.
func NewClient(baseURL, secretKey string, timeout time.Duration) domain.PaymentGateway {
	return &client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		secretKey: secretKey,
	}
}

// envelope is the shape shared by every Paystack response.
type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

type verifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	GatewayResponse string `json:"gateway_response"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type initializeBody struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency,omitempty"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (c *client) Verify(ctx context.Context, reference string) (domain.VerificationResult, error) {
	unavailable := domain.VerificationResult{Status: domain.VerificationUnavailable}

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable, fmt.Errorf("%w: create request: %v", domain.ErrUpstreamUnavailable, err)
	}
	var body envelope[verifyData]
	status, err := c.do(req, &body)
	if err != nil {
		unavailable.Message = err.Error()
		return unavailable, err
	}
	// 4xx answers other than auth/rate problems carry a definitive verdict,
	// e.g. 400 "Transaction reference not found".
	if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusTooManyRequests {
		unavailable.Message = body.Message
		return unavailable, fmt.Errorf("%w: paystack returned status %d: %s", domain.ErrUpstreamUnavailable, status, body.Message)
	}

	result := domain.VerificationResult{Status: domain.VerificationFailed, Message: body.Message}
	if body.Data != nil {
		result.GatewayStatus = body.Data.Status
		result.Amount = domain.Amount(body.Data.Amount)
		result.Currency = body.Data.Currency
	}
	if body.Status && body.Data != nil && body.Data.Status == successStatus {
		result.Status = domain.VerificationSucceeded
	}
	return result, nil
}

func (c *client) Initialize(ctx context.Context, in domain.PaymentInitRequest) (*domain.PaymentInitResponse, error) {
	payload, err := json.Marshal(initializeBody{
		Email:       in.Email,
		Amount:      in.Amount.Minor(),
		Currency:    in.Currency,
		CallbackURL: in.CallbackURL,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("encode initialize request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var body envelope[initializeData]
	status, err := c.do(req, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !body.Status || body.Data == nil {
		return nil, fmt.Errorf("%w: paystack initialize rejected (status %d): %s", domain.ErrUpstreamUnavailable, status, body.Message)
	}
	return &domain.PaymentInitResponse{
		Reference:        body.Data.Reference,
		AuthorizationURL: body.Data.AuthorizationURL,
		AccessCode:       body.Data.AccessCode,
	}, nil
}

// do sends an authenticated request and decodes the JSON body into dest.
// Transport failures, 5xx answers and undecodable bodies wrap ErrUpstreamUnavailable.
func (c *client) do(req *http.Request, dest any) (int, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, fmt.Errorf("%w: paystack returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return resp.StatusCode, fmt.Errorf("%w: decode paystack response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return resp.StatusCode, nil
}
