package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentError reasons. The gateway response shape is not guaranteed, so
// every failure mode gets its own reason for the caller to act on.
const (
	ReasonGatewayNoLink   = "gateway_no_link"
	ReasonGatewayRejected = "gateway_rejected"
	ReasonUnreachable     = "gateway_unreachable"
)

// Error is a typed payment failure. Reason is one of the Reason*
// constants, Detail carries the gateway message when one was available.
type Error struct {
	Reason string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("payment failed: %s", e.Reason)
	}
	return fmt.Sprintf("payment failed: %s: %s", e.Reason, e.Detail)
}

// Client calls the Lygos gateway to create checkout sessions.
type Client struct {
	baseURL    string
	apiKey     string
	shopName   string
	httpClient *http.Client
}

// NewClient creates a Lygos client.
func NewClient(baseURL, apiKey, shopName string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		shopName:   shopName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckoutRequest is the payload the gateway expects. Amount is in XAF.
type CheckoutRequest struct {
	Amount     int    `json:"amount"`
	ShopName   string `json:"shop_name"`
	Message    string `json:"message"`
	SuccessURL string `json:"success_url"`
	FailureURL string `json:"failure_url"`
	OrderID    string `json:"order_id"`
}

// checkoutResponse is parsed loosely: the only field the contract
// requires is the redirect link, and even that may be absent.
type checkoutResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// CreateCheckout asks the gateway for a checkout session and returns the
// redirect URL. Failures are returned as *Error.
func (c *Client) CreateCheckout(ctx context.Context, req *CheckoutRequest) (string, error) {
	req.ShopName = c.shopName

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode checkout request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1/gateway", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Reason: ReasonUnreachable, Detail: err.Error()}
	}
	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", readErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close gateway response body: %w", closeErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &Error{Reason: ReasonGatewayRejected}
		var parsed checkoutResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			gwErr.Detail = parsed.Message
		} else {
			gwErr.Detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", gwErr
	}

	var parsed checkoutResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{Reason: ReasonGatewayNoLink, Detail: "unparseable gateway response"}
	}
	if parsed.Link == "" {
		return "", &Error{Reason: ReasonGatewayNoLink}
	}

	return parsed.Link, nil
}
