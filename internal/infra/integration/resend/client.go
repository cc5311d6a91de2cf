package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.resend.com"

var ErrNotConfigured = errors.New("resend: api key not configured")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at another host, e.g. an httptest server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) SendEmail(ctx context.Context, input SendEmailRequest) (*SendEmailResponse, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("resend %d %s: %s", resp.StatusCode, apiErr.Name, apiErr.Message)
		}
		return nil, fmt.Errorf("resend %d: %s", resp.StatusCode, string(body))
	}

	var out SendEmailResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode resend response: %w", err)
	}
	return &out, nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
