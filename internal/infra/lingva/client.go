package lingva

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected lingva response status")
	ErrEmptyTranslation = errors.New("empty translation")
)

// Client translates text through a Lingva Translate instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type translateResponse struct {
	Translation string `json:"translation"`
	Error       string `json:"error,omitempty"`
}

func (c *Client) Translate(ctx context.Context, source, target, text string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s/%s/%s",
		c.baseURL, url.PathEscape(source), url.PathEscape(target), url.PathEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("lingva: %s", out.Error)
	}
	if strings.TrimSpace(out.Translation) == "" {
		return "", ErrEmptyTranslation
	}

	return out.Translation, nil
}
