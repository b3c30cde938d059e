package seventeentrack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURI = "https://api.17track.net/track/v2.2"

var (
	// ErrMissingAPIKey is a configuration error, checked before any I/O.
	ErrMissingAPIKey = errors.New("17track API key is not set")
	// ErrMalformedResponse marks a payload that did not decode against the
	// documented response shape.
	ErrMalformedResponse = errors.New("malformed 17track response")
)

type Config struct {
	APIKey  string
	BaseURI string
}

type Client struct {
	config Config
	http   *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURI == "" {
		cfg.BaseURI = DefaultBaseURI
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Register binds a tracking number to the provider's monitoring system.
// Costs one registration against the monthly quota when accepted.
func (c *Client) Register(number string, carrierCode int) (*RegisterResponse, error) {
	payload := []RegisterRequest{{Number: number, Carrier: carrierCode}}
	var out RegisterResponse
	if err := c.post("/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrackInfo fetches current status and event history for registered
// numbers in one batch call. Free and unlimited, unlike registration.
func (c *Client) GetTrackInfo(numbers []string) (*TrackInfoResponse, error) {
	payload := make([]TrackRequest, 0, len(numbers))
	for _, number := range numbers {
		payload = append(payload, TrackRequest{Number: number})
	}
	var out TrackInfoResponse
	if err := c.post("/gettrackinfo", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetQuota returns the provider's quota payload unmodified.
func (c *Client) GetQuota() (json.RawMessage, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequest(http.MethodGet, c.config.BaseURI+"/getquota", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("17track request failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("17track request failed: %w", err)
	}
	if !json.Valid(raw) {
		return nil, ErrMalformedResponse
	}
	return raw, nil
}

func (c *Client) post(endpoint string, payload, out interface{}) error {
	if c.config.APIKey == "" {
		return ErrMissingAPIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.config.BaseURI+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("17track request failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("17token", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("transId", uuid.New().String())
}

func statusError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	return fmt.Errorf("17track returned HTTP %d: %s", resp.StatusCode, string(excerpt))
}
