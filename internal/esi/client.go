package esi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const baseURL = "https://esi.evetech.net/latest"

// userAgent identifies us to ESI per their developer guidelines.
const userAgent = "eve-seeker/1.0 (github.com)"

// Client is a rate-limited ESI HTTP client.
type Client struct {
	http      *http.Client
	base      string
	sem       chan struct{}
	nameCache sync.Map    // int32 -> string (L1 in-memory)
	nameStore NameStore   // L2 persistent cache (SQLite)
	orders    *orderCache // region orders with Expires-based TTL
}

// NewClient creates an ESI client with rate limiting and the given name cache store.
func NewClient(store NameStore) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		base:      baseURL,
		sem:       make(chan struct{}, 10),
		nameStore: store,
		orders:    newOrderCache(),
	}
}

// HealthCheck pings ESI to verify connectivity.
func (c *Client) HealthCheck() bool {
	req, err := http.NewRequest("GET", c.base+"/status/?datasource=tranquility", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == 200
}

// GetJSON fetches a URL and decodes JSON into dst.
func (c *Client) GetJSON(url string, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := newESIRequest(url)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ESI %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

// PostJSON posts a JSON body to a URL and decodes the JSON response into dst.
func (c *Client) PostJSON(url string, body interface{}, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ESI %d: %s", resp.StatusCode, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

// newESIRequest creates a standard ESI GET request with common headers.
func newESIRequest(url string) (*http.Request, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
