package utils

import (
	"net/http"
)

// DefaultUserAgent is sent when no other agent is configured. The detail
// pages serve a reduced document to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 Edg/124.0"

// API issues plain GET requests with a fixed set of headers.
type API struct {
	client    *http.Client
	userAgent string
}

// NewAPI creates an API client. A nil client means http.DefaultClient and an
// empty userAgent means DefaultUserAgent.
func NewAPI(client *http.Client, userAgent string) *API {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &API{client: client, userAgent: userAgent}
}

// Get performs a GET against rawURL. The caller owns the response body.
func (a *API) Get(rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", a.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return a.client.Do(req)
}
