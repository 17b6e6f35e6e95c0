// internal/common/supabase/client.go
package supabase

import (
	"context"
	"net/http"
	"time"

	"parkhub-notifier/internal/common/config"
	httpclient "parkhub-notifier/internal/common/http"
)

// Client provides read access to the Supabase REST (PostgREST) and
// auth (GoTrue) endpoints. All requests carry the service-level key as
// both the apikey header and a bearer token; this client runs outside
// any user session and must never echo the key back to callers.
type Client struct {
	restURL    string
	authURL    string
	serviceKey string
	httpClient *httpclient.Client
}

// NewClient creates a new instance of Client.
func NewClient(cfg config.SupabaseConfig, timeout time.Duration) *Client {
	return &Client{
		restURL:    cfg.RestURL(),
		authURL:    cfg.AuthURL(),
		serviceKey: cfg.ServiceKey,
		httpClient: httpclient.NewClient(timeout),
	}
}

// newGetRequest builds an authorized GET request against a full URL.
func (c *Client) newGetRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}
