// internal/common/supabase/users.go
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"parkhub-notifier/internal/common/errors"
)

// User is the subset of the auth admin user record this service reads.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// GetUser looks up a user through the privileged admin endpoint. This is
// not the session-based user API; it requires the service key.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	reqURL := fmt.Sprintf("%s/admin/users/%s", c.authURL, userID)

	req, err := c.newGetRequest(ctx, reqURL)
	if err != nil {
		return nil, errors.NewAuthLookupFailedError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAuthLookupFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewAuthLookupFailedError(
			fmt.Errorf("admin user lookup returned status %d: %s", resp.StatusCode, string(body)))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, errors.NewAuthLookupFailedError(fmt.Errorf("decode user response: %w", err))
	}

	return &user, nil
}
