// Package facebook is a thin client for the Graph API profile endpoint.
package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/Laisky/errors/v2"
)

const defaultGraphURL = "https://graph.facebook.com/me"

// Profile is the subset of the Graph API /me response the service uses.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client struct {
	httpCli  *http.Client
	graphURL string
}

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithGraphURL overrides the Graph API endpoint.
func WithGraphURL(u string) Option {
	return func(c *Client) {
		c.graphURL = u
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpCli:  &http.Client{Timeout: 8 * time.Second},
		graphURL: defaultGraphURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchProfile exchanges a user access token for the user's id, name and
// email. Any non-200 answer from the Graph API is treated as an invalid token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	q := url.Values{}
	q.Set("fields", "id,name,email")
	q.Set("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.graphURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request facebook graph api")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("facebook graph api returned %d", resp.StatusCode)
	}

	profile := new(Profile)
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, errors.Wrap(err, "decode facebook profile")
	}
	if profile.ID == "" {
		return nil, errors.Errorf("facebook profile missing id")
	}

	return profile, nil
}
