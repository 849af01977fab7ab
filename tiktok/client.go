// Package tiktok integrates the TikTok open API as an ingestion source.
package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultAPIBaseURL  = "https://open.tiktokapis.com"
	defaultAuthBaseURL = "https://www.tiktok.com"
)

// authScopes are requested during account linking. There is no scope covering
// the platform's private bookmarks, so sync reads the user's own video list.
var authScopes = []string{"user.info.basic", "video.list"}

// videoListFields are the projection requested from the video list endpoint.
const videoListFields = "id,create_time,share_url,title,cover_image_url"

// Video is one entry from the user's video list.
type Video struct {
	ID            string `json:"id"`
	CreateTime    int64  `json:"create_time"`
	ShareURL      string `json:"share_url"`
	Title         string `json:"title"`
	CoverImageURL string `json:"cover_image_url"`
}

type videoListResponse struct {
	Data struct {
		Videos  []Video `json:"videos"`
		Cursor  int64   `json:"cursor"`
		HasMore bool    `json:"has_more"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PlatformClient covers the platform API surface the ingestion service needs:
// account linking and listing the user's content.
type PlatformClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	ListVideos(ctx context.Context, accessToken string) ([]Video, error)
}

// Client talks to the TikTok open API.
type Client struct {
	baseURL      string
	authBaseURL  string
	clientKey    string
	clientSecret string
	redirectURI  string
	timeout      time.Duration
}

// ClientConfig configures the TikTok API client.
type ClientConfig struct {
	BaseURL      string
	AuthBaseURL  string
	ClientKey    string
	ClientSecret string
	RedirectURI  string
	Timeout      time.Duration
}

// NewClient constructs a TikTok API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIBaseURL
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = defaultAuthBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		authBaseURL:  cfg.AuthBaseURL,
		clientKey:    cfg.ClientKey,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		timeout:      cfg.Timeout,
	}
}

// ListVideos returns the user's videos using their OAuth access token.
func (c *Client) ListVideos(ctx context.Context, accessToken string) ([]Video, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = c.timeout

	url := fmt.Sprintf("%s/v2/video/list/?fields=%s", c.baseURL, videoListFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build video list request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video list request returned status %d", resp.StatusCode)
	}

	var body videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode video list response: %w", err)
	}
	if body.Error.Code != "" && body.Error.Code != "ok" {
		return nil, fmt.Errorf("video list error: %s", body.Error.Message)
	}

	return body.Data.Videos, nil
}

// TokenResponse is the payload of a successful code exchange.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	OpenID           string `json:"open_id"`
	Scope            string `json:"scope"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`

	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// AuthorizeURL builds the URL the user visits to grant access. The platform
// uses client_key where standard OAuth uses client_id.
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_key", c.clientKey)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(authScopes, ","))
	params.Set("redirect_uri", c.redirectURI)
	params.Set("state", state)
	return fmt.Sprintf("%s/v2/auth/authorize/?%s", c.authBaseURL, params.Encode())
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_key", c.clientKey)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)

	endpoint := fmt.Sprintf("%s/v2/oauth/token/", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := &http.Client{Timeout: c.timeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || token.ErrorCode != "" {
		if token.ErrorDescription != "" {
			return nil, fmt.Errorf("token exchange failed: %s", token.ErrorDescription)
		}
		return nil, fmt.Errorf("token exchange returned status %d", resp.StatusCode)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access token")
	}

	return &token, nil
}

var _ PlatformClient = (*Client)(nil)
