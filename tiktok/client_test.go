package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the videos and sends the bearer token", func(t *testing.T) {
		var gotAuth, gotFields string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotFields = r.URL.Query().Get("fields")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"data": {
					"videos": [
						{"id": "1", "share_url": "https://www.tiktok.com/v/1", "title": "First"},
						{"id": "2", "share_url": "https://www.tiktok.com/v/2", "title": "Second"}
					],
					"has_more": false
				},
				"error": {"code": "ok", "message": ""}
			}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		videos, err := client.ListVideos(ctx, "secret-token")

		require.NoError(t, err)
		require.Len(t, videos, 2)
		require.Equal(t, "First", videos[0].Title)
		require.Equal(t, "Bearer secret-token", gotAuth)
		require.Equal(t, videoListFields, gotFields)
	})

	t.Run("surfaces API-level errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": {}, "error": {"code": "access_token_invalid", "message": "token expired"}}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := client.ListVideos(ctx, "stale-token")

		require.Error(t, err)
		require.Contains(t, err.Error(), "token expired")
	})

	t.Run("rejects non-200 responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := client.ListVideos(ctx, "tok")

		require.Error(t, err)
		require.Contains(t, err.Error(), "429")
	})
}

func TestAuthorizeURL(t *testing.T) {
	client := NewClient(ClientConfig{
		ClientKey:   "key-123",
		RedirectURI: "https://app.example/tiktok/auth/callback",
	})

	authorizeURL := client.AuthorizeURL("state-xyz")

	parsed, err := url.Parse(authorizeURL)
	require.NoError(t, err)
	require.Equal(t, "/v2/auth/authorize/", parsed.Path)
	require.Equal(t, "key-123", parsed.Query().Get("client_key"))
	require.Equal(t, "code", parsed.Query().Get("response_type"))
	require.Equal(t, "state-xyz", parsed.Query().Get("state"))
	require.Equal(t, "https://app.example/tiktok/auth/callback", parsed.Query().Get("redirect_uri"))
	require.Contains(t, parsed.Query().Get("scope"), "video.list")
}

func TestExchangeCode(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the form and returns the tokens", func(t *testing.T) {
		var gotForm url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"access_token": "access",
				"refresh_token": "refresh",
				"open_id": "open-id",
				"scope": "user.info.basic,video.list",
				"expires_in": 3600,
				"refresh_expires_in": 86400
			}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:      server.URL,
			ClientKey:    "key-123",
			ClientSecret: "secret-456",
			RedirectURI:  "https://app.example/cb",
		})
		token, err := client.ExchangeCode(ctx, "auth-code")

		require.NoError(t, err)
		require.Equal(t, "access", token.AccessToken)
		require.Equal(t, "open-id", token.OpenID)
		require.Equal(t, "auth-code", gotForm.Get("code"))
		require.Equal(t, "key-123", gotForm.Get("client_key"))
		require.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	})

	t.Run("surfaces exchange errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant", "error_description": "code expired"}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL})
		_, err := client.ExchangeCode(ctx, "stale-code")

		require.Error(t, err)
		require.Contains(t, err.Error(), "code expired")
	})
}
