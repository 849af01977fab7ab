// Package scrape fetches remote pages and extracts the small set of metadata
// needed to turn a shared URL into a bookmark.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const maxBodyBytes = 2 * 1024 * 1024

// Config contains fetcher configuration
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// PageMeta holds the metadata extracted from a fetched page.
type PageMeta struct {
	Title       string
	Description string
}

// Fetcher retrieves pages over HTTP and extracts their metadata.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
	}
}

// FetchMeta downloads the page at targetURL and extracts its title element and
// meta description. Missing elements yield empty fields, not an error.
func (f *Fetcher) FetchMeta(ctx context.Context, targetURL string) (*PageMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", targetURL, resp.StatusCode)
	}

	meta := extractMeta(io.LimitReader(resp.Body, maxBodyBytes))
	return meta, nil
}

// extractMeta walks the HTML token stream collecting the first <title> text
// and the content of <meta name="description">.
func extractMeta(r io.Reader) *PageMeta {
	meta := &PageMeta{}
	tokenizer := html.NewTokenizer(r)

	inTitle := false
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			// io.EOF or malformed markup; return what we have.
			return meta
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "title":
				inTitle = meta.Title == ""
			case "meta":
				if meta.Description == "" && metaName(token) == "description" {
					meta.Description = strings.TrimSpace(metaContent(token))
				}
			case "body":
				// Both live in <head>; no need to scan the document body.
				return meta
			}
		case html.EndTagToken:
			if tokenizer.Token().Data == "title" {
				inTitle = false
			}
		case html.TextToken:
			if inTitle {
				meta.Title += strings.TrimSpace(string(tokenizer.Text()))
			}
		}
	}
}

func metaName(token html.Token) string {
	for _, attr := range token.Attr {
		if attr.Key == "name" {
			return strings.ToLower(attr.Val)
		}
	}
	return ""
}

func metaContent(token html.Token) string {
	for _, attr := range token.Attr {
		if attr.Key == "content" {
			return attr.Val
		}
	}
	return ""
}
