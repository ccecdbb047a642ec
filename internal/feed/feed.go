// Package feed downloads job postings from a paginated JSON feed.
//
// A page looks like {"items": [...], "found": 120, "pages": 2, "page": 0,
// "per_page": 100}; pages are 0-based and requested with the "page" query
// parameter.
package feed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/postings"
)

const (
	defaultUserAgent = "spigell/resume-matcher"
	defaultPerPage   = 100
	// Guards against feeds reporting an absurd page count.
	maxPages = 50
)

type Config struct {
	URL       string        `mapstructure:"url" validate:"omitempty,url"`
	TokenFile string        `mapstructure:"token_file"`
	UserAgent string        `mapstructure:"user_agent"`
	Query     string        `mapstructure:"query"`
	PerPage   int           `mapstructure:"per_page" validate:"gte=0,lte=1000"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type page struct {
	Items   []*postings.Posting `json:"items"`
	Found   int                 `json:"found"`
	Pages   int                 `json:"pages"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	url     string
	token   string
	perPage int
	logger  *zap.Logger
}

// New creates a Client for the feed at rawURL. token may be empty.
func New(rawURL, token string, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("feed url %q must be http or https", rawURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		UserAgent:  defaultUserAgent,
		url:        u.String(),
		token:      strings.TrimSpace(token),
		perPage:    defaultPerPage,
		logger:     logger,
	}, nil
}

// SetPerPage overrides the page size asked from the feed. Non-positive values
// are ignored.
func (c *Client) SetPerPage(n int) {
	if n > 0 {
		c.perPage = n
	}
}

// Fetch downloads every page matching text and returns the postings in feed
// order.
func (c *Client) Fetch(ctx context.Context, text string) (*postings.Postings, error) {
	q := url.Values{}
	if text = strings.TrimSpace(text); text != "" {
		q.Set("text", text)
	}
	q.Set("per_page", strconv.Itoa(c.perPage))

	resp, err := c.getPage(ctx, q, 0)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got feed response",
		zap.Int("found", resp.Found),
		zap.Int("pages", resp.Pages),
		zap.Int("per_page", resp.PerPage),
	)

	out := &postings.Postings{Items: resp.Items}
	for next := resp.Page + 1; next < min(resp.Pages, maxPages); next++ {
		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", next, resp.Pages),
		))

		resp, err = c.getPage(ctx, q, next)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, resp.Items...)
	}

	out.Normalize()
	return out, nil
}

func (c *Client) getPage(ctx context.Context, q url.Values, n int) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	q.Set("page", strconv.Itoa(n))
	req.URL.RawQuery = q.Encode()
	c.setHeaders(req)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %d: bad status: %s", n, resp.Status)
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var p page
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", n, err)
	}
	return &p, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
}

// decodedBody unwraps a gzip body. Setting Accept-Encoding by hand turns off
// the transport's transparent decompression.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return io.NopCloser(resp.Body), nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open gzip body: %w", err)
	}
	return zr, nil
}
