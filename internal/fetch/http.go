package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alnah/notes2pdf/internal/pipeline"
)

// DefaultUserAgent identifies requests made by HTTPFetcher.
const DefaultUserAgent = "notes2pdf"

// HTTPFetcher fetches notes from a Git host that serves rendered Markdown,
// such as a GitHub blob URL prefix.
type HTTPFetcher struct {
	Client    *http.Client
	BaseURL   string // prefix the relative path is appended to
	UserAgent string
	MaxSize   int64 // largest accepted page in bytes, 0 = MaxPageSize
}

// NewHTTPFetcher creates an HTTPFetcher whose requests time out after timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		BaseURL:   baseURL,
		UserAgent: DefaultUserAgent,
	}
}

// URL returns BaseURL followed by relPath with each segment escaped.
// No separator is inserted, so BaseURL normally ends with "/".
func (f *HTTPFetcher) URL(relPath string) string {
	segments := strings.Split(relPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return f.BaseURL + strings.Join(segments, "/")
}

// Fetch downloads the page for relPath and extracts its markdown-body
// article. Any status other than 200 is an error. A page without the
// article yields an empty Fragment with Found false.
// Relative links and images in the article are resolved against the page URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, relPath string) (Fragment, error) {
	target := f.URL(relPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: creating request: %v", ErrFetch, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: GET %s: %w", ErrFetch, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fragment{}, fmt.Errorf("%w: GET %s: HTTP %d", ErrFetch, target, resp.StatusCode)
	}

	limit := f.MaxSize
	if limit <= 0 {
		limit = MaxPageSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: reading %s: %w", ErrFetch, target, err)
	}
	if int64(len(body)) > limit {
		return Fragment{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, target, limit)
	}

	article, found, err := ExtractArticle(bytes.NewReader(body))
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: reading %s: %v", ErrFetch, target, err)
	}
	if !found {
		return Fragment{Source: target}, nil
	}

	article, err = pipeline.RewriteRelativePaths(article, resp.Request.URL)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: rewriting links in %s: %v", ErrFetch, target, err)
	}

	return Fragment{HTML: article, Found: true, Source: target}, nil
}

// Compile-time interface check.
var _ Fetcher = (*HTTPFetcher)(nil)
