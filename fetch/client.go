// Package fetch downloads documents and their images from the Google Docs
// API.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"

	"gdex/gdocs"
	"gdex/misc"
)

const (
	defaultBaseURL = "https://docs.googleapis.com"

	scopeDocuments = "https://www.googleapis.com/auth/documents.readonly"
	scopeDrive     = "https://www.googleapis.com/auth/drive.readonly"
)

// Response size guards. Body of a very large document runs into tens of
// megabytes of JSON, images are capped separately.
var (
	maxDocumentSize = 100 << 20
	maxImageSize    = 64 << 20
)

// Client talks to the Google Docs API on behalf of a service account.
type Client struct {
	base   string
	authed *http.Client
	plain  *http.Client
	log    *zap.Logger
}

// NewClient builds an API client. With a service account key file requests to
// the API are authorized as that account, which must be able to read the
// requested documents (shared with it directly or through domain-wide
// delegation). Without credentials requests stay anonymous, enough for
// pre-signed image URLs but not for the documents endpoint.
func NewClient(ctx context.Context, credentialsPath string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	plain := &http.Client{Timeout: timeout}
	c := &Client{
		base:   defaultBaseURL,
		authed: plain,
		plain:  plain,
		log:    log.Named("fetch"),
	}
	if len(credentialsPath) == 0 {
		c.log.Debug("No service account credentials configured, requests will be anonymous")
		return c, nil
	}

	key, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(key, scopeDocuments, scopeDrive)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	c.authed = conf.Client(ctx)
	c.authed.Timeout = timeout
	return c, nil
}

// Document downloads and decodes a document by its ID. Raw response body is
// returned alongside the parsed tree so it can end up in a debug report.
func (c *Client) Document(ctx context.Context, id string) (*gdocs.Document, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/documents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("User-Agent", misc.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.authed.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to get document %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := apiError(resp, "document "+id); err != nil {
		return nil, nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxDocumentSize)+1))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read document %s: %w", id, err)
	}
	if len(data) > maxDocumentSize {
		return nil, nil, fmt.Errorf("document %s is too big (over %d bytes)", id, maxDocumentSize)
	}
	c.log.Debug("Document downloaded",
		zap.String("id", id),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	doc, err := gdocs.ParseDocument(data, c.log)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

// Image downloads image bytes from uri. Content URLs issued by the API are
// pre-signed and short-lived, no authorization is attached to the request.
func (c *Client) Image(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("User-Agent", misc.GetUserAgent())

	resp, err := c.plain.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to get image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s for image", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxImageSize)+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image is too big (over %d bytes)", maxImageSize)
	}
	return data, nil
}

func apiError(resp *http.Response, what string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%s does not exist", what)
	case http.StatusForbidden:
		return fmt.Errorf("access to %s is denied, share it with the service account", what)
	case http.StatusUnauthorized:
		return fmt.Errorf("request for %s was not authorized, check credentials", what)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s for %s: %s", resp.Status, what, strings.TrimSpace(string(body)))
	}
}
