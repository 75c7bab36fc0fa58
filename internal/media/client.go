package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client uploads product images to the object store over its REST API and
// returns the public URL to embed in product records.
type Client struct {
	endpoint   *url.URL
	publicBase *url.URL
	bucket     string
	token      string
	http       *http.Client

	// now is swappable in tests; object names are timestamp-prefixed so
	// re-uploads of the same filename never collide.
	now func() time.Time
}

func NewClient(endpoint, publicBase, bucket, token string, timeout time.Duration) (*Client, error) {
	ep, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	pb, err := url.Parse(publicBase)
	if err != nil {
		return nil, fmt.Errorf("parse public base %q: %w", publicBase, err)
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   ep,
		publicBase: pb,
		bucket:     bucket,
		token:      token,
		http:       &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

func (c *Client) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	objectName := fmt.Sprintf("%d-%s", c.now().UnixMilli(), sanitizeName(name))
	target := c.endpoint.JoinPath(c.bucket, objectName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return "", fmt.Errorf("upload object: status %d: %s", res.StatusCode, detail)
	}

	return c.publicBase.JoinPath(c.bucket, objectName).String(), nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	if name == "" {
		name = "upload"
	}
	return name
}
