package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/middleware"
)

const tokenField = "token"

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
	Token   string
}

func NewClient(name, baseURL, token string, httpClient *http.Client) *Client {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Client{Name: name, BaseURL: u, HTTP: httpClient, Token: token}
}

func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader, headers http.Header) (*http.Response, error) {
	rel := &url.URL{Path: strings.TrimPrefix(path, "/"), RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	// Ensure correlation id propagated upstream
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	return c.HTTP.Do(req)
}

// PostForm sends a form-encoded body with the API token attached and returns the raw
// response text. Non-2xx statuses are not errors: the legacy API reports outcome in the body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	if form == nil {
		form = url.Values{}
	}
	form.Set(tokenField, c.Token)

	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Do(ctx, http.MethodPost, path, "", strings.NewReader(form.Encode()), headers)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.Name, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", c.Name, path, err)
	}
	return raw, nil
}
