// Package bitbucket implements the HTTP transport for the Bitbucket
// Server/Data Center v1 REST API. It owns authentication, URL construction
// and JSON decoding; callers receive raw decoded payloads and page
// envelopes and perform their own normalization.
package bitbucket

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ryclarke/stash-mcp/config"
	"github.com/ryclarke/stash-mcp/paging"
)

const apiPath = "/rest/api/1.0"

// Client is an authenticated HTTP client for a single Bitbucket Server
// instance. It is safe for concurrent use.
type Client struct {
	client *http.Client
	cfg    *config.Config
}

// New creates a Client from the resolved configuration.
func New(cfg *config.Config) *Client {
	client := http.DefaultClient

	if !cfg.SSLVerify {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// url constructs an API endpoint URL. An empty project key yields the
// top-level projects collection; an empty repo omits the repos segment.
func (c *Client) url(project, repo string, query url.Values, path ...string) string {
	uri := c.cfg.URL + apiPath + "/projects"

	if project != "" {
		uri += "/" + url.PathEscape(project)
	}

	if repo != "" {
		uri += "/repos/" + url.PathEscape(repo)
	}

	for _, segment := range path {
		uri += "/" + segment
	}

	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	return uri
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(start, limit int) url.Values {
	query := url.Values{}
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(limit))

	return query
}

// do performs an HTTP request and decodes the JSON response into T.
// A 404 response returns (nil, nil) so callers can distinguish an absent
// resource from a transport failure.
func do[T any](ctx context.Context, c *Client, method, rawurl string, body io.Reader) (*T, error) {
	resp, err := c.roundTrip(ctx, method, rawurl, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	if err := checkStatus(resp, method, rawurl); err != nil {
		return nil, err
	}

	// Some write endpoints respond with no content
	if resp.StatusCode == http.StatusNoContent {
		return new(T), nil
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", rawurl, err)
	}

	return &result, nil
}

// get performs a GET request and decodes the JSON response into T.
func get[T any](ctx context.Context, c *Client, rawurl string) (*T, error) {
	return do[T](ctx, c, http.MethodGet, rawurl, nil)
}

// getPage performs a GET request against a paged endpoint. An absent
// resource (404) is reported as a transport failure here, since list
// endpoints are expected to exist.
func getPage[T any](ctx context.Context, c *Client, rawurl string) (*paging.Page[T], error) {
	page, err := get[paging.Page[T]](ctx, c, rawurl)
	if err != nil {
		return nil, err
	}

	if page == nil {
		return nil, fmt.Errorf("resource not found at %s", rawurl)
	}

	return page, nil
}

// post performs a POST request with a JSON payload.
func post[T any](ctx context.Context, c *Client, rawurl string, payload any) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	return do[T](ctx, c, http.MethodPost, rawurl, strings.NewReader(string(body)))
}

// put performs a PUT request with a JSON payload.
func put[T any](ctx context.Context, c *Client, rawurl string, payload any) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	return do[T](ctx, c, http.MethodPut, rawurl, strings.NewReader(string(body)))
}

// exists probes a resource URL, mapping 200 to true and 404 to false.
// Any other outcome is a transport failure.
func (c *Client) exists(ctx context.Context, rawurl string) (bool, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected status %d probing %s", resp.StatusCode, rawurl)
	}
}

// raw performs a GET request and returns the response body verbatim.
// A 404 response returns (nil, nil).
func (c *Client) raw(ctx context.Context, rawurl string) ([]byte, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	if err := checkStatus(resp, http.MethodGet, rawurl); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawurl, err)
	}

	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, rawurl string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	switch c.cfg.AuthType {
	case config.AuthTypePAT:
		req.Header.Set("Authorization", "Bearer "+c.cfg.PersonalToken)
	case config.AuthTypeBasic:
		req.SetBasicAuth(c.cfg.Username, c.cfg.APIToken)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", rawurl, err)
	}

	return resp, nil
}

func checkStatus(resp *http.Response, method, rawurl string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	return fmt.Errorf("unexpected status %d from %s %s: %s", resp.StatusCode, method, rawurl, strings.TrimSpace(string(snippet)))
}
