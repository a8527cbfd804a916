package wandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	httpclient "wan/internal/cli/http"
	appErr "wan/pkg/errors"
)

// DefaultBaseURL is the public Wandbox service.
const DefaultBaseURL = "https://wandbox.org"

const (
	compilePath  = "/api/compile.json"
	listPath     = "/api/list.json"
	permlinkPath = "/api/permlink/"
)

// Doer performs one HTTP exchange relative to a base URL.
type Doer interface {
	Do(ctx context.Context, method, path string, body []byte) (httpclient.ResponseInfo, error)
	BaseURL() string
}

// Client talks to the Wandbox JSON API.
type Client struct {
	http Doer
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: httpclient.New(baseURL)}
}

// NewClientWithDoer creates a client over an existing transport.
func NewClientWithDoer(doer Doer) *Client {
	return &Client{http: doer}
}

// Compile submits param and decodes the result.
func (c *Client) Compile(ctx context.Context, param Parameter) (Result, error) {
	body, err := json.Marshal(param)
	if err != nil {
		return Result{}, appErr.Wrapf(err, appErr.InternalError, "marshal parameter failed: %v", err)
	}
	resp, err := c.http.Do(ctx, http.MethodPost, compilePath, body)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := decode(resp, &result); err != nil {
		return Result{}, err
	}
	return result, nil
}

// ListCompilers fetches every compiler the service offers.
func (c *Client) ListCompilers(ctx context.Context) ([]CompilerInfo, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, listPath, nil)
	if err != nil {
		return nil, err
	}
	var infos []CompilerInfo
	if err := decode(resp, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// ListCompilersRaw returns the list.json body untouched.
func (c *Client) ListCompilersRaw(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, listPath)
}

// GetPermlink fetches a stored submission by link.
func (c *Client) GetPermlink(ctx context.Context, link string) (PermlinkResult, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, permlinkPath+url.PathEscape(link), nil)
	if err != nil {
		return PermlinkResult{}, err
	}
	var result PermlinkResult
	if err := decode(resp, &result); err != nil {
		return PermlinkResult{}, err
	}
	return result, nil
}

// GetPermlinkRaw returns the permlink body untouched, after checking it decodes.
func (c *Client) GetPermlinkRaw(ctx context.Context, link string) ([]byte, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, permlinkPath+url.PathEscape(link), nil)
	if err != nil {
		return nil, err
	}
	var result PermlinkResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// PermlinkURL is the browsable page of a stored submission.
func (c *Client) PermlinkURL(link string) string {
	return c.http.BaseURL() + "/permlink/" + url.PathEscape(link)
}

func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, httpError(resp)
	}
	if !json.Valid(resp.Body) {
		return nil, appErr.New(appErr.DecodeError).WithMessage("response body is not valid JSON")
	}
	return resp.Body, nil
}

// decode fills out from the body. A non-2xx response is accepted only when
// its body still decodes into out; otherwise it is an HttpError.
func decode(resp httpclient.ResponseInfo, out interface{}) error {
	err := json.Unmarshal(resp.Body, out)
	if !resp.OK() {
		if err != nil {
			return httpError(resp)
		}
		return nil
	}
	if err != nil {
		return appErr.Wrapf(err, appErr.DecodeError, "decode response failed: %v", err)
	}
	return nil
}

func httpError(resp httpclient.ResponseInfo) error {
	return appErr.Newf(appErr.HttpError, "remote service returned HTTP %d", resp.StatusCode).
		WithDetail("status", resp.StatusCode).
		WithDetail("body", truncate(string(resp.Body), 512))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
