package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	appErr "wan/pkg/errors"
	"wan/pkg/utils/logger"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports a 2xx status.
func (r ResponseInfo) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs single JSON exchanges against a base URL.
// Every call builds its own transport, so nothing is reused between calls.
type Client struct {
	baseURL string
}

func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request. Only failures to complete the exchange are errors;
// a non-2xx status is returned in ResponseInfo for the caller to judge.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (ResponseInfo, error) {
	var info ResponseInfo

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.InvalidArgs, "build request failed: %v", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Transport: newTransport()}
	logger.Debug(ctx, "sending request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("body_bytes", len(body)),
	)

	start := time.Now()
	resp, err := client.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.NetworkError, "request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.NetworkError, "read response body failed: %v", err)
	}
	info.Body = bodyBytes

	logger.Debug(ctx, "response received",
		zap.Int("status", info.StatusCode),
		zap.Duration("duration", info.Duration),
		zap.Int("body_bytes", len(info.Body)),
	)
	return info, nil
}

func newTransport() http.RoundTripper {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DisableKeepAlives = true
	return gzhttp.Transport(base)
}
