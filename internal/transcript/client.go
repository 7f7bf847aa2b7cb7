package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/airenas/transcript-fetcher/internal/utils"
)

// Client downloads video pages from the upstream platform
type Client struct {
	httpclient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient creates an upstream client. baseURL is a prefix the video id is appended to.
// Zero timeout means the request is bound only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	res := Client{}
	if baseURL == "" {
		return nil, fmt.Errorf("no baseURL")
	}
	if timeout < 0 {
		return nil, fmt.Errorf("negative timeout %v", timeout)
	}
	res.baseURL = baseURL
	res.timeout = timeout
	res.httpclient = upstreamHTTPClient()
	goapp.Log.Info().Str("url", baseURL).Dur("timeout", timeout).Msg("Upstream client")
	return &res, nil
}

// URL returns the page URL for videoID. The id is not escaped.
func (sp *Client) URL(videoID string) string {
	return sp.baseURL + videoID
}

// Get fetches the page body for videoID
func (sp *Client) Get(ctx context.Context, videoID string) ([]byte, error) {
	if sp.timeout > 0 {
		var cancelF context.CancelFunc
		ctx, cancelF = context.WithTimeout(ctx, sp.timeout)
		defer cancelF()
	}

	url := sp.URL(videoID)
	goapp.Log.Info().Str("id", utils.RequestID(ctx)).Str("url", url).Msg("Fetching transcript")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := sp.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1000))
		_ = resp.Body.Close()
	}()
	if err := goapp.ValidateHTTPResp(resp, 100); err != nil {
		return nil, fmt.Errorf("can't invoke '%s': %w", url, err)
	}
	res, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read response: %w", err)
	}
	goapp.Log.Info().Str("id", utils.RequestID(ctx)).Int("status", resp.StatusCode).Int("len", len(res)).Msg("Received transcript response")
	return res, nil
}

func upstreamHTTPClient() *http.Client {
	return &http.Client{Transport: newTransport()}
}

func newTransport() http.RoundTripper {
	res := http.DefaultTransport.(*http.Transport).Clone()
	res.MaxConnsPerHost = 20
	res.MaxIdleConns = 5
	res.MaxIdleConnsPerHost = 5
	res.IdleConnTimeout = 90 * time.Second
	return res
}
