package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type httpProber struct {
	client *http.Client
	url    string
}

func newHTTPProber(url string) Prober {
	return &httpProber{client: &http.Client{}, url: url}
}

func (p *httpProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// The body is ignored; any success-class status means healthy.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return nil
}

// CheckOnce issues a single health request against the given URL. It is used
// by the status command; the supervisor's startup wait goes through
// WaitHealthy instead.
func CheckOnce(ctx context.Context, url string) error {
	return newHTTPProber(url).Probe(ctx)
}
