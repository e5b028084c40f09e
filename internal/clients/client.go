// Package clients implements the pluggable external quote providers.
// Each provider returns a partial pair-key map; an empty map means "no
// data", never an error. Transport failures are wrapped as API request
// errors at this boundary so the core never branches on HTTP specifics.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"golang.org/x/time/rate"
)

// apiClient is the HTTP plumbing shared by all providers: a bounded
// request rate, a small constant-backoff retry and a hard timeout.
type apiClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      *retrier.Retrier
}

func newAPIClient(timeout time.Duration) apiClient {
	return apiClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		retry:      retrier.New(retrier.ConstantBackoff(3, 250*time.Millisecond), nil),
	}
}

// getJSON issues a rate-limited, retried GET and decodes the JSON body into v.
func (c apiClient) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.retry.RunCtx(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(v)
	})
}
