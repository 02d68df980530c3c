package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

// fetchHTTP downloads u with the resolver's retrying client.
func (d *Default) fetchHTTP(ctx context.Context, u *url.URL, dst string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", ErrInvalidArgument, u, err)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrNetwork, u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: GET %s: %s (%w)", ErrNetwork, u, resp.Status, ErrNotFound)
		}
		return fmt.Errorf("%w: GET %s: %s", ErrNetwork, u, resp.Status)
	}

	body := &readTracker{r: resp.Body}
	if err := writeAtomic(dst, body); err != nil {
		if body.err != nil {
			return fmt.Errorf("%w: reading body of %s: %v", ErrNetwork, u, errors.Join(body.err, err))
		}
		return err
	}
	return nil
}
