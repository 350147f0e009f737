package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tc.com/oracle-updater/pkg/feed"
	"tc.com/oracle-updater/pkg/version"
)

// flexNumber holds a numeric payload value verbatim, whether the source
// encoded it as a JSON number or a quoted string. Values never pass through
// float64; garbage is caught later by price validation.
type flexNumber string

// UnmarshalJSON implements json.Unmarshaler
func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		s = ""
	}
	*n = flexNumber(s)
	return nil
}

func (n flexNumber) String() string {
	return string(n)
}

// fetchJSON issues a GET bounded by timeout and decodes the JSON body into
// out.
func fetchJSON(ctx context.Context, client *http.Client, url string, timeout time.Duration, out interface{}) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.AgentString())

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", feed.ErrUnexpectedStatus, resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", feed.ErrInvalidResponse, err)
	}
	return nil
}
