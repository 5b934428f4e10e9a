package check

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"keephy-check/pkg/model"
	"keephy-check/pkg/version"
)

// DefaultProbeTimeout bounds every probe request. Image probes in particular
// must never hang a batch run on a stalled connection.
const DefaultProbeTimeout = 5 * time.Second

func (s *Session) client() *http.Client {
	return &http.Client{Timeout: DefaultProbeTimeout}
}

// CheckImage probes an image URL and reports whether it loads. Failures are
// recorded in the session log; the call itself never returns an error so
// batch callers can aggregate without per-call handling.
func (s *Session) CheckImage(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.record(fmt.Sprintf("Image %s failed to load", url))
		return false
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.client().Do(req)
	if err != nil {
		s.record(fmt.Sprintf("Image %s failed to load", url))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.record(fmt.Sprintf("Image %s failed to load", url))
		return false
	}
	return true
}

// CheckAPIEndpoint issues a lightweight HEAD probe. Transport failures are
// data, not exceptions: they come back as status 0 with the error message,
// and are appended to the session log.
func (s *Session) CheckAPIEndpoint(ctx context.Context, url string) model.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		s.record(fmt.Sprintf("API endpoint %s is not accessible: %v", url, err))
		return model.CheckResult{URL: url, Method: http.MethodHead, Status: 0, Error: err.Error()}
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.client().Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		s.record(fmt.Sprintf("API endpoint %s is not accessible: %v", url, err))
		return model.CheckResult{URL: url, Method: http.MethodHead, Status: 0, ResponseTime: elapsed, Error: err.Error()}
	}
	defer resp.Body.Close()

	return model.CheckResult{
		URL:          url,
		Method:       http.MethodHead,
		Status:       resp.StatusCode,
		ResponseTime: elapsed,
		Success:      resp.StatusCode < 400,
	}
}
