package check

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"keephy-check/pkg/model"
	"keephy-check/pkg/version"
)

// Endpoint is one probe target with the status code the gateway contract
// promises for it.
type Endpoint struct {
	URL            string `yaml:"url"`
	Method         string `yaml:"method"`
	ExpectedStatus int    `yaml:"expectedStatus"`
}

// DefaultEndpoints is the gateway contract list: liveness endpoints answer
// 200, credential endpoints reject empty payloads with 400, protected
// resources demand auth with 401.
func DefaultEndpoints(base string) []Endpoint {
	return []Endpoint{
		{URL: base + "/health", Method: http.MethodGet, ExpectedStatus: 200},
		{URL: base + "/api/health", Method: http.MethodGet, ExpectedStatus: 200},
		{URL: base + "/api/auth/me", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/auth/login", Method: http.MethodPost, ExpectedStatus: 400},
		{URL: base + "/api/auth/register", Method: http.MethodPost, ExpectedStatus: 400},
		{URL: base + "/api/organizations", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/forms", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/submissions", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/analytics", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/notifications", Method: http.MethodGet, ExpectedStatus: 401},
		{URL: base + "/api/status", Method: http.MethodGet, ExpectedStatus: 200},
	}
}

// LoadEndpoints reads a probe list override from a YAML file.
func LoadEndpoints(path string) ([]Endpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Endpoints []Endpoint `yaml:"endpoints"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse endpoints file %s: %w", path, err)
	}
	if len(doc.Endpoints) == 0 {
		return nil, fmt.Errorf("endpoints file %s defines no endpoints", path)
	}
	for i := range doc.Endpoints {
		if doc.Endpoints[i].Method == "" {
			doc.Endpoints[i].Method = http.MethodGet
		}
		if doc.Endpoints[i].ExpectedStatus == 0 {
			doc.Endpoints[i].ExpectedStatus = 200
		}
	}
	return doc.Endpoints, nil
}

// APIChecker probes a fixed endpoint list sequentially and classifies each
// response against the expected status. Total run time is the sum of
// round-trips; fine for a short list.
type APIChecker struct {
	Client *http.Client
	Out    io.Writer

	results  []model.CheckResult
	errors   []string
	warnings []string
}

func NewAPIChecker(out io.Writer) *APIChecker {
	if out == nil {
		out = os.Stdout
	}
	return &APIChecker{
		Client: &http.Client{Timeout: DefaultProbeTimeout},
		Out:    out,
	}
}

// CheckEndpoint probes one endpoint. Transport failures and timeouts become
// status-0 results, never returned errors.
func (c *APIChecker) CheckEndpoint(ctx context.Context, ep Endpoint) model.CheckResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, ep.Method, ep.URL, nil)
	if err != nil {
		return c.failResult(ep, time.Since(start).Milliseconds(), err.Error())
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return c.failResult(ep, elapsed, err.Error())
	}
	defer resp.Body.Close()

	result := model.CheckResult{
		URL:          ep.URL,
		Method:       ep.Method,
		Status:       resp.StatusCode,
		ResponseTime: elapsed,
		Success:      resp.StatusCode == ep.ExpectedStatus,
	}
	c.results = append(c.results, result)

	if result.Success {
		logf(c.Out, sevSuccess, "%s %s - %d (%dms)", ep.Method, ep.URL, resp.StatusCode, elapsed)
	} else {
		c.errors = append(c.errors, fmt.Sprintf("%s %s - Expected %d, got %d", ep.Method, ep.URL, ep.ExpectedStatus, resp.StatusCode))
		logf(c.Out, sevError, "%s %s - %d (%dms)", ep.Method, ep.URL, resp.StatusCode, elapsed)
	}
	return result
}

func (c *APIChecker) failResult(ep Endpoint, elapsed int64, msg string) model.CheckResult {
	c.errors = append(c.errors, fmt.Sprintf("%s %s - Connection error: %s", ep.Method, ep.URL, msg))
	logf(c.Out, sevError, "%s %s - Connection error (%dms)", ep.Method, ep.URL, elapsed)
	result := model.CheckResult{
		URL:          ep.URL,
		Method:       ep.Method,
		Status:       0,
		ResponseTime: elapsed,
		Success:      false,
		Error:        msg,
	}
	c.results = append(c.results, result)
	return result
}

// checkResponseTimes flags endpoints slower than 2s.
func (c *APIChecker) checkResponseTimes() {
	logf(c.Out, sevInfo, "Analyzing response times...")
	var slow []model.CheckResult
	for _, r := range c.results {
		if r.ResponseTime > 2000 {
			slow = append(slow, r)
		}
	}
	if len(slow) > 0 {
		c.warnings = append(c.warnings, fmt.Sprintf("%d endpoints are slow (>2s)", len(slow)))
		for _, r := range slow {
			logf(c.Out, sevWarning, "Slow endpoint: %s (%dms)", r.URL, r.ResponseTime)
		}
	}
	logf(c.Out, sevInfo, "Total endpoints checked: %d", len(c.results))
}

// checkErrorRates warns when more than 10% of probes failed.
func (c *APIChecker) checkErrorRates() {
	logf(c.Out, sevInfo, "Analyzing error rates...")
	if len(c.results) == 0 {
		return
	}
	failed := 0
	for _, r := range c.results {
		if !r.Success {
			failed++
		}
	}
	rate := float64(failed) / float64(len(c.results)) * 100
	if rate > 10 {
		c.warnings = append(c.warnings, fmt.Sprintf("High error rate: %.2f%%", rate))
		logf(c.Out, sevWarning, "Error rate: %.2f%%", rate)
	} else {
		logf(c.Out, sevSuccess, "Error rate: %.2f%%", rate)
	}
}

// Run probes every endpoint in order and prints the final report.
func (c *APIChecker) Run(ctx context.Context, endpoints []Endpoint) Report {
	logf(c.Out, sevInfo, "🚀 Starting API Validation...")

	for _, ep := range endpoints {
		c.CheckEndpoint(ctx, ep)
	}

	c.checkResponseTimes()
	c.checkErrorRates()

	succeeded := 0
	var totalTime int64
	for _, r := range c.results {
		if r.Success {
			succeeded++
		}
		totalTime += r.ResponseTime
	}

	logf(c.Out, sevInfo, "\n📊 API VALIDATION REPORT")
	logf(c.Out, sevInfo, "Total Endpoints Checked: %d", len(c.results))
	logf(c.Out, sevSuccess, "Successful Requests: %d", succeeded)
	logf(c.Out, sevError, "Failed Requests: %d", len(c.results)-succeeded)
	printFindings(c.Out, "SUMMARY", c.errors, c.warnings)
	if len(c.results) > 0 {
		logf(c.Out, sevInfo, "Average Response Time: %.2fms", float64(totalTime)/float64(len(c.results)))
	}

	if c.errors == nil {
		c.errors = []string{}
	}
	if c.warnings == nil {
		c.warnings = []string{}
	}
	return Report{
		Results:  c.results,
		Errors:   c.errors,
		Warnings: c.warnings,
		Success:  len(c.errors) == 0,
	}
}
