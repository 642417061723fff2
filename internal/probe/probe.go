// Package probe performs liveness checks against resolved canonical URLs.
// It never affects verification output; probe results are advisory.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"llmsbeacon/internal/logging"
	"llmsbeacon/internal/types"
)

const (
	defaultConcurrency = 8
	defaultTimeout     = 10 * time.Second
	userAgent          = "llmsbeacon-probe/1.0"
)

// Result is the outcome of probing a single URL.
type Result struct {
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code"`
	Elapsed    time.Duration `json:"elapsed"`
	Err        string        `json:"error,omitempty"`
}

// OK reports whether the URL answered with a 2xx status.
func (r Result) OK() bool {
	return r.Err == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// Options configures a probe run.
type Options struct {
	// Concurrency bounds in-flight requests. Zero means 8.
	Concurrency int

	// Timeout applies per request. Zero means 10s.
	Timeout time.Duration

	// Client replaces the HTTP client; nil builds one from Timeout.
	Client *http.Client
}

// Run probes every URL and returns results in URL order. A context
// cancellation stops the remaining requests; results gathered so far are
// still returned alongside the context error.
func Run(ctx context.Context, urls []string, opts Options) ([]Result, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	logging.Probe("probing %d urls (concurrency %d)", len(urls), concurrency)

	var mu sync.Mutex
	results := make([]Result, 0, len(urls))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for _, url := range urls {
		url := url
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res := probeOne(egCtx, client, url)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	err := eg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].URL < results[j].URL })
	return results, err
}

func probeOne(ctx context.Context, client *http.Client, url string) Result {
	started := time.Now()
	res := Result{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	res.Elapsed = time.Since(started)
	if err != nil {
		res.Err = err.Error()
		logging.Probe("probe %s failed: %v", url, err)
		return res
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	logging.Probe("probe %s -> %d (%s)", url, resp.StatusCode, res.Elapsed)
	return res
}

// ToIssues converts failed probes into advisory warnings.
func ToIssues(results []Result) []types.Issue {
	var issues []types.Issue
	for _, r := range results {
		if r.OK() {
			continue
		}
		msg := fmt.Sprintf("url did not answer 2xx (status %d)", r.StatusCode)
		if r.Err != "" {
			msg = fmt.Sprintf("url unreachable: %s", r.Err)
		}
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Code:     types.CodeProbeFailed,
			Message:  msg,
			Path:     r.URL,
		})
	}
	return issues
}
