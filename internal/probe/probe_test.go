package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmsbeacon/internal/types"
)

func TestRun_MixedStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	urls := []string{srv.URL + "/ok", srv.URL + "/gone"}
	results, err := Run(context.Background(), urls, Options{Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Results come back sorted by URL regardless of completion order.
	assert.Equal(t, srv.URL+"/gone", results[0].URL)
	assert.Equal(t, http.StatusNotFound, results[0].StatusCode)
	assert.False(t, results[0].OK())
	assert.Equal(t, srv.URL+"/ok", results[1].URL)
	assert.True(t, results[1].OK())
}

func TestRun_UnreachableHost(t *testing.T) {
	results, err := Run(context.Background(), []string{"http://127.0.0.1:1/nope"}, Options{
		Timeout: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
	assert.False(t, results[0].OK())
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{"http://example.invalid/"}, Options{})
	assert.Error(t, err)
}

func TestToIssues(t *testing.T) {
	results := []Result{
		{URL: "https://example.com/a", StatusCode: 200},
		{URL: "https://example.com/b", StatusCode: 404},
		{URL: "https://example.com/c", Err: "dial tcp: connection refused"},
	}

	issues := ToIssues(results)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, types.SeverityWarning, is.Severity)
		assert.Equal(t, types.CodeProbeFailed, is.Code)
	}
	assert.Equal(t, "https://example.com/b", issues[0].Path)
	assert.Contains(t, issues[1].Message, "unreachable")
}
