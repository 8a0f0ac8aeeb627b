package httpclient

import "net/http"

// HTTPDoer captures the subset of *http.Client the API client relies on.
// Tests inject fake implementations of this interface so the bridge can be
// verified offline without a running CQHTTP gateway.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
