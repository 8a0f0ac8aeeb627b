package httpclienttest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/x140y40/coolq-telegram-bot/pkg/httpclient"
)

// FakeDoer implements httpclient.HTTPDoer so callers can run tests without
// making outbound HTTP requests to a CQHTTP gateway.
type FakeDoer struct {
	t         testing.TB
	responses []*http.Response
	requests  []*http.Request
	bodies    []string
}

// NewFakeDoer returns a FakeDoer seeded with the responses that should be
// returned for each Do call.
func NewFakeDoer(t testing.TB, responses ...*http.Response) *FakeDoer {
	return &FakeDoer{
		t:         t,
		responses: append([]*http.Response(nil), responses...),
	}
}

// Do records the request (including its body) and returns the next queued
// response.
func (f *FakeDoer) Do(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			f.t.Fatalf("read request body: %v", err)
		}
		_ = req.Body.Close()
		body = string(b)
	}
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, body)
	if len(f.responses) == 0 {
		f.t.Fatalf("fake http client has no responses left for request %s %s", req.Method, req.URL.String())
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// Requests returns the HTTP requests captured so far.
func (f *FakeDoer) Requests() []*http.Request {
	return append([]*http.Request(nil), f.requests...)
}

// Bodies returns the request bodies captured so far, in request order.
func (f *FakeDoer) Bodies() []string {
	return append([]string(nil), f.bodies...)
}

// NewJSONResponse builds a minimal http.Response with the provided status
// code and JSON body string.
func NewJSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

var _ httpclient.HTTPDoer = (*FakeDoer)(nil)
