package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/x140y40/coolq-telegram-bot/pkg/httpclient"
	"github.com/x140y40/coolq-telegram-bot/pkg/jsonutil"
)

// Client issues calls against a CQHTTP gateway. The zero value (or a client
// built with an empty root) is a safe no-op: every call returns (nil, nil),
// so application code can run without a configured gateway.
//
// Any endpoint name reachable on the gateway can be called; there is no
// hardcoded method list. A call to action "send_group_msg" POSTs to
// "<root>/send_group_msg", nested paths are built with Endpoint.Child.
type Client struct {
	root        string
	accessToken string
	http        httpclient.HTTPDoer
}

// New builds a Client for the given API root. root may be empty, producing
// a no-op client. doer may be nil, in which case http.DefaultClient is used.
func New(root, accessToken string, doer httpclient.HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		root:        strings.TrimRight(strings.TrimSpace(root), "/"),
		accessToken: accessToken,
		http:        doer,
	}
}

// Configured reports whether the client has an API root to call.
func (c *Client) Configured() bool {
	return c != nil && c.root != ""
}

// Endpoint represents a partially-built gateway call path. Endpoints are
// immutable; Child always derives a new value sharing the parent's client.
type Endpoint struct {
	client *Client
	path   string
}

// Endpoint starts a call path at <root>/<name>.
func (c *Client) Endpoint(name string) Endpoint {
	return Endpoint{client: c, path: "/" + strings.Trim(name, "/")}
}

// Child appends one path segment, yielding <parent>/<name>.
func (e Endpoint) Child(name string) Endpoint {
	return Endpoint{client: e.client, path: e.path + "/" + strings.Trim(name, "/")}
}

// Call POSTs the params as a JSON body to the endpoint URL and decodes the
// gateway envelope {"status","retcode","data"}. On a no-op client it
// returns (nil, nil) without touching the network.
func (e Endpoint) Call(ctx context.Context, params map[string]any) (any, error) {
	c := e.client
	if !c.Configured() {
		return nil, nil
	}
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("api: encode params: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.root+e.path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Token "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: post %s: %w", c.root+e.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, NoRetCode)
	}

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	if jsonutil.CoerceString(envelope["status"]) == "failed" {
		retcode := NoRetCode
		if v, ok := envelope["retcode"]; ok {
			retcode = int(jsonutil.CoerceInt64(v))
		}
		return nil, newError(resp.StatusCode, retcode)
	}
	return envelope["data"], nil
}

// Call is the convenience form for calling an action by name. Dots separate
// path segments, so c.Call(ctx, "group.member.kick", params) hits
// <root>/group/member/kick, same as chaining Endpoint("group").
// Child("member").Child("kick").
func (c *Client) Call(ctx context.Context, action string, params map[string]any) (any, error) {
	segments := strings.Split(action, ".")
	e := c.Endpoint(segments[0])
	for _, name := range segments[1:] {
		e = e.Child(name)
	}
	return e.Call(ctx, params)
}
