// Package bot ties the outbound API client and the inbound dispatch engine
// together into the surface application code programs against.
package bot

import (
	"context"
	"sync"

	"github.com/x140y40/coolq-telegram-bot/pkg/api"
	"github.com/x140y40/coolq-telegram-bot/pkg/dispatch"
	"github.com/x140y40/coolq-telegram-bot/pkg/payload"
)

// Bot is one CQHTTP gateway connection: an API client for outbound calls
// and a handler registry for inbound events. Register handlers before the
// webhook server starts serving; late registration is lock-protected but
// ordering relative to in-flight dispatches is then unspecified.
type Bot struct {
	mu     sync.RWMutex
	client *api.Client

	registry   *dispatch.Registry
	dispatcher *dispatch.Dispatcher
}

// New builds a Bot around an API client. client may be a no-op client when
// no API root is configured.
func New(client *api.Client) *Bot {
	reg := dispatch.NewRegistry()
	return &Bot{
		client:     client,
		registry:   reg,
		dispatcher: &dispatch.Dispatcher{Registry: reg},
	}
}

// API returns the current outbound client.
func (b *Bot) API() *api.Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client
}

// SetAPI swaps the outbound client, e.g. after a credential reload.
func (b *Bot) SetAPI(client *api.Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.client = client
}

// Handle registers a handler in the given priority group. Empty types means
// the wildcard: the handler matches any sub-type without an exact
// registration in its group.
func (b *Bot) Handle(group int, postType payload.PostType, h dispatch.Handler, types ...string) dispatch.Handler {
	return b.registry.Register(group, postType, types, h)
}

// OnMessage registers a message handler in the default priority group.
func (b *Bot) OnMessage(h dispatch.Handler, types ...string) dispatch.Handler {
	return b.Handle(0, payload.PostTypeMessage, h, types...)
}

// OnEvent registers a notice-event handler in the default priority group.
func (b *Bot) OnEvent(h dispatch.Handler, types ...string) dispatch.Handler {
	return b.Handle(0, payload.PostTypeEvent, h, types...)
}

// OnRequest registers a request handler in the default priority group.
func (b *Bot) OnRequest(h dispatch.Handler, types ...string) dispatch.Handler {
	return b.Handle(0, payload.PostTypeRequest, h, types...)
}

// Dispatch runs the inbound payload through the priority groups and returns
// the winning handler's response, nil for an empty response.
func (b *Bot) Dispatch(p payload.Payload) (map[string]any, error) {
	return b.dispatcher.Dispatch(p)
}

// Send replies into the conversation a payload came from. Exactly one
// outbound call is chosen by fixed precedence: group, then discuss, then
// private. A context with none of the three identifiers is a silent no-op.
// extra params are forwarded verbatim to the chosen endpoint.
func (b *Bot) Send(ctx context.Context, replyCtx payload.Payload, message any, extra map[string]any) (any, error) {
	var (
		action string
		target map[string]any
	)
	switch {
	case replyCtx.Has("group_id"):
		action = "send_group_msg"
		target = map[string]any{"group_id": replyCtx.Int64("group_id")}
	case replyCtx.Has("discuss_id"):
		action = "send_discuss_msg"
		target = map[string]any{"discuss_id": replyCtx.Int64("discuss_id")}
	case replyCtx.Has("user_id"):
		action = "send_private_msg"
		target = map[string]any{"user_id": replyCtx.Int64("user_id")}
	default:
		return nil, nil
	}
	params := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		params[k] = v
	}
	for k, v := range target {
		params[k] = v
	}
	params["message"] = message
	return b.API().Call(ctx, action, params)
}
