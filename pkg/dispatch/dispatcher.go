package dispatch

import (
	"errors"

	"github.com/x140y40/coolq-telegram-bot/pkg/payload"
)

// ErrBadPayload marks a protocol-level failure: unknown post_type or a
// missing/empty discriminator field. The server layer maps it to HTTP 400.
var ErrBadPayload = errors.New("dispatch: malformed payload")

// Dispatcher walks priority groups in ascending order and runs at most one
// handler per group, stopping at the first non-pass result.
type Dispatcher struct {
	Registry *Registry
}

// Dispatch selects and runs handlers for the payload. It returns the
// terminating handler's response (nil for an empty response, including the
// case where every group passed or had no matching handler). A handler
// panic is not recovered here; the HTTP layer's recovery middleware turns
// it into a 500 for that request.
func (d *Dispatcher) Dispatch(p payload.Payload) (map[string]any, error) {
	postType, ok := p.PostType()
	if !ok {
		return nil, ErrBadPayload
	}
	key, ok := p.MatchKey()
	if !ok {
		return nil, ErrBadPayload
	}

	for _, group := range d.Registry.Groups() {
		handler, ok := d.Registry.Lookup(group, postType, key)
		if !ok {
			continue
		}
		result := handler(p)
		if result.Pass() {
			continue
		}
		return result.Response(), nil
	}
	return nil, nil
}
