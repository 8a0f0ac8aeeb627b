package payload

import (
	"encoding/json"
	"fmt"

	"github.com/x140y40/coolq-telegram-bot/pkg/jsonutil"
)

// PostType is the top-level classification of an inbound CQHTTP payload.
type PostType string

const (
	PostTypeMessage PostType = "message"
	PostTypeEvent   PostType = "event"
	PostTypeRequest PostType = "request"
)

// discriminatorField maps a post type to the payload field that selects the
// handler within that category.
var discriminatorField = map[PostType]string{
	PostTypeMessage: "message_type",
	PostTypeEvent:   "event",
	PostTypeRequest: "request_type",
}

// Payload is an inbound event body as delivered by the gateway. It is
// decoded once per request and treated as read-only during dispatch.
type Payload map[string]any

// Parse decodes raw webhook body bytes into a Payload.
func Parse(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("payload: decode body: %w", err)
	}
	return p, nil
}

// PostType returns the payload's post_type and whether it is one of the
// known categories.
func (p Payload) PostType() (PostType, bool) {
	pt := PostType(jsonutil.CoerceString(p["post_type"]))
	_, ok := discriminatorField[pt]
	return pt, ok
}

// MatchKey returns the category-specific discriminator value used to select
// a handler (message_type, event or request_type). ok is false when the
// post type is unknown or the discriminator is missing or falsy.
func (p Payload) MatchKey() (string, bool) {
	pt, ok := p.PostType()
	if !ok {
		return "", false
	}
	v := p[discriminatorField[pt]]
	if !jsonutil.IsTruthy(v) {
		return "", false
	}
	key := jsonutil.CoerceString(v)
	if key == "" {
		return "", false
	}
	return key, true
}

// String returns a string field, or "" when absent or not a string.
func (p Payload) String(field string) string {
	return jsonutil.CoerceString(p[field])
}

// Int64 returns a numeric field as int64. QQ and group numbers arrive as
// JSON numbers and can exceed 32 bits.
func (p Payload) Int64(field string) int64 {
	return jsonutil.CoerceInt64(p[field])
}

// Bool returns a boolean field. The gateway emits real JSON booleans but
// some forks send "true"/"1" strings.
func (p Payload) Bool(field string) bool {
	return jsonutil.CoerceBool(p[field])
}

// Has reports whether the field is present with a truthy value, matching
// the gateway's convention of omitting empty identifiers.
func (p Payload) Has(field string) bool {
	return jsonutil.IsTruthy(p[field])
}
