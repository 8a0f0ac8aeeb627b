package dispatch

import (
	"sort"
	"sync"

	"github.com/x140y40/coolq-telegram-bot/pkg/payload"
)

// Wildcard registers a handler for every match key within its category that
// has no exact registration. It is reserved and never a real sub-type.
const Wildcard = "*"

// Handler processes one inbound payload and reports whether dispatch should
// stop or fall through to the next priority group.
type Handler func(p payload.Payload) Result

// Registry stores handlers keyed by (priority group, post type, match key).
// Registration normally happens during startup; the mutex makes late
// registration safe against concurrent dispatch as well.
type Registry struct {
	mu     sync.RWMutex
	groups []int
	byKey  map[int]map[payload.PostType]map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		byKey: map[int]map[payload.PostType]map[string]Handler{},
	}
}

// Register binds handler to every key in keys within the (group, postType)
// bucket. Empty keys registers the wildcard. The last registration for a
// key wins. The handler is returned unchanged so call sites can keep a
// reference to what they registered.
func (r *Registry) Register(group int, postType payload.PostType, keys []string, handler Handler) Handler {
	if handler == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.byKey[group]
	if !ok {
		bucket = map[payload.PostType]map[string]Handler{}
		r.byKey[group] = bucket
		r.groups = append(r.groups, group)
		sort.Ints(r.groups)
	}
	byKey := bucket[postType]
	if byKey == nil {
		byKey = map[string]Handler{}
		bucket[postType] = byKey
	}
	if len(keys) == 0 {
		byKey[Wildcard] = handler
		return handler
	}
	for _, key := range keys {
		byKey[key] = handler
	}
	return handler
}

// Lookup returns the handler for the exact key in the (group, postType)
// bucket, falling back to the bucket's wildcard. ok is false when neither
// exists.
func (r *Registry) Lookup(group int, postType payload.PostType, key string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byKey := r.byKey[group][postType]
	if byKey == nil {
		return nil, false
	}
	if h, ok := byKey[key]; ok {
		return h, true
	}
	if h, ok := byKey[Wildcard]; ok {
		return h, true
	}
	return nil, false
}

// Groups returns the priority groups in ascending order.
func (r *Registry) Groups() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int(nil), r.groups...)
}
