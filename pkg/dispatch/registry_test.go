package dispatch

import (
	"testing"

	"github.com/x140y40/coolq-telegram-bot/pkg/payload"
)

func named(name string) Handler {
	return func(p payload.Payload) Result {
		return Terminate(map[string]any{"handler": name})
	}
}

func handlerName(t *testing.T, h Handler) string {
	t.Helper()
	if h == nil {
		return ""
	}
	res := h(payload.Payload{})
	name, _ := res.Response()["handler"].(string)
	return name
}

func TestRegister_GroupsStaySorted(t *testing.T) {
	r := NewRegistry()
	r.Register(5, payload.PostTypeMessage, nil, named("a"))
	r.Register(0, payload.PostTypeMessage, nil, named("b"))
	r.Register(-3, payload.PostTypeEvent, nil, named("c"))
	r.Register(5, payload.PostTypeRequest, nil, named("d"))

	got := r.Groups()
	want := []int{-3, 0, 5}
	if len(got) != len(want) {
		t.Fatalf("groups=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("groups=%v want=%v", got, want)
		}
	}
}

func TestLookup_ExactThenWildcard(t *testing.T) {
	r := NewRegistry()
	r.Register(0, payload.PostTypeMessage, []string{"group"}, named("exact"))
	r.Register(0, payload.PostTypeMessage, nil, named("wild"))

	h, ok := r.Lookup(0, payload.PostTypeMessage, "group")
	if !ok || handlerName(t, h) != "exact" {
		t.Fatalf("expected exact handler, ok=%v name=%q", ok, handlerName(t, h))
	}
	h, ok = r.Lookup(0, payload.PostTypeMessage, "private")
	if !ok || handlerName(t, h) != "wild" {
		t.Fatalf("expected wildcard fallback, ok=%v name=%q", ok, handlerName(t, h))
	}
	if _, ok := r.Lookup(0, payload.PostTypeEvent, "group_increase"); ok {
		t.Fatalf("empty bucket must not match")
	}
	if _, ok := r.Lookup(7, payload.PostTypeMessage, "group"); ok {
		t.Fatalf("unknown group must not match")
	}
}

func TestRegister_LastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(0, payload.PostTypeMessage, []string{"private"}, named("first"))
	r.Register(0, payload.PostTypeMessage, []string{"private"}, named("second"))

	h, ok := r.Lookup(0, payload.PostTypeMessage, "private")
	if !ok || handlerName(t, h) != "second" {
		t.Fatalf("expected most recent registration, name=%q", handlerName(t, h))
	}
}

func TestRegister_MultipleKeysShareHandler(t *testing.T) {
	r := NewRegistry()
	r.Register(0, payload.PostTypeMessage, []string{"group", "discuss"}, named("chat"))

	for _, key := range []string{"group", "discuss"} {
		h, ok := r.Lookup(0, payload.PostTypeMessage, key)
		if !ok || handlerName(t, h) != "chat" {
			t.Fatalf("key=%q not bound", key)
		}
	}
}

func TestRegister_ReturnsHandlerUnchanged(t *testing.T) {
	r := NewRegistry()
	h := named("x")
	got := r.Register(0, payload.PostTypeMessage, nil, h)
	if got == nil || handlerName(t, got) != "x" {
		t.Fatalf("Register must return the handler it was given")
	}
}
