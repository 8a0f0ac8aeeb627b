package payload

import "testing"

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMatchKey(t *testing.T) {
	cases := []struct {
		name string
		body string
		key  string
		ok   bool
	}{
		{"message", `{"post_type":"message","message_type":"private"}`, "private", true},
		{"event", `{"post_type":"event","event":"group_increase"}`, "group_increase", true},
		{"request", `{"post_type":"request","request_type":"friend"}`, "friend", true},
		{"missing discriminator", `{"post_type":"message"}`, "", false},
		{"empty discriminator", `{"post_type":"message","message_type":""}`, "", false},
		{"unknown post_type", `{"post_type":"meta_event","meta_event_type":"heartbeat"}`, "", false},
		{"no post_type", `{"message_type":"private"}`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse([]byte(tc.body))
			if err != nil {
				t.Fatalf("Parse err=%v", err)
			}
			key, ok := p.MatchKey()
			if ok != tc.ok || key != tc.key {
				t.Fatalf("MatchKey=(%q,%v) want=(%q,%v)", key, ok, tc.key, tc.ok)
			}
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	p, err := Parse([]byte(`{"group_id":1234567890123,"user_id":42,"anonymous":null,"message":"hi"}`))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if got := p.Int64("group_id"); got != 1234567890123 {
		t.Fatalf("group_id=%d", got)
	}
	if got := p.String("message"); got != "hi" {
		t.Fatalf("message=%q", got)
	}
	if p.Has("anonymous") {
		t.Fatalf("null field should not be truthy")
	}
	if p.Has("discuss_id") {
		t.Fatalf("absent field should not be truthy")
	}
	if !p.Has("user_id") {
		t.Fatalf("user_id should be truthy")
	}
}
