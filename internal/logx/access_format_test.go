package logx

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRequestLine_NoColor(t *testing.T) {
	ts := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	line := FormatRequestLine(ts, 200, 1500*time.Microsecond, "10.0.0.1", "POST", "/", map[string]any{
		"post_type":     "message",
		"message_type":  "group",
		"handler_group": 0,
		"empty":         "",
	}, false)

	if !strings.HasPrefix(line, "2026/08/23 - 10:30:00 | 200 | 1.5ms | 10.0.0.1 | POST /") {
		t.Fatalf("line=%q", line)
	}
	if !strings.Contains(line, "handler_group=0 message_type=group post_type=message") {
		t.Fatalf("fields not sorted/rendered: %q", line)
	}
	if strings.Contains(line, "empty=") {
		t.Fatalf("empty field should be dropped: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("unexpected ANSI codes: %q", line)
	}
}

func TestColorizeStatusWith(t *testing.T) {
	if got := ColorizeStatusWith(204, true); got != "\x1b[1;32m204\x1b[0m" {
		t.Fatalf("2xx=%q", got)
	}
	if got := ColorizeStatusWith(403, true); got != "\x1b[1;33m403\x1b[0m" {
		t.Fatalf("4xx=%q", got)
	}
	if got := ColorizeStatusWith(500, true); got != "\x1b[1;31m500\x1b[0m" {
		t.Fatalf("5xx=%q", got)
	}
	if got := ColorizeStatusWith(302, true); got != "302" {
		t.Fatalf("3xx=%q", got)
	}
	if got := ColorizeStatusWith(500, false); got != "500" {
		t.Fatalf("no color=%q", got)
	}
}
