package logx

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[1;32m"
	colorYellow = "\x1b[1;33m"
	colorRed    = "\x1b[1;31m"
)

// ColorEnabled reports whether stdout is a terminal that can take ANSI
// colors.
func ColorEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorizeStatusWith wraps an HTTP status in an ANSI color by class when
// color is on: 2xx green, 4xx yellow, 5xx red.
func ColorizeStatusWith(status int, color bool) string {
	s := fmt.Sprintf("%d", status)
	if !color {
		return s
	}
	switch {
	case status >= 200 && status < 300:
		return colorGreen + s + colorReset
	case status >= 400 && status < 500:
		return colorYellow + s + colorReset
	case status >= 500:
		return colorRed + s + colorReset
	default:
		return s
	}
}

// FormatRequestLine renders one webhook access-log line:
//
//	2006/01/02 - 15:04:05 | 200 | 1.2ms | 10.0.0.1 | POST / | match_key=group post_type=message request_id=...
//
// fields are appended as sorted key=value pairs; empty values are dropped.
func FormatRequestLine(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006/01/02 - 15:04:05"))
	b.WriteString(" | ")
	b.WriteString(ColorizeStatusWith(status, color))
	b.WriteString(" | ")
	b.WriteString(latency.String())
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(clientIP))
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(method))
	b.WriteString(" ")
	b.WriteString(path)

	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		if s == "" || s == "<nil>" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		b.WriteString(" |")
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(strings.TrimSpace(fmt.Sprintf("%v", fields[k])))
		}
	}
	return b.String()
}
