// Package cqcode builds and escapes CQ message codes, the inline rich-media
// markup the gateway embeds in message strings, e.g. "[CQ:at,qq=123456]".
package cqcode

import (
	"fmt"
	"sort"
	"strings"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"[", "&#91;",
		"]", "&#93;",
	)
	textUnescaper = strings.NewReplacer(
		"&#91;", "[",
		"&#93;", "]",
		"&amp;", "&",
	)
	paramEscaper = strings.NewReplacer(
		"&", "&amp;",
		"[", "&#91;",
		"]", "&#93;",
		",", "&#44;",
	)
)

// EscapeText escapes plain message text so it cannot be parsed as a CQ code.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// UnescapeText reverses EscapeText.
func UnescapeText(s string) string {
	return textUnescaper.Replace(s)
}

// Segment is one CQ code, a function name plus key=value parameters.
type Segment struct {
	Function string
	Params   map[string]string
}

// String renders the segment as "[CQ:func,k=v,...]" with parameter values
// escaped. Parameters are emitted in sorted key order so output is stable.
func (s Segment) String() string {
	var b strings.Builder
	b.WriteString("[CQ:")
	b.WriteString(s.Function)
	keys := make([]string, 0, len(s.Params))
	for k := range s.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(",")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(paramEscaper.Replace(s.Params[k]))
	}
	b.WriteString("]")
	return b.String()
}

// At mentions a group member by QQ number.
func At(qq int64) Segment {
	return Segment{Function: "at", Params: map[string]string{"qq": fmt.Sprintf("%d", qq)}}
}

// Image embeds an image by file name or URL.
func Image(file string) Segment {
	return Segment{Function: "image", Params: map[string]string{"file": file}}
}

// Face embeds a built-in QQ emoji by id.
func Face(id int) Segment {
	return Segment{Function: "face", Params: map[string]string{"id": fmt.Sprintf("%d", id)}}
}
