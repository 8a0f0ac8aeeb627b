package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestCoerceInt64(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{float64(123456789012), 123456789012},
		{int(42), 42},
		{int64(7), 7},
		{json.Number("99"), 99},
		{" 10 ", 10},
		{"not a number", 0},
		{nil, 0},
		{true, 0},
	}
	for _, tc := range cases {
		if got := CoerceInt64(tc.in); got != tc.want {
			t.Fatalf("CoerceInt64(%v)=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestCoerceBool(t *testing.T) {
	for _, v := range []any{true, "true", "1", "YES", "on", float64(2), int(1)} {
		if !CoerceBool(v) {
			t.Fatalf("CoerceBool(%v)=false", v)
		}
	}
	for _, v := range []any{false, "false", "0", "", nil, float64(0), int(0)} {
		if CoerceBool(v) {
			t.Fatalf("CoerceBool(%v)=true", v)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []any{"group", float64(1), int64(-3), true, map[string]any{}} {
		if !IsTruthy(v) {
			t.Fatalf("IsTruthy(%v)=false", v)
		}
	}
	for _, v := range []any{nil, "", "  ", float64(0), int64(0), false} {
		if IsTruthy(v) {
			t.Fatalf("IsTruthy(%v)=true", v)
		}
	}
}
