package api

import (
	"errors"
	"testing"
)

func TestError102_ImplementsErrorAndUnwrapsToGeneric(t *testing.T) {
	err := newError(200, 102)

	var e102 *Error102
	if !errors.As(err, &e102) {
		t.Fatalf("expected *Error102, got %T (%v)", err, err)
	}
	if e102.Error() != "api: gateway returned status 200 retcode 102" {
		t.Fatalf("message=%q", e102.Error())
	}

	var generic *Error
	if !errors.As(err, &generic) {
		t.Fatalf("*Error102 should unwrap to the generic *Error")
	}
	if generic.StatusCode != 200 || generic.RetCode != 102 {
		t.Fatalf("unwrapped error=%+v", generic)
	}
}

func TestNewError_OnlyStatus200Retcode102IsDistinguished(t *testing.T) {
	cases := []struct {
		status  int
		retcode int
		want102 bool
	}{
		{200, 102, true},
		{200, 99, false},
		{503, 102, false},
		{503, NoRetCode, false},
	}
	for _, tc := range cases {
		err := newError(tc.status, tc.retcode)
		var e102 *Error102
		if got := errors.As(err, &e102); got != tc.want102 {
			t.Fatalf("newError(%d,%d) Error102=%v want=%v", tc.status, tc.retcode, got, tc.want102)
		}
	}
}

func TestError_MessageOmitsMissingRetcode(t *testing.T) {
	e := &Error{StatusCode: 503, RetCode: NoRetCode}
	if e.Error() != "api: gateway returned status 503" {
		t.Fatalf("message=%q", e.Error())
	}
}
