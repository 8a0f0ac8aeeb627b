package api

import "fmt"

// NoRetCode marks an Error raised from an HTTP-level failure where the
// gateway body carried no retcode.
const NoRetCode = -1

// Error is a failure reported by the CQHTTP gateway, either as a non-2xx
// HTTP status or as a 2xx response with status=="failed".
type Error struct {
	StatusCode int
	RetCode    int
}

func (e *Error) Error() string {
	if e.RetCode == NoRetCode {
		return fmt.Sprintf("api: gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: gateway returned status %d retcode %d", e.StatusCode, e.RetCode)
}

// Error102 is the retcode-102 failure (the gateway accepted the call but the
// underlying client reported no effect). Callers match it with errors.As to
// distinguish it from other gateway failures.
type Error102 struct {
	StatusCode int
	RetCode    int
}

func (e *Error102) Error() string {
	return fmt.Sprintf("api: gateway returned status %d retcode %d", e.StatusCode, e.RetCode)
}

// Unwrap yields the generic form so errors.As(err, **Error) also matches
// retcode-102 failures, mirroring the subtype relation in the wire protocol
// docs.
func (e *Error102) Unwrap() error {
	return &Error{StatusCode: e.StatusCode, RetCode: e.RetCode}
}

func newError(statusCode, retcode int) error {
	if statusCode == 200 && retcode == 102 {
		return &Error102{StatusCode: statusCode, RetCode: retcode}
	}
	return &Error{StatusCode: statusCode, RetCode: retcode}
}
