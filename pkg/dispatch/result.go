package dispatch

// Result is a handler's verdict. A handler either terminates dispatch with a
// response body, or passes so the next priority group gets a chance. The
// zero Result terminates with an empty response.
type Result struct {
	pass     bool
	response map[string]any
}

// Terminate stops dispatch and returns resp as the webhook response. resp
// may be nil for an empty response.
func Terminate(resp map[string]any) Result {
	return Result{response: resp}
}

// Continue defers to the next priority group.
func Continue() Result {
	return Result{pass: true}
}

// Pass reports whether the handler opted to fall through.
func (r Result) Pass() bool {
	return r.pass
}

// Response returns the terminating response body, nil for empty.
func (r Result) Response() map[string]any {
	return r.response
}
