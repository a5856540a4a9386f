package engine

import "fmt"

// StackFrame is one entry in a best-effort call-stack trace: a callee
// name. No line/column are recorded since the AST nodes here carry a
// single lexeme Token, not a reliable call-site position for every
// expression form.
type StackFrame struct {
	Name string
}

// CallStack tracks the chain of user-function calls currently in
// progress, threaded through Context so every nested call shares the
// same stack. It exists purely to render a best-effort trace when a
// thrown value reaches the host boundary; this is informative only,
// never required for a thrown value's identity or equality.
type CallStack struct {
	frames   []StackFrame
	captured string
}

// Push adds a call frame. A nil receiver is a no-op, so callers that
// never opted into stack tracking (tests constructing a bare Context)
// don't need a guard at every call site.
func (cs *CallStack) Push(name string) {
	if cs == nil {
		return
	}
	cs.frames = append(cs.frames, StackFrame{Name: name})
}

// Pop removes the most recently pushed frame.
func (cs *CallStack) Pop() {
	if cs == nil || len(cs.frames) == 0 {
		return
	}
	cs.frames = cs.frames[:len(cs.frames)-1]
}

// Trace renders the current frames innermost-first, or "" when empty.
func (cs *CallStack) Trace() string {
	if cs == nil || len(cs.frames) == 0 {
		return ""
	}
	s := ""
	for i := len(cs.frames) - 1; i >= 0; i-- {
		s += fmt.Sprintf("\tat %s\n", cs.frames[i].Name)
	}
	return s
}

// CaptureIfEmpty snapshots the current frames into the stack's
// captured trace, the first time it's called after the trace was last
// taken. invokeUserCallable calls this the moment it observes a throw
// completion, before its own deferred Pop unwinds the frame — since
// unwinding happens innermost-first, the first caller to observe the
// throw is the deepest one, so this captures the full chain.
func (cs *CallStack) CaptureIfEmpty() {
	if cs == nil || cs.captured != "" {
		return
	}
	cs.captured = cs.Trace()
}

// TakeCaptured returns and clears the last captured trace.
func (cs *CallStack) TakeCaptured() string {
	if cs == nil {
		return ""
	}
	s := cs.captured
	cs.captured = ""
	return s
}
