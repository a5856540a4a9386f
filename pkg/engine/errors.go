package engine

import "fmt"

// newError builds a thrown String value the way every TypeError-like
// and ReferenceError-like message in the error taxonomy is built: a
// plain formatted string, no wrapper object.
func newError(format string, a ...interface{}) Value {
	return String(fmt.Sprintf(format, a...))
}

func throwError(format string, a ...interface{}) Outcome {
	return Thrown(newError(format, a...))
}
