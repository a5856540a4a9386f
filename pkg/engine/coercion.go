package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ToNumber implements to_number: Number passes through; Boolean maps
// to 1/0; String is parsed as a float64 (empty or unparsable yields
// NaN); Object and Undefined are NaN.
func ToNumber(v Value) float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case KindString:
		s := strings.TrimSpace(v.Str)
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// ToBoolean implements to_boolean: Number is truthy unless zero or
// NaN; Boolean passes through; String is truthy unless empty; Object
// is always truthy (including the Null handle, per the data model —
// Null is still an Object-kind Value); Undefined is falsy.
func ToBoolean(v Value) bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindBoolean:
		return v.Bool
	case KindString:
		return v.Str != ""
	case KindObject:
		return true
	default:
		return false
	}
}

// toStringSimple is "the simple textual form" used to coerce the
// result of a toString call back to Go text, without invoking any
// further callables.
func toStringSimple(v Value) string {
	switch v.Kind {
	case KindNumber:
		return numberToString(v.Num)
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindObject:
		return "[object Object]"
	default:
		return "undefined"
	}
}

// jsToString implements js_to_string: look up v.toString via the
// prototype chain, invoke it with this=v and no arguments, and coerce
// the result via toStringSimple. Any failure along the way surfaces
// as "can't convert <debug> to primitive type".
func jsToString(v Value, ctx Context) (string, Outcome) {
	getResult := getProperty(v, "toString", ctx.Global)
	if getResult.IsThrow {
		return "", getResult
	}
	fn := getResult.Value
	if fn.Kind != KindObject || fn.Handle.Extension() == nil {
		return "", throwError("can't convert %s to primitive type", debugString(v))
	}
	callCtx := Context{This: v, Local: ctx.Local, Global: ctx.Global, Frames: ctx.Frames, Out: ctx.Out}
	out := applyValue(fn, nil, callCtx)
	if out.IsThrow {
		return "", out
	}
	return toStringSimple(out.Value), Ok(Undefined)
}

// Inspect exposes debugString to host code: the CLI's REPL echo and
// error reporting print a thrown or returned value's debug-string
// form through this.
func Inspect(v Value) string {
	return debugString(v)
}

// debugString renders v the way console.log and error messages do: a
// structural inspection that never invokes user-overridable toString
// methods, deliberately distinct from jsToString's coercion. Cyclic
// object graphs are bounded by a visited set so a self-referential
// object prints "[Circular]" instead of looping forever.
func debugString(v Value) string {
	return debugStringVisited(v, map[*objectRecord]bool{})
}

func debugStringVisited(v Value, visited map[*objectRecord]bool) string {
	switch v.Kind {
	case KindNumber:
		return numberToString(v.Num)
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindUndefined:
		return "undefined"
	case KindObject:
		if v.Handle.IsNull() {
			return "null"
		}
		if ext := v.Handle.Extension(); ext != nil {
			if ext.Name != "" {
				return "[Function: " + ext.Name + "]"
			}
			return "[Function (anonymous)]"
		}
		return inspectObject(v.Handle, visited)
	default:
		return "undefined"
	}
}

func inspectObject(h ObjectHandle, visited map[*objectRecord]bool) string {
	if visited[h.rec] {
		return "[Circular]"
	}
	visited[h.rec] = true
	defer delete(visited, h.rec)

	h.rec.mu.RLock()
	keys := make([]string, 0, len(h.rec.properties))
	vals := make(map[string]Value, len(h.rec.properties))
	for k, v := range h.rec.properties {
		keys = append(keys, k)
		vals[k] = v
	}
	h.rec.mu.RUnlock()
	sort.Strings(keys)

	if len(keys) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(debugStringVisited(vals[k], visited))
	}
	sb.WriteString(" }")
	return sb.String()
}
