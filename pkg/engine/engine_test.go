package engine

import (
	"strings"
	"testing"
)

func evalOK(t *testing.T, source string) Value {
	t.Helper()
	res := New().Eval(source)
	if res.IsErr {
		t.Fatalf("Eval(%q) returned Err(%s), want Ok", source, Inspect(res.Err))
	}
	return res.Value
}

func evalErr(t *testing.T, source string) Value {
	t.Helper()
	res := New().Eval(source)
	if !res.IsErr {
		t.Fatalf("Eval(%q) returned Ok(%s), want Err", source, Inspect(res.Value))
	}
	return res.Err
}

// --- prototype lookup termination and correctness ---

func TestPrototypeLookup(t *testing.T) {
	eng := New()
	a := NewObject(Null)
	a.OwnSet("k", Number(1))
	b := NewObject(a)
	c := NewObject(b)
	eng.ctx.Local.OwnSet("c", Object(c))

	got := eng.Eval("c.k")
	if got.IsErr || got.Value.Num != 1 {
		t.Fatalf("c.k = %+v, want Ok(Number(1))", got)
	}

	miss := eng.Eval("c.missing")
	if miss.IsErr || !miss.Value.IsUndefined() {
		t.Fatalf("c.missing = %+v, want Ok(Undefined)", miss)
	}

	ref := evalErr(t, "nonexistentName")
	if ref.Kind != KindString || ref.Str != "nonexistentName is not defined" {
		t.Fatalf("unresolved identifier = %+v, want ReferenceError-like string", ref)
	}
}

// --- assignment vs. declaration ---

func TestAssignmentWalkAndGlobalCreate(t *testing.T) {
	v := evalOK(t, `var x = 1; function f(){ x = 2; } f(); x`)
	if v.Kind != KindNumber || v.Num != 2 {
		t.Fatalf("x = %+v, want Ok(Number(2))", v)
	}

	v2 := evalOK(t, `function g(){ y = 3; } g(); y`)
	if v2.Kind != KindNumber || v2.Num != 3 {
		t.Fatalf("y = %+v, want Ok(Number(3))", v2)
	}
}

// --- closure capture ---

func TestClosureCapture(t *testing.T) {
	v := evalOK(t, `function mk(){ var n = 10; function g(){ return n; } return g; } mk()()`)
	if v.Kind != KindNumber || v.Num != 10 {
		t.Fatalf("mk()() = %+v, want Ok(Number(10))", v)
	}
}

// --- short-circuit evaluation ---

func TestShortCircuit(t *testing.T) {
	v := evalOK(t, `var hit = false; function se(){ hit = true; return true; } false && se(); hit`)
	if v.Kind != KindBoolean || v.Bool != false {
		t.Fatalf("hit after false && se() = %+v, want Ok(Boolean(false))", v)
	}

	v2 := evalOK(t, `var hit2 = false; function se2(){ hit2 = true; return true; } true || se2(); hit2`)
	if v2.Kind != KindBoolean || v2.Bool != false {
		t.Fatalf("hit2 after true || se2() = %+v, want Ok(Boolean(false))", v2)
	}
}

// --- string-coerced addition ---

func TestStringCoercedAddition(t *testing.T) {
	cases := []struct {
		source string
		kind   Kind
		str    string
		num    float64
	}{
		{`1 + "2"`, KindString, "12", 0},
		{`"a" + {}`, KindString, "a[object Object]", 0},
		{`1 + 2`, KindNumber, "", 3},
	}
	for _, c := range cases {
		v := evalOK(t, c.source)
		if v.Kind != c.kind {
			t.Fatalf("%s = %+v, want Kind %v", c.source, v, c.kind)
		}
		if c.kind == KindString && v.Str != c.str {
			t.Fatalf("%s = %q, want %q", c.source, v.Str, c.str)
		}
		if c.kind == KindNumber && v.Num != c.num {
			t.Fatalf("%s = %v, want %v", c.source, v.Num, c.num)
		}
	}
}

// --- this binding ---

func TestThisBinding(t *testing.T) {
	v := evalOK(t, `var obj = { m: function(){ return this == obj; } }; obj.m()`)
	if v.Kind != KindBoolean || !v.Bool {
		t.Fatalf("this == obj inside obj.m() = %+v, want Ok(Boolean(true))", v)
	}

	v3 := evalOK(t, `globalMarker = 5; function f2(){ return this.globalMarker; } f2()`)
	if v3.Kind != KindNumber || v3.Num != 5 {
		t.Fatalf("this.globalMarker inside bare f2() = %+v, want Ok(Number(5))", v3)
	}
}

// --- throw propagation ---

func TestThrowPropagation(t *testing.T) {
	v := evalErr(t, `function inner(){ throw "boom"; } function outer(){ inner(); } outer()`)
	if v.Kind != KindString || v.Str != "boom" {
		t.Fatalf("thrown value = %+v, want Err(String(\"boom\"))", v)
	}
}

// --- call-stack trace capture ---

func TestThrowCapturesCallStack(t *testing.T) {
	res := New().Eval(`function inner(){ throw "boom"; } function outer(){ inner(); } outer()`)
	if !res.IsErr {
		t.Fatalf("got Ok(%+v), want Err", res.Value)
	}
	if !strings.Contains(res.Trace, "inner") || !strings.Contains(res.Trace, "outer") {
		t.Fatalf("trace = %q, want frames for both inner and outer", res.Trace)
	}
}

func TestTopLevelThrowHasEmptyTrace(t *testing.T) {
	res := New().Eval(`throw "nope"`)
	if !res.IsErr {
		t.Fatalf("got Ok(%+v), want Err", res.Value)
	}
	if res.Trace != "" {
		t.Fatalf("trace = %q, want empty for a throw with no enclosing call", res.Trace)
	}
}

// --- identity equality for objects ---

func TestObjectIdentityEquality(t *testing.T) {
	v := evalOK(t, `var a = {}; var b = a; a == b`)
	if v.Kind != KindBoolean || !v.Bool {
		t.Fatalf("a == b (same object) = %+v, want Ok(Boolean(true))", v)
	}

	v2 := evalOK(t, `({}) == ({})`)
	if v2.Kind != KindBoolean || v2.Bool {
		t.Fatalf("{} == {} (distinct objects) = %+v, want Ok(Boolean(false))", v2)
	}
}

// --- end-to-end scenarios ---

func TestScenarioA(t *testing.T) {
	v := evalOK(t, `var x = 40 + 2; x`)
	if v.Kind != KindNumber || v.Num != 42 {
		t.Fatalf("got %+v, want Ok(Number(42))", v)
	}
}

func TestScenarioB(t *testing.T) {
	v := evalOK(t, `function fact(n){ return n && n * fact(n-1) || 1; } fact(5)`)
	if v.Kind != KindNumber || v.Num != 120 {
		t.Fatalf("got %+v, want Ok(Number(120))", v)
	}
}

func TestScenarioC(t *testing.T) {
	v := evalOK(t, `var o = { a: 1 }; var p = Object.create(o); p.b = 2; p.a + p.b`)
	if v.Kind != KindNumber || v.Num != 3 {
		t.Fatalf("got %+v, want Ok(Number(3))", v)
	}
}

func TestScenarioD(t *testing.T) {
	v := evalOK(t, `var c = 0; function inc(){ c = c + 1; } inc(); inc(); c`)
	if v.Kind != KindNumber || v.Num != 2 {
		t.Fatalf("got %+v, want Ok(Number(2))", v)
	}
}

func TestScenarioE(t *testing.T) {
	v := evalErr(t, `throw "nope"`)
	if v.Kind != KindString || v.Str != "nope" {
		t.Fatalf("got %+v, want Err(String(\"nope\"))", v)
	}
}

func TestScenarioF(t *testing.T) {
	v := evalErr(t, `undefined.x`)
	if v.Kind != KindString || v.Str != "undefined has no properties" {
		t.Fatalf("got %+v, want Err matching /undefined has no properties/", v)
	}
}

func TestScenarioG(t *testing.T) {
	v := evalOK(t, `"x" + (1 + 2)`)
	if v.Kind != KindString || v.Str != "x3" {
		t.Fatalf("got %+v, want Ok(String(\"x3\"))", v)
	}
}

func TestScenarioH(t *testing.T) {
	v := evalOK(t, `eval("1 + 1")`)
	if v.Kind != KindNumber || v.Num != 2 {
		t.Fatalf("got %+v, want Ok(Number(2))", v)
	}
}

// --- additional coverage: intrinsics and coercion edges ---

func TestConsoleLogReturnsUndefined(t *testing.T) {
	v := evalOK(t, `console.log("hello", 1, true)`)
	if !v.IsUndefined() {
		t.Fatalf("console.log(...) = %+v, want Ok(Undefined)", v)
	}
}

func TestConsoleLogWritesToConfiguredOut(t *testing.T) {
	eng := New()
	var buf strings.Builder
	eng.SetOut(&buf)

	res := eng.Eval(`console.log("hello", 1, true)`)
	if res.IsErr {
		t.Fatalf("Eval returned Err(%s)", Inspect(res.Err))
	}
	if got := buf.String(); got != "hello 1 true\n" {
		t.Fatalf("captured output = %q, want %q", got, "hello 1 true\n")
	}
}

func TestNumberToStringIntrinsic(t *testing.T) {
	v := evalOK(t, `(5).toString()`)
	if v.Kind != KindString || v.Str != "5" {
		t.Fatalf("(5).toString() = %+v, want Ok(String(\"5\"))", v)
	}
}

func TestTernaryAndLogicalPrecedence(t *testing.T) {
	v := evalOK(t, `true ? 1 : 2`)
	if v.Num != 1 {
		t.Fatalf("ternary = %+v, want 1", v)
	}
	v2 := evalOK(t, `false || true && true`)
	if v2.Kind != KindBoolean || !v2.Bool {
		t.Fatalf("logical precedence = %+v, want true", v2)
	}
}

func TestSyntaxErrorSurface(t *testing.T) {
	res := New().Eval(`var = ;`)
	if !res.IsErr || res.Err.Kind != KindString {
		t.Fatalf("malformed source = %+v, want Err(String(\"SyntaxError: ...\"))", res)
	}
}
